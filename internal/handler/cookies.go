package handler

import (
	"CharityFund_Backend/internal/model"
	"net"
	"net/http"
	"strings"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	accessCookieMaxAge  = 900
	refreshCookieMaxAge = 604800
)

func setAuthCookies(writer http.ResponseWriter, tokensPair *model.TokensPair, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    tokensPair.AccessToken,
		Path:     "/",
		MaxAge:   accessCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(writer, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    tokensPair.RefreshToken,
		Path:     "/",
		MaxAge:   refreshCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookies(writer http.ResponseWriter, secure bool) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// clientIP берет первый адрес из X-Forwarded-For, если сервис стоит
// за прокси, иначе RemoteAddr без порта.
func clientIP(request *http.Request) string {
	forwarded := request.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
