package security

import (
	"context"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// ClaimsFromContext достает claims, положенные JWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

type accessTokenVerifier interface {
	VerifyAccessToken(tokenString string) (*Claims, error)
}

// JWTMiddleware проверяет access токен из cookie или заголовка Authorization.
// Cookie имеет приоритет: это основной контракт для браузера.
func JWTMiddleware(verifier accessTokenVerifier) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(verifier, next))
	}
}

func handleAuthentication(verifier accessTokenVerifier, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		jwtTokenStr := extractAccessToken(request)
		if jwtTokenStr == "" {
			http.Error(writer, "не авторизован", http.StatusUnauthorized)
			return
		}

		claims, err := verifier.VerifyAccessToken(jwtTokenStr)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "не авторизован", http.StatusUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), claimsContextKey, claims))
		next.ServeHTTP(writer, request)
	}
}

func extractAccessToken(request *http.Request) string {
	if cookie, err := request.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authorizationHeader := request.Header.Get("Authorization")
	if strings.HasPrefix(authorizationHeader, "Bearer ") {
		return strings.TrimPrefix(authorizationHeader, "Bearer ")
	}

	return ""
}
