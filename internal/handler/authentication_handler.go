package handler

import (
	"CharityFund_Backend/internal/model"
	"CharityFund_Backend/internal/ports"
	"CharityFund_Backend/internal/security"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type AuthenticationHandler struct {
	AuthenticationService ports.AuthenticationServiceInterface
	SecureCookies         bool
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationServiceInterface, secureCookies bool) *AuthenticationHandler {
	return &AuthenticationHandler{
		AuthenticationService: authenticationService,
		SecureCookies:         secureCookies,
	}
}

// RegisterRequest содержит данные регистрации
// swagger:model
type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	ChurchName  *string `json:"churchName,omitempty"`
	Position    *string `json:"position,omitempty"`
	UserType    *string `json:"userType,omitempty"`
}

// LoginRequest содержит учетные данные
// swagger:model
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse содержит пользователя и access токен.
// Refresh токен клиенту отдается только через httpOnly cookie.
// swagger:model
type AuthResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

// LogoutResponse содержит строку с сообщением
// swagger:model
type LogoutResponse struct {
	Message string `json:"message"`
}

// Register регистрирует пользователя и сразу выдает пару токенов
// @Summary Регистрация
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "данные регистрации"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "ошибка валидации"
// @Failure 409 {object} ErrorResponse "email уже занят"
// @Router /auth/register [post]
func (handler *AuthenticationHandler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var registerRequest RegisterRequest
	if err := json.NewDecoder(request.Body).Decode(&registerRequest); err != nil {
		writeJSON(writer, http.StatusBadRequest, &ErrorResponse{Error: "неверный json"})
		return
	}

	input := &ports.RegisterInput{
		Email:       registerRequest.Email,
		Password:    registerRequest.Password,
		Name:        registerRequest.Name,
		PhoneNumber: registerRequest.PhoneNumber,
		ChurchName:  registerRequest.ChurchName,
		Position:    registerRequest.Position,
		UserType:    registerRequest.UserType,
	}

	user, tokensPair, err := handler.AuthenticationService.Register(ctx, input, request.UserAgent(), clientIP(request))
	if err != nil {
		writeError(writer, err)
		return
	}

	setAuthCookies(writer, tokensPair, handler.SecureCookies)
	writeJSON(writer, http.StatusCreated, &AuthResponse{User: user, AccessToken: tokensPair.AccessToken})
}

// Login выполняет вход по email и паролю
// @Summary Вход
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "учетные данные"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse "неверный email или пароль"
// @Router /auth/login [post]
func (handler *AuthenticationHandler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var loginRequest LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&loginRequest); err != nil {
		writeJSON(writer, http.StatusBadRequest, &ErrorResponse{Error: "неверный json"})
		return
	}

	user, tokensPair, err := handler.AuthenticationService.Login(ctx, loginRequest.Email, loginRequest.Password, request.UserAgent(), clientIP(request))
	if err != nil {
		writeError(writer, err)
		return
	}

	setAuthCookies(writer, tokensPair, handler.SecureCookies)
	writeJSON(writer, http.StatusOK, &AuthResponse{User: user, AccessToken: tokensPair.AccessToken})
}

// Refresh обновляет пару токенов по refresh cookie с ротацией
// @Summary Обновление токенов
// @Tags Authentication
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse "токен отсутствует, просрочен или отозван"
// @Router /auth/refresh [post]
func (handler *AuthenticationHandler) Refresh(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	cookie, err := request.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		clearAuthCookies(writer, handler.SecureCookies)
		writeJSON(writer, http.StatusUnauthorized, &ErrorResponse{Error: "refresh токен отсутствует"})
		return
	}

	user, tokensPair, err := handler.AuthenticationService.Refresh(ctx, cookie.Value, request.UserAgent(), clientIP(request))
	if err != nil {
		clearAuthCookies(writer, handler.SecureCookies)
		writeError(writer, err)
		return
	}

	setAuthCookies(writer, tokensPair, handler.SecureCookies)
	writeJSON(writer, http.StatusOK, &AuthResponse{User: user, AccessToken: tokensPair.AccessToken})
}

// Logout отзывает refresh токен и очищает cookie
// @Summary Выход из аккаунта
// @Tags Authentication
// @Produce json
// @Success 200 {object} LogoutResponse
// @Router /auth/logout [post]
func (handler *AuthenticationHandler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	refreshToken := ""
	if cookie, err := request.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := handler.AuthenticationService.Logout(ctx, refreshToken); err != nil {
		writeError(writer, err)
		return
	}

	clearAuthCookies(writer, handler.SecureCookies)
	writeJSON(writer, http.StatusOK, &LogoutResponse{Message: "выполнен выход из аккаунта"})
}

// Me возвращает текущего пользователя по access токену
// @Summary Текущий пользователь
// @Tags Authentication
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} ErrorResponse "не авторизован"
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (handler *AuthenticationHandler) Me(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	claims, ok := security.ClaimsFromContext(ctx)
	if ok == false {
		writeJSON(writer, http.StatusUnauthorized, &ErrorResponse{Error: "не авторизован"})
		return
	}

	user, err := handler.AuthenticationService.CurrentUser(ctx, claims.UserUUID)
	if err != nil {
		writeError(writer, err)
		return
	}

	writeJSON(writer, http.StatusOK, user)
}
