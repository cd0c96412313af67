package service

import (
	"CharityFund_Backend/internal/apperror"
	"CharityFund_Backend/config"
	"CharityFund_Backend/internal/model"
	"CharityFund_Backend/internal/notifier"
	"CharityFund_Backend/internal/ports"
	"CharityFund_Backend/internal/security"
	"context"
	"fmt"
	"log"
	"regexp"
	"time"
)

// Единое сообщение для всех провалов аутентификации,
// чтобы по тексту ошибки нельзя было перебирать email-адреса.
const genericAuthMessage = "неверный email или пароль"

const (
	reasonLogout   = "выход пользователя"
	reasonRotation = "ротация токена"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthenticationService struct {
	UserRepository         ports.UserRepositoryInterface
	RefreshTokenRepository ports.RefreshTokenRepositoryInterface
	JWTService             ports.JWTServiceInterface
	Config                 *config.Config
}

func NewAuthenticationService(
	userRepository ports.UserRepositoryInterface,
	refreshTokenRepository ports.RefreshTokenRepositoryInterface,
	jwtService ports.JWTServiceInterface,
	cfg *config.Config,
) *AuthenticationService {
	return &AuthenticationService{
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		JWTService:             jwtService,
		Config:                 cfg,
	}
}

func (service *AuthenticationService) Register(ctx context.Context, input *ports.RegisterInput, userAgent string, ipAddress string) (*model.User, *model.TokensPair, error) {
	if emailPattern.MatchString(input.Email) == false {
		return nil, nil, apperror.Validation("неверный формат email")
	}
	if input.Name == "" {
		return nil, nil, apperror.Validation("имя обязательно")
	}
	if err := security.ValidatePassword(input.Password); err != nil {
		return nil, nil, apperror.Validation(err.Error())
	}

	exists, err := service.UserRepository.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, apperror.Internal("ошибка проверки email", err)
	}
	if exists {
		return nil, nil, apperror.Conflict("пользователь с таким email уже существует")
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, nil, apperror.Internal("ошибка хэширования пароля", err)
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: passwordHash,
		Name:         input.Name,
		PhoneNumber:  input.PhoneNumber,
		ChurchName:   input.ChurchName,
		Position:     input.Position,
		UserType:     input.UserType,
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}

	if err := service.UserRepository.Save(ctx, user); err != nil {
		return nil, nil, apperror.Internal("не удалось сохранить пользователя", err)
	}

	tokensPair, err := service.issueTokens(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	return user, tokensPair, nil
}

func (service *AuthenticationService) Login(ctx context.Context, email string, password string, userAgent string, ipAddress string) (*model.User, *model.TokensPair, error) {
	user, err := service.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperror.Internal("ошибка поиска пользователя", err)
	}
	if user == nil {
		return nil, nil, apperror.Authentication(genericAuthMessage, fmt.Errorf("пользователь %s не найден", email))
	}
	if user.IsActive() == false {
		return nil, nil, apperror.Authentication(genericAuthMessage, fmt.Errorf("пользователь %s не активен", email))
	}

	if err := security.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperror.Authentication(genericAuthMessage, fmt.Errorf("неверный пароль: %w", err))
	}

	tokensPair, err := service.issueTokens(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	return user, tokensPair, nil
}

// Refresh выполняет ротацию: предъявленный токен сначала атомарно
// отзывается и только потом выпускается новая пара. Если отзыв не затронул
// строку, токен уже успел использовать кто-то другой — отказ.
func (service *AuthenticationService) Refresh(ctx context.Context, refreshToken string, userAgent string, ipAddress string) (*model.User, *model.TokensPair, error) {
	claims, err := service.JWTService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperror.Authentication("невалидный refresh токен", err)
	}

	tokenHash := service.JWTService.HashToken(refreshToken)

	storedToken, err := service.RefreshTokenRepository.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, nil, apperror.Internal("ошибка поиска рефреш токена", err)
	}
	if storedToken == nil {
		return nil, nil, apperror.Authentication("невалидный refresh токен", fmt.Errorf("токен не найден в БД"))
	}
	if storedToken.Revoked() {
		return nil, nil, apperror.Authentication("невалидный refresh токен", fmt.Errorf("токен отозван"))
	}
	if storedToken.Expired(time.Now()) {
		return nil, nil, apperror.Authentication("невалидный refresh токен", fmt.Errorf("токен просрочен"))
	}

	revoked, err := service.RefreshTokenRepository.Revoke(ctx, tokenHash, reasonRotation)
	if err != nil {
		return nil, nil, apperror.Internal("не удалось отозвать рефреш токен", err)
	}
	if revoked == false {
		return nil, nil, apperror.Authentication("невалидный refresh токен", fmt.Errorf("токен уже был использован"))
	}

	user, err := service.UserRepository.FindByUUID(ctx, claims.UserUUID)
	if err != nil {
		return nil, nil, apperror.Internal("ошибка поиска пользователя", err)
	}
	if user == nil || user.IsActive() == false {
		return nil, nil, apperror.Authentication("невалидный refresh токен", fmt.Errorf("пользователь не найден или не активен"))
	}

	if storedToken.IpAddress != ipAddress && service.Config.Webhook.URL != "" {
		log.Printf("обнаружено обновление токена с нового IP, отправка webhook")
		go func(webhookURL string, userUUID string, newIP string, oldIP string) {
			if err := notifier.NotifyWebhook(webhookURL, userUUID, newIP, oldIP); err != nil {
				log.Printf("ошибка отправки webhook: %v", err)
			}
		}(service.Config.Webhook.URL, user.UUID, ipAddress, storedToken.IpAddress)
	}

	tokensPair, err := service.issueTokens(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	return user, tokensPair, nil
}

// Logout идемпотентен: повторный выход с уже отозванным
// или неизвестным токеном не считается ошибкой.
func (service *AuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	tokenHash := service.JWTService.HashToken(refreshToken)

	_, err := service.RefreshTokenRepository.Revoke(ctx, tokenHash, reasonLogout)
	if err != nil {
		return apperror.Internal("не удалось отозвать рефреш токен", err)
	}

	return nil
}

func (service *AuthenticationService) CurrentUser(ctx context.Context, userUUID string) (*model.User, error) {
	user, err := service.UserRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		return nil, apperror.Internal("ошибка поиска пользователя", err)
	}
	if user == nil {
		return nil, apperror.Authentication("не авторизован", fmt.Errorf("пользователь %s не найден", userUUID))
	}

	return user, nil
}

func (service *AuthenticationService) issueTokens(ctx context.Context, user *model.User, userAgent string, ipAddress string) (*model.TokensPair, error) {
	tokensPair, refreshRecord, err := service.JWTService.GenerateTokenPair(user, userAgent, ipAddress)
	if err != nil {
		return nil, apperror.Internal("ошибка генерации токенов", err)
	}

	if err := service.RefreshTokenRepository.Save(ctx, refreshRecord); err != nil {
		return nil, apperror.Internal("не удалось сохранить рефреш токен", err)
	}

	return tokensPair, nil
}
