package service

import (
	"CharityFund_Backend/config"
	"CharityFund_Backend/internal/apperror"
	"CharityFund_Backend/internal/model"
	"CharityFund_Backend/internal/ports"
	"CharityFund_Backend/internal/security"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

type MockJWTService struct {
	mock.Mock
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Issuer:          "test",
			AccessTokenTTL:  "15m",
			RefreshTokenTTL: "168h",
		},
		Webhook: config.WebhookConfig{
			URL: "",
		},
	}
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, uuid string, status string) error {
	return m.Called(ctx, uuid, status).Error(0)
}

func (m *MockRefreshTokenRepository) Save(ctx context.Context, token *model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	token, _ := args.Get(0).(*model.RefreshToken)
	return token, args.Error(1)
}

func (m *MockRefreshTokenRepository) FindByUserUUID(ctx context.Context, userUUID string) ([]model.RefreshToken, error) {
	args := m.Called(ctx, userUUID)
	tokens, _ := args.Get(0).([]model.RefreshToken)
	return tokens, args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, reason string) (bool, error) {
	args := m.Called(ctx, tokenHash, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteByUserUUID(ctx context.Context, userUUID string) error {
	return m.Called(ctx, userUUID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJWTService) GenerateTokenPair(user *model.User, userAgent string, ipAddress string) (*model.TokensPair, *model.RefreshToken, error) {
	args := m.Called(user, userAgent, ipAddress)
	pair, _ := args.Get(0).(*model.TokensPair)
	record, _ := args.Get(1).(*model.RefreshToken)
	return pair, record, args.Error(2)
}

func (m *MockJWTService) VerifyAccessToken(tokenString string) (*security.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*security.Claims)
	return claims, args.Error(1)
}

func (m *MockJWTService) VerifyRefreshToken(tokenString string) (*security.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*security.Claims)
	return claims, args.Error(1)
}

func (m *MockJWTService) HashToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}

func newAuthService(userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository, jwtService *MockJWTService) *AuthenticationService {
	return &AuthenticationService{
		UserRepository:         userRepo,
		RefreshTokenRepository: tokenRepo,
		JWTService:             jwtService,
		Config:                 testConfig(),
	}
}

func activeUser(passwordHash string) *model.User {
	return &model.User{
		UUID:         "user-uuid",
		Email:        "a@x.com",
		PasswordHash: passwordHash,
		Name:         "Тест",
		Role:         model.RoleUser,
		Status:       model.StatusActive,
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to generate bcrypt hash: %v", err)
	}
	return string(hashedBytes)
}

// 1
func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(userRepo, tokenRepo, jwtService)

	user := activeUser(hashPassword(t, "Passw0rd!"))

	userRepo.On("FindByEmail", ctx, "a@x.com").Return(user, nil)
	jwtService.On("GenerateTokenPair", user, "agent", "1.2.3.4").Return(
		&model.TokensPair{AccessToken: "access", RefreshToken: "refresh"},
		&model.RefreshToken{UUID: "refresh-uuid"},
		nil,
	)
	tokenRepo.On("Save", ctx, mock.Anything).Return(nil)

	loggedIn, tokens, err := authService.Login(ctx, "a@x.com", "Passw0rd!", "agent", "1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, user.UUID, loggedIn.UUID)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)
}

// 2
func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockRefreshTokenRepository), new(MockJWTService))

	userRepo.On("FindByEmail", ctx, "a@x.com").Return(activeUser(hashPassword(t, "Passw0rd!")), nil)

	_, _, err := authService.Login(ctx, "a@x.com", "wrong-password", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, "неверный email или пароль", apperror.SafeMessage(err))
}

// 3
func TestLogin_UnknownEmail_SameGenericMessage(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockRefreshTokenRepository), new(MockJWTService))

	userRepo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, nil)

	_, _, err := authService.Login(ctx, "nobody@x.com", "Passw0rd!", "agent", "1.2.3.4")
	assert.Error(t, err)
	// текст совпадает с ошибкой неверного пароля, перебор email невозможен
	assert.Equal(t, "неверный email или пароль", apperror.SafeMessage(err))
}

// 4
func TestLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockRefreshTokenRepository), new(MockJWTService))

	user := activeUser(hashPassword(t, "Passw0rd!"))
	user.Status = model.StatusInactive
	userRepo.On("FindByEmail", ctx, "a@x.com").Return(user, nil)

	_, _, err := authService.Login(ctx, "a@x.com", "Passw0rd!", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, "неверный email или пароль", apperror.SafeMessage(err))
}

// 5
func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	authService := newAuthService(userRepo, new(MockRefreshTokenRepository), new(MockJWTService))

	userRepo.On("ExistsByEmail", ctx, "a@x.com").Return(true, nil)

	input := &ports.RegisterInput{Email: "a@x.com", Password: "Passw0rd!", Name: "Тест"}
	_, _, err := authService.Register(ctx, input, "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, 409, apperror.HTTPStatus(err))
}

// 6
func TestRegister_WeakPassword(t *testing.T) {
	ctx := context.Background()
	authService := newAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), new(MockJWTService))

	input := &ports.RegisterInput{Email: "a@x.com", Password: "password", Name: "Тест"}
	_, _, err := authService.Register(ctx, input, "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, 400, apperror.HTTPStatus(err))
}

// 7
func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(userRepo, tokenRepo, jwtService)

	userRepo.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
	userRepo.On("Save", ctx, mock.Anything).Return(nil)
	jwtService.On("GenerateTokenPair", mock.Anything, "agent", "1.2.3.4").Return(
		&model.TokensPair{AccessToken: "access", RefreshToken: "refresh"},
		&model.RefreshToken{UUID: "refresh-uuid"},
		nil,
	)
	tokenRepo.On("Save", ctx, mock.Anything).Return(nil)

	user, tokens, err := authService.Register(ctx, &ports.RegisterInput{Email: "a@x.com", Password: "Passw0rd!", Name: "Тест"}, "agent", "1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, model.StatusActive, user.Status)
	assert.NotEqual(t, "Passw0rd!", user.PasswordHash)
	assert.Equal(t, "access", tokens.AccessToken)
	userRepo.AssertCalled(t, "Save", ctx, mock.Anything)
}

// 8
func TestRefresh_InvalidSignature(t *testing.T) {
	ctx := context.Background()
	jwtService := new(MockJWTService)
	authService := newAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), jwtService)

	jwtService.On("VerifyRefreshToken", "bad-token").Return(nil, fmt.Errorf("невалидный токен"))

	_, _, err := authService.Refresh(ctx, "bad-token", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, 401, apperror.HTTPStatus(err))
}

// 9
func TestRefresh_TokenNotFound(t *testing.T) {
	ctx := context.Background()
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(new(MockUserRepository), tokenRepo, jwtService)

	jwtService.On("VerifyRefreshToken", "refresh").Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	tokenRepo.On("FindByTokenHash", ctx, jwtService.HashToken("refresh")).Return(nil, nil)

	_, _, err := authService.Refresh(ctx, "refresh", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, 401, apperror.HTTPStatus(err))
}

// 10
func TestRefresh_RevokedToken(t *testing.T) {
	ctx := context.Background()
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(new(MockUserRepository), tokenRepo, jwtService)

	revokedAt := time.Now().Add(-time.Minute)
	storedToken := &model.RefreshToken{
		UUID:      "refresh-uuid",
		UserUUID:  "user-uuid",
		ExpireAt:  time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}

	jwtService.On("VerifyRefreshToken", "refresh").Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	tokenRepo.On("FindByTokenHash", ctx, jwtService.HashToken("refresh")).Return(storedToken, nil)

	_, _, err := authService.Refresh(ctx, "refresh", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "токен отозван")
}

// 11
func TestRefresh_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(new(MockUserRepository), tokenRepo, jwtService)

	storedToken := &model.RefreshToken{
		UUID:     "refresh-uuid",
		UserUUID: "user-uuid",
		ExpireAt: time.Now().Add(-time.Hour), // уже истёк, но не отозван
	}

	jwtService.On("VerifyRefreshToken", "refresh").Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	tokenRepo.On("FindByTokenHash", ctx, jwtService.HashToken("refresh")).Return(storedToken, nil)

	_, _, err := authService.Refresh(ctx, "refresh", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "токен просрочен")
}

// 12
func TestRefresh_ConcurrentReplayLosesRace(t *testing.T) {
	ctx := context.Background()
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(new(MockUserRepository), tokenRepo, jwtService)

	storedToken := &model.RefreshToken{
		UUID:     "refresh-uuid",
		UserUUID: "user-uuid",
		ExpireAt: time.Now().Add(time.Hour),
	}

	jwtService.On("VerifyRefreshToken", "refresh").Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	tokenRepo.On("FindByTokenHash", ctx, jwtService.HashToken("refresh")).Return(storedToken, nil)
	// конкурентный запрос успел отозвать строку первым
	tokenRepo.On("Revoke", ctx, jwtService.HashToken("refresh"), "ротация токена").Return(false, nil)

	_, _, err := authService.Refresh(ctx, "refresh", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, 401, apperror.HTTPStatus(err))
	assert.Contains(t, err.Error(), "токен уже был использован")
}

// 13
func TestRefresh_Success_RotatesOldToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(userRepo, tokenRepo, jwtService)

	user := activeUser("hash")
	storedToken := &model.RefreshToken{
		UUID:      "refresh-uuid",
		UserUUID:  "user-uuid",
		ExpireAt:  time.Now().Add(time.Hour),
		IpAddress: "1.2.3.4",
	}

	jwtService.On("VerifyRefreshToken", "refresh").Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	tokenRepo.On("FindByTokenHash", ctx, jwtService.HashToken("refresh")).Return(storedToken, nil)
	tokenRepo.On("Revoke", ctx, jwtService.HashToken("refresh"), "ротация токена").Return(true, nil)
	userRepo.On("FindByUUID", ctx, "user-uuid").Return(user, nil)
	jwtService.On("GenerateTokenPair", user, "agent", "1.2.3.4").Return(
		&model.TokensPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
		&model.RefreshToken{UUID: "new-refresh-uuid"},
		nil,
	)
	tokenRepo.On("Save", ctx, mock.Anything).Return(nil)

	_, tokens, err := authService.Refresh(ctx, "refresh", "agent", "1.2.3.4")
	assert.NoError(t, err)
	assert.Equal(t, "new-access", tokens.AccessToken)
	assert.Equal(t, "new-refresh", tokens.RefreshToken)
	// старый токен обязан быть отозван до выпуска нового
	tokenRepo.AssertCalled(t, "Revoke", ctx, jwtService.HashToken("refresh"), "ротация токена")
}

// 14
func TestRefresh_UserNoLongerExists(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(userRepo, tokenRepo, jwtService)

	storedToken := &model.RefreshToken{
		UUID:     "refresh-uuid",
		UserUUID: "user-uuid",
		ExpireAt: time.Now().Add(time.Hour),
	}

	jwtService.On("VerifyRefreshToken", "refresh").Return(&security.Claims{UserUUID: "user-uuid", Email: "a@x.com"}, nil)
	tokenRepo.On("FindByTokenHash", ctx, jwtService.HashToken("refresh")).Return(storedToken, nil)
	tokenRepo.On("Revoke", ctx, jwtService.HashToken("refresh"), "ротация токена").Return(true, nil)
	userRepo.On("FindByUUID", ctx, "user-uuid").Return(nil, nil)

	_, _, err := authService.Refresh(ctx, "refresh", "agent", "1.2.3.4")
	assert.Error(t, err)
	assert.Equal(t, 401, apperror.HTTPStatus(err))
}

// 15
func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	tokenRepo := new(MockRefreshTokenRepository)
	jwtService := new(MockJWTService)
	authService := newAuthService(new(MockUserRepository), tokenRepo, jwtService)

	// токен уже отозван: Revoke не затрагивает строк, но это не ошибка
	tokenRepo.On("Revoke", ctx, jwtService.HashToken("refresh"), "выход пользователя").Return(false, nil)

	assert.NoError(t, authService.Logout(ctx, "refresh"))
	assert.NoError(t, authService.Logout(ctx, "refresh"))
}

// 16
func TestLogout_EmptyToken(t *testing.T) {
	ctx := context.Background()
	authService := newAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), new(MockJWTService))

	assert.NoError(t, authService.Logout(ctx, ""))
}
