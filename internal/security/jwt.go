package security

import (
	"CharityFund_Backend/internal/model"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const LoginTypeEmail = "EMAIL"

// Claims — строго типизированная полезная нагрузка токена.
// Декодирование отклоняет токены без обязательных полей.
type Claims struct {
	UserUUID  string `json:"user_uuid"`
	Email     string `json:"email"`
	LoginType string `json:"login_type"`
	jwt.RegisteredClaims
}

// JWTService подписывает и проверяет access/refresh токены.
// Access токен короткоживущий и нигде не хранится; refresh токен
// долгоживущий, его SHA-256 хэш сохраняется в БД и может быть отозван.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewJWTService(accessSecret string, refreshSecret string, issuer string, accessTTLStr string, refreshTTLStr string) (*JWTService, error) {
	accessTTL, err := time.ParseDuration(accessTTLStr)
	if err != nil {
		return nil, fmt.Errorf("неверный access_token_ttl: %w", err)
	}
	refreshTTL, err := time.ParseDuration(refreshTTLStr)
	if err != nil {
		return nil, fmt.Errorf("неверный refresh_token_ttl: %w", err)
	}

	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// GenerateTokenPair создает пару токенов и запись refresh токена для БД.
// Сырой refresh токен присутствует только в возвращаемой паре.
func (service *JWTService) GenerateTokenPair(user *model.User, userAgent string, ipAddress string) (*model.TokensPair, *model.RefreshToken, error) {
	now := time.Now()
	refreshUUID := uuid.New().String()

	accessToken, err := service.signToken(user, refreshUUID, now, service.accessTTL, service.accessSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка подписи access токена: %w", err)
	}

	refreshToken, err := service.signToken(user, refreshUUID, now, service.refreshTTL, service.refreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка подписи refresh токена: %w", err)
	}

	refreshRecord := &model.RefreshToken{
		UUID:      refreshUUID,
		UserUUID:  user.UUID,
		TokenHash: service.HashToken(refreshToken),
		UserAgent: userAgent,
		IpAddress: ipAddress,
		ExpireAt:  now.Add(service.refreshTTL),
		CreatedAt: now,
	}

	tokensPair := &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}

	return tokensPair, refreshRecord, nil
}

func (service *JWTService) signToken(user *model.User, tokenUUID string, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := Claims{
		UserUUID:  user.UUID,
		Email:     user.Email,
		LoginType: LoginTypeEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenUUID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    service.issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return jwtToken.SignedString(secret)
}

func (service *JWTService) VerifyAccessToken(tokenString string) (*Claims, error) {
	return validateJWT(tokenString, service.accessSecret)
}

func (service *JWTService) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return validateJWT(tokenString, service.refreshSecret)
}

// HashToken — детерминированный SHA-256 дайджест сырого токена.
// Позволяет искать запись в БД по сырому значению, не храня его.
func (service *JWTService) HashToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}

func validateJWT(jwtTokenStr string, secretKey []byte) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return secretKey, nil
	})

	if err != nil || jwtToken.Valid == false {
		return nil, fmt.Errorf("невалидный токен: %w", err)
	}
	if claims.UserUUID == "" || claims.Email == "" || claims.ID == "" {
		return nil, fmt.Errorf("токен не содержит обязательных полей")
	}

	return claims, nil
}
