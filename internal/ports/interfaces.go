package ports

import (
	"CharityFund_Backend/internal/model"
	"CharityFund_Backend/internal/security"
	"context"
)

type UserRepositoryInterface interface {
	Save(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateStatus(ctx context.Context, uuid string, status string) error
}

type RefreshTokenRepositoryInterface interface {
	Save(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	FindByUserUUID(ctx context.Context, userUUID string) ([]model.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string, reason string) (bool, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserUUID(ctx context.Context, userUUID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type JWTServiceInterface interface {
	GenerateTokenPair(user *model.User, userAgent string, ipAddress string) (*model.TokensPair, *model.RefreshToken, error)
	VerifyAccessToken(tokenString string) (*security.Claims, error)
	VerifyRefreshToken(tokenString string) (*security.Claims, error)
	HashToken(tokenString string) string
}

type ConsultationRepositoryInterface interface {
	Save(ctx context.Context, consultation *model.Consultation) error
	FindByUUID(ctx context.Context, uuid string) (*model.Consultation, error)
	FindAll(ctx context.Context) ([]model.Consultation, error)
	UpdateStatus(ctx context.Context, uuid string, status string) (bool, error)
}

// RegisterInput — данные регистрации, уже извлеченные из HTTP-запроса.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber *string
	ChurchName  *string
	Position    *string
	UserType    *string
}

type AuthenticationServiceInterface interface {
	Register(ctx context.Context, input *RegisterInput, userAgent string, ipAddress string) (*model.User, *model.TokensPair, error)
	Login(ctx context.Context, email string, password string, userAgent string, ipAddress string) (*model.User, *model.TokensPair, error)
	Refresh(ctx context.Context, refreshToken string, userAgent string, ipAddress string) (*model.User, *model.TokensPair, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, userUUID string) (*model.User, error)
}

// ConsultationInput — новое обращение с публичной формы.
type ConsultationInput struct {
	Name        string
	Email       string
	PhoneNumber *string
	Subject     string
	Message     string
}

type ConsultationServiceInterface interface {
	Submit(ctx context.Context, input *ConsultationInput) (*model.Consultation, error)
	List(ctx context.Context) ([]model.Consultation, error)
	Get(ctx context.Context, uuid string) (*model.Consultation, error)
	UpdateStatus(ctx context.Context, uuid string, status string) (*model.Consultation, error)
}
