package model

import "time"

// RefreshToken хранится в БД только в виде SHA-256 хэша.
// Сырой токен отдается клиенту один раз и никогда не сохраняется.
type RefreshToken struct {
	UUID          string     `db:"uuid"`
	UserUUID      string     `db:"user_uuid"`
	TokenHash     string     `db:"token_hash"`
	UserAgent     string     `db:"user_agent"`
	IpAddress     string     `db:"ip_address"`
	ExpireAt      time.Time  `db:"expire_at"`
	RevokedAt     *time.Time `db:"revoked_at"`
	RevokedReason *string    `db:"revoked_reason"`
	CreatedAt     time.Time  `db:"created_at"`
}

// Revoked — токен отозван (logout, ротация, инцидент).
func (token *RefreshToken) Revoked() bool {
	return token.RevokedAt != nil
}

func (token *RefreshToken) Expired(now time.Time) bool {
	return now.After(token.ExpireAt)
}

// Alive — токен валиден: не отозван и срок действия не истек.
func (token *RefreshToken) Alive(now time.Time) bool {
	return token.Revoked() == false && token.Expired(now) == false
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh токен (для получения новой пары)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}
