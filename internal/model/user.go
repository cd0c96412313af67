package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// User представляет учетную запись пользователя фонда.
// Пользователь никогда не удаляется физически, только меняется статус.
// swagger:model
type User struct {
	UUID         string    `db:"uuid" json:"uuid"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	PhoneNumber  *string   `db:"phone_number" json:"phoneNumber,omitempty"`
	ChurchName   *string   `db:"church_name" json:"churchName,omitempty"`
	Position     *string   `db:"position" json:"position,omitempty"`
	UserType     *string   `db:"user_type" json:"userType,omitempty"`
	Role         string    `db:"role" json:"role"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

func (user *User) IsActive() bool {
	return user.Status == StatusActive
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
