package repository

import (
	"CharityFund_Backend/internal"
	"CharityFund_Backend/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UserRepository struct {
	*internal.Database
}

func NewUserRepository(database *internal.Database) *UserRepository {
	return &UserRepository{database}
}

func (repository *UserRepository) Save(ctx context.Context, user *model.User) error {
	if user.UUID == "" {
		user.UUID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (uuid, email, password_hash, name, phone_number, church_name, position, user_type, role, status, created_at, updated_at)
			  VALUES (:uuid, :email, :password_hash, :name, :phone_number, :church_name, :position, :user_type, :role, :status, :created_at, :updated_at)`

	_, err := repository.DB.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка вставки пользователя: %w", err)
	}

	return nil
}

func (repository *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User

	query := `SELECT * FROM users WHERE email = $1`
	err := repository.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) FindByUUID(ctx context.Context, userUUID string) (*model.User, error) {
	var user model.User

	query := `SELECT * FROM users WHERE uuid = $1`
	err := repository.DB.GetContext(ctx, &user, query, userUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &user, nil
}

func (repository *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	err := repository.DB.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return exists, nil
}

func (repository *UserRepository) UpdateStatus(ctx context.Context, userUUID string, status string) error {
	query := `UPDATE users SET status = $2, updated_at = NOW() WHERE uuid = $1`

	result, err := repository.DB.ExecContext(ctx, query, userUUID, status)
	if err != nil {
		return fmt.Errorf("не удалось обновить статус пользователя: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось проверить, обновлен ли статус: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("пользователь %s не найден", userUUID)
	}

	return nil
}
