package repository

import (
	"CharityFund_Backend/internal"
	"CharityFund_Backend/internal/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type RefreshTokenRepository struct {
	*internal.Database
}

func NewRefreshTokenRepository(database *internal.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

func (repository *RefreshTokenRepository) Save(ctx context.Context, token *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (uuid, user_uuid, token_hash, user_agent, ip_address, expire_at, created_at)
			  VALUES (:uuid, :user_uuid, :token_hash, :user_agent, :ip_address, :expire_at, :created_at)`

	_, err := repository.DB.NamedExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("ошибка вставки данных в БД: %w", err)
	}

	return nil
}

func (repository *RefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	var token model.RefreshToken

	query := `SELECT * FROM refresh_tokens WHERE token_hash = $1`
	err := repository.DB.GetContext(ctx, &token, query, tokenHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &token, nil
}

func (repository *RefreshTokenRepository) FindByUserUUID(ctx context.Context, userUUID string) ([]model.RefreshToken, error) {
	var tokens []model.RefreshToken

	query := `SELECT * FROM refresh_tokens WHERE user_uuid = $1 ORDER BY created_at DESC`
	err := repository.DB.SelectContext(ctx, &tokens, query, userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return tokens, nil
}

// Revoke помечает живой токен отозванным и сообщает, была ли затронута строка.
// Условие revoked_at IS NULL делает отзыв атомарным: из двух конкурентных
// запросов ротации строку получит только один.
func (repository *RefreshTokenRepository) Revoke(ctx context.Context, tokenHash string, reason string) (bool, error) {
	query := `UPDATE refresh_tokens SET revoked_at = NOW(), revoked_reason = $2
			  WHERE token_hash = $1 AND revoked_at IS NULL`

	result, err := repository.DB.ExecContext(ctx, query, tokenHash, reason)
	if err != nil {
		return false, fmt.Errorf("не удалось отозвать рефреш токен: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("не удалось проверить, отозван ли токен: %w", err)
	}

	return rowsAffected > 0, nil
}

func (repository *RefreshTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	query := `DELETE FROM refresh_tokens WHERE token_hash = $1`

	_, err := repository.DB.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("не удалось удалить рефреш токен: %w", err)
	}

	return nil
}

func (repository *RefreshTokenRepository) DeleteByUserUUID(ctx context.Context, userUUID string) error {
	query := `DELETE FROM refresh_tokens WHERE user_uuid = $1`

	_, err := repository.DB.ExecContext(ctx, query, userUUID)
	if err != nil {
		return fmt.Errorf("не удалось удалить рефреш токены пользователя: %w", err)
	}

	return nil
}

// DeleteExpired — сервисная зачистка просроченных токенов.
// Запускается внешним планировщиком, не самим сервисом.
func (repository *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expire_at < NOW()`

	result, err := repository.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить просроченные токены: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("не удалось получить число удаленных строк: %w", err)
	}

	return rowsAffected, nil
}
