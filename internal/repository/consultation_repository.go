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

type ConsultationRepository struct {
	*internal.Database
}

func NewConsultationRepository(database *internal.Database) *ConsultationRepository {
	return &ConsultationRepository{database}
}

func (repository *ConsultationRepository) Save(ctx context.Context, consultation *model.Consultation) error {
	if consultation.UUID == "" {
		consultation.UUID = uuid.New().String()
	}
	now := time.Now()
	consultation.CreatedAt = now
	consultation.UpdatedAt = now

	query := `INSERT INTO consultations (uuid, name, email, phone_number, subject, message, status, created_at, updated_at)
			  VALUES (:uuid, :name, :email, :phone_number, :subject, :message, :status, :created_at, :updated_at)`

	_, err := repository.DB.NamedExecContext(ctx, query, consultation)
	if err != nil {
		return fmt.Errorf("ошибка вставки обращения: %w", err)
	}

	return nil
}

func (repository *ConsultationRepository) FindByUUID(ctx context.Context, consultationUUID string) (*model.Consultation, error) {
	var consultation model.Consultation

	query := `SELECT * FROM consultations WHERE uuid = $1`
	err := repository.DB.GetContext(ctx, &consultation, query, consultationUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return &consultation, nil
}

func (repository *ConsultationRepository) FindAll(ctx context.Context) ([]model.Consultation, error) {
	var consultations []model.Consultation

	query := `SELECT * FROM consultations ORDER BY created_at DESC`
	err := repository.DB.SelectContext(ctx, &consultations, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return consultations, nil
}

func (repository *ConsultationRepository) UpdateStatus(ctx context.Context, consultationUUID string, status string) (bool, error) {
	query := `UPDATE consultations SET status = $2, updated_at = NOW() WHERE uuid = $1`

	result, err := repository.DB.ExecContext(ctx, query, consultationUUID, status)
	if err != nil {
		return false, fmt.Errorf("не удалось обновить статус обращения: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("не удалось проверить, обновлен ли статус: %w", err)
	}

	return rowsAffected > 0, nil
}
