package service

import (
	"CharityFund_Backend/internal/apperror"
	"CharityFund_Backend/internal/model"
	"CharityFund_Backend/internal/ports"
	"context"
	"fmt"
)

type ConsultationService struct {
	ConsultationRepository ports.ConsultationRepositoryInterface
}

func NewConsultationService(consultationRepository ports.ConsultationRepositoryInterface) *ConsultationService {
	return &ConsultationService{ConsultationRepository: consultationRepository}
}

func (service *ConsultationService) Submit(ctx context.Context, input *ports.ConsultationInput) (*model.Consultation, error) {
	if input.Name == "" {
		return nil, apperror.Validation("имя обязательно")
	}
	if emailPattern.MatchString(input.Email) == false {
		return nil, apperror.Validation("неверный формат email")
	}
	if input.Subject == "" || input.Message == "" {
		return nil, apperror.Validation("тема и текст обращения обязательны")
	}

	consultation := &model.Consultation{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Subject:     input.Subject,
		Message:     input.Message,
		Status:      model.ConsultationPending,
	}

	if err := service.ConsultationRepository.Save(ctx, consultation); err != nil {
		return nil, apperror.Internal("не удалось сохранить обращение", err)
	}

	return consultation, nil
}

func (service *ConsultationService) List(ctx context.Context) ([]model.Consultation, error) {
	consultations, err := service.ConsultationRepository.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal("не удалось получить список обращений", err)
	}

	return consultations, nil
}

func (service *ConsultationService) Get(ctx context.Context, consultationUUID string) (*model.Consultation, error) {
	consultation, err := service.ConsultationRepository.FindByUUID(ctx, consultationUUID)
	if err != nil {
		return nil, apperror.Internal("ошибка поиска обращения", err)
	}
	if consultation == nil {
		return nil, apperror.NotFound("обращение не найдено")
	}

	return consultation, nil
}

func (service *ConsultationService) UpdateStatus(ctx context.Context, consultationUUID string, status string) (*model.Consultation, error) {
	if model.ValidConsultationStatus(status) == false {
		return nil, apperror.Validation(fmt.Sprintf("неизвестный статус: %s", status))
	}

	updated, err := service.ConsultationRepository.UpdateStatus(ctx, consultationUUID, status)
	if err != nil {
		return nil, apperror.Internal("не удалось обновить статус обращения", err)
	}
	if updated == false {
		return nil, apperror.NotFound("обращение не найдено")
	}

	return service.Get(ctx, consultationUUID)
}
