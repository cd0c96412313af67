package handler

import (
	"CharityFund_Backend/internal/ports"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type ConsultationHandler struct {
	ConsultationService ports.ConsultationServiceInterface
}

func NewConsultationHandler(consultationService ports.ConsultationServiceInterface) *ConsultationHandler {
	return &ConsultationHandler{ConsultationService: consultationService}
}

// ConsultationRequest содержит данные публичной формы обращения
// swagger:model
type ConsultationRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Subject     string  `json:"subject"`
	Message     string  `json:"message"`
}

// ConsultationStatusRequest содержит новый статус обращения
// swagger:model
type ConsultationStatusRequest struct {
	Status string `json:"status"`
}

// Submit принимает обращение с публичной формы
// @Summary Новое обращение
// @Tags Consultations
// @Accept json
// @Produce json
// @Param request body ConsultationRequest true "данные обращения"
// @Success 201 {object} model.Consultation
// @Failure 400 {object} ErrorResponse "ошибка валидации"
// @Router /consultations [post]
func (handler *ConsultationHandler) Submit(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var consultationRequest ConsultationRequest
	if err := json.NewDecoder(request.Body).Decode(&consultationRequest); err != nil {
		writeJSON(writer, http.StatusBadRequest, &ErrorResponse{Error: "неверный json"})
		return
	}

	input := &ports.ConsultationInput{
		Name:        consultationRequest.Name,
		Email:       consultationRequest.Email,
		PhoneNumber: consultationRequest.PhoneNumber,
		Subject:     consultationRequest.Subject,
		Message:     consultationRequest.Message,
	}

	consultation, err := handler.ConsultationService.Submit(ctx, input)
	if err != nil {
		writeError(writer, err)
		return
	}

	writeJSON(writer, http.StatusCreated, consultation)
}

// List возвращает все обращения
// @Summary Список обращений
// @Tags Consultations
// @Produce json
// @Success 200 {array} model.Consultation
// @Security ApiKeyAuth
// @Router /consultations [get]
func (handler *ConsultationHandler) List(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	consultations, err := handler.ConsultationService.List(ctx)
	if err != nil {
		writeError(writer, err)
		return
	}

	writeJSON(writer, http.StatusOK, consultations)
}

// Get возвращает обращение по UUID
// @Summary Обращение по UUID
// @Tags Consultations
// @Produce json
// @Param uuid path string true "UUID обращения"
// @Success 200 {object} model.Consultation
// @Failure 404 {object} ErrorResponse "обращение не найдено"
// @Security ApiKeyAuth
// @Router /consultations/{uuid} [get]
func (handler *ConsultationHandler) Get(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	consultation, err := handler.ConsultationService.Get(ctx, chi.URLParam(request, "uuid"))
	if err != nil {
		writeError(writer, err)
		return
	}

	writeJSON(writer, http.StatusOK, consultation)
}

// UpdateStatus меняет статус обращения
// @Summary Смена статуса обращения
// @Tags Consultations
// @Accept json
// @Produce json
// @Param uuid path string true "UUID обращения"
// @Param request body ConsultationStatusRequest true "новый статус"
// @Success 200 {object} model.Consultation
// @Failure 400 {object} ErrorResponse "неизвестный статус"
// @Failure 404 {object} ErrorResponse "обращение не найдено"
// @Security ApiKeyAuth
// @Router /consultations/{uuid}/status [patch]
func (handler *ConsultationHandler) UpdateStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), 3*time.Second)
	defer cancel()

	var statusRequest ConsultationStatusRequest
	if err := json.NewDecoder(request.Body).Decode(&statusRequest); err != nil {
		writeJSON(writer, http.StatusBadRequest, &ErrorResponse{Error: "неверный json"})
		return
	}

	consultation, err := handler.ConsultationService.UpdateStatus(ctx, chi.URLParam(request, "uuid"), statusRequest.Status)
	if err != nil {
		writeError(writer, err)
		return
	}

	writeJSON(writer, http.StatusOK, consultation)
}
