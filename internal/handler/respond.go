package handler

import (
	"CharityFund_Backend/internal/apperror"
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse содержит безопасное для клиента сообщение об ошибке
// swagger:model
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(writer http.ResponseWriter, statusCode int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(statusCode)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		log.Printf("ошибка записи ответа: %v", err)
	}
}

// writeError пишет полную ошибку в лог, а клиенту отдает только
// безопасное сообщение и статус из таксономии apperror.
func writeError(writer http.ResponseWriter, err error) {
	log.Printf("ошибка обработки запроса: %v", err)
	writeJSON(writer, apperror.HTTPStatus(err), &ErrorResponse{Error: apperror.SafeMessage(err)})
}
