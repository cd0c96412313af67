package model

import "time"

const (
	ConsultationPending    = "PENDING"
	ConsultationInProgress = "IN_PROGRESS"
	ConsultationAnswered   = "ANSWERED"
)

// Consultation — обращение за консультацией с публичной части сайта.
// swagger:model
type Consultation struct {
	UUID        string    `db:"uuid" json:"uuid"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber *string   `db:"phone_number" json:"phoneNumber,omitempty"`
	Subject     string    `db:"subject" json:"subject"`
	Message     string    `db:"message" json:"message"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

func ValidConsultationStatus(status string) bool {
	switch status {
	case ConsultationPending, ConsultationInProgress, ConsultationAnswered:
		return true
	}
	return false
}
