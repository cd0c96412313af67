package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindConflict
	KindNotFound
)

// Error — типизированная ошибка уровня use case.
// Message безопасно отдавать клиенту, Err пишется только в лог.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func Authentication(message string, err error) *Error {
	return &Error{Kind: KindAuthentication, Message: message, Err: err}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// HTTPStatus возвращает статус код для ошибки.
// Любая нетипизированная ошибка считается внутренней.
func HTTPStatus(err error) int {
	var appError *Error
	if errors.As(err, &appError) == false {
		return http.StatusInternalServerError
	}

	switch appError.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// SafeMessage возвращает сообщение, которое можно отдать клиенту.
func SafeMessage(err error) string {
	var appError *Error
	if errors.As(err, &appError) == false {
		return "внутренняя ошибка сервера"
	}
	if appError.Kind == KindInternal {
		return "внутренняя ошибка сервера"
	}
	return appError.Message
}
