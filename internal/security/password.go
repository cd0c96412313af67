package security

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хэширования пароля: %w", err)
	}
	return string(hashedPassword), nil
}

func ComparePassword(passwordHash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
}

// ValidatePassword проверяет парольную политику:
// минимум 8 символов, хотя бы одна буква, цифра и спецсимвол.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("пароль должен содержать не менее %d символов", minPasswordLength)
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if hasLetter == false || hasDigit == false || hasSpecial == false {
		return fmt.Errorf("пароль должен содержать букву, цифру и специальный символ")
	}

	return nil
}
