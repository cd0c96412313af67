package handler

import (
	"CharityFund_Backend/internal/ports"
	"CharityFund_Backend/internal/security"
	"net/http"
)

// RequireAdmin пускает дальше только пользователей с ролью ADMIN.
// Роль не зашита в токен, поэтому проверяется по БД: отзыв прав
// действует сразу, а не после истечения access токена.
func RequireAdmin(userRepository ports.UserRepositoryInterface) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, ok := security.ClaimsFromContext(request.Context())
			if ok == false {
				writeJSON(writer, http.StatusUnauthorized, &ErrorResponse{Error: "не авторизован"})
				return
			}

			user, err := userRepository.FindByUUID(request.Context(), claims.UserUUID)
			if err != nil {
				writeError(writer, err)
				return
			}
			if user == nil || user.IsActive() == false || user.IsAdmin() == false {
				writeJSON(writer, http.StatusForbidden, &ErrorResponse{Error: "доступ запрещен"})
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
