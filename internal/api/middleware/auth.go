package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mirelka/SLN-SchedulingService/internal/api/handlers"
)

// userIDHeader заголовок с идентификатором пользователя
// Аутентификацию выполняет API-гейтвей; сервис доверяет заголовку
const userIDHeader = "X-User-ID"

type userIDKey struct{}

// Auth middleware извлекает идентификатор пользователя из заголовка X-User-ID
// и кладет его в контекст запроса. Запрос без валидного заголовка отклоняется
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает идентификатор пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
