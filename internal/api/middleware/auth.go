package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/MUA-QuoteService/internal/api/handlers"
)

const adminHeader = "X-Admin-ID"

type contextKey string

const adminIDKey contextKey = "adminID"

// Auth middleware, требующий заголовок администратора
// Сервис живет за внутренним шлюзом, который проставляет заголовок
// после собственной аутентификации; здесь только проверка наличия
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := r.Header.Get(adminHeader)
		if adminID == "" {
			handlers.RespondUnauthorized(w, "требуется идентификатор администратора")
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID извлекает идентификатор администратора из контекста
func GetAdminID(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(adminIDKey).(string)
	return adminID, ok
}
