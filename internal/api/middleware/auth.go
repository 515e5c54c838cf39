package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-StallCalendar/internal/api/handlers"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен сессии"
)

type contextKey string

const vendorIDKey contextKey = "vendorID"

// TokenParser проверяет токен сессии и возвращает ID продавца
type TokenParser interface {
	Parse(token string) (string, error)
}

// Auth проверяет токен сессии и кладет ID продавца в контекст
// Токен передается в заголовке Authorization: Bearer или параметром ?token= (websocket)
// Права администратора здесь не проверяются: их перечитывают из записи продавца
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			vendorID, err := tokens.Parse(token)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithVendorID(r.Context(), vendorID)))
		})
	}
}

// WithVendorID кладет ID продавца в контекст
func WithVendorID(ctx context.Context, vendorID string) context.Context {
	return context.WithValue(ctx, vendorIDKey, vendorID)
}

// GetVendorID извлекает ID продавца из контекста
func GetVendorID(ctx context.Context) (string, bool) {
	vendorID, ok := ctx.Value(vendorIDKey).(string)
	return vendorID, ok && vendorID != ""
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return strings.TrimSpace(r.URL.Query().Get("token"))
}
