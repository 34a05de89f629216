// Package middleware содержит HTTP middleware:
// разбор личности вызывающего из заголовков шлюза и сбор метрик.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/avdk/SBM-ReservationService/internal/api/handlers"
	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// Заголовки, проставляемые платформенным шлюзом. Сервис доверяет им
// безусловно: аутентификация и выдача прав происходят до него.
const (
	HeaderUserID      = "X-User-ID"
	HeaderPermissions = "X-User-Permissions"
	HeaderGuestKey    = "X-Guest-Key"
)

type contextKey struct{}

var authContextKey contextKey

// Identity разбирает заголовки шлюза в domain.AuthContext и кладёт его
// в контекст запроса. Ничего не требует: анонимные вызовы проходят
// с пустой личностью, гостевой ключ сохраняется для работы с черновиками.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guestKey := strings.TrimSpace(r.Header.Get(HeaderGuestKey))
		if len(guestKey) > domain.MaxGuestKeyLength {
			// Ключ произвольной длины в хранилище не попадает
			guestKey = ""
		}

		auth := domain.AuthContext{GuestKey: guestKey}

		if raw := r.Header.Get(HeaderUserID); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				auth.UserID = id
			}
		}

		if raw := r.Header.Get(HeaderPermissions); raw != "" {
			for _, p := range strings.Split(raw, ",") {
				p = strings.TrimSpace(p)
				if p != "" {
					auth.Permissions = append(auth.Permissions, domain.Permission(p))
				}
			}
		}

		ctx := context.WithValue(r.Context(), authContextKey, auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth требует аутентифицированного вызывающего. Ставится на защищённые
// маршруты поверх Identity.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := GetAuthContext(r.Context())
		if !ok || !auth.IsAuthenticated() {
			handlers.RespondUnauthorized(w, "требуется аутентификация")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetAuthContext возвращает личность вызывающего из контекста запроса
func GetAuthContext(ctx context.Context) (domain.AuthContext, bool) {
	auth, ok := ctx.Value(authContextKey).(domain.AuthContext)
	return auth, ok
}

// GetUserID возвращает ID аутентифицированного пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	auth, ok := GetAuthContext(ctx)
	if !ok || !auth.IsAuthenticated() {
		return 0, false
	}
	return auth.UserID, true
}
