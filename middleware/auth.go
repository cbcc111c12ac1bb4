package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/session"
)

// LoginRedirect — маршрут, на который фронтенд уводит пользователя
// после разрыва сессии.
const LoginRedirect = "/login"

type SessionAuth struct {
	codec  *session.Codec
	guard  *session.Guard
	secure bool
	logger *slog.Logger
}

func NewSessionAuth(codec *session.Codec, guard *session.Guard, secureCookies bool, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		codec:  codec,
		guard:  guard,
		secure: secureCookies,
		logger: logger,
	}
}

// Authenticate распечатывает сессионную куку и кладёт сессию в контекст
// запроса. Просроченный токен или отозванная сессия рвутся сразу,
// до какого-либо похода на бэкенд.
func (m *SessionAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil {
			m.unauthorized(w, "authentication required")
			return
		}

		sess, err := m.codec.Open(cookie.Value)
		if err != nil {
			m.logger.Warn("session cookie rejected", slog.Any("error", err))
			m.ClearSession(w)
			m.unauthorized(w, "session is invalid")
			return
		}

		if sess.Expired() || m.guard.Revoked(sess.Token) {
			m.ClearSession(w)
			m.unauthorized(w, "session has expired")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole пропускает только перечисленные роли.
func (m *SessionAuth) RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := GetSessionFromContext(r.Context())
			if err != nil {
				m.unauthorized(w, "authentication required")
				return
			}

			for _, role := range roles {
				if role == sess.Role {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "operation not allowed for the current role",
			})
		})
	}
}

// Teardown разрывает сессию после 401 от бэкенда: чистит куку и,
// только при первом 401 для данного токена, сигналит редирект.
// Конкурентные 401 одного токена не порождают повторных разрывов.
func (m *SessionAuth) Teardown(w http.ResponseWriter, sess session.Session) bool {
	first := m.guard.Invalidate(sess.Token)
	m.ClearSession(w)
	if first {
		m.logger.Info("session torn down after upstream 401", slog.Int("user_id", sess.UserID))
	}
	return first
}

// WriteSession запечатывает сессию в куку ответа.
func (m *SessionAuth) WriteSession(w http.ResponseWriter, sess session.Session) error {
	value, err := m.codec.Seal(sess)
	if err != nil {
		return err
	}

	cookie := &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !sess.ExpiresAt.IsZero() {
		cookie.Expires = sess.ExpiresAt
	}
	http.SetCookie(w, cookie)
	return nil
}

// ClearSession удаляет сессионную куку.
func (m *SessionAuth) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

func (m *SessionAuth) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":    message,
		"redirect": LoginRedirect,
	})
}
