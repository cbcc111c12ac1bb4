package middleware

import (
	"context"
	"errors"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/session"
	"github.com/Dosada05/hackhub/upstream"
)

type contextKey string

const sessionContextKey contextKey = "session"

// GetSessionFromContext достаёт сессию, положенную Authenticate.
func GetSessionFromContext(ctx context.Context) (session.Session, error) {
	sess, ok := ctx.Value(sessionContextKey).(session.Session)
	if !ok {
		return session.Session{}, errors.New("session not found in context")
	}
	return sess, nil
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	sess, err := GetSessionFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return sess.UserID, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	sess, err := GetSessionFromContext(ctx)
	if err != nil {
		return "", err
	}
	return sess.Role, nil
}

// ScopeFromContext строит скоуп вызова бэкенда из сессии запроса:
// токен и выбранный хакатон передаются явно, а не через ambient-состояние.
func ScopeFromContext(ctx context.Context) (upstream.Scope, error) {
	sess, err := GetSessionFromContext(ctx)
	if err != nil {
		return upstream.Scope{}, err
	}
	return upstream.Scope{
		Token:       sess.Token,
		HackathonID: sess.SelectedHackathonID,
	}, nil
}
