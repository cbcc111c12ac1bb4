package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Dosada05/hackhub/models"
	"github.com/golang-jwt/jwt/v4"
)

// Имена JWT claims, которые выдаёт бэкенд.
const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// FromToken строит сессию из bearer-токена бэкенда. Подпись не
// проверяется: секрет знает только бэкенд, клиенту нужны лишь claims
// для роутинга по ролям и проверки срока действия до похода в сеть.
func FromToken(token string) (Session, error) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Session{}, fmt.Errorf("parse bearer token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errors.New("unexpected claims type in bearer token")
	}

	userID, err := userIDClaim(claims)
	if err != nil {
		return Session{}, err
	}
	role, err := roleClaim(claims)
	if err != nil {
		return Session{}, err
	}

	s := Session{
		Token:  token,
		UserID: userID,
		Role:   role,
	}
	if exp, ok := claims["exp"].(float64); ok {
		s.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if s.Expired() {
		return Session{}, ErrTokenExpired
	}
	return s, nil
}

func userIDClaim(claims jwt.MapClaims) (int, error) {
	raw, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}

	idFloat, ok := raw.(float64)
	if !ok {
		// Некоторые эндпоинты бэкенда кладут id строкой.
		idStr, okStr := raw.(string)
		if okStr {
			id, err := strconv.Atoi(idStr)
			if err == nil && id > 0 {
				return id, nil
			}
		}
		return 0, fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimUserID, raw)
	}

	id := int(idFloat)
	if id <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, id)
	}
	return id, nil
}

func roleClaim(claims jwt.MapClaims) (models.UserRole, error) {
	raw, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}

	roleStr, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimRole, raw)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleParticipant, models.RoleJudge, models.RoleAdmin:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
