package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/hackhub/models"
	"golang.org/x/crypto/chacha20poly1305"
)

// CookieName — имя куки, в которой живёт запечатанная сессия.
// Кука заменяет localStorage исходного клиента: токен и выбранный
// хакатон больше не лежат в ambient-хранилище.
const CookieName = "hackhub_session"

var (
	ErrInvalidSecret = errors.New("session secret must be 32 bytes")
	ErrBadCookie     = errors.New("session cookie is malformed or tampered")
	ErrTokenExpired  = errors.New("bearer token is expired")
)

// Session — состояние, которое исходный клиент держал в localStorage:
// bearer-токен бэкенда и id выбранного хакатона.
type Session struct {
	Token               string          `json:"token"`
	UserID              int             `json:"user_id"`
	Role                models.UserRole `json:"role"`
	SelectedHackathonID int             `json:"selected_hackathon_id,omitempty"`
	ExpiresAt           time.Time       `json:"expires_at"`
}

func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Codec запечатывает сессию в значение куки (AEAD, случайный nonce).
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) != chacha20poly1305.KeySize {
		return nil, ErrInvalidSecret
	}
	return &Codec{secret: secret}, nil
}

func (c *Codec) Seal(s Session) (string, error) {
	plain, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	aead, err := chacha20poly1305.NewX(c.secret)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plain, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *Codec) Open(value string) (Session, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return Session{}, ErrBadCookie
	}

	aead, err := chacha20poly1305.NewX(c.secret)
	if err != nil {
		return Session{}, err
	}
	if len(raw) < aead.NonceSize() {
		return Session{}, ErrBadCookie
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return Session{}, ErrBadCookie
	}

	var s Session
	if err := json.Unmarshal(plain, &s); err != nil {
		return Session{}, ErrBadCookie
	}
	return s, nil
}
