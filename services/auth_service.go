package services

import (
	"context"
	"io"
	"strings"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/session"
	"github.com/Dosada05/hackhub/upstream"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type UpdateProfileInput struct {
	Name        string              `json:"name"`
	Bio         *string             `json:"bio,omitempty"`
	Links       []string            `json:"links,omitempty"`
	Skills      []string            `json:"skills,omitempty"`
	Experiences []models.Experience `json:"experiences,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, creds models.Credentials) (session.Session, *models.User, error)
	Logout(ctx context.Context, scope upstream.Scope) error
	CurrentUser(ctx context.Context, scope upstream.Scope) (*models.User, error)
	UpdateProfile(ctx context.Context, scope upstream.Scope, input UpdateProfileInput) (*models.User, error)
	UploadAvatar(ctx context.Context, scope upstream.Scope, filename string, file io.Reader, size int64, progress upstream.ProgressFunc) (string, error)
}

type authService struct {
	api *upstream.Client
}

func NewAuthService(api *upstream.Client) AuthService {
	return &authService{api: api}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	var resp struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	// Регистрация и логин — глобальные вызовы, tenant-заголовок не нужен.
	scope := upstream.Scope{OmitHackathon: true}
	if err := s.api.Post(ctx, scope, upstream.AuthRegister, input, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (session.Session, *models.User, error) {
	var resp struct {
		Message string      `json:"message"`
		Token   string      `json:"token"`
		User    models.User `json:"user"`
	}
	scope := upstream.Scope{OmitHackathon: true}
	if err := s.api.Post(ctx, scope, upstream.AuthLogin, creds, &resp); err != nil {
		return session.Session{}, nil, err
	}

	sess, err := session.FromToken(resp.Token)
	if err != nil {
		return session.Session{}, nil, err
	}
	return sess, &resp.User, nil
}

func (s *authService) Logout(ctx context.Context, scope upstream.Scope) error {
	// Бэкенд инвалидирует токен; ошибка не мешает локальному разрыву сессии.
	return s.api.Post(ctx, scope, upstream.AuthLogout, nil, nil)
}

func (s *authService) CurrentUser(ctx context.Context, scope upstream.Scope) (*models.User, error) {
	var resp struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := s.api.Get(ctx, scope, upstream.AuthMe, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *authService) UpdateProfile(ctx context.Context, scope upstream.Scope, input UpdateProfileInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProfileNameRequired
	}

	var resp struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	if err := s.api.Put(ctx, scope, upstream.UserProfile, input, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (s *authService) UploadAvatar(ctx context.Context, scope upstream.Scope, filename string, file io.Reader, size int64, progress upstream.ProgressFunc) (string, error) {
	var resp struct {
		Message   string `json:"message"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := s.api.Upload(ctx, scope, upstream.UserAvatar, "avatar", filename, file, size, progress, &resp); err != nil {
		return "", err
	}
	return resp.AvatarURL, nil
}
