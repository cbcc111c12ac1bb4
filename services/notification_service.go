package services

import (
	"context"
	"net/url"

	"github.com/Dosada05/hackhub/live"
	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/upstream"
)

type NotificationFilter struct {
	Category   string
	OnlyUnread bool
}

type NotificationService interface {
	List(ctx context.Context, scope upstream.Scope, filter NotificationFilter) ([]models.Notification, error)
	UnreadCount(ctx context.Context, scope upstream.Scope) (int, error)
	MarkRead(ctx context.Context, scope upstream.Scope, userID, notificationID int) error
	MarkAllRead(ctx context.Context, scope upstream.Scope, userID int) error
}

type notificationService struct {
	api *upstream.Client
	hub *live.Hub
}

func NewNotificationService(api *upstream.Client, hub *live.Hub) NotificationService {
	return &notificationService{api: api, hub: hub}
}

func (s *notificationService) List(ctx context.Context, scope upstream.Scope, filter NotificationFilter) ([]models.Notification, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.OnlyUnread {
		query.Set("unread", "true")
	}

	path := upstream.Notifications
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp struct {
		Message       string                `json:"message"`
		Notifications []models.Notification `json:"notifications"`
	}
	if err := s.api.Get(ctx, scope, path, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, scope upstream.Scope) (int, error) {
	unread, err := s.List(ctx, scope, NotificationFilter{OnlyUnread: true})
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

func (s *notificationService) MarkRead(ctx context.Context, scope upstream.Scope, userID, notificationID int) error {
	if err := s.api.Post(ctx, scope, upstream.NotificationReadPath(notificationID), nil, nil); err != nil {
		return err
	}
	s.push(userID)
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, scope upstream.Scope, userID int) error {
	if err := s.api.Post(ctx, scope, upstream.NotificationsReadAll, nil, nil); err != nil {
		return err
	}
	s.push(userID)
	return nil
}

// push уведомляет открытые страницы пользователя, что счётчик изменился.
func (s *notificationService) push(userID int) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(live.UserRoom(userID), live.Message{
		Type: live.MessageNotification,
	})
}
