package handlers

import (
	"net/http"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	filter := services.NotificationFilter{
		Category:   r.URL.Query().Get("category"),
		OnlyUnread: r.URL.Query().Get("unread") == "true",
	}

	notifications, err := h.notificationService.List(r.Context(), scope, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"notifications": notifications}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := getIDFromURL(r, "notificationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	scope, _ := middleware.ScopeFromContext(r.Context())

	if err := h.notificationService.MarkRead(r.Context(), scope, currentUserID, notificationID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"message": "notification marked as read"}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	scope, _ := middleware.ScopeFromContext(r.Context())

	if err := h.notificationService.MarkAllRead(r.Context(), scope, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"message": "all notifications marked as read"}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
