package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/hackhub/live"
	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin проверяется CORS-слоем роутера; кука сессии не уходит
		// на чужие origin благодаря SameSite.
		return true
	},
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeNotifications подключает страницу к комнате нотификаций
// текущего пользователя.
func (h *WebSocketHandler) ServeNotifications(w http.ResponseWriter, r *http.Request) {
	sess, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	h.serve(w, r, live.UserRoom(sess.UserID))
}

// ServeJudgeEvents подключает судью к комнате событий выбранного хакатона.
func (h *WebSocketHandler) ServeJudgeEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	if sess.SelectedHackathonID == 0 {
		badRequestResponse(w, r, services.ErrNoHackathonSelected)
		return
	}

	h.serve(w, r, live.HackathonRoom(sess.SelectedHackathonID))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("room", room), slog.Any("error", err))
		return
	}

	client := &live.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: room,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
