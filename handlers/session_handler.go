package handlers

import (
	"net/http"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/services"
)

// SessionHandler управляет выбранным хакатоном текущей сессии —
// значением, которое исходный клиент держал в localStorage и
// подставлял в tenant-заголовок.
type SessionHandler struct {
	catalogService services.CatalogService
	auth           *middleware.SessionAuth
}

func NewSessionHandler(catalogService services.CatalogService, auth *middleware.SessionAuth) *SessionHandler {
	return &SessionHandler{
		catalogService: catalogService,
		auth:           auth,
	}
}

func (h *SessionHandler) SelectHackathon(w http.ResponseWriter, r *http.Request) {
	var input struct {
		HackathonID int `json:"hackathon_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sess, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	scope, _ := middleware.ScopeFromContext(r.Context())

	// Проверяем, что хакатон существует, прежде чем фиксировать выбор.
	hackathon, err := h.catalogService.GetHackathon(r.Context(), scope, input.HackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	sess.SelectedHackathonID = hackathon.ID
	if err := h.auth.WriteSession(w, sess); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"selected_hackathon": hackathon}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SessionHandler) ClearHackathon(w http.ResponseWriter, r *http.Request) {
	sess, err := middleware.GetSessionFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	sess.SelectedHackathonID = 0
	if err := h.auth.WriteSession(w, sess); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"message": "hackathon selection cleared"}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
