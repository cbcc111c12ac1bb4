package handlers

import (
	"net/http"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	submissions, err := h.submissionService.ListSubmissions(r.Context(), scope)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"submissions": submissions}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSubmission отдаёт сабмишен вместе с радаром готовности и ссылкой
// на архив — всё, что нужно странице, одним ответом.
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getIDFromURL(r, "submissionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	submission, err := h.submissionService.GetSubmission(r.Context(), scope, submissionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"submission":  submission,
		"readiness":   services.Readiness(*submission),
		"archive_url": h.submissionService.ArchiveURL(submission),
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var input struct {
		TeamID int `json:"team_id"`
		services.SubmissionInput
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	submission, err := h.submissionService.CreateSubmission(r.Context(), scope, input.TeamID, input.SubmissionInput)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusCreated, jsonResponse{"submission": submission}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SubmissionHandler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getIDFromURL(r, "submissionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SubmissionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}
	scope, _ := middleware.ScopeFromContext(r.Context())

	submission, err := h.submissionService.UpdateSubmission(r.Context(), scope, currentUserID, submissionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"submission": submission}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SubmissionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	submissionID, err := getIDFromURL(r, "submissionID")
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

	submission, err := h.submissionService.Finalize(r.Context(), scope, currentUserID, submissionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"submission": submission}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
