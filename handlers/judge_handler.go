package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/schedule"
	"github.com/Dosada05/hackhub/services"
	"github.com/Dosada05/hackhub/upstream"
	"golang.org/x/sync/errgroup"
)

type JudgeHandler struct {
	judgeService   services.JudgeService
	catalogService services.CatalogService
	authService    services.AuthService
}

func NewJudgeHandler(judgeService services.JudgeService, catalogService services.CatalogService, authService services.AuthService) *JudgeHandler {
	return &JudgeHandler{
		judgeService:   judgeService,
		catalogService: catalogService,
		authService:    authService,
	}
}

// Dashboard собирает страницу судьи: профиль, сводка, события и
// назначения независимы и запрашиваются параллельно; загрузка по
// окнам и календарь считаются из уже полученных событий.
func (h *JudgeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var (
		user        *models.User
		stats       *services.JudgeStats
		events      []models.JudgeEvent
		assignments []models.JudgeAssignment
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		got, err := h.authService.CurrentUser(ctx, scope)
		if err != nil {
			return err
		}
		user = got
		return nil
	})
	g.Go(func() error {
		got, err := h.judgeService.Stats(ctx, scope)
		if err != nil {
			return err
		}
		stats = got
		return nil
	})
	g.Go(func() error {
		got, err := h.judgeService.Events(ctx, scope)
		if err != nil {
			return err
		}
		events = got
		return nil
	})
	g.Go(func() error {
		got, err := h.judgeService.Assignments(ctx, scope)
		if err != nil {
			return err
		}
		assignments = got
		return nil
	})

	if err := g.Wait(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := time.Now()
	deadlines := make([]time.Time, 0, len(events))
	calendarEvents := make([]schedule.Event, 0, len(events))
	for _, ev := range events {
		deadlines = append(deadlines, ev.EndsAt)
		calendarEvents = append(calendarEvents, schedule.Event{
			Date:     ev.StartsAt,
			Title:    ev.Title,
			Category: "judging",
		})
	}

	dashboard := models.JudgeDashboard{
		User:        user,
		Assignments: assignments,
		Events:      events,
		Pending:     stats.Pending,
		Completed:   stats.Completed,
		Workload:    services.WorkloadBuckets(now, deadlines),
		Calendar:    schedule.AttachEvents(schedule.MonthGrid(now), calendarEvents),
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"dashboard": dashboard}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) Assignments(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	assignments, err := h.judgeService.Assignments(r.Context(), scope)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"assignments": assignments}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EvaluationSheet — форма оценивания команды. Последовательная загрузка:
// рубрика и замок берутся из хакатона, поэтому сначала хакатон,
// потом лист оценки.
func (h *JudgeHandler) EvaluationSheet(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, hackathon, err := h.scopedHackathon(w, r)
	if err != nil {
		return
	}

	sheet, err := h.judgeService.Sheet(r.Context(), scope, hackathon, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"sheet": sheet}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var form services.EvaluationForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, hackathon, err := h.scopedHackathon(w, r)
	if err != nil {
		return
	}

	evaluation, err := h.judgeService.SaveDraft(r.Context(), scope, hackathon, teamID, form)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"evaluation": evaluation}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var form services.EvaluationForm
	if err := readJSON(w, r, &form); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, hackathon, err := h.scopedHackathon(w, r)
	if err != nil {
		return
	}

	evaluation, err := h.judgeService.Submit(r.Context(), scope, hackathon, teamID, form)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"evaluation": evaluation}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JudgeHandler) ReportTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Reason string `json:"reason"`
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

	if err := h.judgeService.ReportTeam(r.Context(), scope, teamID, input.Reason); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"message": "report submitted"}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// scopedHackathon резолвит выбранный хакатон сессии. Ответ об ошибке
// уже записан, если возвращена ошибка.
func (h *JudgeHandler) scopedHackathon(w http.ResponseWriter, r *http.Request) (upstream.Scope, *models.Hackathon, error) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return upstream.Scope{}, nil, err
	}

	if scope.HackathonID == 0 {
		badRequestResponse(w, r, services.ErrNoHackathonSelected)
		return upstream.Scope{}, nil, services.ErrNoHackathonSelected
	}

	hackathon, err := h.catalogService.GetHackathon(r.Context(), scope, scope.HackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return upstream.Scope{}, nil, err
	}
	return scope, hackathon, nil
}
