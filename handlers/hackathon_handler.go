package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/schedule"
	"github.com/Dosada05/hackhub/services"
	"golang.org/x/sync/errgroup"
)

type HackathonHandler struct {
	catalogService services.CatalogService
}

func NewHackathonHandler(catalogService services.CatalogService) *HackathonHandler {
	return &HackathonHandler{catalogService: catalogService}
}

func (h *HackathonHandler) ListHackathons(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	filter := services.HackathonFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		filter.Page = page
	}

	hackathons, err := h.catalogService.ListHackathons(r.Context(), scope, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"hackathons": hackathons}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetHackathon отдаёт страницу хакатона: карточку и таблицу лидеров
// одним ответом. Данные независимы и запрашиваются параллельно.
func (h *HackathonHandler) GetHackathon(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	g, ctx := errgroup.WithContext(r.Context())

	var (
		hackathon   interface{}
		leaderboard interface{}
	)

	g.Go(func() error {
		got, err := h.catalogService.GetHackathon(ctx, scope, hackathonID)
		if err != nil {
			return err
		}
		hackathon = got
		return nil
	})
	g.Go(func() error {
		rows, err := h.catalogService.Leaderboard(ctx, scope, hackathonID)
		if err != nil {
			// Таблица лидеров есть не у каждой фазы хакатона.
			return nil
		}
		leaderboard = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"hackathon":   hackathon,
		"leaderboard": leaderboard,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *HackathonHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	hackathonID, err := getIDFromURL(r, "hackathonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	rows, err := h.catalogService.Leaderboard(r.Context(), scope, hackathonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Calendar строит месячную сетку с дедлайнами хакатонов пользователя.
// Месяц задаётся query-параметрами year и month, по умолчанию текущий.
func (h *HackathonHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	ref := time.Now()
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		if month, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil && month >= 1 && month <= 12 {
			ref = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, ref.Location())
		}
	}

	hackathons, err := h.catalogService.ListHackathons(r.Context(), scope, services.HackathonFilter{})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	var events []schedule.Event
	for _, hk := range hackathons {
		events = append(events,
			schedule.Event{Date: hk.StartDate, Title: hk.Name + " starts", Category: "start"},
			schedule.Event{Date: hk.RegistrationDeadline, Title: hk.Name + " registration closes", Category: "registration"},
			schedule.Event{Date: hk.SubmissionDeadline, Title: hk.Name + " submissions due", Category: "submission"},
			schedule.Event{Date: hk.EndDate, Title: hk.Name + " ends", Category: "end"},
		)
	}

	cells := schedule.AttachEvents(schedule.MonthGrid(ref), events)

	err = writeJSON(w, http.StatusOK, jsonResponse{"calendar": cells}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
