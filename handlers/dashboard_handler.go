package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/schedule"
	"github.com/Dosada05/hackhub/services"
	"golang.org/x/sync/errgroup"
)

type DashboardHandler struct {
	authService         services.AuthService
	teamService         services.TeamService
	catalogService      services.CatalogService
	submissionService   services.SubmissionService
	notificationService services.NotificationService
}

func NewDashboardHandler(
	authService services.AuthService,
	teamService services.TeamService,
	catalogService services.CatalogService,
	submissionService services.SubmissionService,
	notificationService services.NotificationService,
) *DashboardHandler {
	return &DashboardHandler{
		authService:         authService,
		teamService:         teamService,
		catalogService:      catalogService,
		submissionService:   submissionService,
		notificationService: notificationService,
	}
}

// Participant собирает дашборд участника. Независимые данные (профиль,
// команды, хакатоны, сабмишены, непрочитанные) запрашиваются
// параллельно; производные метрики считаются уже из полученного.
func (h *DashboardHandler) Participant(w http.ResponseWriter, r *http.Request) {
	scope, err := middleware.ScopeFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	var (
		user        *models.User
		teams       []models.Team
		hackathons  []models.Hackathon
		submissions []models.Submission
		unread      int
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
		got, err := h.teamService.MyTeams(ctx, scope)
		if err != nil {
			return err
		}
		teams = got
		return nil
	})
	g.Go(func() error {
		got, err := h.catalogService.ListHackathons(ctx, scope, services.HackathonFilter{})
		if err != nil {
			return err
		}
		hackathons = got
		return nil
	})
	g.Go(func() error {
		got, err := h.submissionService.ListSubmissions(ctx, scope)
		if err != nil {
			return err
		}
		submissions = got
		return nil
	})
	g.Go(func() error {
		got, err := h.notificationService.UnreadCount(ctx, scope)
		if err != nil {
			return err
		}
		unread = got
		return nil
	})

	if err := g.Wait(); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	now := time.Now()

	dashboard := models.ParticipantDashboard{
		User:        user,
		Teams:       teams,
		Hackathons:  hackathons,
		Submissions: submissions,
		Unread:      unread,
		Funnel:      services.Funnel(funnelCounts(teams, submissions)),
		Workload:    services.WorkloadBuckets(now, upcomingDeadlines(hackathons)),
	}
	if len(submissions) > 0 {
		dashboard.Readiness = services.Readiness(submissions[0])
	}
	dashboard.UpcomingCells = schedule.AttachEvents(
		schedule.MonthGrid(now),
		deadlineEvents(hackathons),
	)

	err = writeJSON(w, http.StatusOK, jsonResponse{"dashboard": dashboard}, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func funnelCounts(teams []models.Team, submissions []models.Submission) services.FunnelCounts {
	joined := make(map[int]bool, len(teams))
	for _, t := range teams {
		joined[t.HackathonID] = true
	}

	counts := services.FunnelCounts{
		Joined:     len(joined),
		TeamFormed: len(teams),
	}
	for _, s := range submissions {
		if s.Status == models.SubmissionDraft {
			counts.Building++
		} else {
			counts.Submitted++
		}
	}
	return counts
}

func upcomingDeadlines(hackathons []models.Hackathon) []time.Time {
	var deadlines []time.Time
	for _, hk := range hackathons {
		deadlines = append(deadlines, hk.RegistrationDeadline, hk.SubmissionDeadline, hk.EndDate)
	}
	return deadlines
}

func deadlineEvents(hackathons []models.Hackathon) []schedule.Event {
	var events []schedule.Event
	for _, hk := range hackathons {
		events = append(events,
			schedule.Event{Date: hk.RegistrationDeadline, Title: hk.Name + " registration closes", Category: "registration"},
			schedule.Event{Date: hk.SubmissionDeadline, Title: hk.Name + " submissions due", Category: "submission"},
		)
	}
	return events
}
