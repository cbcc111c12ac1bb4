package routes

import (
	"github.com/Dosada05/hackhub/handlers"
	"github.com/Dosada05/hackhub/middleware"
	"github.com/Dosada05/hackhub/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	auth *middleware.SessionAuth,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.SessionHandler,
	dashboardHandler *handlers.DashboardHandler,
	hackathonHandler *handlers.HackathonHandler,
	teamHandler *handlers.TeamHandler,
	submissionHandler *handlers.SubmissionHandler,
	judgeHandler *handlers.JudgeHandler,
	notificationHandler *handlers.NotificationHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Публичные маршруты
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	// Всё остальное требует живой сессии
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)
		r.Put("/profile", authHandler.UpdateProfile)
		r.Post("/profile/avatar", authHandler.UploadAvatar)

		r.Post("/session/hackathon", sessionHandler.SelectHackathon)
		r.Delete("/session/hackathon", sessionHandler.ClearHackathon)

		r.Get("/hackathons", hackathonHandler.ListHackathons)
		r.Get("/hackathons/{hackathonID}", hackathonHandler.GetHackathon)
		r.Get("/hackathons/{hackathonID}/leaderboard", hackathonHandler.Leaderboard)
		r.Get("/calendar", hackathonHandler.Calendar)

		r.Get("/notifications", notificationHandler.List)
		r.Post("/notifications/{notificationID}/read", notificationHandler.MarkRead)
		r.Post("/notifications/read-all", notificationHandler.MarkAllRead)

		r.Get("/ws/notifications", webSocketHandler.ServeNotifications)

		// Страницы участника
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleParticipant, models.RoleAdmin))

			r.Get("/dashboard", dashboardHandler.Participant)

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.MyTeams)
				r.Post("/", teamHandler.CreateTeam)
				r.Post("/join", teamHandler.JoinByCode)
				r.Get("/{teamID}", teamHandler.GetTeam)
				r.Patch("/{teamID}", teamHandler.UpdateTeam)
				r.Delete("/{teamID}/members/{userID}", teamHandler.RemoveMember)
				r.Post("/{teamID}/invites", teamHandler.CreateInvite)
			})
			r.Post("/invites/respond", teamHandler.RespondInvite)

			r.Route("/submissions", func(r chi.Router) {
				r.Get("/", submissionHandler.ListSubmissions)
				r.Post("/", submissionHandler.CreateSubmission)
				r.Get("/{submissionID}", submissionHandler.GetSubmission)
				r.Put("/{submissionID}", submissionHandler.UpdateSubmission)
				r.Post("/{submissionID}/finalize", submissionHandler.Finalize)
			})
		})

		// Страницы судьи
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleJudge, models.RoleAdmin))

			r.Route("/judge", func(r chi.Router) {
				r.Get("/dashboard", judgeHandler.Dashboard)
				r.Get("/assignments", judgeHandler.Assignments)
				r.Get("/teams/{teamID}/evaluation", judgeHandler.EvaluationSheet)
				r.Post("/teams/{teamID}/evaluation/draft", judgeHandler.SaveDraft)
				r.Post("/teams/{teamID}/evaluation/submit", judgeHandler.Submit)
				r.Post("/teams/{teamID}/report", judgeHandler.ReportTeam)
			})
			r.Get("/ws/judge", webSocketHandler.ServeJudgeEvents)
		})
	})
}
