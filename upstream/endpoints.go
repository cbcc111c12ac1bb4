package upstream

import "fmt"

// Пути эндпоинтов бэкенда. Каждый сервисный модуль знает форму
// собственного ответа, здесь только адресация.
const (
	AuthRegister = "/auth/register"
	AuthLogin    = "/auth/login"
	AuthLogout   = "/auth/logout"
	AuthRefresh  = "/auth/refresh" // зарезервировано, ротация refresh-токенов не реализована
	AuthMe       = "/auth/me"

	UserProfile = "/users/profile"
	UserAvatar  = "/users/avatar"

	Hackathons           = "/hackathons"
	TeamsMine            = "/teams/mine"
	Teams                = "/teams"
	TeamJoin             = "/teams/join"
	Invites              = "/invites"
	Submissions          = "/submissions"
	JudgeDashboard       = "/judge/dashboard"
	JudgeEvents          = "/judge/events"
	JudgeAssignments     = "/judge/assignments"
	JudgeEvaluations     = "/judge/evaluations"
	Notifications        = "/notifications"
	NotificationsReadAll = "/notifications/read-all"
)

func HackathonPath(id int) string           { return fmt.Sprintf("%s/%d", Hackathons, id) }
func HackathonLeaderboard(id int) string    { return fmt.Sprintf("%s/%d/leaderboard", Hackathons, id) }
func TeamPath(id int) string                { return fmt.Sprintf("%s/%d", Teams, id) }
func TeamMembersPath(id int) string         { return fmt.Sprintf("%s/%d/members", Teams, id) }
func TeamMemberPath(id, userID int) string  { return fmt.Sprintf("%s/%d/members/%d", Teams, id, userID) }
func TeamInvitesPath(id int) string         { return fmt.Sprintf("%s/%d/invites", Teams, id) }
func InviteRespondPath(token string) string { return fmt.Sprintf("%s/%s/respond", Invites, token) }
func SubmissionPath(id int) string          { return fmt.Sprintf("%s/%d", Submissions, id) }
func SubmissionFinalizePath(id int) string  { return fmt.Sprintf("%s/%d/finalize", Submissions, id) }
func EvaluationStatusPath(teamID int) string {
	return fmt.Sprintf("%s/%d/status", JudgeEvaluations, teamID)
}
func EvaluationDraftPath(teamID int) string {
	return fmt.Sprintf("%s/%d/draft", JudgeEvaluations, teamID)
}
func EvaluationSubmitPath(teamID int) string {
	return fmt.Sprintf("%s/%d/submit", JudgeEvaluations, teamID)
}
func EvaluationUpdatePath(teamID int) string { return fmt.Sprintf("%s/%d", JudgeEvaluations, teamID) }
func JudgeReportPath(teamID int) string      { return fmt.Sprintf("/judge/teams/%d/report", teamID) }
func NotificationReadPath(id int) string     { return fmt.Sprintf("%s/%d/read", Notifications, id) }
