package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Dosada05/hackhub/live"
	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/rubric"
	"github.com/Dosada05/hackhub/upstream"
)

// ScoreInput — балл одного критерия, как его присылает форма судьи.
type ScoreInput struct {
	Criterion string `json:"criterion"`
	Score     int    `json:"score"`
}

// EvaluationForm — состояние формы оценивания целиком.
type EvaluationForm struct {
	Scores   []ScoreInput `json:"scores"`
	Feedback string       `json:"feedback"`
}

// EvaluationSheet — форма оценивания, собранная для отрисовки:
// критерии рубрики с текущими баллами, итог и состояние.
type EvaluationSheet struct {
	TeamID   int                `json:"team_id"`
	Criteria []SheetRow         `json:"criteria"`
	Feedback string             `json:"feedback"`
	Total    int                `json:"total"`
	Max      int                `json:"max"`
	Status   rubric.Status      `json:"status"`
	CanEdit  bool               `json:"can_edit"`
	Scores   *models.Evaluation `json:"evaluation,omitempty"`
}

type SheetRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	MaxScore    int     `json:"max_score"`
	Score       int     `json:"score"`
}

// JudgeStats — сводка дашборда судьи, как её отдаёт бэкенд.
type JudgeStats struct {
	AssignedTeams int `json:"assigned_teams"`
	Pending       int `json:"pending_evaluations"`
	Completed     int `json:"completed_evaluations"`
}

type JudgeService interface {
	Stats(ctx context.Context, scope upstream.Scope) (*JudgeStats, error)
	Events(ctx context.Context, scope upstream.Scope) ([]models.JudgeEvent, error)
	Assignments(ctx context.Context, scope upstream.Scope) ([]models.JudgeAssignment, error)
	EvaluationStatus(ctx context.Context, scope upstream.Scope, teamID int) (*models.Evaluation, error)
	Sheet(ctx context.Context, scope upstream.Scope, hackathon *models.Hackathon, teamID int) (*EvaluationSheet, error)
	SaveDraft(ctx context.Context, scope upstream.Scope, hackathon *models.Hackathon, teamID int, form EvaluationForm) (*models.Evaluation, error)
	Submit(ctx context.Context, scope upstream.Scope, hackathon *models.Hackathon, teamID int, form EvaluationForm) (*models.Evaluation, error)
	ReportTeam(ctx context.Context, scope upstream.Scope, teamID int, reason string) error
}

type judgeService struct {
	api    *upstream.Client
	hub    *live.Hub
	logger *slog.Logger
}

func NewJudgeService(api *upstream.Client, hub *live.Hub, logger *slog.Logger) JudgeService {
	return &judgeService{api: api, hub: hub, logger: logger}
}

func (s *judgeService) Stats(ctx context.Context, scope upstream.Scope) (*JudgeStats, error) {
	var resp struct {
		Message string     `json:"message"`
		Stats   JudgeStats `json:"stats"`
	}
	if err := s.api.Get(ctx, scope, upstream.JudgeDashboard, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

func (s *judgeService) Events(ctx context.Context, scope upstream.Scope) ([]models.JudgeEvent, error) {
	var resp struct {
		Message string              `json:"message"`
		Events  []models.JudgeEvent `json:"events"`
	}
	if err := s.api.Get(ctx, scope, upstream.JudgeEvents, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (s *judgeService) Assignments(ctx context.Context, scope upstream.Scope) ([]models.JudgeAssignment, error) {
	var resp struct {
		Message     string                   `json:"message"`
		Assignments []models.JudgeAssignment `json:"assignments"`
	}
	if err := s.api.Get(ctx, scope, upstream.JudgeAssignments, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

func (s *judgeService) EvaluationStatus(ctx context.Context, scope upstream.Scope, teamID int) (*models.Evaluation, error) {
	var resp struct {
		Message    string            `json:"message"`
		Evaluation models.Evaluation `json:"evaluation"`
	}
	err := s.api.Get(ctx, scope, upstream.EvaluationStatusPath(teamID), &resp)
	if err != nil {
		// Отсутствие записи — валидное состояние "нет черновика".
		if upstream.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &resp.Evaluation, nil
}

// Sheet собирает форму оценивания: рубрика хакатона (или дефолтная),
// баллы из существующей записи, разложенные обратно по критериям через
// то же отображение критерий → поле.
func (s *judgeService) Sheet(ctx context.Context, scope upstream.Scope, hackathon *models.Hackathon, teamID int) (*EvaluationSheet, error) {
	existing, err := s.EvaluationStatus(ctx, scope, teamID)
	if err != nil {
		return nil, err
	}

	criteria := rubric.FromConfig(hackathon.Criteria)
	entries := make([]rubric.Entry, len(criteria))
	for i, c := range criteria {
		entries[i] = rubric.Entry{Criterion: c}
	}

	feedback := ""
	if existing != nil {
		feedback = existing.Comments
		stored := rubric.Scores{
			Innovation:   existing.ScoreInnovation,
			Feasibility:  existing.ScoreFeasibility,
			Execution:    existing.ScoreExecution,
			Presentation: existing.ScorePresentation,
		}
		for i := range entries {
			field := rubric.FieldFor(entries[i].Criterion, i)
			entries[i].Score = stored.Get(field)
		}
	}

	total, max := rubric.Total(entries)
	status := rubric.StateOf(existing, hackathon.Locked())

	sheet := &EvaluationSheet{
		TeamID:   teamID,
		Feedback: feedback,
		Total:    total,
		Max:      max,
		Status:   status,
		CanEdit:  status != rubric.StatusLocked,
		Scores:   existing,
	}
	for _, e := range entries {
		sheet.Criteria = append(sheet.Criteria, SheetRow{
			Name:        e.Criterion.Name,
			Description: e.Criterion.Description,
			Weight:      e.Criterion.Weight,
			MaxScore:    e.Criterion.MaxScore,
			Score:       e.Score,
		})
	}
	return sheet, nil
}

// evaluationPayload — единственная форма, в которой бэкенд принимает
// оценку: четыре фиксированных поля плюс комментарий.
type evaluationPayload struct {
	ScoreInnovation   int    `json:"score_innovation"`
	ScoreFeasibility  int    `json:"score_feasibility"`
	ScoreExecution    int    `json:"score_execution"`
	ScorePresentation int    `json:"score_presentation"`
	Comments          string `json:"comments"`
}

func (s *judgeService) SaveDraft(ctx context.Context, scope upstream.Scope, hackathon *models.Hackathon, teamID int, form EvaluationForm) (*models.Evaluation, error) {
	existing, err := s.EvaluationStatus(ctx, scope, teamID)
	if err != nil {
		return nil, err
	}

	status := rubric.StateOf(existing, hackathon.Locked())
	if !rubric.CanSaveDraft(status) {
		return nil, ErrEvaluationLocked
	}

	entries := s.entries(hackathon, form)
	// Черновик: частичная рубрика допустима, нули сохраняются как есть.
	scores := rubric.Collapse(entries)
	payload := payloadFrom(scores, form.Feedback)

	var resp struct {
		Message    string            `json:"message"`
		Evaluation models.Evaluation `json:"evaluation"`
	}
	if err := s.api.Post(ctx, scope, upstream.EvaluationDraftPath(teamID), payload, &resp); err != nil {
		s.logger.Warn("draft save failed",
			slog.Int("team_id", teamID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return &resp.Evaluation, nil
}

func (s *judgeService) Submit(ctx context.Context, scope upstream.Scope, hackathon *models.Hackathon, teamID int, form EvaluationForm) (*models.Evaluation, error) {
	entries := s.entries(hackathon, form)
	// Клиентский гейт: без полной рубрики и отзыва никакой сетевой
	// активности, даже запроса статуса.
	if err := rubric.ValidateSubmit(entries, form.Feedback); err != nil {
		return nil, err
	}

	existing, err := s.EvaluationStatus(ctx, scope, teamID)
	if err != nil {
		return nil, err
	}

	status := rubric.StateOf(existing, hackathon.Locked())
	if status == rubric.StatusLocked {
		return nil, ErrEvaluationLocked
	}

	// Финальный сабмит: оставшиеся нулевые поля бэкенда поднимаются до 1.
	scores := rubric.Collapse(entries).CoerceNonzero()
	payload := payloadFrom(scores, form.Feedback)

	var resp struct {
		Message    string            `json:"message"`
		Evaluation models.Evaluation `json:"evaluation"`
	}

	// Уже отправленная оценка правится через update-эндпоинт,
	// повторный create-путь не используется.
	if rubric.CanUpdate(status) {
		err = s.api.Put(ctx, scope, upstream.EvaluationUpdatePath(teamID), payload, &resp)
	} else {
		err = s.api.Post(ctx, scope, upstream.EvaluationSubmitPath(teamID), payload, &resp)
	}
	if err != nil {
		s.logger.Warn("evaluation submit failed",
			slog.Int("team_id", teamID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(live.HackathonRoom(hackathon.ID), live.Message{
			Type:    live.MessageEvaluation,
			Payload: resp.Evaluation,
		})
	}
	return &resp.Evaluation, nil
}

func (s *judgeService) ReportTeam(ctx context.Context, scope upstream.Scope, teamID int, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReportReasonRequired
	}

	input := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	return s.api.Post(ctx, scope, upstream.JudgeReportPath(teamID), input, nil)
}

// entries сопоставляет баллы формы критериям рубрики по имени;
// неоценённые критерии остаются с нулём.
func (s *judgeService) entries(hackathon *models.Hackathon, form EvaluationForm) []rubric.Entry {
	criteria := rubric.FromConfig(hackathon.Criteria)

	byName := make(map[string]int, len(form.Scores))
	for _, sc := range form.Scores {
		byName[strings.ToLower(strings.TrimSpace(sc.Criterion))] = sc.Score
	}

	entries := make([]rubric.Entry, len(criteria))
	for i, c := range criteria {
		entries[i] = rubric.Entry{
			Criterion: c,
			Score:     byName[strings.ToLower(c.Name)],
		}
	}
	return entries
}

func payloadFrom(scores rubric.Scores, feedback string) evaluationPayload {
	return evaluationPayload{
		ScoreInnovation:   scores.Innovation,
		ScoreFeasibility:  scores.Feasibility,
		ScoreExecution:    scores.Execution,
		ScorePresentation: scores.Presentation,
		Comments:          feedback,
	}
}
