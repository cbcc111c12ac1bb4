package models

import "time"

// EvaluationStatus представляет статусы судейской оценки.
type EvaluationStatus string

const (
	EvaluationDraft     EvaluationStatus = "draft"
	EvaluationSubmitted EvaluationStatus = "submitted"
)

// Evaluation — запись оценки команды судьёй. Бэкенд хранит ровно четыре
// числовых поля, какими бы ни были настроенные критерии хакатона.
type Evaluation struct {
	ID                int              `json:"id"`
	TeamID            int              `json:"team_id"`
	JudgeID           int              `json:"judge_id"`
	HackathonID       int              `json:"hackathon_id"`
	ScoreInnovation   int              `json:"score_innovation"`
	ScoreFeasibility  int              `json:"score_feasibility"`
	ScoreExecution    int              `json:"score_execution"`
	ScorePresentation int              `json:"score_presentation"`
	Comments          string           `json:"comments"`
	Status            EvaluationStatus `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// JudgeAssignment — назначение судьи на команду в рамках хакатона.
type JudgeAssignment struct {
	ID          int         `json:"id"`
	HackathonID int         `json:"hackathon_id"`
	TeamID      int         `json:"team_id"`
	JudgeID     int         `json:"judge_id"`
	CreatedAt   time.Time   `json:"created_at"`
	Team        *Team       `json:"team,omitempty"`
	Submission  *Submission `json:"submission,omitempty"`
	Evaluation  *Evaluation `json:"evaluation,omitempty"`
}

// JudgeEvent — событие календаря судьи (сессии оценивания, дедлайны).
type JudgeEvent struct {
	ID          int       `json:"id"`
	HackathonID int       `json:"hackathon_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}
