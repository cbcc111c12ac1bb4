package models

import "time"

// SubmissionStatus представляет статусы сабмишена, соответствующие ENUM на бэкенде.
type SubmissionStatus string

const (
	SubmissionDraft      SubmissionStatus = "draft"
	SubmissionSubmitted  SubmissionStatus = "submitted"
	SubmissionEvaluating SubmissionStatus = "evaluating"
	SubmissionWinner     SubmissionStatus = "winner"
)

type Submission struct {
	ID          int              `json:"id"`
	TeamID      int              `json:"team_id"`
	HackathonID int              `json:"hackathon_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	RepoURL     *string          `json:"repo_url,omitempty"`
	DemoURL     *string          `json:"demo_url,omitempty"`
	ArchivePath *string          `json:"archive_path,omitempty"`
	Status      SubmissionStatus `json:"status"`
	SubmittedAt *time.Time       `json:"submitted_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Team *Team `json:"team,omitempty"`
}

// Editable проверяет инвариант: править сабмишен может только лидер команды
// и только пока статус draft.
func (s Submission) Editable(userID int, team *Team) bool {
	if s.Status != SubmissionDraft {
		return false
	}
	return team != nil && team.LeaderID == userID
}
