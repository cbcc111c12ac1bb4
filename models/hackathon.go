package models

import "time"

// HackathonStatus представляет фазы хакатона, соответствующие ENUM на бэкенде.
type HackathonStatus string

const (
	HackathonUpcoming     HackathonStatus = "upcoming"
	HackathonRegistration HackathonStatus = "registration"
	HackathonOngoing      HackathonStatus = "ongoing"
	HackathonJudging      HackathonStatus = "judging"
	HackathonCompleted    HackathonStatus = "completed"
)

type Hackathon struct {
	ID                   int             `json:"id"`
	Name                 string          `json:"name"`
	Description          *string         `json:"description,omitempty"`
	Status               HackathonStatus `json:"status"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	RegistrationDeadline time.Time       `json:"registration_deadline"`
	SubmissionDeadline   time.Time       `json:"submission_deadline"`
	ResultDate           *time.Time      `json:"result_date,omitempty"`
	ResultsPublished     bool            `json:"results_published"`
	Location             *string         `json:"location,omitempty"`
	ThemeTags            []string        `json:"theme_tags,omitempty"`
	BannerURL            *string         `json:"banner_url,omitempty"`
	MaxTeamSize          int             `json:"max_team_size"`
	CreatedAt            time.Time       `json:"created_at"`

	// Опциональные связанные сущности
	Organizer *User            `json:"organizer,omitempty"`
	Criteria  []RubricCriteria `json:"judging_criteria,omitempty"`
}

// RubricCriteria — один настраиваемый критерий оценивания хакатона.
type RubricCriteria struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	MaxScore    int     `json:"max_score"`
}

// Locked сообщает, закрыт ли хакатон для любых изменений оценок.
func (h Hackathon) Locked() bool {
	return h.Status == HackathonCompleted || h.ResultsPublished
}

type LeaderboardRow struct {
	Rank       int     `json:"rank"`
	TeamID     int     `json:"team_id"`
	TeamName   string  `json:"team_name"`
	Project    string  `json:"project"`
	TotalScore float64 `json:"total_score"`
	IsWinner   bool    `json:"is_winner"`
}
