package models

import "time"

type Team struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	HackathonID      int       `json:"hackathon_id"`
	LeaderID         int       `json:"leader_id"`
	IsVerified       bool      `json:"is_verified"`
	SubmissionStatus string    `json:"submission_status,omitempty"`
	JoinCode         string    `json:"join_code,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	// Опциональные связанные сущности
	Leader    *User      `json:"leader,omitempty"`
	Members   []User     `json:"members,omitempty"`
	Hackathon *Hackathon `json:"hackathon,omitempty"`
}

// InviteStatus представляет статусы приглашения (командного и судейского).
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

type Invite struct {
	ID        int          `json:"id"`
	TeamID    int          `json:"team_id"`
	InviterID int          `json:"inviter_id"`
	Invitee   string       `json:"invitee_email"`
	Token     string       `json:"-"`
	Status    InviteStatus `json:"status"`
	ExpiresAt time.Time    `json:"expires_at"`
	CreatedAt time.Time    `json:"created_at"`

	Team    *Team `json:"team,omitempty"`
	Inviter *User `json:"inviter,omitempty"`
}
