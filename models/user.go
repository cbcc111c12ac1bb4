package models

import "time"

// UserRole представляет роли пользователей, соответствующие ENUM на бэкенде.
type UserRole string

const (
	RoleParticipant UserRole = "participant"
	RoleJudge       UserRole = "judge"
	RoleAdmin       UserRole = "admin"
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Profile *Profile `json:"profile,omitempty"`
}

type Profile struct {
	Name        string       `json:"name"`
	AvatarURL   *string      `json:"avatar_url,omitempty"`
	Bio         *string      `json:"bio,omitempty"`
	Links       []string     `json:"links,omitempty"`
	Skills      []string     `json:"skills,omitempty"`
	Experiences []Experience `json:"experiences,omitempty"`
}

type Experience struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
