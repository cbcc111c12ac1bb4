package models

// FunnelStage — одна ступень воронки участника (joined → team → building → submitted).
type FunnelStage struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// WorkloadBucket — количество дедлайнов в окне (сегодня / 3 / 7 / 14 дней).
type WorkloadBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ReadinessAxis — одна ось радара готовности сабмишена.
type ReadinessAxis struct {
	Label string `json:"label"`
	Score int    `json:"score"`
	Max   int    `json:"max"`
}

type ParticipantDashboard struct {
	User          *User            `json:"user"`
	Teams         []Team           `json:"teams"`
	Hackathons    []Hackathon      `json:"hackathons"`
	Submissions   []Submission     `json:"submissions"`
	Unread        int              `json:"unread_notifications"`
	Funnel        []FunnelStage    `json:"funnel"`
	Workload      []WorkloadBucket `json:"workload"`
	Readiness     []ReadinessAxis  `json:"readiness,omitempty"`
	UpcomingCells []CalendarCell   `json:"calendar,omitempty"`
}

type JudgeDashboard struct {
	User        *User             `json:"user"`
	Assignments []JudgeAssignment `json:"assignments"`
	Events      []JudgeEvent      `json:"events"`
	Pending     int               `json:"pending_evaluations"`
	Completed   int               `json:"completed_evaluations"`
	Workload    []WorkloadBucket  `json:"workload"`
	Calendar    []CalendarCell    `json:"calendar,omitempty"`
}

// CalendarCell — ячейка месячной сетки календаря.
type CalendarCell struct {
	Day            int             `json:"day"`
	InCurrentMonth bool            `json:"in_current_month"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Events         []CalendarEvent `json:"events,omitempty"`
}

type CalendarEvent struct {
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
}
