package services

import "errors"

// Общие ошибки бизнес-правил, используемые в разных сервисах и маппинге HTTP.
var (
	// Сессия и скоуп
	ErrNoHackathonSelected = errors.New("no hackathon is selected for this session")

	// Команды
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrJoinCodeRequired  = errors.New("join code is required")
	ErrLeaderActionOnly  = errors.New("only the team leader can perform this action")
	ErrInviteeRequired   = errors.New("invitee email is required")
	ErrInviteBadResponse = errors.New("invite response must be accepted or declined")

	// Сабмишены
	ErrSubmissionTitleRequired = errors.New("submission title is required")
	ErrSubmissionNotEditable   = errors.New("submission can be edited only while it is a draft and only by the team leader")

	// Судейство
	ErrEvaluationLocked     = errors.New("evaluations are locked once the hackathon is completed")
	ErrReportReasonRequired = errors.New("report reason is required")

	// Профиль
	ErrProfileNameRequired = errors.New("profile name is required")
)
