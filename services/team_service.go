package services

import (
	"context"
	"strings"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/upstream"
)

type CreateTeamInput struct {
	Name        string `json:"name"`
	HackathonID int    `json:"hackathon_id,omitempty"`
}

type UpdateTeamInput struct {
	Name *string `json:"name,omitempty"`
}

type TeamService interface {
	MyTeams(ctx context.Context, scope upstream.Scope) ([]models.Team, error)
	CreateTeam(ctx context.Context, scope upstream.Scope, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, scope upstream.Scope, teamID int) (*models.Team, error)
	UpdateTeam(ctx context.Context, scope upstream.Scope, userID, teamID int, input UpdateTeamInput) (*models.Team, error)
	RemoveMember(ctx context.Context, scope upstream.Scope, userID, teamID, memberID int) error
	CreateInvite(ctx context.Context, scope upstream.Scope, userID, teamID int, inviteeEmail string) (*models.Invite, error)
	RespondInvite(ctx context.Context, scope upstream.Scope, token string, accept bool) error
	JoinByCode(ctx context.Context, scope upstream.Scope, code string) (*models.Team, error)
}

type teamService struct {
	api *upstream.Client
}

func NewTeamService(api *upstream.Client) TeamService {
	return &teamService{api: api}
}

func (s *teamService) MyTeams(ctx context.Context, scope upstream.Scope) ([]models.Team, error) {
	var resp struct {
		Message string        `json:"message"`
		Teams   []models.Team `json:"teams"`
	}
	if err := s.api.Get(ctx, scope, upstream.TeamsMine, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

func (s *teamService) CreateTeam(ctx context.Context, scope upstream.Scope, input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	var resp struct {
		Message string      `json:"message"`
		Team    models.Team `json:"team"`
	}
	if err := s.api.Post(ctx, scope, upstream.Teams, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

func (s *teamService) GetTeam(ctx context.Context, scope upstream.Scope, teamID int) (*models.Team, error) {
	var resp struct {
		Message string      `json:"message"`
		Team    models.Team `json:"team"`
	}
	if err := s.api.Get(ctx, scope, upstream.TeamPath(teamID), &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, scope upstream.Scope, userID, teamID int, input UpdateTeamInput) (*models.Team, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, ErrTeamNameRequired
	}
	if err := s.requireLeader(ctx, scope, userID, teamID); err != nil {
		return nil, err
	}

	var resp struct {
		Message string      `json:"message"`
		Team    models.Team `json:"team"`
	}
	if err := s.api.Patch(ctx, scope, upstream.TeamPath(teamID), input, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}

func (s *teamService) RemoveMember(ctx context.Context, scope upstream.Scope, userID, teamID, memberID int) error {
	// Выйти из команды участник может сам, исключать других — только лидер.
	if userID != memberID {
		if err := s.requireLeader(ctx, scope, userID, teamID); err != nil {
			return err
		}
	}
	return s.api.Delete(ctx, scope, upstream.TeamMemberPath(teamID, memberID), nil)
}

func (s *teamService) CreateInvite(ctx context.Context, scope upstream.Scope, userID, teamID int, inviteeEmail string) (*models.Invite, error) {
	if strings.TrimSpace(inviteeEmail) == "" {
		return nil, ErrInviteeRequired
	}
	if err := s.requireLeader(ctx, scope, userID, teamID); err != nil {
		return nil, err
	}

	input := struct {
		Email string `json:"email"`
	}{Email: inviteeEmail}

	var resp struct {
		Message string        `json:"message"`
		Invite  models.Invite `json:"invite"`
	}
	if err := s.api.Post(ctx, scope, upstream.TeamInvitesPath(teamID), input, &resp); err != nil {
		return nil, err
	}
	return &resp.Invite, nil
}

// requireLeader проверяет лидерство до сетевой мутации: управление
// командой доступно только её лидеру.
func (s *teamService) requireLeader(ctx context.Context, scope upstream.Scope, userID, teamID int) error {
	team, err := s.GetTeam(ctx, scope, teamID)
	if err != nil {
		return err
	}
	if team.LeaderID != userID {
		return ErrLeaderActionOnly
	}
	return nil
}

func (s *teamService) RespondInvite(ctx context.Context, scope upstream.Scope, token string, accept bool) error {
	status := models.InviteDeclined
	if accept {
		status = models.InviteAccepted
	}

	input := struct {
		Status models.InviteStatus `json:"status"`
	}{Status: status}

	return s.api.Post(ctx, scope, upstream.InviteRespondPath(token), input, nil)
}

func (s *teamService) JoinByCode(ctx context.Context, scope upstream.Scope, code string) (*models.Team, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrJoinCodeRequired
	}

	input := struct {
		Code string `json:"code"`
	}{Code: code}

	var resp struct {
		Message string      `json:"message"`
		Team    models.Team `json:"team"`
	}
	if err := s.api.Post(ctx, scope, upstream.TeamJoin, input, &resp); err != nil {
		return nil, err
	}
	return &resp.Team, nil
}
