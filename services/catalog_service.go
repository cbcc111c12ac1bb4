package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/upstream"
)

type HackathonFilter struct {
	Status string
	Search string
	Page   int
}

// CatalogService — публичный каталог хакатонов и таблицы лидеров.
type CatalogService interface {
	ListHackathons(ctx context.Context, scope upstream.Scope, filter HackathonFilter) ([]models.Hackathon, error)
	GetHackathon(ctx context.Context, scope upstream.Scope, id int) (*models.Hackathon, error)
	Leaderboard(ctx context.Context, scope upstream.Scope, hackathonID int) ([]models.LeaderboardRow, error)
}

type catalogService struct {
	api *upstream.Client
}

func NewCatalogService(api *upstream.Client) CatalogService {
	return &catalogService{api: api}
}

func (s *catalogService) ListHackathons(ctx context.Context, scope upstream.Scope, filter HackathonFilter) ([]models.Hackathon, error) {
	// Каталог — глобальный срез, tenant-заголовок отключается явно.
	scope.OmitHackathon = true

	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	path := upstream.Hackathons
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp struct {
		Message    string             `json:"message"`
		Hackathons []models.Hackathon `json:"hackathons"`
	}
	if err := s.api.Get(ctx, scope, path, &resp); err != nil {
		return nil, err
	}
	return resp.Hackathons, nil
}

func (s *catalogService) GetHackathon(ctx context.Context, scope upstream.Scope, id int) (*models.Hackathon, error) {
	var resp struct {
		Message   string           `json:"message"`
		Hackathon models.Hackathon `json:"hackathon"`
	}
	if err := s.api.Get(ctx, scope, upstream.HackathonPath(id), &resp); err != nil {
		return nil, err
	}
	return &resp.Hackathon, nil
}

func (s *catalogService) Leaderboard(ctx context.Context, scope upstream.Scope, hackathonID int) ([]models.LeaderboardRow, error) {
	var resp struct {
		Message     string                  `json:"message"`
		Leaderboard []models.LeaderboardRow `json:"leaderboard"`
	}
	if err := s.api.Get(ctx, scope, upstream.HackathonLeaderboard(hackathonID), &resp); err != nil {
		return nil, err
	}
	return resp.Leaderboard, nil
}
