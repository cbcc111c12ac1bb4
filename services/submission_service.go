package services

import (
	"context"
	"strings"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/upstream"
)

type SubmissionInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	RepoURL     *string `json:"repo_url,omitempty"`
	DemoURL     *string `json:"demo_url,omitempty"`
}

type SubmissionService interface {
	ListSubmissions(ctx context.Context, scope upstream.Scope) ([]models.Submission, error)
	GetSubmission(ctx context.Context, scope upstream.Scope, id int) (*models.Submission, error)
	CreateSubmission(ctx context.Context, scope upstream.Scope, teamID int, input SubmissionInput) (*models.Submission, error)
	UpdateSubmission(ctx context.Context, scope upstream.Scope, userID int, id int, input SubmissionInput) (*models.Submission, error)
	Finalize(ctx context.Context, scope upstream.Scope, userID int, id int) (*models.Submission, error)
	ArchiveURL(submission *models.Submission) string
}

type submissionService struct {
	api *upstream.Client
	// База для скачивания архивов, когда бэкенд хранит голое имя файла.
	uploadsBaseURL string
}

func NewSubmissionService(api *upstream.Client, uploadsBaseURL string) SubmissionService {
	return &submissionService{
		api:            api,
		uploadsBaseURL: strings.TrimSuffix(uploadsBaseURL, "/"),
	}
}

func (s *submissionService) ListSubmissions(ctx context.Context, scope upstream.Scope) ([]models.Submission, error) {
	var resp struct {
		Message     string              `json:"message"`
		Submissions []models.Submission `json:"submissions"`
	}
	if err := s.api.Get(ctx, scope, upstream.Submissions, &resp); err != nil {
		return nil, err
	}
	return resp.Submissions, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, scope upstream.Scope, id int) (*models.Submission, error) {
	var resp struct {
		Message    string            `json:"message"`
		Submission models.Submission `json:"submission"`
	}
	if err := s.api.Get(ctx, scope, upstream.SubmissionPath(id), &resp); err != nil {
		return nil, err
	}
	return &resp.Submission, nil
}

func (s *submissionService) CreateSubmission(ctx context.Context, scope upstream.Scope, teamID int, input SubmissionInput) (*models.Submission, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrSubmissionTitleRequired
	}

	body := struct {
		TeamID int `json:"team_id"`
		SubmissionInput
	}{TeamID: teamID, SubmissionInput: input}

	var resp struct {
		Message    string            `json:"message"`
		Submission models.Submission `json:"submission"`
	}
	if err := s.api.Post(ctx, scope, upstream.Submissions, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Submission, nil
}

func (s *submissionService) UpdateSubmission(ctx context.Context, scope upstream.Scope, userID int, id int, input SubmissionInput) (*models.Submission, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrSubmissionTitleRequired
	}

	current, err := s.editableSubmission(ctx, scope, userID, id)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Message    string            `json:"message"`
		Submission models.Submission `json:"submission"`
	}
	if err := s.api.Put(ctx, scope, upstream.SubmissionPath(current.ID), input, &resp); err != nil {
		return nil, err
	}
	return &resp.Submission, nil
}

func (s *submissionService) Finalize(ctx context.Context, scope upstream.Scope, userID int, id int) (*models.Submission, error) {
	if _, err := s.editableSubmission(ctx, scope, userID, id); err != nil {
		return nil, err
	}

	var resp struct {
		Message    string            `json:"message"`
		Submission models.Submission `json:"submission"`
	}
	if err := s.api.Post(ctx, scope, upstream.SubmissionFinalizePath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Submission, nil
}

// editableSubmission проверяет инвариант редактирования до сетевой
// мутации: статус draft и запрашивающий — лидер команды.
func (s *submissionService) editableSubmission(ctx context.Context, scope upstream.Scope, userID, id int) (*models.Submission, error) {
	submission, err := s.GetSubmission(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !submission.Editable(userID, submission.Team) {
		return nil, ErrSubmissionNotEditable
	}
	return submission, nil
}

// ArchiveURL восстанавливает ссылку на архив сабмишена из сохранённого
// пути. Три случая: абсолютный URL, корневой путь, голое имя файла —
// последнее дополняется базой каталога загрузок.
func (s *submissionService) ArchiveURL(submission *models.Submission) string {
	if submission == nil || submission.ArchivePath == nil || *submission.ArchivePath == "" {
		return ""
	}
	path := *submission.ArchivePath

	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "/"):
		return s.uploadsBaseURL + path
	default:
		return s.uploadsBaseURL + "/uploads/" + path
	}
}
