package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/hackhub/models"
	"github.com/Dosada05/hackhub/rubric"
	"github.com/Dosada05/hackhub/upstream"
)

// fakeUpstream эмулирует бэкенд для судейских эндпоинтов и записывает
// все пришедшие запросы.
type fakeUpstream struct {
	mu       sync.Mutex
	requests []recordedRequest

	// Существующая оценка для GET .../status; nil означает 404.
	existing *models.Evaluation
}

type recordedRequest struct {
	Method  string
	Path    string
	Payload map[string]any
}

func (f *fakeUpstream) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			body, _ := io.ReadAll(r.Body)
			if len(body) > 0 {
				json.Unmarshal(body, &rec.Payload)
			}
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		existing := f.existing
		f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/status"):
			if existing == nil {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"evaluation not found"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"message":    "ok",
				"evaluation": existing,
			})
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"message": "ok",
				"evaluation": models.Evaluation{
					ID:     99,
					TeamID: 7,
					Status: models.EvaluationSubmitted,
				},
			})
		}
	}
}

func (f *fakeUpstream) writes() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []recordedRequest
	for _, r := range f.requests {
		if r.Method != http.MethodGet {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeUpstream) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newJudgeService(t *testing.T, fake *fakeUpstream) JudgeService {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	api, err := upstream.NewClient(upstream.Config{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, srv.Client())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { api.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJudgeService(api, nil, logger)
}

func judgedHackathon() *models.Hackathon {
	return &models.Hackathon{
		ID:     3,
		Status: models.HackathonJudging,
		Criteria: []models.RubricCriteria{
			{Name: "Innovation", MaxScore: 10},
			{Name: "Code Quality", MaxScore: 10},
		},
	}
}

var testScope = upstream.Scope{Token: "tok", HackathonID: 3}

func TestSubmit_ValidationBlocksBeforeAnyNetworkCall(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	// Один критерий без балла.
	form := EvaluationForm{
		Scores:   []ScoreInput{{Criterion: "Innovation", Score: 8}},
		Feedback: "strong concept, weak execution",
	}
	_, err := svc.Submit(context.Background(), testScope, judgedHackathon(), 7, form)
	if !errors.Is(err, rubric.ErrIncompleteScores) {
		t.Fatalf("expected ErrIncompleteScores, got %v", err)
	}
	if n := fake.total(); n != 0 {
		t.Fatalf("validation failure must not reach the network, saw %d requests", n)
	}

	// Полные баллы, но короткий отзыв.
	form = EvaluationForm{
		Scores: []ScoreInput{
			{Criterion: "Innovation", Score: 8},
			{Criterion: "Code Quality", Score: 6},
		},
		Feedback: "fine",
	}
	_, err = svc.Submit(context.Background(), testScope, judgedHackathon(), 7, form)
	if !errors.Is(err, rubric.ErrFeedbackTooShort) {
		t.Fatalf("expected ErrFeedbackTooShort, got %v", err)
	}
	if n := fake.total(); n != 0 {
		t.Fatalf("validation failure must not reach the network, saw %d requests", n)
	}
}

func TestSubmit_CoercesUnmappedFieldsToOne(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	// Рубрика из двух критериев покрывает только innovation и execution:
	// оставшиеся поля бэкенда при финальном сабмите поднимаются до 1.
	form := EvaluationForm{
		Scores: []ScoreInput{
			{Criterion: "Innovation", Score: 5},
			{Criterion: "Code Quality", Score: 7},
		},
		Feedback: "solid work across the board",
	}
	if _, err := svc.Submit(context.Background(), testScope, judgedHackathon(), 7, form); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	writes := fake.writes()
	if len(writes) != 1 {
		t.Fatalf("expected one write request, got %d", len(writes))
	}
	w := writes[0]
	if w.Method != http.MethodPost || !strings.HasSuffix(w.Path, "/judge/evaluations/7/submit") {
		t.Fatalf("first submit must POST the submit path, got %s %s", w.Method, w.Path)
	}
	wantScores := map[string]float64{
		"score_innovation":   5,
		"score_feasibility":  1,
		"score_execution":    7,
		"score_presentation": 1,
	}
	for field, want := range wantScores {
		if got, _ := w.Payload[field].(float64); got != want {
			t.Errorf("%s = %v, want %v", field, w.Payload[field], want)
		}
	}
	if w.Payload["comments"] != "solid work across the board" {
		t.Errorf("comments = %v", w.Payload["comments"])
	}
}

func TestSaveDraft_KeepsZeroesAndSkipsValidation(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	// Частичный черновик: один балл, отзыва нет. Гейт сабмита не применяется.
	form := EvaluationForm{
		Scores: []ScoreInput{{Criterion: "Innovation", Score: 4}},
	}
	if _, err := svc.SaveDraft(context.Background(), testScope, judgedHackathon(), 7, form); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	writes := fake.writes()
	if len(writes) != 1 {
		t.Fatalf("expected one write request, got %d", len(writes))
	}
	w := writes[0]
	if w.Method != http.MethodPost || !strings.HasSuffix(w.Path, "/judge/evaluations/7/draft") {
		t.Fatalf("draft must POST the draft path, got %s %s", w.Method, w.Path)
	}
	// Нули черновика сохраняются как есть, без подъёма до 1.
	for _, field := range []string{"score_feasibility", "score_execution", "score_presentation"} {
		if got, _ := w.Payload[field].(float64); got != 0 {
			t.Errorf("%s = %v, want 0 in a draft", field, w.Payload[field])
		}
	}
	if got, _ := w.Payload["score_innovation"].(float64); got != 4 {
		t.Errorf("score_innovation = %v, want 4", w.Payload["score_innovation"])
	}
}

func TestSubmit_UpdatesAlreadySubmittedEvaluation(t *testing.T) {
	fake := &fakeUpstream{
		existing: &models.Evaluation{
			ID:     12,
			TeamID: 7,
			Status: models.EvaluationSubmitted,
		},
	}
	svc := newJudgeService(t, fake)

	form := EvaluationForm{
		Scores: []ScoreInput{
			{Criterion: "Innovation", Score: 9},
			{Criterion: "Code Quality", Score: 8},
		},
		Feedback: "revised after the live demo",
	}
	if _, err := svc.Submit(context.Background(), testScope, judgedHackathon(), 7, form); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	writes := fake.writes()
	if len(writes) != 1 {
		t.Fatalf("expected one write request, got %d", len(writes))
	}
	w := writes[0]
	if w.Method != http.MethodPut || !strings.HasSuffix(w.Path, "/judge/evaluations/7") {
		t.Fatalf("re-submit must PUT the update path, got %s %s", w.Method, w.Path)
	}
}

func TestSubmitAndDraft_BlockedWhenHackathonLocked(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	locked := judgedHackathon()
	locked.Status = models.HackathonCompleted

	form := EvaluationForm{
		Scores: []ScoreInput{
			{Criterion: "Innovation", Score: 9},
			{Criterion: "Code Quality", Score: 8},
		},
		Feedback: "well past the deadline now",
	}
	if _, err := svc.Submit(context.Background(), testScope, locked, 7, form); !errors.Is(err, ErrEvaluationLocked) {
		t.Fatalf("expected ErrEvaluationLocked on submit, got %v", err)
	}
	if _, err := svc.SaveDraft(context.Background(), testScope, locked, 7, form); !errors.Is(err, ErrEvaluationLocked) {
		t.Fatalf("expected ErrEvaluationLocked on draft, got %v", err)
	}
	if writes := fake.writes(); len(writes) != 0 {
		t.Fatalf("locked hackathon must produce no writes, got %d", len(writes))
	}
}

func TestEvaluationStatus_NotFoundMeansNoEvaluation(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	eval, err := svc.EvaluationStatus(context.Background(), testScope, 7)
	if err != nil {
		t.Fatalf("404 must not surface as an error: %v", err)
	}
	if eval != nil {
		t.Fatalf("expected nil evaluation, got %+v", eval)
	}
}

func TestSheet_MapsStoredScoresBackOntoCriteria(t *testing.T) {
	fake := &fakeUpstream{
		existing: &models.Evaluation{
			ID:                12,
			TeamID:            7,
			ScoreInnovation:   6,
			ScoreExecution:    8,
			ScoreFeasibility:  1,
			ScorePresentation: 1,
			Comments:          "good start",
			Status:            models.EvaluationDraft,
		},
	}
	svc := newJudgeService(t, fake)

	sheet, err := svc.Sheet(context.Background(), testScope, judgedHackathon(), 7)
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}

	if len(sheet.Criteria) != 2 {
		t.Fatalf("expected 2 criteria rows, got %d", len(sheet.Criteria))
	}
	if sheet.Criteria[0].Name != "Innovation" || sheet.Criteria[0].Score != 6 {
		t.Errorf("innovation row = %+v", sheet.Criteria[0])
	}
	if sheet.Criteria[1].Name != "Code Quality" || sheet.Criteria[1].Score != 8 {
		t.Errorf("execution row = %+v", sheet.Criteria[1])
	}
	if sheet.Feedback != "good start" {
		t.Errorf("feedback = %q", sheet.Feedback)
	}
	if sheet.Status != rubric.StatusDraft || !sheet.CanEdit {
		t.Errorf("status = %s, canEdit = %v", sheet.Status, sheet.CanEdit)
	}
	if sheet.Total != 14 || sheet.Max != 20 {
		t.Errorf("total = %d/%d, want 14/20", sheet.Total, sheet.Max)
	}
}

func TestSheet_DefaultRubricWhenUnconfigured(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	h := &models.Hackathon{ID: 3, Status: models.HackathonJudging}
	sheet, err := svc.Sheet(context.Background(), testScope, h, 7)
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if len(sheet.Criteria) != 4 {
		t.Fatalf("expected the default 4-criterion rubric, got %d rows", len(sheet.Criteria))
	}
	if sheet.Status != rubric.StatusNone {
		t.Errorf("status = %s, want none", sheet.Status)
	}
	if sheet.Max != 40 {
		t.Errorf("max = %d, want 40", sheet.Max)
	}
}

func TestReportTeam_RequiresReason(t *testing.T) {
	fake := &fakeUpstream{}
	svc := newJudgeService(t, fake)

	if err := svc.ReportTeam(context.Background(), testScope, 7, "   "); !errors.Is(err, ErrReportReasonRequired) {
		t.Fatalf("expected ErrReportReasonRequired, got %v", err)
	}
	if n := fake.total(); n != 0 {
		t.Fatalf("missing reason must not reach the network, saw %d requests", n)
	}

	if err := svc.ReportTeam(context.Background(), testScope, 7, "duplicate submission"); err != nil {
		t.Fatalf("ReportTeam: %v", err)
	}
	writes := fake.writes()
	if len(writes) != 1 || !strings.HasSuffix(writes[0].Path, "/judge/teams/7/report") {
		t.Fatalf("unexpected writes: %+v", writes)
	}
}
