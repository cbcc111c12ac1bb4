package services

import (
	"testing"
	"time"

	"github.com/Dosada05/hackhub/models"
)

func TestWorkloadBuckets(t *testing.T) {
	now := time.Date(2026, time.September, 1, 14, 30, 0, 0, time.UTC)

	deadlines := []time.Time{
		now,                   // сегодня
		now.AddDate(0, 0, 2),  // окно (0, 3]
		now.AddDate(0, 0, 5),  // окно (3, 7]
		now.AddDate(0, 0, 10), // окно (7, 14]
	}
	buckets := WorkloadBuckets(now, deadlines)

	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}
	want := []struct {
		label string
		count int
	}{
		{"Today", 1},
		{"3 Days", 1},
		{"7 Days", 1},
		{"14 Days", 1},
	}
	for i, w := range want {
		if buckets[i].Label != w.label || buckets[i].Count != w.count {
			t.Errorf("bucket %d = %s/%d, want %s/%d", i, buckets[i].Label, buckets[i].Count, w.label, w.count)
		}
	}
}

func TestWorkloadBuckets_BoundariesAndExclusions(t *testing.T) {
	now := time.Date(2026, time.September, 1, 23, 50, 0, 0, time.UTC)

	deadlines := []time.Time{
		now.AddDate(0, 0, -1), // прошёл — не учитывается
		now.AddDate(0, 0, 3),  // граница включительно: окно 3 дней
		now.AddDate(0, 0, 4),  // первый день окна 7 дней
		now.AddDate(0, 0, 14), // граница включительно: окно 14 дней
		now.AddDate(0, 0, 15), // за горизонтом — не учитывается
	}
	buckets := WorkloadBuckets(now, deadlines)

	got := [4]int{buckets[0].Count, buckets[1].Count, buckets[2].Count, buckets[3].Count}
	if got != [4]int{0, 1, 1, 1} {
		t.Fatalf("counts = %v, want [0 1 1 1]", got)
	}
}

func TestWorkloadBuckets_CalendarDaysNotHours(t *testing.T) {
	// Дедлайн рано утром завтрашнего дня — до него меньше суток, но это
	// всё равно «завтра», а не «сегодня».
	now := time.Date(2026, time.September, 1, 23, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, time.September, 2, 1, 0, 0, 0, time.UTC)

	buckets := WorkloadBuckets(now, []time.Time{deadline})
	if buckets[0].Count != 0 || buckets[1].Count != 1 {
		t.Fatalf("deadline on the next calendar day must land in the 3-day window: %+v", buckets)
	}
}

func TestFunnel_NormalizesToLargestStage(t *testing.T) {
	stages := Funnel(FunnelCounts{Joined: 8, TeamFormed: 4, Building: 2, Submitted: 1})

	wantPercent := []int{100, 50, 25, 12}
	for i, w := range wantPercent {
		if stages[i].Percent != w {
			t.Errorf("stage %q: percent = %d, want %d", stages[i].Label, stages[i].Percent, w)
		}
	}
	if stages[0].Label != "Joined" || stages[3].Label != "Submitted" {
		t.Errorf("unexpected stage order: %+v", stages)
	}
}

func TestFunnel_AllZero(t *testing.T) {
	for _, st := range Funnel(FunnelCounts{}) {
		if st.Percent != 0 || st.Count != 0 {
			t.Fatalf("empty funnel must be all zeroes, got %+v", st)
		}
	}
}

func TestHackathonFunnel(t *testing.T) {
	stages := HackathonFunnel(true, true, false, false)

	if stages[0].Percent != 100 || stages[1].Percent != 100 {
		t.Errorf("completed stages must be 100: %+v", stages[:2])
	}
	if stages[2].Percent != 0 || stages[3].Percent != 0 {
		t.Errorf("incomplete stages must be 0: %+v", stages[2:])
	}
}

func TestReadiness(t *testing.T) {
	repo := "https://github.com/acme/project"
	empty := ""

	s := models.Submission{
		Title:       "Realtime crop yield forecaster",
		Description: "A tool that ingests weather data and satellite imagery to forecast yields per field.",
		RepoURL:     &repo,
		DemoURL:     &empty,
	}
	axes := Readiness(s)

	if len(axes) != 5 {
		t.Fatalf("expected 5 axes, got %d", len(axes))
	}
	if axes[0].Score != 10 {
		t.Errorf("long title: concept = %d, want 10", axes[0].Score)
	}
	if axes[1].Score != 7 {
		t.Errorf("mid-length description: documentation = %d, want 7", axes[1].Score)
	}
	if axes[2].Score != 10 {
		t.Errorf("repo url present: repository = %d, want 10", axes[2].Score)
	}
	if axes[3].Score != 0 {
		t.Errorf("empty demo url: demo = %d, want 0", axes[3].Score)
	}
	if axes[4].Score != 0 {
		t.Errorf("no archive: packaging = %d, want 0", axes[4].Score)
	}
}

func TestReadiness_EmptySubmission(t *testing.T) {
	for _, axis := range Readiness(models.Submission{}) {
		if axis.Score != 0 {
			t.Fatalf("empty submission: axis %q = %d, want 0", axis.Label, axis.Score)
		}
		if axis.Max != 10 {
			t.Fatalf("axis %q max = %d, want 10", axis.Label, axis.Max)
		}
	}
}
