package services

import (
	"time"

	"github.com/Dosada05/hackhub/models"
)

// Производные метрики дашбордов. Чистые функции над уже полученными
// данными: никаких дополнительных походов на бэкенд.

// FunnelCounts — исходные счётчики воронки участника по всем хакатонам.
type FunnelCounts struct {
	Joined     int
	TeamFormed int
	Building   int
	Submitted  int
}

var funnelLabels = [4]string{"Joined", "Team Formed", "Building", "Submitted"}

// Funnel нормализует счётчики относительно наибольшей ступени.
func Funnel(counts FunnelCounts) []models.FunnelStage {
	values := [4]int{counts.Joined, counts.TeamFormed, counts.Building, counts.Submitted}

	max := 0
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	stages := make([]models.FunnelStage, 0, len(values))
	for i, v := range values {
		percent := 0
		if max > 0 {
			percent = v * 100 / max
		}
		stages = append(stages, models.FunnelStage{
			Label:   funnelLabels[i],
			Count:   v,
			Percent: percent,
		})
	}
	return stages
}

// HackathonFunnel — вариант для одного хакатона: каждая ступень либо
// пройдена (100), либо нет (0).
func HackathonFunnel(joined, teamFormed, building, submitted bool) []models.FunnelStage {
	flags := [4]bool{joined, teamFormed, building, submitted}

	stages := make([]models.FunnelStage, 0, len(flags))
	for i, done := range flags {
		stage := models.FunnelStage{Label: funnelLabels[i]}
		if done {
			stage.Count = 1
			stage.Percent = 100
		}
		stages = append(stages, stage)
	}
	return stages
}

var workloadLabels = [4]string{"Today", "3 Days", "7 Days", "14 Days"}

// WorkloadBuckets раскладывает дедлайны по полуоткрытым окнам:
// сегодня, (0, 3], (3, 7], (7, 14] календарных дней от текущей даты.
// Прошедшие и более дальние дедлайны не учитываются.
func WorkloadBuckets(now time.Time, deadlines []time.Time) []models.WorkloadBucket {
	counts := [4]int{}
	for _, d := range deadlines {
		days := daysUntil(now, d)
		switch {
		case days < 0:
			continue
		case days == 0:
			counts[0]++
		case days <= 3:
			counts[1]++
		case days <= 7:
			counts[2]++
		case days <= 14:
			counts[3]++
		}
	}

	buckets := make([]models.WorkloadBucket, 0, len(counts))
	for i, c := range counts {
		buckets = append(buckets, models.WorkloadBucket{Label: workloadLabels[i], Count: c})
	}
	return buckets
}

// daysUntil считает разницу в календарных днях, игнорируя время суток.
func daysUntil(now, deadline time.Time) int {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := deadline.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

const readinessMax = 10

// Readiness — радар готовности сабмишена: пять фиксированных осей,
// каждая оценивается простой эвристикой заполненности полей.
func Readiness(s models.Submission) []models.ReadinessAxis {
	axes := []models.ReadinessAxis{
		{Label: "Concept", Max: readinessMax},
		{Label: "Documentation", Max: readinessMax},
		{Label: "Repository", Max: readinessMax},
		{Label: "Demo", Max: readinessMax},
		{Label: "Packaging", Max: readinessMax},
	}

	if s.Title != "" {
		axes[0].Score = 5
		if len(s.Title) >= 10 {
			axes[0].Score = readinessMax
		}
	}

	switch {
	case len(s.Description) >= 200:
		axes[1].Score = readinessMax
	case len(s.Description) >= 50:
		axes[1].Score = 7
	case len(s.Description) > 0:
		axes[1].Score = 3
	}

	if s.RepoURL != nil && *s.RepoURL != "" {
		axes[2].Score = readinessMax
	}
	if s.DemoURL != nil && *s.DemoURL != "" {
		axes[3].Score = readinessMax
	}
	if s.ArchivePath != nil && *s.ArchivePath != "" {
		axes[4].Score = readinessMax
	}

	return axes
}
