package metrics

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"mirifer/internal/domain"
	"mirifer/internal/repository"
)

// recentSurveyLimit bounds the at-a-glance survey list.
const recentSurveyLimit = 5

// Overview is the headline cohort numbers.
type Overview struct {
	TotalUsers         int     `json:"totalUsers"`
	CompletedUsers     int     `json:"completedUsers"`
	CompletionRate     float64 `json:"completionRate"`
	D1Retention        float64 `json:"d1Retention"`
	AvgReflectionWords int     `json:"avgReflectionWords"`
	SurveySubmissions  int     `json:"surveySubmissions"`
	SurveyRate         float64 `json:"surveyRate"`
}

// DropOffPoint counts how many users completed a given day.
type DropOffPoint struct {
	Day   int `json:"day"`
	Users int `json:"users"`
}

// SurveyPreview projects a survey response for the at-a-glance review.
type SurveyPreview struct {
	AccessCode    string    `json:"access_code"`
	Definition    string    `json:"definition"`
	ThoughtChange string    `json:"thought_change"`
	WouldMiss     string    `json:"would_miss"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// CohortMetrics is the full derived cohort view. It is computed fresh on
// every call; nothing here is cached or persisted.
type CohortMetrics struct {
	Overview      Overview        `json:"overview"`
	DropOff       []DropOffPoint  `json:"dropOff"`
	RecentSurveys []SurveyPreview `json:"recentSurveys"`
}

// Aggregator folds the whole store into cohort metrics.
type Aggregator struct {
	entries repository.EntryRepo
	surveys repository.SurveyRepo
}

// NewAggregator creates an Aggregator over the given repositories.
func NewAggregator(entries repository.EntryRepo, surveys repository.SurveyRepo) *Aggregator {
	return &Aggregator{entries: entries, surveys: surveys}
}

// Collect computes cohort metrics with a full scan. Acceptable only because
// trial cohorts are small.
func (a *Aggregator) Collect(ctx context.Context) (*CohortMetrics, error) {
	entries, err := a.entries.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	surveyCount, err := a.surveys.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting surveys: %w", err)
	}
	recent, err := a.surveys.ListRecent(ctx, recentSurveyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent surveys: %w", err)
	}

	m := Compute(entries, surveyCount)
	m.RecentSurveys = make([]SurveyPreview, 0, len(recent))
	for _, s := range recent {
		m.RecentSurveys = append(m.RecentSurveys, SurveyPreview{
			AccessCode:    s.AccessCode,
			Definition:    s.Definition,
			ThoughtChange: s.ThoughtChange,
			WouldMiss:     s.WouldMiss,
			SubmittedAt:   s.SubmittedAt,
		})
	}
	return m, nil
}

// Compute folds entries and the survey total into cohort metrics. Pure; the
// drop-off curve is not forced monotonic because days can be completed out
// of order through the manual-save path.
func Compute(entries []*domain.Entry, surveyCount int) *CohortMetrics {
	// Per-user completed-day sets.
	userDays := make(map[string]map[int]bool)
	for _, e := range entries {
		if !e.IsCompleted {
			continue
		}
		if userDays[e.UserID] == nil {
			userDays[e.UserID] = make(map[int]bool)
		}
		userDays[e.UserID][e.Day] = true
	}

	totalUsers := len(userDays)
	completedUsers := 0
	day1Users := 0
	day1And2Users := 0
	for _, days := range userDays {
		if len(days) == domain.TotalDays {
			completedUsers++
		}
		if days[1] {
			day1Users++
			if days[2] {
				day1And2Users++
			}
		}
	}

	completionRate := 0.0
	if totalUsers > 0 {
		completionRate = round2(float64(completedUsers) / float64(totalUsers) * 100)
	}
	d1Retention := 0.0
	if day1Users > 0 {
		d1Retention = round2(float64(day1And2Users) / float64(day1Users) * 100)
	}

	wordSum, reflections := 0, 0
	for _, e := range entries {
		if strings.TrimSpace(e.UserText) == "" {
			continue
		}
		wordSum += len(strings.Fields(e.UserText))
		reflections++
	}
	avgWords := 0
	if reflections > 0 {
		avgWords = int(math.Round(float64(wordSum) / float64(reflections)))
	}

	surveyRate := 0.0
	if completedUsers > 0 {
		surveyRate = round2(float64(surveyCount) / float64(completedUsers) * 100)
	}

	dropOff := make([]DropOffPoint, 0, domain.TotalDays)
	for day := 1; day <= domain.TotalDays; day++ {
		users := 0
		for _, days := range userDays {
			if days[day] {
				users++
			}
		}
		dropOff = append(dropOff, DropOffPoint{Day: day, Users: users})
	}

	return &CohortMetrics{
		Overview: Overview{
			TotalUsers:         totalUsers,
			CompletedUsers:     completedUsers,
			CompletionRate:     completionRate,
			D1Retention:        d1Retention,
			AvgReflectionWords: avgWords,
			SurveySubmissions:  surveyCount,
			SurveyRate:         surveyRate,
		},
		DropOff: dropOff,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
