package journey

import (
	"sort"

	"mirifer/internal/domain"
)

// State is the derived per-user journey status. It is recomputed from the
// stored entries on every read and never persisted.
type State struct {
	CompletedDays   []int
	TotalDays       int
	IsComplete      bool
	HasCompleteData bool
}

// DeriveState folds a user's entries into their journey state.
//
// CompletedDays are the sorted distinct days with is_completed set.
// IsComplete requires the completed set to be exactly 1..14, checked by
// pairwise index equality, not just length. HasCompleteData additionally
// requires every completed entry to still hold non-blank user and generated
// text, distinguishing "finished but since wiped" from "finished and
// intact".
func DeriveState(entries []*domain.Entry) State {
	byDay := make(map[int]*domain.Entry)
	for _, e := range entries {
		if e.IsCompleted {
			byDay[e.Day] = e
		}
	}

	days := make([]int, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Ints(days)

	isComplete := len(days) == domain.TotalDays
	if isComplete {
		for i, d := range days {
			if d != i+1 {
				isComplete = false
				break
			}
		}
	}

	hasData := isComplete
	if hasData {
		for _, e := range byDay {
			if !e.HasContent() {
				hasData = false
				break
			}
		}
	}

	return State{
		CompletedDays:   days,
		TotalDays:       domain.TotalDays,
		IsComplete:      isComplete,
		HasCompleteData: hasData,
	}
}
