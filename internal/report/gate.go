package report

import (
	"fmt"
	"sort"

	"mirifer/internal/domain"
)

// Type identifies which report is being requested.
type Type string

const (
	TypePartial Type = "partial"
	Type7Day    Type = "7-day"
	Type14Day   Type = "14-day"
)

// Reason classifies why a report was refused.
type Reason string

const (
	// ReasonNoData: no day has both texts intact.
	ReasonNoData Reason = "no_data"

	// ReasonMissingDays: the required day range has gaps.
	ReasonMissingDays Reason = "missing_days"

	// ReasonIncompleteData: the days are present but content was wiped.
	ReasonIncompleteData Reason = "incomplete_data"
)

// IneligibleError is the structured rejection for a report request. Code is
// machine-readable and stable; Message is user-facing and distinguishes
// no-data from missing-days from wiped-days.
type IneligibleError struct {
	Code    string
	Reason  Reason
	Message string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ineligible(reason Reason, message string) *IneligibleError {
	return &IneligibleError{Code: "REPORT_INCOMPLETE", Reason: reason, Message: message}
}

// CheckEligibility decides whether a report of the given type may be
// produced from the user's entries, and returns the subset it must be built
// from. It only reads; document generation is authorized, not performed.
func CheckEligibility(entries []*domain.Entry, typ Type) ([]*domain.Entry, *IneligibleError) {
	switch typ {
	case Type7Day:
		return checkSevenDay(entries)
	default:
		// Partial and 14-day share the permissive rule: any day that still
		// holds both texts qualifies. See DESIGN.md for the 14-day
		// discrepancy note.
		return checkIntactSubset(entries)
	}
}

func checkIntactSubset(entries []*domain.Entry) ([]*domain.Entry, *IneligibleError) {
	var intact []*domain.Entry
	for _, e := range entries {
		if e.HasContent() {
			intact = append(intact, e)
		}
	}
	if len(intact) == 0 {
		return nil, ineligible(ReasonNoData, "Report unavailable: complete at least one day first.")
	}
	sort.Slice(intact, func(i, j int) bool { return intact[i].Day < intact[j].Day })
	return intact, nil
}

func checkSevenDay(entries []*domain.Entry) ([]*domain.Entry, *IneligibleError) {
	var week []*domain.Entry
	for _, e := range entries {
		if e.Day <= 7 {
			week = append(week, e)
		}
	}
	sort.Slice(week, func(i, j int) bool { return week[i].Day < week[j].Day })

	// Days 1..7 as an exact, order-matching set: no gaps, no extras.
	if len(week) != 7 {
		return nil, ineligible(ReasonMissingDays, "Report unavailable: complete Days 1-7 first.")
	}
	for i, e := range week {
		if e.Day != i+1 {
			return nil, ineligible(ReasonMissingDays, "Report unavailable: complete Days 1-7 first.")
		}
	}

	for _, e := range week {
		if !e.HasContent() {
			return nil, ineligible(ReasonIncompleteData, "Report unavailable: your journey data is incomplete.")
		}
	}
	return week, nil
}
