package domain

import "fmt"

// DayInfo is the static catalog entry for one journey day: the default title
// and question used when a submission does not supply its own.
type DayInfo struct {
	Day      int
	Title    string
	Focus    string
	Question string
}

// Days is the fixed 14-day catalog.
var Days = []DayInfo{
	{1, "The Landscape of Uncertainty", "Noticing where uncertainty feels like a problem, not a puzzle.",
		"What is the one area of your life where you feel most stuck because you don't know the 'right' answer?"},
	{2, "The Cost of Certainty", "Observing the energy spent trying to find the perfect solution.",
		"How many hours or thoughts have you dedicated to 'fixing' this uncertainty in the last 48 hours?"},
	{3, "Repetition & Loops", "Noticing patterns, not fixing them.",
		"Is this a new feeling, or have you felt this exact type of stuckness before? Describe the pattern."},
	{4, "The Anxiety of Choice", "Observing how 'wanting the best' creates paralysis.",
		"If you had to choose a direction right now, knowing you could change it in a week, what would you choose? Why does it feel 'wrong'?"},
	{5, "External Noise", "Filtering out advice and expectations.",
		"Whose voice is the loudest in your head when you think about this uncertainty? (Parent, boss, friend, society?)"},
	{6, "The Safety of Stagnation", "Facing the hidden benefits of not deciding.",
		"What does being 'stuck' protect you from experiencing right now?"},
	{7, "Mid-Journey Synthesis", "Reflecting on the first week of awareness.",
		"What is the most surprising thing you've noticed about your stuckness this week?"},
	{8, "Understanding Tensions", "Identifying the push and pull of your situation.",
		"What two competing desires are creating this tension? (e.g., Freedom vs. Security)"},
	{9, "The Myth of Enough Information", "Accepting that more data won't solve a value conflict.",
		"What 'extra information' are you waiting for, and would it actually make the choice easy?"},
	{10, "Core Values under Pressure", "Seeing what remains when certainty is gone.",
		"Which of your core values feels most threatened by this uncertainty?"},
	{11, "The Worst-Case Scenario", "Walking through the feared outcome.",
		"If you chose the 'wrong' direction, what is the absolute worst that would happen? Can you survive it?"},
	{12, "The Best-Case Scenario", "Allowing yourself to imagine success.",
		"If you chose ANY direction and it worked out perfectly, what would that look like?"},
	{13, "Constraint as Freedom", "Preparing for a limited-time test.",
		"What would happen if you only had to commit to a direction for exactly 14 days?"},
	{14, "The Final Direction", "Synthesizing and choosing a test direction.",
		"Look back at your patterns. What is the one sentence that summarizes your journey, and what is your test direction?"},
}

// DayInfoFor returns the catalog entry for a day. Days outside 1..TotalDays
// get a number-derived title and an empty question.
func DayInfoFor(day int) DayInfo {
	if day >= 1 && day <= len(Days) {
		return Days[day-1]
	}
	return DayInfo{Day: day, Title: fmt.Sprintf("Day %d", day)}
}

// DefaultTitle returns the title used when a submission supplies none.
func DefaultTitle(day int) string {
	return fmt.Sprintf("Day %d", day)
}
