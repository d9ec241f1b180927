package journey

import "mirifer/internal/domain"

// SelectMode resolves which reflection mode applies to a day: synthesis on
// day 7, day 14, or when explicitly requested; mirror otherwise. Any day
// value is accepted.
func SelectMode(day int, explicit domain.Mode) domain.Mode {
	if day == 7 || day == 14 || explicit == domain.ModeSynthesis {
		return domain.ModeSynthesis
	}
	return domain.ModeMirror
}
