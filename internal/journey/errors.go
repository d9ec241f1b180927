package journey

import "errors"

var (
	// ErrInvalidDay indicates the day is missing or outside 1..14.
	ErrInvalidDay = errors.New("day must be between 1 and 14")

	// ErrMissingText indicates a respond submission without any text.
	ErrMissingText = errors.New("missing reflection text")

	// ErrTextTooLong indicates the reflection exceeds the accepted length.
	ErrTextTooLong = errors.New("reflection is too long (max 6000 chars)")

	// ErrGeneration indicates the generation backend call failed. The cause
	// is wrapped; callers surface a generic message and log the detail.
	ErrGeneration = errors.New("failed to generate reflection")
)
