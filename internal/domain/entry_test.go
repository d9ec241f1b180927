package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_HasContent(t *testing.T) {
	e := &Entry{UserText: "thoughts", AIText: "reflection"}
	assert.True(t, e.HasContent())

	assert.False(t, (&Entry{UserText: "thoughts"}).HasContent())
	assert.False(t, (&Entry{AIText: "reflection"}).HasContent())
	assert.False(t, (&Entry{UserText: "  ", AIText: "\n"}).HasContent())
}

func TestEntry_Status(t *testing.T) {
	assert.Equal(t, DayComplete, (&Entry{IsCompleted: true}).Status())
	assert.Equal(t, DayInProgress, (&Entry{UserText: "draft"}).Status())
	assert.Equal(t, DayNotStarted, (&Entry{}).Status())
}

func TestDayInfoFor(t *testing.T) {
	d := DayInfoFor(7)
	assert.Equal(t, 7, d.Day)
	assert.Equal(t, "Mid-Journey Synthesis", d.Title)
	assert.NotEmpty(t, d.Question)

	out := DayInfoFor(99)
	assert.Equal(t, "Day 99", out.Title)
	assert.Empty(t, out.Question)
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "Day 3", DefaultTitle(3))
}
