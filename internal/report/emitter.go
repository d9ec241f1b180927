package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"mirifer/internal/domain"
)

// Meta carries per-document metadata for the emitter.
type Meta struct {
	AccessCode    string
	ReportType    Type
	DaysCompleted int
	FinalThoughts string
}

// Emitter turns an eligible entry list into a finished document. PDF or
// other layouts plug in here; the core only authorizes and feeds it.
type Emitter interface {
	Render(w io.Writer, entries []*domain.Entry, meta Meta) error
	ContentType() string
	FileExt() string
}

// TextEmitter renders the report as plain UTF-8 text.
type TextEmitter struct{}

func (TextEmitter) ContentType() string { return "text/plain; charset=utf-8" }
func (TextEmitter) FileExt() string     { return "txt" }

func (TextEmitter) Render(w io.Writer, entries []*domain.Entry, meta Meta) error {
	var b strings.Builder

	b.WriteString("MIRIFER JOURNEY REPORT\n")
	fmt.Fprintf(&b, "User: %s\n", meta.AccessCode)
	fmt.Fprintf(&b, "Days completed: %d\n", meta.DaysCompleted)
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().UTC().Format(time.RFC3339))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	for _, e := range entries {
		fmt.Fprintf(&b, "Day %d - %s\n", e.Day, e.Title)
		if e.Question != "" {
			fmt.Fprintf(&b, "Question: %s\n", e.Question)
		}
		b.WriteString("\nReflection:\n")
		b.WriteString(e.UserText)
		b.WriteString("\n\nMirifer:\n")
		b.WriteString(e.AIText)
		b.WriteString("\n\n" + strings.Repeat("-", 60) + "\n\n")
	}

	if meta.FinalThoughts != "" {
		b.WriteString("FINAL THOUGHTS\n\n")
		b.WriteString(meta.FinalThoughts)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
