package journey

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mirifer/internal/domain"
	"mirifer/internal/llm"
	"mirifer/internal/repository"
)

const (
	// mirrorContextDays is how many prior days a mirror reflection may see.
	mirrorContextDays = 3

	// priorUserTextLimit and priorAITextLimit bound how much of each prior
	// day is quoted into mirror context.
	priorUserTextLimit = 200
	priorAITextLimit   = 150
)

// PromptBundle is the assembled payload for one generation call.
type PromptBundle struct {
	System string
	User   string
	Task   llm.TaskType
}

// Assembler builds generation prompts from the current submission and a
// bounded window of prior entries. A failure to read history never blocks
// assembly: it degrades to a context-free prompt.
type Assembler struct {
	entries repository.EntryRepo
	log     *zap.Logger
}

// NewAssembler creates an Assembler reading prior entries from repo.
func NewAssembler(entries repository.EntryRepo, log *zap.Logger) *Assembler {
	return &Assembler{entries: entries, log: log}
}

// BuildPrompt assembles the system and user prompts for a submission.
func (a *Assembler) BuildPrompt(ctx context.Context, userID string, day int, mode domain.Mode, userText string) PromptBundle {
	if mode == domain.ModeSynthesis {
		return a.buildSynthesis(ctx, userID, day, userText)
	}
	return a.buildMirror(ctx, userID, day, userText)
}

func (a *Assembler) buildMirror(ctx context.Context, userID string, day int, userText string) PromptBundle {
	bundle := PromptBundle{
		System: mirrorSystemPrompt,
		User:   userText,
		Task:   llm.TaskMirror,
	}
	if day <= 1 {
		return bundle
	}

	priors, err := a.entries.ListBefore(ctx, userID, day, mirrorContextDays)
	if err != nil {
		// Availability of the daily reflection outranks completeness of
		// context: degrade silently to a context-free prompt.
		a.log.Warn("mirror context degraded, generating without history",
			zap.String("user_id", userID), zap.Int("day", day), zap.Error(err))
		return bundle
	}
	if len(priors) == 0 {
		return bundle
	}

	// Priors arrive newest-first; present them oldest-first.
	var b strings.Builder
	b.WriteString("PREVIOUS DAYS CONTEXT:\n\n")
	for i := len(priors) - 1; i >= 0; i-- {
		e := priors[i]
		fmt.Fprintf(&b, "Day %d: %s\n", e.Day, e.Question)
		fmt.Fprintf(&b, "User: %s\n", truncate(e.UserText, priorUserTextLimit))
		fmt.Fprintf(&b, "Mirifer: %s\n\n", truncate(e.AIText, priorAITextLimit))
	}
	fmt.Fprintf(&b, "\nCURRENT DAY %d:\n%s\n\n", day, userText)
	b.WriteString("Reflect on today's entry. Reference previous patterns if relevant, but focus on what's new or deepening.")

	bundle.User = b.String()
	return bundle
}

func (a *Assembler) buildSynthesis(ctx context.Context, userID string, day int, userText string) PromptBundle {
	daysToFetch := domain.TotalDays
	if day == 7 {
		daysToFetch = 7
	}

	bundle := PromptBundle{
		System: systemPromptFor(domain.ModeSynthesis, day),
		User:   userText,
		Task:   llm.TaskSynthesis,
	}

	priors, err := a.entries.ListThrough(ctx, userID, daysToFetch)
	if err != nil {
		// Degraded-but-available: synthesize from today's text alone. Logged
		// as its own condition so it is distinguishable from a generation
		// failure.
		a.log.Warn("synthesis context degraded, generating from current day only",
			zap.String("user_id", userID), zap.Int("day", day), zap.Error(err))
		return bundle
	}
	if len(priors) == 0 {
		return bundle
	}

	var b strings.Builder
	b.WriteString("JOURNEY CONTEXT:\n\n")
	for _, e := range priors {
		fmt.Fprintf(&b, "Day %d - %s\n", e.Day, e.Title)
		fmt.Fprintf(&b, "Question: %s\n", e.Question)
		text := e.UserText
		if text == "" {
			text = "[No reflection]"
		}
		fmt.Fprintf(&b, "User's reflection: %s\n", text)
		if e.AIText != "" {
			fmt.Fprintf(&b, "Mirifer's response: %s\n", e.AIText)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nNow synthesize this %d-day journey. Focus on patterns, tensions, and evolution of thinking.", daysToFetch)

	bundle.User = b.String()
	return bundle
}

// truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
