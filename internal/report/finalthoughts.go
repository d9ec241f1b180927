package report

import (
	"context"
	"fmt"
	"strings"

	"mirifer/internal/domain"
	"mirifer/internal/llm"
)

// finalThoughtsMinDays is the smallest intact-day count that warrants the
// narrative summary step.
const finalThoughtsMinDays = 3

// finalThoughtsPrompt instructs the model to write the report's closing
// narrative section.
const finalThoughtsPrompt = `You are Mirifer, an Uncertainty Reduction System. You have access to a user's complete journey reflections.

Write a "Final Thoughts" section (200-250 words) that:
1. Identifies the 2-3 most recurring patterns across ALL days
2. Names the core tension or structural constraint that emerged
3. Observes how their thinking evolved from first day to last day
4. Notes any shifts in framing or perspective

CRITICAL RULES:
- Use past tense and third-person perspective
- "The reflections revealed..." NOT "You revealed..."
- "A pattern emerged..." NOT "You show a pattern of..."
- NO advice, suggestions, or action steps
- NO questions to the user
- NO motivational language
- Calm, neutral, observational tone
- Compress insight so it feels inevitable
- Avoid psychology jargon

OUTPUT:
Write 2-3 paragraphs, 200-250 words total.
End with: "This marks the completion of [N] days of documented reflection." (replace [N] with actual number)`

// generateFinalThoughts asks the backend for the closing narrative over all
// intact entries. Errors are returned to the caller, who treats the section
// as optional.
func generateFinalThoughts(ctx context.Context, client llm.Client, entries []*domain.Entry) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "The user completed %d days of reflection. Below are ALL their reflections:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "Day %d - %s\n", e.Day, e.Title)
		fmt.Fprintf(&b, "Question: %s\n", e.Question)
		fmt.Fprintf(&b, "User's reflection: %s\n", e.UserText)
		fmt.Fprintf(&b, "Your response: %s\n\n", e.AIText)
	}
	fmt.Fprintf(&b, "\nWrite a \"Final Thoughts\" section following the rules above. Replace [N] with %d.", len(entries))

	resp, err := client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskFinalThoughts,
		SystemPrompt: finalThoughtsPrompt,
		UserPrompt:   b.String(),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
