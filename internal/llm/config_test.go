package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_TaskBudgets(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 300, cfg.Tasks[TaskMirror].MaxTokens)
	assert.Equal(t, 0.45, cfg.Tasks[TaskMirror].Temperature)
	assert.Equal(t, 1500, cfg.Tasks[TaskSynthesis].MaxTokens)
	assert.Equal(t, 0.45, cfg.Tasks[TaskSynthesis].Temperature)
	assert.Equal(t, 500, cfg.Tasks[TaskFinalThoughts].MaxTokens)
	assert.Equal(t, 0.3, cfg.Tasks[TaskFinalThoughts].Temperature)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MIRIFER_LLM_ENDPOINT", "http://localhost:9999/v1")
	t.Setenv("MIRIFER_LLM_API_KEY", "secret")
	t.Setenv("MIRIFER_LLM_MODEL", "gpt-4o")
	t.Setenv("MIRIFER_LLM_TIMEOUT_MS", "12000")
	t.Setenv("MIRIFER_LLM_MAX_RETRIES", "2")
	t.Setenv("MIRIFER_LLM_MIRROR_MAX_TOKENS", "256")

	cfg := LoadConfig()
	assert.Equal(t, "http://localhost:9999/v1", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 12000, cfg.TimeoutMs)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 256, cfg.Tasks[TaskMirror].MaxTokens)
}

func TestLoadConfig_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("MIRIFER_LLM_TIMEOUT_MS", "not-a-number")
	t.Setenv("MIRIFER_LLM_MIRROR_MAX_TOKENS", "-5")

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig().TimeoutMs, cfg.TimeoutMs)
	assert.Equal(t, 300, cfg.Tasks[TaskMirror].MaxTokens)
}

func TestTaskTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 20000, cfg.TaskTimeout(TaskMirror))
	assert.Equal(t, 45000, cfg.TaskTimeout(TaskSynthesis))

	// Unknown task falls back to the global timeout.
	assert.Equal(t, cfg.TimeoutMs, cfg.TaskTimeout(TaskType("other")))
}
