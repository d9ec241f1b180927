package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of generation task being performed.
type TaskType string

const (
	// TaskMirror is the daily reflection. Its token budget is kept tight to
	// force compression.
	TaskMirror TaskType = "mirror"

	// TaskSynthesis is the day-7/day-14 whole-range summary; it gets room
	// for depth.
	TaskSynthesis TaskType = "synthesis"

	// TaskFinalThoughts is the report-time narrative summary.
	TaskFinalThoughts TaskType = "final_thoughts"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the generation subsystem.
type Config struct {
	Endpoint   string
	APIKey     string
	Model      string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "https://api.openai.com/v1",
		Model:      "gpt-4o-mini",
		TimeoutMs:  30000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskMirror:        {Temperature: 0.45, MaxTokens: 300, TimeoutMs: 20000},
			TaskSynthesis:     {Temperature: 0.45, MaxTokens: 1500, TimeoutMs: 45000},
			TaskFinalThoughts: {Temperature: 0.3, MaxTokens: 500, TimeoutMs: 30000},
		},
	}
}

// LoadConfig reads generation configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("MIRIFER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MIRIFER_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("MIRIFER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("MIRIFER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("MIRIFER_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("MIRIFER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	applyTaskTokensEnv(&cfg, TaskMirror, "MIRIFER_LLM_MIRROR_MAX_TOKENS")
	applyTaskTokensEnv(&cfg, TaskSynthesis, "MIRIFER_LLM_SYNTHESIS_MAX_TOKENS")
	applyTaskTokensEnv(&cfg, TaskFinalThoughts, "MIRIFER_LLM_FINAL_THOUGHTS_MAX_TOKENS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTokensEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.MaxTokens = n
	cfg.Tasks[task] = tc
}
