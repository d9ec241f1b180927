package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mirifer/internal/domain"
)

// Notifier reports operator-facing events. Implementations must be safe to
// call from request handlers; delivery failures are logged, never returned.
type Notifier interface {
	SurveySubmitted(ctx context.Context, user *domain.User, survey *domain.SurveyResponse)
}

// Noop discards every notification. Used when no mailer is configured.
type Noop struct{}

func (Noop) SurveySubmitted(context.Context, *domain.User, *domain.SurveyResponse) {}

// EmailConfig holds the Resend delivery settings.
type EmailConfig struct {
	APIKey  string
	From    string
	To      string
	BaseURL string
}

// Enabled reports whether the mailer has enough configuration to send.
func (c EmailConfig) Enabled() bool {
	return c.APIKey != "" && c.To != ""
}

const (
	defaultEmailBaseURL = "https://api.resend.com"
	emailSendTimeout    = 10 * time.Second
)

// EmailNotifier sends survey notifications through the Resend HTTP API.
type EmailNotifier struct {
	cfg    EmailConfig
	client *http.Client
	log    *zap.Logger
}

// NewEmailNotifier creates the mailer. Falls back to defaults for unset
// optional fields.
func NewEmailNotifier(cfg EmailConfig, log *zap.Logger) *EmailNotifier {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultEmailBaseURL
	}
	if cfg.From == "" {
		cfg.From = "Mirifer <onboarding@resend.dev>"
	}
	return &EmailNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: emailSendTimeout},
		log:    log,
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// SurveySubmitted emails the operator that a survey arrived. Best-effort:
// any failure is logged and swallowed so the submission response is never
// held hostage by the mail provider.
func (n *EmailNotifier) SurveySubmitted(ctx context.Context, user *domain.User, survey *domain.SurveyResponse) {
	if !n.cfg.Enabled() {
		n.log.Warn("survey notification skipped, mailer not configured",
			zap.String("access_code", user.AccessCode))
		return
	}

	body := fmt.Sprintf(
		"Survey submitted by %s at %s\n\nWhat is Mirifer to you?\n%s\n\nDid it change how you think?\n%s\n\nWhat would you miss?\n%s\n",
		user.AccessCode,
		survey.SubmittedAt.Format(time.RFC3339),
		survey.Definition,
		survey.ThoughtChange,
		survey.WouldMiss,
	)

	payload, err := json.Marshal(sendRequest{
		From:    n.cfg.From,
		To:      []string{n.cfg.To},
		Subject: fmt.Sprintf("New Mirifer Survey Response - %s", user.AccessCode),
		Text:    body,
	})
	if err != nil {
		n.log.Error("encoding survey notification", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, emailSendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		n.log.Error("building survey notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error("sending survey notification", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.log.Error("survey notification rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("access_code", user.AccessCode))
		return
	}

	n.log.Info("survey notification sent", zap.String("access_code", user.AccessCode))
}
