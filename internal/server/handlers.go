package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mirifer/internal/domain"
	"mirifer/internal/journey"
	"mirifer/internal/report"
	"mirifer/internal/repository"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	AccessCode string `json:"accessCode"`
}

type userPayload struct {
	ID          string `json:"id"`
	AccessCode  string `json:"accessCode"`
	DisplayName string `json:"displayName"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.AccessCode) == "" {
		writeError(w, http.StatusBadRequest, "Access code is required")
		return
	}

	user, err := s.users.GetByAccessCode(r.Context(), req.AccessCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid access code")
			return
		}
		s.internalError(w, "looking up access code", err)
		return
	}
	if err := s.users.TouchLastLogin(r.Context(), user.ID); err != nil {
		s.log.Warn("touching last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusOK, map[string]userPayload{"user": {
		ID:          user.ID,
		AccessCode:  user.AccessCode,
		DisplayName: user.DisplayName,
	}})
}

type dayPayload struct {
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Focus    string `json:"focus"`
	Question string `json:"question"`
}

// handleDays serves the static day catalog the client renders prompts from.
func (s *Server) handleDays(w http.ResponseWriter, r *http.Request) {
	payload := make([]dayPayload, 0, domain.TotalDays)
	for day := 1; day <= domain.TotalDays; day++ {
		d := domain.DayInfoFor(day)
		payload = append(payload, dayPayload{
			Day:      d.Day,
			Title:    d.Title,
			Focus:    d.Focus,
			Question: d.Question,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]dayPayload{"days": payload})
}

type respondRequest struct {
	Day      int    `json:"day"`
	UserText string `json:"userText"`
	Mode     string `json:"mode"`
	Title    string `json:"title"`
	Question string `json:"question"`
}

type respondResponse struct {
	Text        string `json:"text"`
	Mode        string `json:"mode"`
	IsCompleted bool   `json:"isCompleted"`
}

func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	var req respondRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := userFrom(r.Context())
	result, err := s.journey.Respond(r.Context(), user.ID, journey.RespondInput{
		Day:      req.Day,
		UserText: req.UserText,
		Mode:     req.Mode,
		Title:    req.Title,
		Question: req.Question,
	})
	if err != nil {
		switch {
		case errors.Is(err, journey.ErrInvalidDay):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Day must be between 1 and %d", domain.TotalDays))
		case errors.Is(err, journey.ErrMissingText):
			writeError(w, http.StatusBadRequest, "Reflection text is required")
		case errors.Is(err, journey.ErrTextTooLong):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Reflection text must be at most %d characters", domain.MaxUserTextLen))
		case errors.Is(err, journey.ErrGeneration):
			s.log.Error("generation failed", zap.String("user_id", user.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to generate response")
		default:
			s.internalError(w, "handling respond", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, respondResponse{
		Text:        result.Text,
		Mode:        string(result.Mode),
		IsCompleted: result.IsCompleted,
	})
}

type entryPayload struct {
	ID          string `json:"id"`
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Question    string `json:"question"`
	UserText    string `json:"userText"`
	AIText      string `json:"aiText"`
	Mode        string `json:"mode"`
	IsCompleted bool   `json:"isCompleted"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

func toEntryPayload(e *domain.Entry) entryPayload {
	return entryPayload{
		ID:          e.ID,
		Day:         e.Day,
		Title:       e.Title,
		Question:    e.Question,
		UserText:    e.UserText,
		AIText:      e.AIText,
		Mode:        string(e.Mode),
		IsCompleted: e.IsCompleted,
		Status:      string(e.Status()),
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	entries, err := s.journey.Entries(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "listing entries", err)
		return
	}
	payload := make([]entryPayload, 0, len(entries))
	for _, e := range entries {
		payload = append(payload, toEntryPayload(e))
	}
	writeJSON(w, http.StatusOK, map[string][]entryPayload{"entries": payload})
}

type saveRequest struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Question    string `json:"question"`
	UserText    string `json:"userText"`
	AIText      string `json:"aiText"`
	Mode        string `json:"mode"`
	IsCompleted bool   `json:"isCompleted"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := userFrom(r.Context())
	err := s.journey.Save(r.Context(), user.ID, journey.SaveInput{
		Day:         req.Day,
		Title:       req.Title,
		Question:    req.Question,
		UserText:    req.UserText,
		AIText:      req.AIText,
		Mode:        req.Mode,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		if errors.Is(err, journey.ErrInvalidDay) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Day must be between 1 and %d", domain.TotalDays))
			return
		}
		s.internalError(w, "saving entry", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleWipe(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	if err := s.journey.WipeContent(r.Context(), user.ID); err != nil {
		s.internalError(w, "wiping journey data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Journey text data deleted",
	})
}

type progressResponse struct {
	CompletedDays   []int `json:"completedDays"`
	TotalDays       int   `json:"totalDays"`
	IsComplete      bool  `json:"isComplete"`
	HasCompleteData bool  `json:"hasCompleteData"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	state, err := s.journey.Progress(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "deriving progress", err)
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{
		CompletedDays:   state.CompletedDays,
		TotalDays:       state.TotalDays,
		IsComplete:      state.IsComplete,
		HasCompleteData: state.HasCompleteData,
	})
}

func reportType(rangeParam string) (report.Type, bool) {
	switch rangeParam {
	case "", "partial":
		return report.TypePartial, true
	case "7":
		return report.Type7Day, true
	case "14":
		return report.Type14Day, true
	default:
		return "", false
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	typ, ok := reportType(r.URL.Query().Get("range"))
	if !ok {
		writeError(w, http.StatusBadRequest, "range must be one of: partial, 7, 14")
		return
	}

	user := userFrom(r.Context())
	doc, err := s.reports.Generate(r.Context(), user, typ)
	if err != nil {
		var rejection *report.IneligibleError
		if errors.As(err, &rejection) {
			writeJSON(w, http.StatusConflict, errorResponse{
				Error: rejection.Message,
				Code:  rejection.Code,
			})
			return
		}
		s.internalError(w, "generating report", err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

type surveyStatusResponse struct {
	Submitted   bool    `json:"submitted"`
	SubmittedAt *string `json:"submittedAt"`
}

func (s *Server) handleSurveyStatus(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	survey, err := s.surveys.GetByUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, surveyStatusResponse{Submitted: false})
			return
		}
		s.internalError(w, "checking survey status", err)
		return
	}
	submittedAt := survey.SubmittedAt.UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, surveyStatusResponse{Submitted: true, SubmittedAt: &submittedAt})
}

type surveyRequest struct {
	Definition    string            `json:"definition"`
	ThoughtChange string            `json:"thoughtChange"`
	WouldMiss     string            `json:"wouldMiss"`
	Answers       map[string]string `json:"answers"`
}

func (s *Server) handleSurveySubmit(w http.ResponseWriter, r *http.Request) {
	var req surveyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Definition) == "" ||
		strings.TrimSpace(req.ThoughtChange) == "" ||
		strings.TrimSpace(req.WouldMiss) == "" {
		writeError(w, http.StatusBadRequest, "All survey questions are required")
		return
	}

	user := userFrom(r.Context())
	survey := &domain.SurveyResponse{
		ID:            uuid.New().String(),
		UserID:        user.ID,
		AccessCode:    user.AccessCode,
		Definition:    req.Definition,
		ThoughtChange: req.ThoughtChange,
		WouldMiss:     req.WouldMiss,
		Answers:       req.Answers,
		SubmittedAt:   time.Now().UTC(),
	}
	if err := s.surveys.Create(r.Context(), survey); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusConflict, "Survey already submitted")
			return
		}
		s.internalError(w, "saving survey", err)
		return
	}

	// Fire-and-forget: the response never waits on the mail provider.
	go s.notifier.SurveySubmitted(context.WithoutCancel(r.Context()), user, survey)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.metrics.Collect(r.Context())
	if err != nil {
		s.internalError(w, "collecting metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
