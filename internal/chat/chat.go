// Package chat answers wellness questions through a generative model.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hormonya/hormonya/internal/metrics"
)

// SystemPrompt is prepended to every question sent to the model.
const SystemPrompt = "You are Hormonya AI, a compassionate, informative expert in women's hormonal health, " +
	"menstrual cycles, PCOS, and thyroid function. Respond accurately based on medical consensus, " +
	"but remind users to consult a doctor. Keep responses concise (3-4 sentences max unless asked " +
	"for a list), encouraging, and format important terms using markdown **bolding**."

// DemoReply is returned when no model is configured.
const DemoReply = "AI Chat is currently in **Demo Mode**. To enable actual AI responses, " +
	"please add your `GEMINI_API_KEY` to the `.env` file! 🌸"

// Chat errors.
var (
	ErrEmptyRequest = errors.New("message or file is required")
	ErrGeneration   = errors.New("failed to generate AI response")
)

// Attachment is a file sent alongside a question, typically a lab report.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Generator produces a model reply for a prompt and optional inline file.
type Generator interface {
	Generate(ctx context.Context, prompt string, attachment *Attachment) (string, error)
}

// Service answers chat requests.
type Service struct {
	gen     Generator
	metrics metrics.Recorder
}

// NewService creates a Service. A nil gen puts the service in demo mode.
func NewService(gen Generator, recorder metrics.Recorder) *Service {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Service{gen: gen, metrics: recorder}
}

// DemoMode reports whether replies are canned.
func (s *Service) DemoMode() bool {
	return s.gen == nil
}

// Reply answers message. Demo mode always succeeds, even for empty requests.
func (s *Service) Reply(ctx context.Context, message string, attachment *Attachment) (string, error) {
	if s.gen == nil {
		s.metrics.IncChatReply(metrics.ChatModeDemo)
		return DemoReply, nil
	}

	hasFile := attachment != nil && len(attachment.Data) > 0
	if strings.TrimSpace(message) == "" && !hasFile {
		return "", ErrEmptyRequest
	}
	if !hasFile {
		attachment = nil
	}

	start := time.Now()
	reply, err := s.gen.Generate(ctx, buildPrompt(message, hasFile), attachment)
	s.metrics.ObserveChatDuration(time.Since(start))
	if err != nil {
		s.metrics.IncChatReply(metrics.ChatModeError)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	s.metrics.IncChatReply(metrics.ChatModeAI)
	return reply, nil
}

func buildPrompt(message string, hasFile bool) string {
	if hasFile {
		return SystemPrompt + "\n\nUser Question/Request regarding the attached medical report: " + message
	}
	return SystemPrompt + "\n\nUser Question: " + message
}
