// Package assistant answers platform FAQ questions by forwarding a grounded
// prompt to an external text-generation model.  It is stateless: no history,
// no retrieval, one prompt in, one answer out.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// emptyResponseMessage is returned when the model produces no text, usually a
// content safety block.
const emptyResponseMessage = "Sorry, I couldn't generate a response. This could be due to a content safety filter or a temporary issue. Please try rephrasing your question."

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service answers FAQ questions.
type Service struct {
	generator TextGenerator
	logger    logging.Logger
}

// NewService builds an assistant over the given generator.
func NewService(generator TextGenerator, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{
		generator: generator,
		logger:    logger.Named("assistant"),
	}
}

// Answer validates the user message, wraps it in the grounded prompt, and
// returns the model's reply.
func (s *Service) Answer(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperrors.Validation("Message cannot be empty")
	}

	prompt := fmt.Sprintf("%s\n\nUser Question: %s\n\nResponse:", systemPrompt, message)

	reply, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("text generation failed", logging.Err(err))
		return "", apperrors.Wrap(err, apperrors.ErrCodeGenerationFailed, emptyResponseMessage)
	}
	if strings.TrimSpace(reply) == "" {
		return "", apperrors.New(apperrors.ErrCodeGenerationFailed, emptyResponseMessage)
	}
	return reply, nil
}

// geminiGenerator implements TextGenerator against the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini-backed TextGenerator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (TextGenerator, error) {
	if apiKey == "" {
		return nil, apperrors.New(apperrors.ErrCodeExternalService, "Gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to create Gemini client")
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
