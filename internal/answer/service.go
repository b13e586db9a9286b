// Package answer orchestrates the question-answering pipeline: cached
// messages in, one answer string out.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/raghavkonduri05/member-qa-system/internal/contextbuilder"
	"github.com/raghavkonduri05/member-qa-system/internal/llm"
	"github.com/raghavkonduri05/member-qa-system/internal/metrics"
	"github.com/raghavkonduri05/member-qa-system/internal/models"
)

// Fallback answers. The boundary contract always produces an answer payload,
// so every internal failure resolves to one of these.
const (
	FallbackNoData = "I couldn't retrieve the member messages right now. Please try again in a moment."
	FallbackNoInfo = "I don't have that information in the available messages."
	FallbackFailed = "I couldn't generate an answer right now. Please try again in a moment."
)

const systemPrompt = "You are a helpful assistant that answers questions based on provided context. " +
	"Provide concise, natural answers without explicitly citing messages. Write in a conversational style."

const promptTemplate = `You are a helpful assistant that answers questions about member data from messages.

Here are the messages from various members:

%s

Based on the messages above, answer the following question.

IMPORTANT INSTRUCTIONS:
- Provide a concise, natural answer without explicitly citing messages or using "Message:" format
- Write in a flowing, conversational style
- If the exact information is not available in the messages, say "I don't have that information in the available messages."
- If there is related information, you can mention what related information exists
- Be specific but brief - avoid repeating message content verbatim
- If asking about quantities or ownership that isn't mentioned, clearly state that information is not available
- Keep answers under 3-4 sentences when possible

Question: %s

Answer:`

// Messages supplies the current message set, typically the cache.
type Messages interface {
	Get(ctx context.Context) ([]models.Message, error)
}

// Service answers questions about the member population.
type Service struct {
	messages Messages
	llm      llm.Client
	budget   int
	logger   zerolog.Logger
}

// New creates an answer service. budget caps the context size in bytes;
// zero or negative uses the default.
func New(messages Messages, client llm.Client, budget int, logger zerolog.Logger) *Service {
	if budget <= 0 {
		budget = contextbuilder.DefaultBudget
	}
	return &Service{
		messages: messages,
		llm:      client,
		budget:   budget,
		logger:   logger,
	}
}

// Answer resolves a question into an answer string. It never returns an
// error: fetch failures without cached data, empty message sets, and
// generation failures all degrade to deterministic fallback answers.
func (s *Service) Answer(ctx context.Context, question string) string {
	msgs, err := s.messages.Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("no message data available")
		metrics.QuestionsAnswered.WithLabelValues("fetch_failed").Inc()
		return FallbackNoData
	}

	built := contextbuilder.Build(msgs, s.budget)
	if built.Empty {
		// Nothing to ground an answer in; skip the generation call and
		// answer deterministically.
		metrics.QuestionsAnswered.WithLabelValues("empty_context").Inc()
		return FallbackNoInfo
	}

	prompt := fmt.Sprintf(promptTemplate, built.Text, question)
	text, err := s.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("generation call failed")
		metrics.QuestionsAnswered.WithLabelValues("generation_failed").Inc()
		return FallbackFailed
	}

	answer := strings.TrimSpace(text)
	if answer == "" {
		metrics.QuestionsAnswered.WithLabelValues("generation_failed").Inc()
		return FallbackFailed
	}
	metrics.QuestionsAnswered.WithLabelValues("generated").Inc()
	return answer
}
