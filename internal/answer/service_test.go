package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/raghavkonduri05/member-qa-system/internal/llm"
	"github.com/raghavkonduri05/member-qa-system/internal/models"
)

type fakeMessages struct {
	msgs []models.Message
	err  error
}

func (f *fakeMessages) Get(ctx context.Context) ([]models.Message, error) {
	return f.msgs, f.err
}

type fakeLLM struct {
	calls      int
	lastSystem string
	lastUser   string
	reply      string
	err        error
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	return f.reply, f.err
}

func sampleMessages() []models.Message {
	return []models.Message{
		{ID: "1", UserName: "alice", Timestamp: "2024-01-01T10:00:00Z", Body: "I just moved to Berlin"},
		{ID: "2", UserName: "bob", Timestamp: "2024-01-02T10:00:00Z", Body: "My car needs a service"},
	}
}

func TestAnswerHappyPath(t *testing.T) {
	generator := &fakeLLM{reply: "  Alice recently moved to Berlin.  "}
	svc := New(&fakeMessages{msgs: sampleMessages()}, generator, 0, zerolog.Nop())

	got := svc.Answer(context.Background(), "Who moved to Berlin?")
	if got != "Alice recently moved to Berlin." {
		t.Fatalf("expected trimmed answer, got %q", got)
	}
	if generator.calls != 1 {
		t.Fatalf("expected 1 generation call, got %d", generator.calls)
	}
	if !strings.Contains(generator.lastUser, "I just moved to Berlin") {
		t.Fatal("prompt missing message context")
	}
	if !strings.Contains(generator.lastUser, "Who moved to Berlin?") {
		t.Fatal("prompt missing the question")
	}
	if generator.lastSystem == "" {
		t.Fatal("expected a system prompt")
	}
}

func TestAnswerEmptyMessages(t *testing.T) {
	generator := &fakeLLM{reply: "should never be used"}
	svc := New(&fakeMessages{}, generator, 0, zerolog.Nop())

	got := svc.Answer(context.Background(), "Anything?")
	if got != FallbackNoInfo {
		t.Fatalf("expected %q, got %q", FallbackNoInfo, got)
	}
	if generator.calls != 0 {
		t.Fatal("generation collaborator must not be called with an empty context")
	}
}

func TestAnswerFetchFailure(t *testing.T) {
	generator := &fakeLLM{}
	svc := New(&fakeMessages{err: errors.New("remote down")}, generator, 0, zerolog.Nop())

	got := svc.Answer(context.Background(), "Anything?")
	if got != FallbackNoData {
		t.Fatalf("expected %q, got %q", FallbackNoData, got)
	}
	if generator.calls != 0 {
		t.Fatal("generation collaborator must not be called without data")
	}
}

func TestAnswerGenerationFailure(t *testing.T) {
	generator := &fakeLLM{err: &llm.GenerationError{Err: errors.New("quota exceeded")}}
	svc := New(&fakeMessages{msgs: sampleMessages()}, generator, 0, zerolog.Nop())

	got := svc.Answer(context.Background(), "Anything?")
	if got != FallbackFailed {
		t.Fatalf("expected %q, got %q", FallbackFailed, got)
	}
}

func TestAnswerBlankGeneration(t *testing.T) {
	generator := &fakeLLM{reply: "   \n  "}
	svc := New(&fakeMessages{msgs: sampleMessages()}, generator, 0, zerolog.Nop())

	got := svc.Answer(context.Background(), "Anything?")
	if got != FallbackFailed {
		t.Fatalf("expected %q for blank generation, got %q", FallbackFailed, got)
	}
}

func TestAnswerRespectsBudget(t *testing.T) {
	msgs := []models.Message{
		{ID: "1", UserName: "alice", Timestamp: "2024-01-01T10:00:00Z", Body: strings.Repeat("old ", 100)},
		{ID: "2", UserName: "bob", Timestamp: "2024-01-02T10:00:00Z", Body: "newest"},
	}
	generator := &fakeLLM{reply: "ok"}
	svc := New(&fakeMessages{msgs: msgs}, generator, 120, zerolog.Nop())

	svc.Answer(context.Background(), "Anything?")
	if strings.Contains(generator.lastUser, "old old") {
		t.Fatal("context exceeded the configured budget")
	}
	if !strings.Contains(generator.lastUser, "newest") {
		t.Fatal("newest message missing from context")
	}
}
