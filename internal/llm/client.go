// Package llm abstracts the generation collaborator.
package llm

import (
	"context"
	"fmt"
)

// GenerationError reports a failed generation call (transport, quota, or an
// unusable response). The orchestrator never surfaces it to the boundary.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client produces an answer text from a system instruction and a user
// prompt. Implementations fail with *GenerationError.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
