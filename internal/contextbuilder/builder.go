// Package contextbuilder turns a message snapshot into the bounded text
// block handed to the generation step.
package contextbuilder

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/raghavkonduri05/member-qa-system/internal/models"
)

// DefaultBudget is the default character budget for a built context.
const DefaultBudget = 100000

const separator = "\n\n"

// Context is the assembled text block. Empty marks a snapshot with no
// messages at all, which is distinct from an empty string produced by
// rendering. Truncated marks that at least one message was dropped or cut
// to respect the budget.
type Context struct {
	Text      string
	Empty     bool
	Truncated bool
}

// Build renders messages into a single context string of at most budget
// bytes. Recency decides what survives truncation: messages are kept
// newest-first until the budget is exhausted, then the survivors are
// reassembled in chronological order. Messages are only ever cut at message
// boundaries, except when the single most recent message alone exceeds the
// budget, in which case it is truncated so the context is never empty while
// messages exist.
func Build(messages []models.Message, budget int) Context {
	if len(messages) == 0 {
		return Context{Empty: true}
	}
	if budget <= 0 {
		budget = DefaultBudget
	}

	byRecency := make([]models.Message, len(messages))
	copy(byRecency, messages)
	sort.Slice(byRecency, func(i, j int) bool {
		return byRecency[j].Before(byRecency[i])
	})

	var kept []models.Message
	used := 0
	for _, msg := range byRecency {
		cost := len(render(msg))
		if len(kept) > 0 {
			cost += len(separator)
		}
		if used+cost > budget {
			break
		}
		kept = append(kept, msg)
		used += cost
	}

	if len(kept) == 0 {
		// Even the newest message alone blows the budget. Cut it at the
		// budget boundary rather than returning nothing.
		return Context{Text: truncateUTF8(render(byRecency[0]), budget), Truncated: true}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Before(kept[j])
	})

	blocks := make([]string, len(kept))
	for i, msg := range kept {
		blocks[i] = render(msg)
	}
	return Context{
		Text:      strings.Join(blocks, separator),
		Truncated: len(kept) < len(messages),
	}
}

func render(msg models.Message) string {
	name := msg.UserName
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("User: %s (%s)\nMessage: %s", name, msg.Timestamp, msg.Body)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
