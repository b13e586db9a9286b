package source

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/raghavkonduri05/member-qa-system/internal/metrics"
	"github.com/raghavkonduri05/member-qa-system/internal/models"
)

// PageFetcher retrieves one page of messages for an opaque continuation
// token. An empty token requests the first page.
type PageFetcher interface {
	FetchPage(ctx context.Context, token string) (models.MessagePage, error)
}

// FetchAll drains a paginated source into a single ordered message set.
// Pagination stops at a page with no continuation token or no messages.
// A page that hands back the token that requested it is a protocol
// violation and fails the call rather than looping forever. Any page
// failure discards the partial result.
func FetchAll(ctx context.Context, fetcher PageFetcher) ([]models.Message, error) {
	var all []models.Message
	seen := make(map[string]struct{})
	token := ""

	for {
		page, err := fetcher.FetchPage(ctx, token)
		if err != nil {
			return nil, err
		}

		for i := range page.Messages {
			msg := &page.Messages[i]
			if msg.ID == "" {
				// The remote source does not guarantee an identifier on
				// every record; mint one so snapshot IDs stay unique.
				msg.ID = uuid.NewString()
			}
			if _, dup := seen[msg.ID]; dup {
				metrics.FetchErrorsTotal.Inc()
				return nil, &FetchError{Op: "all", Err: fmt.Errorf("duplicate message id %q", msg.ID)}
			}
			seen[msg.ID] = struct{}{}
		}
		all = append(all, page.Messages...)

		if page.NextToken == "" || len(page.Messages) == 0 {
			break
		}
		if page.NextToken == token {
			metrics.FetchErrorsTotal.Inc()
			return nil, &FetchError{Op: "all", Err: fmt.Errorf("continuation token %q did not advance", token)}
		}
		token = page.NextToken
	}

	return all, nil
}
