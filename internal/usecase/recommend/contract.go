package recommend

import (
	"context"

	"github.com/cozyhaus/furnish/internal/ranking"
)

// Channel is one retrieval source feeding fusion. A channel failure is
// recovered inside the service; it never fails a request.
type Channel interface {
	Name() string
	Search(ctx context.Context, query string, topN int) (ranking.RankedList, error)
}
