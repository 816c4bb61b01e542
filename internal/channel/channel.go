// Package channel implements the retrieval channels feeding the fusion
// pipeline: semantic text search and visual-description image search,
// both backed by an in-memory cosine index over the catalog snapshot.
package channel

import (
	"context"

	"github.com/cozyhaus/furnish/internal/ranking"
)

// Channel is a single retrieval source. Search returns an ordered list,
// best match first, with no duplicate product ids.
type Channel interface {
	// Name identifies the channel in fusion reasons and health output.
	Name() string
	// Ready reports whether the channel can serve queries.
	Ready() bool
	// Search retrieves the topN best matches for the query.
	Search(ctx context.Context, query string, topN int) (ranking.RankedList, error)
}
