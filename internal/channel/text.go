package channel

import (
	"context"
	"fmt"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/ranking"
)

// Text is the semantic text retrieval channel: the query is embedded and
// matched against the catalog index by cosine similarity.
type Text struct {
	embedder domain.Embedder
	index    *Index
}

// NewText creates the text channel over a shared catalog index.
func NewText(embedder domain.Embedder, index *Index) *Text {
	return &Text{embedder: embedder, index: index}
}

// Name implements Channel.
func (c *Text) Name() string { return "text" }

// Ready implements Channel.
func (c *Text) Ready() bool { return c.index.Ready() }

// Search implements Channel.
func (c *Text) Search(ctx context.Context, query string, topN int) (ranking.RankedList, error) {
	if !c.index.Ready() {
		return ranking.RankedList{}, fmt.Errorf("text channel: index not built: %w", domain.ErrChannelUnavailable)
	}

	res, err := c.embedder.Embed(ctx, query)
	if err != nil {
		return ranking.RankedList{}, fmt.Errorf("text channel: embed query: %w", err)
	}

	return ranking.RankedList{
		Channel: c.Name(),
		Items:   c.index.Search(res.Embedding, topN),
	}, nil
}
