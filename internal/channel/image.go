package channel

import (
	"context"
	"fmt"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/ranking"
)

// visualInstruction steers the embedder toward appearance over function
// when matching an image-derived description against catalog text.
const visualInstruction = "Visual appearance of furniture: "

// Image is the visual retrieval channel. The image reference is resolved
// to a textual visual description upstream; here it is embedded with a
// visual instruction prefix and matched against the shared catalog index.
type Image struct {
	embedder domain.Embedder
	index    *Index
}

// NewImage creates the image channel over a shared catalog index.
func NewImage(embedder domain.Embedder, index *Index) *Image {
	return &Image{
		embedder: domain.NewInstructionEmbedder(embedder, visualInstruction),
		index:    index,
	}
}

// Name implements Channel.
func (c *Image) Name() string { return "image" }

// Ready implements Channel.
func (c *Image) Ready() bool { return c.index.Ready() }

// Search implements Channel.
func (c *Image) Search(ctx context.Context, description string, topN int) (ranking.RankedList, error) {
	if !c.index.Ready() {
		return ranking.RankedList{}, fmt.Errorf("image channel: index not built: %w", domain.ErrChannelUnavailable)
	}

	res, err := c.embedder.Embed(ctx, description)
	if err != nil {
		return ranking.RankedList{}, fmt.Errorf("image channel: embed description: %w", err)
	}

	return ranking.RankedList{
		Channel: c.Name(),
		Items:   c.index.Search(res.Embedding, topN),
	}, nil
}
