// Package recommend drives the recommendation pipeline: query cache
// lookup, concurrent channel retrieval, rank fusion, diversity
// reranking, and pagination.
package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cozyhaus/furnish/internal/cache"
	"github.com/cozyhaus/furnish/internal/domain/product"
	"github.com/cozyhaus/furnish/internal/domain/request"
	"github.com/cozyhaus/furnish/internal/logger"
	"github.com/cozyhaus/furnish/internal/metrics"
	"github.com/cozyhaus/furnish/internal/ranking"
)

// Options tunes the ranking pipeline.
type Options struct {
	// RRFConstant is the smoothing constant c in 1/(rank+1+c).
	RRFConstant float64
	// Lambda is the MMR relevance/diversity trade-off in [0,1].
	Lambda float64
	// Similarity scores candidate pairs during diversification.
	Similarity ranking.Similarity
	// ChannelTopN is the per-channel candidate budget.
	ChannelTopN int
	// ChannelTimeout bounds each channel query; an expired channel
	// contributes an empty list.
	ChannelTimeout time.Duration
}

// Item is a recommended product with its fused score.
type Item struct {
	Product product.Product
	Score   float64
}

// Result is one page of recommendations with provenance metadata.
type Result struct {
	Items      []Item
	TotalFound int
	TotalPages int
	Reasons    []string
	Took       time.Duration
	Cached     bool
}

// Service executes the recommendation pipeline. The query cache is the
// only shared mutable state; everything downstream of the channel join
// is pure computation.
type Service struct {
	channels []Channel
	cache    *cache.LRU[Result]
	opts     Options
}

// New creates the recommendation service. Channel order is fixed and
// determines fusion tie-breaking, so pass channels in priority order.
func New(channels []Channel, queryCache *cache.LRU[Result], opts Options) *Service {
	if opts.ChannelTopN <= 0 {
		opts.ChannelTopN = request.MaxK
	}
	if opts.ChannelTimeout <= 0 {
		opts.ChannelTimeout = 5 * time.Second
	}
	if opts.Similarity == nil {
		opts.Similarity = ranking.CategoryOverlap
	}
	return &Service{channels: channels, cache: queryCache, opts: opts}
}

// Recommend runs the pipeline for a validated request. It always returns
// a well-formed result; channel failures degrade to fewer candidates.
func (s *Service) Recommend(ctx context.Context, req request.Request) (Result, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	key := cacheKey(req)
	if cached, ok := s.cache.Get(key); ok {
		metrics.QueryCacheTotal.WithLabelValues("hit").Inc()
		cached.Cached = true
		cached.Took = time.Since(start)
		return cached, nil
	}
	metrics.QueryCacheTotal.WithLabelValues("miss").Inc()

	lists := s.searchChannels(ctx, req, log)

	// Filters narrow each channel list before fusion, preserving order.
	if !req.Filters().IsEmpty() {
		for i := range lists {
			lists[i].Items = filterCandidates(lists[i].Items, req)
		}
	}

	fused := ranking.Fuse(lists, req.K(), s.opts.RRFConstant)
	metrics.FusedCandidates.Observe(float64(len(fused)))

	// Every page is sliced from one diversified ordering of the whole
	// fused list, so a fused item lands on exactly one page no matter
	// which page is requested.
	ordered := s.pageOrder(fused)

	depth := req.Page() * req.Size()
	if depth > len(fused) {
		depth = len(fused)
	}
	metrics.DiversifiedCandidates.Observe(float64(depth))

	pageItems, totalFound, totalPages := ranking.Paginate(ordered, req.Page(), req.Size())

	items := make([]Item, len(pageItems))
	for i, sc := range pageItems {
		items[i] = Item{Product: sc.Product, Score: sc.Score}
	}

	result := Result{
		Items:      items,
		TotalFound: totalFound,
		TotalPages: totalPages,
		Reasons:    buildReasons(req, lists, len(fused), depth),
		Took:       time.Since(start),
	}
	s.cache.Set(key, result)
	return result, nil
}

// pageOrder builds the single ordering pages are sliced from: the greedy
// diversified prefix at the deepest depth that still reorders, plus the
// one fused item left over, in fused position. Greedy selection is
// prefix-stable, so the ordering is the same whichever page is requested.
func (s *Service) pageOrder(fused []ranking.Scored) []ranking.Scored {
	if len(fused) < 2 {
		return fused
	}
	ordered := ranking.Diversify(fused, len(fused)-1, s.opts.Lambda, s.opts.Similarity)

	selected := make(map[string]struct{}, len(ordered))
	for i := range ordered {
		selected[ordered[i].Product.ID()] = struct{}{}
	}
	for i := range fused {
		if _, ok := selected[fused[i].Product.ID()]; !ok {
			ordered = append(ordered, fused[i])
			break
		}
	}
	return ordered
}

// ClearCache drops all memoized results. Called on catalog refresh.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// searchChannels fans out to all channels concurrently. Failures and
// timeouts are logged and yield empty lists; the slice preserves channel
// order for deterministic fusion tie-breaking.
func (s *Service) searchChannels(ctx context.Context, req request.Request, log *zap.Logger) []ranking.RankedList {
	lists := make([]ranking.RankedList, len(s.channels))

	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range s.channels {
		lists[i] = ranking.RankedList{Channel: ch.Name()}

		query, ok := channelQuery(ch.Name(), req)
		if !ok {
			continue
		}

		i, ch := i, ch
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, s.opts.ChannelTimeout)
			defer cancel()

			started := time.Now()
			list, err := ch.Search(cctx, query, s.opts.ChannelTopN)
			metrics.ChannelSearchDuration.WithLabelValues(ch.Name()).Observe(time.Since(started).Seconds())

			if err != nil {
				metrics.ChannelSearchTotal.WithLabelValues(ch.Name(), "error").Inc()
				log.Warn("channel search failed",
					zap.String("channel", ch.Name()),
					zap.Error(err))
				return nil
			}

			metrics.ChannelSearchTotal.WithLabelValues(ch.Name(), "success").Inc()
			lists[i] = list
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	return lists
}

// channelQuery picks the query text a channel receives. The image channel
// only participates when the request carries an image reference.
func channelQuery(name string, req request.Request) (string, bool) {
	if name == "image" {
		if !req.HasImage() {
			return "", false
		}
		return req.ImageRef(), true
	}
	return req.Query(), true
}

func filterCandidates(items []ranking.Candidate, req request.Request) []ranking.Candidate {
	filters := req.Filters()
	out := items[:0]
	for i := range items {
		if filters.Matches(&items[i].Product) {
			out = append(out, items[i])
		}
	}
	return out
}

// buildReasons assembles the provenance strings, e.g.
// "combined 2 channels (text:37, image:22 matches), fused to 50, diversified to 8".
func buildReasons(req request.Request, lists []ranking.RankedList, fusedLen, diversifiedLen int) []string {
	if fusedLen == 0 {
		return []string{fmt.Sprintf("no results found for %q", req.Query())}
	}

	parts := make([]string, 0, len(lists))
	active := 0
	for _, l := range lists {
		if len(l.Items) == 0 {
			continue
		}
		active++
		parts = append(parts, fmt.Sprintf("%s:%d", l.Channel, len(l.Items)))
	}

	reasons := []string{fmt.Sprintf("combined %d channels (%s matches), fused to %d, diversified to %d",
		active, strings.Join(parts, ", "), fusedLen, diversifiedLen)}

	if !req.Filters().IsEmpty() {
		reasons = append(reasons, "filters applied: "+req.Filters().CacheKey())
	}
	return reasons
}

// cacheKey builds the canonical cache key from the normalized query,
// filters, pagination and image reference.
func cacheKey(req request.Request) string {
	return fmt.Sprintf("%s|%s|p=%d|s=%d|k=%d|img=%s",
		req.Normalized(), req.Filters().CacheKey(), req.Page(), req.Size(), req.K(), req.ImageRef())
}
