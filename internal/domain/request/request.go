// Package request defines the validated recommendation request value object.
package request

import (
	"strings"

	"github.com/cozyhaus/furnish/internal/domain"
	"github.com/cozyhaus/furnish/internal/domain/filter"
)

// Request bounds. MaxK matches the recommendation limit of the serving API.
const (
	MaxQueryLen = 500
	MaxK        = 50
	DefaultK    = 50
	MaxPageSize = 20
	DefaultSize = 8
)

// Request is a validated recommendation query. Construct via New;
// a zero Request is not valid.
type Request struct {
	query    string
	filters  filter.Filters
	page     int
	size     int
	k        int
	imageRef string
}

// New validates request parameters and applies defaults
// (page 1, size DefaultSize, k DefaultK for zero values).
func New(query string, filters filter.Filters, page, size, k int, imageRef string) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, domain.NewInvalidRequest("query", "must not be empty")
	}
	if len(query) > MaxQueryLen {
		return Request{}, domain.NewInvalidRequest("query", "must be at most 500 characters")
	}

	if page == 0 {
		page = 1
	}
	if page < 1 {
		return Request{}, domain.NewInvalidRequest("page", "must be at least 1")
	}

	if size == 0 {
		size = DefaultSize
	}
	if size < 1 || size > MaxPageSize {
		return Request{}, domain.NewInvalidRequest("size", "must be between 1 and 20")
	}

	if k == 0 {
		k = DefaultK
	}
	if k < 1 || k > MaxK {
		return Request{}, domain.NewInvalidRequest("k", "must be between 1 and 50")
	}

	return Request{
		query:    query,
		filters:  filters,
		page:     page,
		size:     size,
		k:        k,
		imageRef: strings.TrimSpace(imageRef),
	}, nil
}

// Query returns the trimmed query text.
func (r *Request) Query() string { return r.query }

// Normalized returns the query lowered and whitespace-collapsed,
// used as the cache key component.
func (r *Request) Normalized() string {
	return strings.Join(strings.Fields(strings.ToLower(r.query)), " ")
}

// Filters returns the attribute filters.
func (r *Request) Filters() filter.Filters { return r.filters }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// Size returns the page size.
func (r *Request) Size() int { return r.size }

// K returns the fused candidate budget.
func (r *Request) K() int { return r.k }

// ImageRef returns the optional image reference for visual search.
func (r *Request) ImageRef() string { return r.imageRef }

// HasImage reports whether the request carries an image reference.
func (r *Request) HasImage() bool { return r.imageRef != "" }
