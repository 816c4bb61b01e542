package ranking

// Paginate slices a 1-based page out of an ordered list and computes totals.
// Pages beyond the end (or below 1) yield an empty slice, never an error.
func Paginate[T any](items []T, page, size int) (slice []T, totalFound, totalPages int) {
	totalFound = len(items)
	if size < 1 {
		return nil, totalFound, 0
	}
	totalPages = (totalFound + size - 1) / size

	if page < 1 || page > totalPages {
		return nil, totalFound, totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > totalFound {
		end = totalFound
	}
	return items[start:end], totalFound, totalPages
}
