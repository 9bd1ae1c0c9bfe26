package catalog

// DefaultPageSize is the number of cards per page when none is configured.
const DefaultPageSize = 5

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items []T
	// Number is the 1-based page number requested.
	Number int
	Size   int
	// Total is the number of items across all pages.
	Total      int
	TotalPages int
}

// Paginate returns page number (1-based) of items. A non-positive size uses
// DefaultPageSize. Out-of-range pages have no items. TotalPages is at least 1.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page[T]{
		Number:     number,
		Size:       size,
		Total:      len(items),
		TotalPages: max(1, (len(items)+size-1)/size),
	}
	if number < 1 {
		return p
	}
	start := (number - 1) * size
	if start >= len(items) {
		return p
	}
	end := min(start+size, len(items))
	p.Items = items[start:end]
	return p
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Number >= 1 && p.Number < p.TotalPages
}
