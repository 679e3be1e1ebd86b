// Package pagination implements stateless windowing and filtering
// over ordered slices.  Every browse endpoint funnels its repository
// results through Paginate so page arithmetic lives in exactly one
// place.  Filters are applied strictly before pagination; a caller
// that changes its filter must ask for page 1 again, and out-of-range
// pages are clamped rather than erroring so stale page numbers can
// never point past the end of a freshly filtered list.
package pagination

// DefaultPageSize is used when a request omits page_size or supplies
// a non-positive value.
const DefaultPageSize = 10

// MaxPageSize caps page_size to keep response bodies bounded.
const MaxPageSize = 100

// Page is the result of windowing a slice.  TotalItems and
// TotalPages describe the filtered input as a whole; Items holds only
// the requested window.
type Page[T any] struct {
    Items      []T  `json:"items"`
    Page       int  `json:"page"`
    PageSize   int  `json:"page_size"`
    TotalItems int  `json:"total_items"`
    TotalPages int  `json:"total_pages"`
    HasNext    bool `json:"has_next"`
    HasPrev    bool `json:"has_prev"`
}

// Paginate windows items into the requested page.  The page number is
// clamped into [1, totalPages] (or 1 when the input is empty), so the
// result is always well formed.  Concatenating every page in order
// reproduces the input exactly; every page except possibly the last
// holds exactly pageSize items.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
    if pageSize <= 0 {
        pageSize = DefaultPageSize
    }
    if pageSize > MaxPageSize {
        pageSize = MaxPageSize
    }
    total := len(items)
    totalPages := (total + pageSize - 1) / pageSize

    if page < 1 {
        page = 1
    }
    if totalPages > 0 && page > totalPages {
        page = totalPages
    }
    if totalPages == 0 {
        page = 1
    }

    start := (page - 1) * pageSize
    end := start + pageSize
    if start > total {
        start = total
    }
    if end > total {
        end = total
    }

    window := make([]T, end-start)
    copy(window, items[start:end])

    return Page[T]{
        Items:      window,
        Page:       page,
        PageSize:   pageSize,
        TotalItems: total,
        TotalPages: totalPages,
        HasNext:    page < totalPages,
        HasPrev:    page > 1,
    }
}

// Filter returns the items for which keep reports true, preserving
// order.  It never mutates the input slice.
func Filter[T any](items []T, keep func(T) bool) []T {
    out := make([]T, 0, len(items))
    for _, it := range items {
        if keep(it) {
            out = append(out, it)
        }
    }
    return out
}
