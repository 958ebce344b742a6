package filter

// DefaultPageSize is the number of results shown per page.
const DefaultPageSize = 9

// Page is one page of a result set.
type Page[T any] struct {
	Items  []T `json:"items"`
	Number int `json:"page"`
	Size   int `json:"page_size"`
	Count  int `json:"page_count"`
	Total  int `json:"total"`
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.Count }

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// Paginate returns items[(page-1)*size : page*size]. A page outside
// 1..PageCount yields no items rather than an error, and a non-positive
// size means DefaultPageSize.
func Paginate[T any](items []T, size, page int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page[T]{
		Items:  make([]T, 0),
		Number: page,
		Size:   size,
		Count:  PageCount(len(items), size),
		Total:  len(items),
	}
	if page < 1 {
		return p
	}

	start := (page - 1) * size
	if start >= len(items) {
		return p
	}
	end := min(start+size, len(items))
	p.Items = append(p.Items, items[start:end]...)
	return p
}

// PageCount is ceil(n/size).
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}
