package catalog

// Page is one slice of a filtered collection. Total is the length before
// slicing.
type Page[T any] struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Items []T `json:"items"`
}

// Paginate slices items with page clamped to >= 1 and limit clamped to
// [1, 1000]. Slicing past the end yields an empty page, never an error.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 1000 {
		limit = 1000
	}
	// (page-1)*limit can overflow for absurd page values; any page past the
	// end is just empty, so only multiply when the start fits.
	start := len(items)
	if page-1 <= (len(items)-1)/limit {
		start = (page - 1) * limit
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{Total: len(items), Page: page, Limit: limit, Items: items[start:end]}
}
