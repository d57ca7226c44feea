package utils

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// GetPaginationParams extracts page and limit with defaults.
// A limit of 0 means every item on one page.
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	return PaginationParams{Page: page, Limit: limit}
}

// Paginate returns the requested window of an already sorted slice. Full
// scans have no server-side cursor, so paging happens after the listing.
func Paginate[T any](items []T, p PaginationParams) ([]T, PaginationMeta) {
	total := len(items)
	if p.Limit <= 0 {
		return items, PaginationMeta{Page: 1, Limit: total, TotalCount: total, TotalPages: 1}
	}

	pages := (total + p.Limit - 1) / p.Limit
	meta := PaginationMeta{Page: p.Page, Limit: p.Limit, TotalCount: total, TotalPages: pages}

	start := (p.Page - 1) * p.Limit
	if start >= total {
		return []T{}, meta
	}
	end := min(start+p.Limit, total)
	return items[start:end], meta
}
