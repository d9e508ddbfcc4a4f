package services

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePagination clamps caller-supplied pagination to sane values.
// Malformed input never errors: non-positive values fall back to the
// defaults, and pageSize is capped to bound a single query's cost.
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// totalPages computes ceil(total/pageSize). pageSize is already
// normalized to a positive value by the time this runs.
func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
