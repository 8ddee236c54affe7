package shared

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Filter is the paging, sorting and search input shared by list queries.
// Filters holds context-specific equality constraints keyed by column.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// DefaultFilter is the first page, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: defaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]any{},
	}
}

// Limit clamps PageSize to (0, 100]
func (f Filter) Limit() int {
	switch {
	case f.PageSize <= 0:
		return defaultPageSize
	case f.PageSize > maxPageSize:
		return maxPageSize
	}
	return f.PageSize
}

func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}
