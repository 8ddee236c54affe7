package persistence

import (
	"slices"
	"strings"

	"github.com/stationery/backoffice/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortable whitelists the columns a listing may be ordered by.
// Anything else falls back, so client input never reaches ORDER BY.
type sortable struct {
	fallback string
	columns  []string
}

var (
	investorSort = sortable{
		fallback: "created_at",
		columns:  []string{"created_at", "updated_at", "name", "email", "is_active"},
	}
	payoutSort = sortable{
		fallback: "paid_at",
		columns:  []string{"paid_at", "created_at", "amount"},
	}
	purchaseOrderSort = sortable{
		fallback: "created_at",
		columns: []string{
			"created_at", "updated_at", "order_number", "vendor_name", "status",
			"total_amount", "due_amount", "order_date", "received_at",
		},
	}
	salesOrderSort = sortable{
		fallback: "created_at",
		columns:  []string{"created_at", "updated_at", "order_number", "buyer_name", "status", "total_amount"},
	}
)

// column returns field when whitelisted, else the fallback
func (s sortable) column(field string) string {
	field = strings.TrimSpace(field)
	if slices.Contains(s.columns, field) {
		return field
	}
	return s.fallback
}

// orderBy sorts descending unless dir is "asc" in any case
func (s sortable) orderBy(field, dir string) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Name: s.column(field)},
		Desc:   !strings.EqualFold(strings.TrimSpace(dir), "asc"),
	}
}

// paginate orders a listing query and cuts out the filter's page
func paginate(query *gorm.DB, filter shared.Filter, s sortable) *gorm.DB {
	return query.Order(s.orderBy(filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

// matchAny adds a case-insensitive substring match across columns
func matchAny(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = "LOWER(" + col + `) LIKE ? ESCAPE '\'`
		args[i] = pattern
	}
	return query.Where(strings.Join(conds, " OR "), args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
