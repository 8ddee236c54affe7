package persistence

import (
	"testing"

	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared"
	"github.com/stationery/backoffice/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSortable_OrderBy(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		dir      string
		wantCol  string
		wantDesc bool
	}{
		{"defaults to fallback descending", "", "", "created_at", true},
		{"whitelisted column ascending", "name", "asc", "name", false},
		{"direction is case-insensitive", " name ", " ASC ", "name", false},
		{"unknown direction sorts descending", "name", "sideways", "name", true},
		{"unknown column falls back", "password", "asc", "created_at", false},
		{"injection falls back", "name; DROP TABLE investors;--", "desc", "created_at", true},
		{"columns are case-sensitive", "NAME", "", "created_at", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := investorSort.orderBy(tt.field, tt.dir)
			assert.Equal(t, tt.wantCol, got.Column.Name)
			assert.Equal(t, tt.wantDesc, got.Desc)
		})
	}

	assert.Equal(t, "paid_at", payoutSort.column(""), "payouts list newest payment first")
}

func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	return newTestDB(t).Session(&gorm.Session{DryRun: true})
}

func TestPaginate_SQL(t *testing.T) {
	var rows []models.InvestorModel
	stmt := paginate(dryRun(t).Model(&models.InvestorModel{}),
		shared.Filter{Page: 3, PageSize: 20, OrderBy: "name", OrderDir: "asc"}, investorSort).
		Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "ORDER BY `name`")
	assert.NotContains(t, sql, "DESC")
	assert.Contains(t, sql, "LIMIT 20 OFFSET 40")
}

func TestMatchAny(t *testing.T) {
	t.Run("blank search adds nothing", func(t *testing.T) {
		var rows []models.InvestorModel
		stmt := matchAny(dryRun(t).Model(&models.InvestorModel{}), "   ", "name").Find(&rows).Statement
		assert.NotContains(t, stmt.SQL.String(), "LIKE")
	})

	t.Run("ors every column with one escaped pattern", func(t *testing.T) {
		var rows []models.InvestorModel
		stmt := matchAny(dryRun(t).Model(&models.InvestorModel{}), " 50%_Off ", "name", "email").Find(&rows).Statement
		assert.Contains(t, stmt.SQL.String(), "LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(email) LIKE ?")
		assert.Equal(t, []any{`%50\%\_off%`, `%50\%\_off%`}, stmt.Vars[len(stmt.Vars)-2:])
	})
}

func TestGormInvestorRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	repo := NewGormInvestorRepository(newTestDB(t))
	saveInvestor(t, repo, "100% Paper")
	saveInvestor(t, repo, "1000 Pens")

	filter := shared.DefaultFilter()
	filter.Search = "100%"
	found, total, err := repo.FindAll(t.Context(), financing.InvestorFilter{Filter: filter})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, found, 1) {
		assert.Equal(t, "100% Paper", found[0].Name)
	}
}
