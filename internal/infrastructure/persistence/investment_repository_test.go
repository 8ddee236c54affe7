package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stationery/backoffice/internal/domain/financing"
	"github.com/stationery/backoffice/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInvestment(t *testing.T, purchaseOrderID, investorID uuid.UUID, amount string, pct int64) financing.Investment {
	t.Helper()
	p, err := valueobject.PercentageFromInt(pct)
	require.NoError(t, err)
	inv, err := financing.NewInvestment(purchaseOrderID, investorID, decimal.RequireFromString(amount), p, pct == 100)
	require.NoError(t, err)
	return *inv
}

func TestGormInvestmentRepository_ReplaceForPurchaseOrder(t *testing.T) {
	repo := NewGormInvestmentRepository(newTestDB(t))
	ctx := context.Background()
	po, otherPO := uuid.New(), uuid.New()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, repo.ReplaceForPurchaseOrder(ctx, po, []financing.Investment{
		newInvestment(t, po, alice, "600.00", 60),
		newInvestment(t, po, bob, "400.00", 40),
	}))
	require.NoError(t, repo.ReplaceForPurchaseOrder(ctx, otherPO, []financing.Investment{
		newInvestment(t, otherPO, alice, "50.00", 100),
	}))

	// replacing drops the previous set for that order only
	require.NoError(t, repo.ReplaceForPurchaseOrder(ctx, po, []financing.Investment{
		newInvestment(t, uuid.New(), bob, "1000.00", 100),
	}))

	current, err := repo.FindByPurchaseOrder(ctx, po)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, bob, current[0].InvestorID)
	assert.Equal(t, po, current[0].PurchaseOrderID)
	assert.True(t, current[0].IsFullInvestment)
	assert.True(t, decimal.NewFromInt(100).Equal(current[0].ProfitPercentage.Decimal()))

	count, err := repo.CountByInvestor(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	both, err := repo.FindByPurchaseOrders(ctx, []uuid.UUID{po, otherPO})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.ReplaceForPurchaseOrder(ctx, po, nil))
	current, err = repo.FindByPurchaseOrder(ctx, po)
	require.NoError(t, err)
	assert.Empty(t, current)
}

func TestGormInvestmentRepository_FindByInvestor(t *testing.T) {
	repo := NewGormInvestmentRepository(newTestDB(t))
	ctx := context.Background()
	alice := uuid.New()
	po1, po2 := uuid.New(), uuid.New()

	require.NoError(t, repo.ReplaceForPurchaseOrder(ctx, po1, []financing.Investment{newInvestment(t, po1, alice, "10.00", 25)}))
	require.NoError(t, repo.ReplaceForPurchaseOrder(ctx, po2, []financing.Investment{newInvestment(t, po2, alice, "20.00", 50)}))

	investments, err := repo.FindByInvestor(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, investments, 2)

	none, err := repo.FindByPurchaseOrders(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}
