package service

import (
	"testing"
	"time"

	"posledger-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardSummary(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)
	soap := seedProduct(t, f.db, tenant.ID, "Soap", "SOAP-01", 100, 50, 2)
	shampoo := seedProduct(t, f.db, tenant.ID, "Shampoo", "SHAM-01", 250, 1, 5)

	// Two sales today through the engine
	_, err := f.sales.CreateSale(tenant.ID, 1, []SaleItemInput{
		{ProductID: soap.ID, Quantity: 5},
		{ProductID: shampoo.ID, Quantity: 1},
	}, model.PaymentCash)
	require.NoError(t, err)
	_, err = f.sales.CreateSale(tenant.ID, 1, []SaleItemInput{{ProductID: soap.ID, Quantity: 2}}, model.PaymentCard)
	require.NoError(t, err)

	summary, err := f.dashboard.Summary(tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalProducts)

	// Shampoo is depleted to 0 against a minimum of 5
	require.Equal(t, 1, summary.LowStockCount)
	assert.Equal(t, shampoo.ID, summary.LowStockProducts[0].ID)

	// 5*100 + 1*250 + 2*100 = 950, all of it today and this month
	assert.Equal(t, 950.0, summary.Revenue.Today)
	assert.Equal(t, 950.0, summary.Revenue.Month)

	require.Len(t, summary.TopSellingProducts, 2)
	assert.Equal(t, soap.ID, summary.TopSellingProducts[0].ProductID)
	assert.Equal(t, 7, summary.TopSellingProducts[0].TotalQuantity)
	assert.Equal(t, 700.0, summary.TopSellingProducts[0].TotalRevenue)
	assert.Equal(t, shampoo.ID, summary.TopSellingProducts[1].ProductID)

	require.Len(t, summary.RecentSales, 2)
	assert.Equal(t, "INV-000002", summary.RecentSales[0].InvoiceNumber)
	require.NotEmpty(t, summary.RecentSales[0].Items)
}

func TestDashboardRevenueExcludesOtherPeriods(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)

	now := time.Now()
	// One committed sale well before this month, 100 each
	seedSales(t, f.db, tenant.ID, 1, startOfMonth(now).Add(-time.Hour))
	// Three sales this month but before today
	if startOfDay(now).Sub(startOfMonth(now)) > time.Hour {
		seedSales(t, f.db, tenant.ID, 3, startOfDay(now).Add(-time.Hour))
		// One sale today
		seedSales(t, f.db, tenant.ID, 1, now)

		summary, err := f.dashboard.Summary(tenant.ID)
		require.NoError(t, err)
		assert.Equal(t, 100.0, summary.Revenue.Today)
		assert.Equal(t, 400.0, summary.Revenue.Month)
		return
	}

	// First day of the month: today and month coincide
	seedSales(t, f.db, tenant.ID, 1, now)
	summary, err := f.dashboard.Summary(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, summary.Revenue.Today, summary.Revenue.Month)
}

func TestDashboardTopSellersWindow(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)

	now := time.Now()
	old := model.Sale{
		TenantID:      tenant.ID,
		InvoiceNumber: "OLD-000001",
		TotalAmount:   1000,
		PaymentMethod: model.PaymentCash,
		CreatedBy:     1,
		CreatedAt:     now.Add(-40 * 24 * time.Hour),
		Items: []model.SaleItem{
			{ProductID: 1, Name: "Stale", Quantity: 100, Price: 10, Total: 1000},
		},
	}
	require.NoError(t, f.db.Create(&old).Error)

	recent := model.Sale{
		TenantID:      tenant.ID,
		InvoiceNumber: "NEW-000001",
		TotalAmount:   50,
		PaymentMethod: model.PaymentCash,
		CreatedBy:     1,
		CreatedAt:     now.Add(-24 * time.Hour),
		Items: []model.SaleItem{
			{ProductID: 2, Name: "Fresh", Quantity: 5, Price: 10, Total: 50},
		},
	}
	require.NoError(t, f.db.Create(&recent).Error)

	summary, err := f.dashboard.Summary(tenant.ID)
	require.NoError(t, err)

	// Only line items from the trailing 30 days count
	require.Len(t, summary.TopSellingProducts, 1)
	assert.Equal(t, "Fresh", summary.TopSellingProducts[0].Name)
	assert.Equal(t, 5, summary.TopSellingProducts[0].TotalQuantity)
}

func TestDashboardCapsLists(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)

	// 12 products all at zero stock against a positive minimum
	for i := 0; i < 12; i++ {
		seedProduct(t, f.db, tenant.ID, "Empty", string(rune('A'+i))+"-SKU", 10, 0, 5)
	}
	seedSales(t, f.db, tenant.ID, 8, time.Now())

	summary, err := f.dashboard.Summary(tenant.ID)
	require.NoError(t, err)
	assert.Len(t, summary.LowStockProducts, 10)
	assert.Equal(t, 10, summary.LowStockCount)
	assert.Len(t, summary.RecentSales, 5)
}

func TestDashboardIsTenantScoped(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)
	other := seedTenant(t, f.db, model.PlanPro)
	seedProduct(t, f.db, other.ID, "Foreign", "F-01", 10, 0, 5)
	seedSales(t, f.db, other.ID, 3, time.Now())

	summary, err := f.dashboard.Summary(tenant.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalProducts)
	assert.Empty(t, summary.LowStockProducts)
	assert.Zero(t, summary.Revenue.Month)
	assert.Empty(t, summary.RecentSales)
	assert.Empty(t, summary.TopSellingProducts)
}
