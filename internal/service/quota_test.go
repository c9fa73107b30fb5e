package service

import (
	"testing"
	"time"

	"posledger-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckProductQuotaUnlimitedPlan(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)

	// Pro has no product cap; the count query is skipped entirely
	assert.NoError(t, f.quota.CheckProductQuota(tenant.ID))
}

func TestCheckSaleQuotaUnlimitedPlan(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanPro)
	seedSales(t, f.db, tenant.ID, 150, time.Now())

	assert.NoError(t, f.quota.CheckSaleQuota(tenant.ID))
}

func TestCheckSaleQuotaBoundary(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanFree)
	limit := model.LimitsFor(model.PlanFree).MaxMonthlySales

	seedSales(t, f.db, tenant.ID, limit-1, time.Now())
	assert.NoError(t, f.quota.CheckSaleQuota(tenant.ID))

	seedSales(t, f.db, tenant.ID, 1, time.Now())
	var quotaErr *QuotaExceededError
	require.ErrorAs(t, f.quota.CheckSaleQuota(tenant.ID), &quotaErr)
	assert.Equal(t, "monthly sale", quotaErr.Resource)
	assert.Equal(t, limit, quotaErr.Limit)
}

func TestCheckQuotaUnknownTenant(t *testing.T) {
	f := newLedgerFixture(t)
	assert.ErrorIs(t, f.quota.CheckProductQuota(123), ErrNotFound)
	assert.ErrorIs(t, f.quota.CheckSaleQuota(123), ErrNotFound)
}

func TestStarterPlanLimits(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanStarter)

	plan, limits, err := f.tenants.PlanFor(tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlanStarter, plan)
	assert.Equal(t, 500, limits.MaxProducts)
	assert.Equal(t, 1000, limits.MaxMonthlySales)
}
