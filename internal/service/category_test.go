package service

import (
	"testing"

	"posledger-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanFree)

	created, err := f.categories.Create(tenant.ID, "Toiletries")
	require.NoError(t, err)

	// Duplicate name within the tenant
	_, err = f.categories.Create(tenant.ID, "Toiletries")
	assert.ErrorIs(t, err, ErrConflict)

	renamed, err := f.categories.Update(tenant.ID, created.ID, "Bath & Body")
	require.NoError(t, err)
	assert.Equal(t, "Bath & Body", renamed.Name)

	list, err := f.categories.List(tenant.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.categories.Delete(tenant.ID, created.ID))
	_, err = f.categories.Get(tenant.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryValidationAndScoping(t *testing.T) {
	f := newLedgerFixture(t)
	tenant := seedTenant(t, f.db, model.PlanFree)
	other := seedTenant(t, f.db, model.PlanFree)

	_, err := f.categories.Create(tenant.ID, "")
	assert.ErrorIs(t, err, ErrValidation)

	created, err := f.categories.Create(tenant.ID, "Toiletries")
	require.NoError(t, err)

	// Same name in another tenant is fine
	_, err = f.categories.Create(other.ID, "Toiletries")
	assert.NoError(t, err)

	// Categories are invisible across tenants
	_, err = f.categories.Get(other.ID, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.categories.Delete(other.ID, created.ID), ErrNotFound)
}
