package service

import (
	"fmt"
	"testing"
	"time"

	"posledger-service/internal/model"
	"posledger-service/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// ledgerFixture bundles the service graph the way cmd/main.go wires it
type ledgerFixture struct {
	db         *gorm.DB
	tenants    *TenantService
	quota      *QuotaService
	products   *ProductService
	sequencer  *InvoiceSequencer
	sales      *SaleService
	categories *CategoryService
	dashboard  *DashboardService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := setupTestDB(t)
	tenants := NewTenantService(db)
	quota := NewQuotaService(db, tenants)
	products := NewProductService(db, quota)
	sequencer := NewInvoiceSequencer(db, "INV", 6)
	return &ledgerFixture{
		db:         db,
		tenants:    tenants,
		quota:      quota,
		products:   products,
		sequencer:  sequencer,
		sales:      NewSaleService(db, quota, products, sequencer),
		categories: NewCategoryService(db),
		dashboard:  NewDashboardService(db, products),
	}
}

func seedTenant(t *testing.T, db *gorm.DB, plan model.SubscriptionPlan) model.Tenant {
	t.Helper()
	tenant := model.Tenant{
		Name:  "Test Shop",
		Email: fmt.Sprintf("%s-%d@test.local", plan, time.Now().UnixNano()),
		Phone: "5550001111",
		Subscription: model.Subscription{
			Plan:      plan,
			StartDate: time.Now(),
			EndDate:   time.Now().Add(14 * 24 * time.Hour),
			IsActive:  true,
		},
	}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func seedProduct(t *testing.T, db *gorm.DB, tenantID uint, name, sku string, selling float64, current, minimum int) model.Product {
	t.Helper()
	product := model.Product{
		TenantID: tenantID,
		Name:     name,
		SKU:      model.NormalizeSKU(sku),
		Price:    model.Price{Cost: selling / 2, Selling: selling},
		Stock:    model.Stock{Current: current, Minimum: minimum},
		Unit:     model.UnitPcs,
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

// seedSales bulk-inserts committed sale rows directly, bypassing the engine,
// for quota and reporting fixtures
func seedSales(t *testing.T, db *gorm.DB, tenantID uint, count int, createdAt time.Time) {
	t.Helper()
	sales := make([]model.Sale, 0, count)
	for i := 0; i < count; i++ {
		sales = append(sales, model.Sale{
			TenantID:      tenantID,
			InvoiceNumber: fmt.Sprintf("SEED-%d-%d", createdAt.UnixNano(), i),
			TotalAmount:   100,
			PaymentMethod: model.PaymentCash,
			CreatedBy:     1,
			CreatedAt:     createdAt,
		})
	}
	require.NoError(t, db.CreateInBatches(&sales, 100).Error)
}
