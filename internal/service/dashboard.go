package service

import (
	"time"

	"posledger-service/internal/model"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardService computes the read-only reporting view of the ledger. It
// never mutates state, so its sub-queries run concurrently against the
// committed view.
type DashboardService struct {
	db       *gorm.DB
	products *ProductService
}

func NewDashboardService(db *gorm.DB, products *ProductService) *DashboardService {
	return &DashboardService{db: db, products: products}
}

// RevenueSummary holds revenue aggregated per reporting period
type RevenueSummary struct {
	Today float64 `json:"today"`
	Month float64 `json:"month"`
}

// TopProduct is one entry of the top-sellers ranking, grouped across all
// sale line items
type TopProduct struct {
	ProductID     uint    `json:"product_id"`
	Name          string  `json:"name"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// DashboardSummary is the aggregate returned to the dashboard
type DashboardSummary struct {
	TotalProducts      int64           `json:"total_products"`
	LowStockCount      int             `json:"low_stock_count"`
	LowStockProducts   []model.Product `json:"low_stock_products"`
	Revenue            RevenueSummary  `json:"revenue"`
	TopSellingProducts []TopProduct    `json:"top_selling_products"`
	RecentSales        []model.Sale    `json:"recent_sales"`
}

const (
	lowStockLimit    = 10
	topSellersLimit  = 5
	recentSalesLimit = 5
	topSellersWindow = 30 * 24 * time.Hour
)

// Summary aggregates product counts, low-stock listings, revenue for today
// and the current month, top sellers over the trailing 30 days, and the most
// recent sales for one tenant.
func (s *DashboardService) Summary(tenantID uint) (*DashboardSummary, error) {
	var summary DashboardSummary
	now := time.Now()

	var g errgroup.Group

	g.Go(func() error {
		count, err := s.products.CountActive(tenantID)
		summary.TotalProducts = count
		return err
	})

	g.Go(func() error {
		products, err := s.products.LowStock(tenantID)
		if err != nil {
			return err
		}
		if len(products) > lowStockLimit {
			products = products[:lowStockLimit]
		}
		summary.LowStockProducts = products
		summary.LowStockCount = len(products)
		return nil
	})

	g.Go(func() error {
		today, err := s.revenueSince(tenantID, startOfDay(now))
		summary.Revenue.Today = today
		return err
	})

	g.Go(func() error {
		month, err := s.revenueSince(tenantID, startOfMonth(now))
		summary.Revenue.Month = month
		return err
	})

	g.Go(func() error {
		top, err := s.topSellers(tenantID, now.Add(-topSellersWindow))
		summary.TopSellingProducts = top
		return err
	})

	g.Go(func() error {
		var sales []model.Sale
		err := s.db.Preload("Items").
			Where("tenant_id = ?", tenantID).
			Order("created_at desc, id desc").
			Limit(recentSalesLimit).
			Find(&sales).Error
		summary.RecentSales = sales
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// revenueSince sums committed sale totals created at or after the cutoff
func (s *DashboardService) revenueSince(tenantID uint, since time.Time) (float64, error) {
	var revenue float64
	err := s.db.Model(&model.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, since).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// topSellers ranks products by quantity sold since the cutoff, grouping
// line items across all of the tenant's sales
func (s *DashboardService) topSellers(tenantID uint, since time.Time) ([]TopProduct, error) {
	var top []TopProduct
	err := s.db.Table("sale_items").
		Select("sale_items.product_id, MAX(sale_items.name) AS name, SUM(sale_items.quantity) AS total_quantity, SUM(sale_items.total) AS total_revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.tenant_id = ? AND sales.created_at >= ?", tenantID, since).
		Group("sale_items.product_id").
		Order("total_quantity DESC, MIN(sale_items.id) ASC").
		Limit(topSellersLimit).
		Scan(&top).Error
	return top, err
}
