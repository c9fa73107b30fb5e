package service

import (
	"errors"
	"time"

	"posledger-service/internal/model"

	"gorm.io/gorm"
)

// SaleService is the transactional heart of the ledger. CreateSale runs as a
// single atomic unit of work spanning the quota gate, every per-line stock
// decrement, the invoice-number assignment, and the sale insert, so a
// partially applied sale is never observable.
type SaleService struct {
	db       *gorm.DB
	quota    *QuotaService
	products *ProductService
	seq      *InvoiceSequencer
}

func NewSaleService(db *gorm.DB, quota *QuotaService, products *ProductService, seq *InvoiceSequencer) *SaleService {
	return &SaleService{db: db, quota: quota, products: products, seq: seq}
}

// SaleItemInput is one requested line of a sale
type SaleItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CreateSale records one sale for the tenant: it checks the monthly sale
// quota, deducts stock for every requested line, assigns the next invoice
// number, and persists the sale with per-line name/price snapshots. Any
// failure rolls the whole operation back. An invoice-number collision under
// concurrent assignment is retried once with a fresh sequence value.
func (s *SaleService) CreateSale(tenantID, userID uint, items []SaleItemInput, paymentMethod model.PaymentMethod) (*model.Sale, error) {
	if len(items) == 0 {
		return nil, validationErr("sale must have at least one item")
	}
	for _, item := range items {
		if item.ProductID == 0 {
			return nil, validationErr("product id is required")
		}
		if item.Quantity < 1 {
			return nil, validationErr("quantity must be at least 1")
		}
	}
	if paymentMethod == "" {
		paymentMethod = model.PaymentCash
	}
	if !paymentMethod.Valid() {
		return nil, validationErr("unknown payment method %q", paymentMethod)
	}

	sale, err := s.createSaleTx(tenantID, userID, items, paymentMethod)
	if errors.Is(err, ErrConflict) {
		// Invoice uniqueness race: retry once with a freshly assigned number
		sale, err = s.createSaleTx(tenantID, userID, items, paymentMethod)
	}
	return sale, err
}

func (s *SaleService) createSaleTx(tenantID, userID uint, items []SaleItemInput, paymentMethod model.PaymentMethod) (*model.Sale, error) {
	var sale *model.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		inventory := s.products.withTx(tx)

		if err := s.quota.withTx(tx).CheckSaleQuota(tenantID); err != nil {
			return err
		}

		saleItems := make([]model.SaleItem, 0, len(items))
		var totalAmount float64

		for _, item := range items {
			product, err := inventory.FindActive(tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if product.Stock.Current < item.Quantity {
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock.Current,
					Requested:   item.Quantity,
				}
			}

			if err := inventory.DecrementStock(tenantID, item.ProductID, item.Quantity); err != nil {
				return err
			}

			lineTotal := product.Price.Selling * float64(item.Quantity)
			saleItems = append(saleItems, model.SaleItem{
				ProductID: product.ID,
				Name:      product.Name,
				Quantity:  item.Quantity,
				Price:     product.Price.Selling,
				Total:     lineTotal,
			})
			totalAmount += lineTotal
		}

		invoiceNumber, err := s.seq.withTx(tx).Next(tenantID)
		if err != nil {
			return err
		}

		record := model.Sale{
			TenantID:      tenantID,
			InvoiceNumber: invoiceNumber,
			Items:         saleItems,
			TotalAmount:   totalAmount,
			PaymentMethod: paymentMethod,
			CreatedBy:     userID,
		}
		if err := tx.Create(&record).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrConflict
			}
			return err
		}

		sale = &record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// SalePage is one page of a tenant's sale history
type SalePage struct {
	Sales []model.Sale `json:"sales"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int64        `json:"total"`
}

// ListSales returns a page of the tenant's sales, newest first, optionally
// restricted to a creation date range
func (s *SaleService) ListSales(tenantID uint, page, limit int, startDate, endDate *time.Time) (*SalePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, validationErr("end date is before start date")
	}

	query := s.db.Model(&model.Sale{}).Where("tenant_id = ?", tenantID)
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var sales []model.Sale
	err := query.Preload("Items").
		Order("created_at desc, id desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&sales).Error
	if err != nil {
		return nil, err
	}

	return &SalePage{Sales: sales, Page: page, Limit: limit, Total: total}, nil
}

// GetSale returns one sale with its line items, scoped to the tenant
func (s *SaleService) GetSale(tenantID, saleID uint) (*model.Sale, error) {
	var sale model.Sale
	err := s.db.Preload("Items").
		Where("id = ? AND tenant_id = ?", saleID, tenantID).
		First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "sale", ID: saleID}
		}
		return nil, err
	}
	return &sale, nil
}
