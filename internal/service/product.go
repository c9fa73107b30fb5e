package service

import (
	"errors"

	"posledger-service/internal/model"

	"gorm.io/gorm"
)

// ProductService owns the product catalog and enforces the stock
// non-negativity invariant on it. Construct it over the pool for catalog
// endpoints, or over a transaction handle when it participates in a sale.
type ProductService struct {
	db    *gorm.DB
	quota *QuotaService
}

func NewProductService(db *gorm.DB, quota *QuotaService) *ProductService {
	return &ProductService{db: db, quota: quota}
}

// withTx returns a ProductService bound to the given transaction
func (s *ProductService) withTx(tx *gorm.DB) *ProductService {
	return &ProductService{db: tx, quota: s.quota}
}

// ProductInput is the shape accepted for catalog writes
type ProductInput struct {
	Name       string            `json:"name"`
	SKU        string            `json:"sku"`
	Barcode    string            `json:"barcode"`
	CategoryID uint              `json:"category_id"`
	Price      model.Price       `json:"price"`
	Stock      model.Stock       `json:"stock"`
	Unit       model.ProductUnit `json:"unit"`
	IsActive   *bool             `json:"is_active"`
}

func (in *ProductInput) validate() error {
	if in.Name == "" {
		return validationErr("product name is required")
	}
	if model.NormalizeSKU(in.SKU) == "" {
		return validationErr("sku is required")
	}
	if err := in.Price.Validate(); err != nil {
		return validationErr("%s", err.Error())
	}
	if err := in.Stock.Validate(); err != nil {
		return validationErr("%s", err.Error())
	}
	if in.Unit == "" {
		in.Unit = model.UnitPcs
	}
	if !in.Unit.Valid() {
		return validationErr("unknown unit %q", in.Unit)
	}
	return nil
}

// FindActive looks up an active product scoped to the tenant
func (s *ProductService) FindActive(tenantID, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.Where("id = ? AND tenant_id = ? AND is_active = ?", productID, tenantID, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: productID}
		}
		return nil, err
	}
	return &product, nil
}

// DecrementStock atomically deducts quantity from a product's stock. The
// guard lives in the WHERE clause so two concurrent decrements can never
// both read the same stock value and overdraw: the statement is a no-op
// when the remaining stock is insufficient, reported via RowsAffected.
func (s *ProductService) DecrementStock(tenantID, productID uint, quantity int) error {
	if quantity <= 0 {
		return validationErr("quantity must be positive")
	}
	result := s.db.Model(&model.Product{}).
		Where("id = ? AND tenant_id = ? AND is_active = ? AND stock_current >= ?",
			productID, tenantID, true, quantity).
		UpdateColumn("stock_current", gorm.Expr("stock_current - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		product, err := s.FindActive(tenantID, productID)
		if err != nil {
			return err
		}
		return &InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock.Current,
			Requested:   quantity,
		}
	}
	return nil
}

// CountActive returns the number of active products for a tenant
func (s *ProductService) CountActive(tenantID uint) (int64, error) {
	var count int64
	err := s.db.Model(&model.Product{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count).Error
	return count, err
}

// LowStock lists active products at or below their minimum stock threshold,
// most depleted first
func (s *ProductService) LowStock(tenantID uint) ([]model.Product, error) {
	var products []model.Product
	err := s.db.Where("tenant_id = ? AND is_active = ? AND stock_current <= stock_minimum", tenantID, true).
		Order("stock_current asc").
		Find(&products).Error
	return products, err
}

// Get returns a product scoped to the tenant, active or not
func (s *ProductService) Get(tenantID, productID uint) (*model.Product, error) {
	var product model.Product
	err := s.db.Where("id = ? AND tenant_id = ?", productID, tenantID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "product", ID: productID}
		}
		return nil, err
	}
	return &product, nil
}

// List returns a page of active products for a tenant, optionally filtered
// by a name/SKU search term
func (s *ProductService) List(tenantID uint, search string, page, limit int) ([]model.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&model.Product{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Order("created_at desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&products).Error
	return products, total, err
}

// Create adds a product to the tenant's catalog, gated by the plan's
// product quota
func (s *ProductService) Create(tenantID uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.quota.CheckProductQuota(tenantID); err != nil {
		return nil, err
	}

	sku := model.NormalizeSKU(in.SKU)
	var count int64
	if err := s.db.Model(&model.Product{}).
		Where("tenant_id = ? AND sku = ?", tenantID, sku).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	if err := s.checkCategory(tenantID, in.CategoryID); err != nil {
		return nil, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	product := model.Product{
		TenantID:   tenantID,
		Name:       in.Name,
		SKU:        sku,
		Barcode:    in.Barcode,
		CategoryID: in.CategoryID,
		Price:      in.Price,
		Stock:      in.Stock,
		Unit:       in.Unit,
		IsActive:   isActive,
	}
	if err := s.db.Create(&product).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &product, nil
}

// Update edits a product's catalog fields. Stock.Current is deliberately
// not writable here; only the ledger mutates it.
func (s *ProductService) Update(tenantID, productID uint, in ProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	product, err := s.Get(tenantID, productID)
	if err != nil {
		return nil, err
	}

	sku := model.NormalizeSKU(in.SKU)
	if sku != product.SKU {
		var count int64
		if err := s.db.Model(&model.Product{}).
			Where("tenant_id = ? AND sku = ? AND id != ?", tenantID, sku, productID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrConflict
		}
	}

	if err := s.checkCategory(tenantID, in.CategoryID); err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.SKU = sku
	product.Barcode = in.Barcode
	product.CategoryID = in.CategoryID
	product.Price = in.Price
	product.Stock.Minimum = in.Stock.Minimum
	product.Unit = in.Unit
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.db.Save(product).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return product, nil
}

// Delete soft-deletes a product from the tenant's catalog. The SKU is
// mangled first so the retained row frees its slot in the per-tenant unique
// index and the SKU can be reused by a new product.
func (s *ProductService) Delete(tenantID, productID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Product{}).
			Where("id = ? AND tenant_id = ?", productID, tenantID).
			UpdateColumn("sku", gorm.Expr("'DEL-' || id || '-' || sku"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &NotFoundError{Entity: "product", ID: productID}
		}
		return tx.Delete(&model.Product{}, productID).Error
	})
}

// checkCategory verifies a referenced category belongs to the same tenant.
// A zero category id means uncategorized and is allowed.
func (s *ProductService) checkCategory(tenantID, categoryID uint) error {
	if categoryID == 0 {
		return nil
	}
	var count int64
	if err := s.db.Model(&model.ProductCategory{}).
		Where("id = ? AND tenant_id = ?", categoryID, tenantID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Entity: "category", ID: categoryID}
	}
	return nil
}
