package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ProductUnit is the unit a product is sold in
type ProductUnit string

const (
	UnitPcs   ProductUnit = "pcs"
	UnitKg    ProductUnit = "kg"
	UnitLitre ProductUnit = "litre"
	UnitBox   ProductUnit = "box"
	UnitPack  ProductUnit = "pack"
)

// Valid reports whether the unit is part of the fixed enumeration
func (u ProductUnit) Valid() bool {
	switch u {
	case UnitPcs, UnitKg, UnitLitre, UnitBox, UnitPack:
		return true
	}
	return false
}

// Price holds cost and selling price for a product
type Price struct {
	Cost    float64 `json:"cost" gorm:"not null"`
	Selling float64 `json:"selling" gorm:"not null"`
}

// Validate checks the price invariants
func (p Price) Validate() error {
	if p.Cost < 0 {
		return fmt.Errorf("cost price cannot be negative")
	}
	if p.Selling < 0 {
		return fmt.Errorf("selling price cannot be negative")
	}
	return nil
}

// Stock holds the current stock level and the low-stock threshold.
// Current is mutated only by the sales ledger.
type Stock struct {
	Current int `json:"current" gorm:"not null;default:0"`
	Minimum int `json:"minimum" gorm:"not null;default:10"`
}

// Validate checks the stock invariants
func (s Stock) Validate() error {
	if s.Current < 0 {
		return fmt.Errorf("stock cannot be negative")
	}
	if s.Minimum < 0 {
		return fmt.Errorf("minimum stock cannot be negative")
	}
	return nil
}

// IsLow reports whether current stock is at or below the minimum threshold
func (s Stock) IsLow() bool {
	return s.Current <= s.Minimum
}

// Product represents an item in a tenant's catalog
type Product struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	TenantID   uint           `json:"tenant_id" gorm:"uniqueIndex:idx_products_tenant_sku;index;not null"`
	Name       string         `json:"name" gorm:"type:varchar(120);not null"`
	SKU        string         `json:"sku" gorm:"type:varchar(100);uniqueIndex:idx_products_tenant_sku;not null"`
	Barcode    string         `json:"barcode,omitempty" gorm:"type:varchar(100)"`
	CategoryID uint           `json:"category_id"`
	Price      Price          `json:"price" gorm:"embedded;embeddedPrefix:price_"`
	Stock      Stock          `json:"stock" gorm:"embedded;embeddedPrefix:stock_"`
	Unit       ProductUnit    `json:"unit" gorm:"type:varchar(20);default:'pcs'"`
	IsActive   bool           `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// NormalizeSKU upper-cases and trims a SKU so uniqueness is case-insensitive
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// ProductCategory represents product categories
type ProductCategory struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	TenantID  uint           `json:"tenant_id" gorm:"index;not null"`
	Name      string         `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
