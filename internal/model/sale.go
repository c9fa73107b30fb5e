package model

import (
	"time"
)

// PaymentMethod is how a sale was paid
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
)

// Valid reports whether the payment method is one of the known kinds
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentUPI, PaymentCard:
		return true
	}
	return false
}

// Sale is one committed point-of-sale transaction. Sales are append-only
// history: there is no update or delete path once a sale is recorded.
type Sale struct {
	ID            uint          `json:"id" gorm:"primarykey"`
	TenantID      uint          `json:"tenant_id" gorm:"uniqueIndex:idx_sales_tenant_invoice;index:idx_sales_tenant_created;not null"`
	InvoiceNumber string        `json:"invoice_number" gorm:"type:varchar(30);uniqueIndex:idx_sales_tenant_invoice;not null"`
	Items         []SaleItem    `json:"items" gorm:"foreignKey:SaleID"`
	TotalAmount   float64       `json:"total_amount" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(10);default:'cash'"`
	CreatedBy     uint          `json:"created_by" gorm:"not null"`
	CreatedAt     time.Time     `json:"created_at" gorm:"index:idx_sales_tenant_created"`
}

// SaleItem is one line of a sale. Name and Price are snapshots captured at
// sale time so later catalog edits do not rewrite history.
type SaleItem struct {
	ID        uint    `json:"-" gorm:"primarykey"`
	SaleID    uint    `json:"-" gorm:"index;not null"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Name      string  `json:"name" gorm:"type:varchar(120);not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
	Total     float64 `json:"total" gorm:"not null"`
}

// InvoiceSequence is the tenant-scoped counter behind invoice numbers.
// LastValue is only ever advanced with an atomic in-database increment, so
// the count-rows-and-add-one race cannot assign duplicates.
type InvoiceSequence struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	TenantID  uint      `json:"tenant_id" gorm:"uniqueIndex;not null"`
	LastValue int64     `json:"last_value" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
