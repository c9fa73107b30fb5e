package service

import (
	"fmt"

	"posledger-service/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceSequencer hands out tenant-scoped invoice numbers. Each tenant has
// one counter row advanced with an atomic in-database increment; the ordinal
// may skip values when a surrounding transaction rolls back, but it never
// repeats for a committed sale.
type InvoiceSequencer struct {
	db     *gorm.DB
	prefix string
	width  int
}

func NewInvoiceSequencer(db *gorm.DB, prefix string, width int) *InvoiceSequencer {
	if prefix == "" {
		prefix = "INV"
	}
	if width <= 0 {
		width = 6
	}
	return &InvoiceSequencer{db: db, prefix: prefix, width: width}
}

// withTx returns a sequencer bound to the given transaction
func (s *InvoiceSequencer) withTx(tx *gorm.DB) *InvoiceSequencer {
	return &InvoiceSequencer{db: tx, prefix: s.prefix, width: s.width}
}

// Next advances the tenant's counter and returns the formatted invoice
// number, e.g. INV-000042.
func (s *InvoiceSequencer) Next(tenantID uint) (string, error) {
	ordinal, err := s.next(tenantID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%0*d", s.prefix, s.width, ordinal), nil
}

func (s *InvoiceSequencer) next(tenantID uint) (int64, error) {
	ordinal, found, err := s.increment(tenantID)
	if err != nil {
		return 0, err
	}
	if !found {
		// First writer for a tenant creates the counter row; the conflict
		// clause makes the create a no-op when another writer got there first.
		seq := model.InvoiceSequence{TenantID: tenantID, LastValue: 0}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			DoNothing: true,
		}).Create(&seq).Error; err != nil {
			return 0, err
		}
		ordinal, found, err = s.increment(tenantID)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, fmt.Errorf("invoice sequence row missing for tenant %d", tenantID)
		}
	}
	return ordinal, nil
}

// increment advances the counter and reads the new value back in the same
// statement, so two callers sharing a pool can never observe one increment.
// Returns found=false when the tenant has no counter row yet.
func (s *InvoiceSequencer) increment(tenantID uint) (int64, bool, error) {
	var seq model.InvoiceSequence
	result := s.db.Model(&seq).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "last_value"}}}).
		Where("tenant_id = ?", tenantID).
		UpdateColumn("last_value", gorm.Expr("last_value + 1"))
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	return seq.LastValue, true, nil
}
