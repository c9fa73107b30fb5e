package service

import (
	"time"

	"posledger-service/internal/model"

	"gorm.io/gorm"
)

// QuotaService gates resource creation against the tenant's plan limits
type QuotaService struct {
	db      *gorm.DB
	tenants *TenantService
}

func NewQuotaService(db *gorm.DB, tenants *TenantService) *QuotaService {
	return &QuotaService{db: db, tenants: tenants}
}

// withTx returns a QuotaService bound to the given transaction
func (s *QuotaService) withTx(tx *gorm.DB) *QuotaService {
	return &QuotaService{db: tx, tenants: NewTenantService(tx)}
}

// CheckProductQuota fails when the tenant's active product count has reached
// the plan's maximum
func (s *QuotaService) CheckProductQuota(tenantID uint) error {
	plan, limits, err := s.tenants.PlanFor(tenantID)
	if err != nil {
		return err
	}
	if limits.MaxProducts == model.Unlimited {
		return nil
	}

	var count int64
	if err := s.db.Model(&model.Product{}).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(limits.MaxProducts) {
		return &QuotaExceededError{Resource: "product", Limit: limits.MaxProducts, Plan: plan}
	}
	return nil
}

// CheckSaleQuota fails when the tenant has already recorded the plan's
// maximum number of sales this calendar month
func (s *QuotaService) CheckSaleQuota(tenantID uint) error {
	plan, limits, err := s.tenants.PlanFor(tenantID)
	if err != nil {
		return err
	}
	if limits.MaxMonthlySales == model.Unlimited {
		return nil
	}

	var count int64
	if err := s.db.Model(&model.Sale{}).
		Where("tenant_id = ? AND created_at >= ?", tenantID, startOfMonth(time.Now())).
		Count(&count).Error; err != nil {
		return err
	}
	if count >= int64(limits.MaxMonthlySales) {
		return &QuotaExceededError{Resource: "monthly sale", Limit: limits.MaxMonthlySales, Plan: plan}
	}
	return nil
}

// startOfMonth returns the first instant of t's calendar month in local time
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfDay returns midnight of t's calendar day in local time
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
