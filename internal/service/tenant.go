package service

import (
	"errors"

	"posledger-service/internal/model"

	"gorm.io/gorm"
)

// TenantService owns tenant records and their subscription plans
type TenantService struct {
	db *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{db: db}
}

// Get returns the tenant by id
func (s *TenantService) Get(tenantID uint) (*model.Tenant, error) {
	var tenant model.Tenant
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "tenant", ID: tenantID}
		}
		return nil, err
	}
	return &tenant, nil
}

// PlanFor returns the subscription plan and its limits for a tenant
func (s *TenantService) PlanFor(tenantID uint) (model.SubscriptionPlan, model.PlanLimits, error) {
	tenant, err := s.Get(tenantID)
	if err != nil {
		return "", model.PlanLimits{}, err
	}
	plan := tenant.Subscription.Plan
	return plan, model.LimitsFor(plan), nil
}
