package model

import (
	"time"

	"gorm.io/gorm"
)

// SubscriptionPlan identifies a tenant's subscription tier.
// Modeled as a closed type so illegal plan values are caught at the domain
// layer instead of the storage layer.
type SubscriptionPlan string

const (
	PlanFree    SubscriptionPlan = "free"
	PlanStarter SubscriptionPlan = "starter"
	PlanPro     SubscriptionPlan = "pro"
)

// Valid reports whether the plan is one of the known tiers
func (p SubscriptionPlan) Valid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro:
		return true
	}
	return false
}

// Subscription describes a tenant's current plan window
type Subscription struct {
	Plan      SubscriptionPlan `json:"plan" gorm:"type:varchar(20);not null;default:'free'"`
	StartDate time.Time        `json:"start_date"`
	EndDate   time.Time        `json:"end_date"`
	IsActive  bool             `json:"is_active" gorm:"default:true"`
}

// Tenant represents an isolated shop. Every other entity in the ledger is
// owned by exactly one tenant and never visible across tenants.
type Tenant struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	Email        string         `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone        string         `json:"phone" gorm:"type:varchar(20)"`
	Subscription Subscription   `json:"subscription" gorm:"embedded;embeddedPrefix:subscription_"`
	Currency     string         `json:"currency" gorm:"type:varchar(10);default:'INR'"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// Unlimited marks a plan limit with no upper bound
const Unlimited = -1

// PlanLimits holds the per-plan resource quotas
type PlanLimits struct {
	MaxProducts     int
	MaxUsers        int
	MaxMonthlySales int
}

// planLimits is the externally supplied quota table keyed by plan
var planLimits = map[SubscriptionPlan]PlanLimits{
	PlanFree:    {MaxProducts: 50, MaxUsers: 1, MaxMonthlySales: 100},
	PlanStarter: {MaxProducts: 500, MaxUsers: 3, MaxMonthlySales: 1000},
	PlanPro:     {MaxProducts: Unlimited, MaxUsers: 10, MaxMonthlySales: Unlimited},
}

// LimitsFor returns the quota table entry for a plan. Unknown plans fall
// back to the free tier limits.
func LimitsFor(plan SubscriptionPlan) PlanLimits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits[PlanFree]
}
