package service

import (
	"errors"

	"posledger-service/internal/model"

	"gorm.io/gorm"
)

// CategoryService manages tenant-scoped product categories
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns all categories for a tenant
func (s *CategoryService) List(tenantID uint) ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	err := s.db.Where("tenant_id = ?", tenantID).Order("name asc").Find(&categories).Error
	return categories, err
}

// Get returns one category scoped to the tenant
func (s *CategoryService) Get(tenantID, categoryID uint) (*model.ProductCategory, error) {
	var category model.ProductCategory
	err := s.db.Where("id = ? AND tenant_id = ?", categoryID, tenantID).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "category", ID: categoryID}
		}
		return nil, err
	}
	return &category, nil
}

// Create adds a category; names are unique within a tenant
func (s *CategoryService) Create(tenantID uint, name string) (*model.ProductCategory, error) {
	if name == "" {
		return nil, validationErr("category name is required")
	}

	var count int64
	if err := s.db.Model(&model.ProductCategory{}).
		Where("tenant_id = ? AND name = ?", tenantID, name).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	category := model.ProductCategory{TenantID: tenantID, Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category
func (s *CategoryService) Update(tenantID, categoryID uint, name string) (*model.ProductCategory, error) {
	if name == "" {
		return nil, validationErr("category name is required")
	}

	category, err := s.Get(tenantID, categoryID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&model.ProductCategory{}).
		Where("tenant_id = ? AND name = ? AND id != ?", tenantID, name, categoryID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	category.Name = name
	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete soft-deletes a category
func (s *CategoryService) Delete(tenantID, categoryID uint) error {
	result := s.db.Where("tenant_id = ?", tenantID).Delete(&model.ProductCategory{}, categoryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Entity: "category", ID: categoryID}
	}
	return nil
}
