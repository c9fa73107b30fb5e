package handler

import (
	"net/http"
	"strconv"

	"posledger-service/internal/middleware"
	"posledger-service/internal/service"
	"posledger-service/pkg/logger"
	"posledger-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryHandler exposes tenant-scoped product categories over HTTP
type CategoryHandler struct {
	categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories retrieves all categories for the tenant
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	categories, err := h.categories.List(tenantID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, categories)
}

// GetCategory retrieves a specific category by ID
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	category, err := h.categories.Get(tenantID, uint(categoryID))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a new product category
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category, err := h.categories.Create(tenantID, req.Name)
	if err != nil {
		log.Warn("Category creation failed",
			zap.Uint("tenant_id", tenantID),
			zap.String("name", req.Name),
			zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.RecordCategoryOperation("create")
	log.Info("Category created successfully",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames an existing category
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	category, err := h.categories.Update(tenantID, uint(categoryID), req.Name)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordCategoryOperation("update")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category (soft delete)
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	categoryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category id"})
	}

	if err := h.categories.Delete(tenantID, uint(categoryID)); err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordCategoryOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "Category deleted successfully"})
}
