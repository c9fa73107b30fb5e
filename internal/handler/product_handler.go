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

// ProductHandler exposes the product catalog over HTTP
type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts handles retrieving a page of the tenant's catalog
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	search := c.QueryParam("search")

	products, total, err := h.products.List(tenantID, search, page, limit)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Products retrieved successfully",
		zap.Uint("tenant_id", tenantID),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, echo.Map{"products": products, "total": total})
}

// GetProduct handles retrieving a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	product, err := h.products.Get(tenantID, uint(productID))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Product creation request",
		zap.Uint("tenant_id", tenantID),
		zap.String("name", req.Name),
		zap.String("sku", req.SKU))

	product, err := h.products.Create(tenantID, req)
	if err != nil {
		log.Warn("Product creation failed",
			zap.Uint("tenant_id", tenantID),
			zap.String("sku", req.SKU),
			zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created successfully",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("product_id", product.ID),
		zap.String("sku", product.SKU))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	var req service.ProductInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	product, err := h.products.Update(tenantID, uint(productID), req)
	if err != nil {
		log.Warn("Product update failed",
			zap.Uint("tenant_id", tenantID),
			zap.Uint64("product_id", productID),
			zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated successfully",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("product_id", product.ID))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}

	if err := h.products.Delete(tenantID, uint(productID)); err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully",
		zap.Uint("tenant_id", tenantID),
		zap.Uint64("product_id", productID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

// LowStock handles listing products at or below their minimum threshold
func (h *ProductHandler) LowStock(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	products, err := h.products.LowStock(tenantID)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Low stock products retrieved",
		zap.Uint("tenant_id", tenantID),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}
