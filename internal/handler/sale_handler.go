package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"posledger-service/internal/middleware"
	"posledger-service/internal/model"
	"posledger-service/internal/service"
	"posledger-service/pkg/logger"
	"posledger-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SaleHandler exposes the sales ledger over HTTP
type SaleHandler struct {
	sales *service.SaleService
}

func NewSaleHandler(sales *service.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// SaleRequest defines the structure for sale creation requests
type SaleRequest struct {
	Items         []service.SaleItemInput `json:"items"`
	PaymentMethod model.PaymentMethod     `json:"payment_method"`
}

// CreateSale handles recording a new sale
func (h *SaleHandler) CreateSale(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		log.Warn("Missing user_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}

	var req SaleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	log.Info("Sale creation request",
		zap.Uint("tenant_id", tenantID),
		zap.Uint("user_id", userID),
		zap.Int("item_count", len(req.Items)),
		zap.String("payment_method", string(req.PaymentMethod)))

	defer prometheus.TrackDBOperation("create_sale")(time.Now())

	sale, err := h.sales.CreateSale(tenantID, userID, req.Items, req.PaymentMethod)
	if err != nil {
		reason := failureReason(err)
		prometheus.RecordSaleFailure(reason)
		var quotaExceeded *service.QuotaExceededError
		if errors.As(err, &quotaExceeded) {
			prometheus.RecordQuotaRejection(quotaExceeded.Resource)
		}
		log.Warn("Sale creation failed",
			zap.Uint("tenant_id", tenantID),
			zap.String("reason", reason),
			zap.Error(err))
		return respondError(c, log, err)
	}

	prometheus.RecordSaleOperation("create")
	prometheus.RecordSaleRevenue(sale.TotalAmount)
	log.Info("Sale created successfully",
		zap.Uint("tenant_id", tenantID),
		zap.String("invoice_number", sale.InvoiceNumber),
		zap.Float64("total_amount", sale.TotalAmount),
		zap.Int("item_count", len(sale.Items)))
	return c.JSON(http.StatusCreated, sale)
}

// ListSales handles retrieving a page of the tenant's sale history
func (h *SaleHandler) ListSales(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var startDate, endDate *time.Time
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, expected RFC3339"})
		}
		startDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date, expected RFC3339"})
		}
		endDate = &t
	}

	result, err := h.sales.ListSales(tenantID, page, limit, startDate, endDate)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Sales listed successfully",
		zap.Uint("tenant_id", tenantID),
		zap.Int("count", len(result.Sales)),
		zap.Int64("total", result.Total))
	return c.JSON(http.StatusOK, result)
}

// GetSale handles retrieving a single sale by ID
func (h *SaleHandler) GetSale(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	saleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid sale id"})
	}

	sale, err := h.sales.GetSale(tenantID, uint(saleID))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(http.StatusOK, sale)
}
