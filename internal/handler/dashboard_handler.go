package handler

import (
	"net/http"
	"time"

	"posledger-service/internal/middleware"
	"posledger-service/internal/service"
	"posledger-service/pkg/logger"
	"posledger-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardHandler exposes the read-only reporting view
type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard handles retrieving the tenant's dashboard summary
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	tenantID, ok := middleware.GetTenantIDFromContext(c)
	if !ok {
		log.Warn("Missing tenant_id in context")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id is required"})
	}

	defer prometheus.TrackDBOperation("dashboard_summary")(time.Now())

	summary, err := h.dashboard.Summary(tenantID)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Dashboard summary computed",
		zap.Uint("tenant_id", tenantID),
		zap.Int64("total_products", summary.TotalProducts),
		zap.Int("low_stock_count", summary.LowStockCount))
	return c.JSON(http.StatusOK, summary)
}
