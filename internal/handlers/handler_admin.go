package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/metrics"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles authenticated sync operations.
type adminHandler struct {
	rateSyncService portssvc.RateSyncSvcFacade
}

// newAdminHandler creates a new adminHandler.
func newAdminHandler(rs portssvc.RateSyncSvcFacade) *adminHandler {
	return &adminHandler{
		rateSyncService: rs,
	}
}

// registerAdminRoutes registers the authenticated sync routes.
func registerAdminRoutes(rg *gin.RouterGroup, rateSyncService portssvc.RateSyncSvcFacade) {
	h := newAdminHandler(rateSyncService)

	rg.POST("/currencies/sync", h.syncCurrencies)
	rg.POST("/rates/update", h.updateRates)
}

// syncCurrencies pulls the upstream currency directory and reconciles it into
// local storage.
func (h *adminHandler) syncCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to sync currencies")

	start := time.Now()
	count, err := h.rateSyncService.SyncCurrencies(c.Request.Context())
	metrics.SyncDuration.WithLabelValues("currencies").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("currencies", "error").Inc()
		logger.Error("Currency sync failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Currency sync failed"})
		return
	}

	metrics.SyncRunsTotal.WithLabelValues("currencies", "success").Inc()
	metrics.SyncEntriesSaved.WithLabelValues("currencies").Add(float64(count))
	logger.Info("Currency sync completed", slog.Int("count", count))
	c.JSON(http.StatusOK, dto.SyncResponse{Count: count})
}

// updateRates pulls the latest anchor-based rates and upserts them for today.
func (h *adminHandler) updateRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to update rates")

	start := time.Now()
	count, err := h.rateSyncService.UpdateRates(c.Request.Context())
	metrics.SyncDuration.WithLabelValues("rates").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SyncRunsTotal.WithLabelValues("rates", "error").Inc()
		logger.Error("Rate update failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Rate update failed"})
		return
	}

	metrics.SyncRunsTotal.WithLabelValues("rates", "success").Inc()
	metrics.SyncEntriesSaved.WithLabelValues("rates").Add(float64(count))
	logger.Info("Rate update completed", slog.Int("count", count))
	c.JSON(http.StatusOK, dto.SyncResponse{Count: count})
}
