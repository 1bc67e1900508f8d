package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/currency_converter_app/internal/apperrors"
	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/dto"
	"github.com/SscSPs/currency_converter_app/internal/metrics"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// convertHandler handles HTTP requests for currency conversion.
type convertHandler struct {
	converterService portssvc.ConverterSvcFacade
}

// newConvertHandler creates a new convertHandler.
func newConvertHandler(cs portssvc.ConverterSvcFacade) *convertHandler {
	return &convertHandler{
		converterService: cs,
	}
}

// registerConvertRoutes registers the conversion route.
func registerConvertRoutes(rg *gin.RouterGroup, converterService portssvc.ConverterSvcFacade, convertLimiter *limiter.Limiter) {
	h := newConvertHandler(converterService)
	rg.GET("/convert", middleware.RateLimit(convertLimiter), h.convert)
}

// convert converts an amount between two currencies using the latest
// applicable stored rate.
func (h *convertHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	start := time.Now()

	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		metrics.ConversionsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	from := strings.ToUpper(req.From)
	to := strings.ToUpper(req.To)
	logger = logger.With(slog.String("from", from), slog.String("to", to))

	result, err := h.converterService.Convert(c.Request.Context(), req.Amount, from, to, req.Precision)
	if err != nil {
		h.writeConvertError(c, logger, err)
		return
	}

	metrics.ConversionsTotal.WithLabelValues("success").Inc()
	metrics.ConversionDuration.Observe(time.Since(start).Seconds())
	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount: req.Amount,
		From:   from,
		To:     to,
		Result: result,
	})
}

func (h *convertHandler) writeConvertError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		logger.Warn("Invalid amount for conversion", slog.String("error", err.Error()))
		metrics.ConversionsTotal.WithLabelValues("bad_request").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrCurrencyNotFound), errors.Is(err, apperrors.ErrRateNotFound):
		logger.Warn("Conversion data not found", slog.String("error", err.Error()))
		metrics.ConversionsTotal.WithLabelValues("not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		metrics.ConversionsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
	}
}
