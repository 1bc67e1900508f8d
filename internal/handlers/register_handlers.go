package handlers

import (
	"log/slog"
	"net/http"
	"regexp"

	portssvc "github.com/SscSPs/currency_converter_app/internal/core/ports/services"
	"github.com/SscSPs/currency_converter_app/internal/middleware"
	"github.com/SscSPs/currency_converter_app/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := registerValidations(); err != nil {
		return err
	}

	// Health check and status routes
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/api/status", getStatus)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	v1 := r.Group("/api/v1")

	convertLimiter, err := newConvertLimiter(cfg.ConvertRateLimit)
	if err != nil {
		return err
	}

	registerConvertRoutes(v1, services.Converter, convertLimiter)
	registerCurrencyRoutes(v1, services.Currency)
	registerExchangeRateRoutes(v1, services.ExchangeRate)

	// Sync endpoints mutate the rate store, so they sit behind auth.
	admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret))
	registerAdminRoutes(admin, services.RateSync)

	return nil
}

// registerValidations adds the custom binding rules used by request DTOs.
func registerValidations() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return engine.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return currencyCodePattern.MatchString(fl.Field().String())
	})
}

// newConvertLimiter builds an in-memory, per-IP limiter from a formatted
// rate string such as "60-M".
func newConvertLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Error("Invalid convert rate limit format", slog.String("value", formatted), slog.String("error", err.Error()))
		return nil, err
	}
	return limiter.New(limitermemory.NewStore(), rate), nil
}
