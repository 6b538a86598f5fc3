package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/gl_engine/internal/apperrors"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerPeriodRoutes(v1, services.Period, services.Snapshot)
	registerLedgerRoutes(v1, services.Ledger)
	registerReportingRoutes(v1, services.Reporting)
	registerAdapterRoutes(v1, services.Adapters)
}

// respondError maps the application error taxonomy to HTTP statuses.
func respondError(c *gin.Context, logger *slog.Logger, err error, operation string) {
	respondErrorWithPayload(c, logger, err, operation, nil)
}

// respondErrorWithPayload is respondError with extra response fields, for
// operations that partially succeed (e.g. a payroll run that posted some
// entries before failing).
func respondErrorWithPayload(c *gin.Context, logger *slog.Logger, err error, operation string, extra gin.H) {
	respond := func(status int, body gin.H) {
		for k, v := range extra {
			body[k] = v
		}
		c.JSON(status, body)
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriodClosed):
		logger.Warn("Fiscal period not open", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		logger.Warn("Invalid state transition", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent write conflict", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusConflict, gin.H{"error": "Concurrent update conflict, please retry"})
	default:
		logger.Error("Internal error", slog.String("operation", operation), slog.String("error", err.Error()))
		respond(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
