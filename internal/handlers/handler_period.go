package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/gl_engine/internal/core/domain"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// periodHandler handles HTTP requests for fiscal periods and snapshots.
type periodHandler struct {
	periodService   portssvc.PeriodSvcFacade
	snapshotService portssvc.SnapshotSvcFacade
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade, snapshotService portssvc.SnapshotSvcFacade) {
	h := &periodHandler{periodService: periodService, snapshotService: snapshotService}

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.initializeFiscalYear)
		years.GET("/:year/periods", h.listPeriods)
		years.GET("/:year/periods/:period", h.getPeriod)
		years.POST("/:year/periods/:period/close", h.closePeriod)
		years.POST("/:year/periods/:period/reopen", h.reopenPeriod)
		years.POST("/:year/periods/:period/lock", h.lockPeriod)
		years.POST("/:year/snapshots/rebuild", h.rebuildSnapshots)
	}
}

func (h *periodHandler) initializeFiscalYear(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.InitializeFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	periods, err := h.periodService.InitializeFiscalYear(ctx, req.Year, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		respondError(c, logger, err, "initializeFiscalYear")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"periods": dto.ToFiscalPeriodResponses(periods)})
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(ctx, year)
	if err != nil {
		respondError(c, logger, err, "listPeriods")
		return
	}
	c.JSON(http.StatusOK, gin.H{"periods": dto.ToFiscalPeriodResponses(periods)})
}

func (h *periodHandler) getPeriod(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	year, period, ok := h.yearPeriodParams(c)
	if !ok {
		return
	}

	p, err := h.periodService.GetPeriod(ctx, year, period)
	if err != nil {
		respondError(c, logger, err, "getPeriod")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalPeriodResponses([]domain.FiscalPeriod{*p})[0])
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	h.transition(c, "closePeriod", h.periodService.ClosePeriod)
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	h.transition(c, "reopenPeriod", h.periodService.ReopenPeriod)
}

func (h *periodHandler) lockPeriod(c *gin.Context) {
	h.transition(c, "lockPeriod", h.periodService.LockPeriod)
}

func (h *periodHandler) rebuildSnapshots(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	if err := h.snapshotService.RebuildSnapshots(ctx, year); err != nil {
		respondError(c, logger, err, "rebuildSnapshots")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *periodHandler) transition(c *gin.Context, operation string, fn func(ctx context.Context, year, period int, userID string) error) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	year, period, ok := h.yearPeriodParams(c)
	if !ok {
		return
	}

	if err := fn(ctx, year, period, middleware.GetUserIDFromContext(ctx)); err != nil {
		respondError(c, logger, err, operation)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *periodHandler) yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return 0, false
	}
	return year, true
}

func (h *periodHandler) yearPeriodParams(c *gin.Context) (int, int, bool) {
	year, ok := h.yearParam(c)
	if !ok {
		return 0, 0, false
	}
	period, err := strconv.Atoi(c.Param("period"))
	if err != nil || period < 1 || period > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid period parameter"})
		return 0, 0, false
	}
	return year, period, true
}
