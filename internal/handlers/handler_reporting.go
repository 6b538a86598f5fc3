package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// reportingHandler serves financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/balance-sheet", h.balanceSheet)
	}
}

func (h *reportingHandler) trialBalance(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	asOf, ok := dateQuery(c, "asOf", true)
	if !ok {
		return
	}
	fiscalYear, ok := yearQuery(c, asOf)
	if !ok {
		return
	}
	var periodStart *time.Time
	if start, ok := dateQuery(c, "periodStart", false); ok && !start.IsZero() {
		periodStart = &start
	} else if !ok {
		return
	}

	tb, err := h.reportingService.TrialBalance(ctx, asOf, fiscalYear, periodStart)
	if err != nil {
		respondError(c, logger, err, "trialBalance")
		return
	}
	c.JSON(http.StatusOK, tb)
}

func (h *reportingHandler) incomeStatement(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	start, ok := dateQuery(c, "periodStart", true)
	if !ok {
		return
	}
	end, ok := dateQuery(c, "periodEnd", true)
	if !ok {
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodEnd must not precede periodStart"})
		return
	}
	fiscalYear, ok := yearQuery(c, start)
	if !ok {
		return
	}

	stmt, err := h.reportingService.IncomeStatement(ctx, start, end, fiscalYear)
	if err != nil {
		respondError(c, logger, err, "incomeStatement")
		return
	}
	c.JSON(http.StatusOK, stmt)
}

func (h *reportingHandler) balanceSheet(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	asOf, ok := dateQuery(c, "asOf", true)
	if !ok {
		return
	}
	fiscalYear, ok := yearQuery(c, asOf)
	if !ok {
		return
	}

	bs, err := h.reportingService.BalanceSheet(ctx, asOf, fiscalYear)
	if err != nil {
		respondError(c, logger, err, "balanceSheet")
		return
	}
	c.JSON(http.StatusOK, bs)
}

// dateQuery parses a YYYY-MM-DD query parameter. A missing optional
// parameter returns the zero time with ok=true.
func dateQuery(c *gin.Context, name string, required bool) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		if required {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter '" + name + "'"})
			return time.Time{}, false
		}
		return time.Time{}, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid '" + name + "' date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// yearQuery parses the fiscalYear parameter, defaulting to the calendar year
// of the fallback date.
func yearQuery(c *gin.Context, fallback time.Time) (int, bool) {
	raw := c.Query("fiscalYear")
	if raw == "" {
		return fallback.Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'fiscalYear' parameter"})
		return 0, false
	}
	return year, true
}
