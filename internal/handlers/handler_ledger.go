package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// ledgerHandler handles account activity queries over the general ledger.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		// :account accepts either an account ID or an account code.
		ledger.GET("/accounts/:account/activity", h.getAccountActivity)
	}
}

func (h *ledgerHandler) getAccountActivity(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var query dto.LedgerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	activity, err := h.ledgerService.GetEntriesByAccount(ctx, c.Param("account"), query)
	if err != nil {
		respondError(c, logger, err, "getAccountActivity")
		return
	}
	c.JSON(http.StatusOK, activity)
}
