package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// adapterHandler accepts posting requests from source-document modules.
type adapterHandler struct {
	adapterService portssvc.SourceAdapterSvcFacade
}

func registerAdapterRoutes(rg *gin.RouterGroup, adapterService portssvc.SourceAdapterSvcFacade) {
	h := &adapterHandler{adapterService: adapterService}

	postings := rg.Group("/postings")
	{
		postings.POST("/invoice", h.postInvoice)
		postings.POST("/bill", h.postBill)
		postings.POST("/expense", h.postExpense)
		postings.POST("/payroll", h.postPayroll)
	}
}

func (h *adapterHandler) postInvoice(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.InvoicePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.adapterService.CreateFromInvoice(ctx, req, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		respondError(c, logger, err, "postInvoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *adapterHandler) postBill(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.BillPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.adapterService.CreateFromBill(ctx, req, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		respondError(c, logger, err, "postBill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *adapterHandler) postExpense(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.ExpensePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.adapterService.CreateFromExpense(ctx, req, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		respondError(c, logger, err, "postExpense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *adapterHandler) postPayroll(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.PayrollPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.adapterService.CreateFromPayroll(ctx, req, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		// Part of the run may have posted before the failure; report what
		// landed so the caller retries only the remainder.
		posted := make([]dto.JournalEntryResponse, len(entries))
		for i := range entries {
			posted[i] = dto.ToJournalEntryResponse(&entries[i])
		}
		if len(posted) > 0 {
			logger.Warn("Payroll run partially posted", "posted", len(posted))
		}
		respondErrorWithPayload(c, logger, err, "postPayroll", gin.H{"postedEntries": posted})
		return
	}

	out := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusCreated, gin.H{"entries": out})
}
