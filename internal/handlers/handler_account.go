package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/dto"
	"github.com/finbooks/gl_engine/internal/middleware"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/initialize", h.initializeChart)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deactivateAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(ctx, req, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		respondError(c, logger, err, "createAccount")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) initializeChart(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := h.accountService.InitializeChartOfAccounts(ctx, middleware.GetUserIDFromContext(ctx)); err != nil {
		respondError(c, logger, err, "initializeChart")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) getAccount(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := h.accountService.GetAccountByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "getAccount")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	includeInactive := c.Query("includeInactive") == "true"
	accounts, err := h.accountService.ListAccounts(ctx, includeInactive)
	if err != nil {
		respondError(c, logger, err, "listAccounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(ctx, c.Param("id"), req, middleware.GetUserIDFromContext(ctx))
	if err != nil {
		respondError(c, logger, err, "updateAccount")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := h.accountService.DeactivateAccount(ctx, c.Param("id"), middleware.GetUserIDFromContext(ctx)); err != nil {
		respondError(c, logger, err, "deactivateAccount")
		return
	}
	c.Status(http.StatusNoContent)
}
