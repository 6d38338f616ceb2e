package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts and their ledger heads.
type accountHandler struct {
	accountService    portssvc.AccountSvcFacade
	ledgerHeadService portssvc.LedgerHeadSvcFacade
	snapshotStore     portssvc.SnapshotStoreSvc
}

func newAccountHandler(as portssvc.AccountSvcFacade, ls portssvc.LedgerHeadSvcFacade, ss portssvc.SnapshotStoreSvc) *accountHandler {
	return &accountHandler{accountService: as, ledgerHeadService: ls, snapshotStore: ss}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAccountHandler(services.Account, services.LedgerHead, services.Snapshot)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.POST("/:accountID/ledger-heads", h.createLedgerHead)
		accounts.GET("/:accountID/ledger-heads", h.listLedgerHeads)
	}

	heads := rg.Group("/ledger-heads")
	{
		heads.GET("/:ledgerHeadID", h.getLedgerHead)
		heads.GET("/:ledgerHeadID/snapshots", h.listSnapshots)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account with zero balances and no closed period
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Success 200 {array} dto.AccountResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// createLedgerHead godoc
// @Summary Create a ledger head
// @Description Adds a debit or credit head to the account with zero balances
// @Tags ledger-heads
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   head body dto.CreateLedgerHeadRequest true "Ledger head details"
// @Success 201 {object} dto.LedgerHeadResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate head name"
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger-heads [post]
func (h *accountHandler) createLedgerHead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLedgerHead", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	head, err := h.ledgerHeadService.CreateLedgerHead(c.Request.Context(), c.Param("accountID"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create ledger head")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerHeadResponse(head))
}

// listLedgerHeads godoc
// @Summary List the ledger heads of an account
// @Tags ledger-heads
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {array} dto.LedgerHeadResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger-heads [get]
func (h *accountHandler) listLedgerHeads(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	heads, err := h.ledgerHeadService.ListLedgerHeads(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		respondError(c, logger, err, "Failed to list ledger heads")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerHeadResponses(heads))
}

// getLedgerHead godoc
// @Summary Get a ledger head
// @Tags ledger-heads
// @Produce  json
// @Param   ledgerHeadID path string true "Ledger head ID"
// @Success 200 {object} dto.LedgerHeadResponse
// @Failure 404 {object} map[string]string "Ledger head not found"
// @Security BearerAuth
// @Router /ledger-heads/{ledgerHeadID} [get]
func (h *accountHandler) getLedgerHead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	head, err := h.ledgerHeadService.GetLedgerHeadByID(c.Request.Context(), c.Param("ledgerHeadID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve ledger head")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerHeadResponse(head))
}

// listSnapshots godoc
// @Summary List monthly balances of a ledger head
// @Tags ledger-heads
// @Produce  json
// @Param   ledgerHeadID path string true "Ledger head ID"
// @Success 200 {array} dto.SnapshotResponse
// @Security BearerAuth
// @Router /ledger-heads/{ledgerHeadID}/snapshots [get]
func (h *accountHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	snaps, err := h.snapshotStore.ListForLedgerHead(c.Request.Context(), c.Param("ledgerHeadID"), nil)
	if err != nil {
		respondError(c, logger, err, "Failed to list snapshots")
		return
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponses(snaps))
}
