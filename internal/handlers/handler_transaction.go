package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles posting, editing and voiding of transactions and cheques.
type transactionHandler struct {
	poster  portssvc.TransactionPosterSvc
	cheques portssvc.ChequeSvc
}

func newTransactionHandler(poster portssvc.TransactionPosterSvc, cheques portssvc.ChequeSvc) *transactionHandler {
	return &transactionHandler{poster: poster, cheques: cheques}
}

func registerTransactionRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newTransactionHandler(services.Poster, services.Cheque)

	accounts := rg.Group("/accounts/:accountID")
	{
		accounts.POST("/credits", h.postCredit)
		accounts.POST("/debits", h.postDebit)
		accounts.GET("/transactions", h.listTransactions)
	}

	txs := rg.Group("/transactions")
	{
		txs.GET("/:transactionID", h.getTransaction)
		txs.PUT("/:transactionID", h.updateTransaction)
		txs.DELETE("/:transactionID", h.voidTransaction)
	}

	cheques := rg.Group("/cheques")
	{
		cheques.POST("/:chequeID/clear", h.clearCheque)
		cheques.POST("/:chequeID/cancel", h.cancelCheque)
	}
}

// overrideAllowed rejects admin overrides from non-admin callers with 403.
func overrideAllowed(c *gin.Context, override bool) bool {
	if override && !middleware.IsAdmin(c) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Admin override requested by non-admin")
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin override requires the admin role"})
		return false
	}
	return true
}

func requestID(c *gin.Context) *string {
	if key := strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader)); key != "" {
		return &key
	}
	return nil
}

// postCredit godoc
// @Summary Post a credit
// @Description Records money received into one or more ledger heads
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   Idempotency-Key header string false "Client request id; replays return the original transaction"
// @Param   transaction body dto.PostTransactionRequest true "Credit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Override without admin role"
// @Failure 404 {object} map[string]string "Account or ledger head not found"
// @Failure 409 {object} map[string]string "Closed period, used receipt or duplicate request"
// @Security BearerAuth
// @Router /accounts/{accountID}/credits [post]
func (h *transactionHandler) postCredit(c *gin.Context) {
	h.post(c, domain.TxTypeCredit)
}

// postDebit godoc
// @Summary Post a debit
// @Description Moves money out of source heads into the target head
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   Idempotency-Key header string false "Client request id; replays return the original transaction"
// @Param   transaction body dto.PostTransactionRequest true "Debit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Override without admin role"
// @Failure 409 {object} map[string]string "Closed period or duplicate request"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /accounts/{accountID}/debits [post]
func (h *transactionHandler) postDebit(c *gin.Context) {
	h.post(c, domain.TxTypeDebit)
}

func (h *transactionHandler) post(c *gin.Context, txType domain.TxType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !overrideAllowed(c, req.AdminOverride) {
		return
	}
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	draft, err := req.ToDraft(c.Param("accountID"), txType, requestID(c))
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}

	var tx *domain.Transaction
	if txType == domain.TxTypeCredit {
		tx, err = h.poster.PostCredit(c.Request.Context(), draft, actorID)
	} else {
		tx, err = h.poster.PostDebit(c.Request.Context(), draft, actorID)
	}
	if err != nil {
		respondError(c, logger, err, "Failed to post transaction")
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(tx))
}

// getTransaction godoc
// @Summary Get a transaction with its items
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tx, err := h.poster.GetTransaction(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// listTransactions godoc
// @Summary List transactions of an account
// @Description Newest first, paged with an opaque token
// @Tags transactions
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txs, next, err := h.poster.ListTransactions(c.Request.Context(), c.Param("accountID"), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	resp := dto.ListTransactionsResponse{Transactions: make([]dto.TransactionResponse, len(txs)), NextToken: next}
	for i := range txs {
		resp.Transactions[i] = dto.ToTransactionResponse(&txs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Edit a completed transaction
// @Description Reverses the stored effect and posts the new content in one step
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "New content"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 409 {object} map[string]string "Closed period"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !overrideAllowed(c, req.AdminOverride) {
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	draft, err := req.ToDraft()
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}
	tx, err := h.poster.UpdateTransaction(c.Request.Context(), c.Param("transactionID"), draft, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(tx))
}

// voidTransaction godoc
// @Summary Void a transaction
// @Description Reverses its balance effect and deletes it; refused in a closed period
// @Tags transactions
// @Param   transactionID path string true "Transaction ID"
// @Success 204 "Voided"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 409 {object} map[string]string "Closed period"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) voidTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, _ := middleware.GetUserIDFromContext(c)
	if err := h.poster.VoidTransaction(c.Request.Context(), c.Param("transactionID"), actorID); err != nil {
		respondError(c, logger, err, "Failed to void transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// clearCheque godoc
// @Summary Clear a pending cheque
// @Description Completes the cheque transaction and applies it to bank balances
// @Tags cheques
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Success 200 {object} dto.ChequeResponse
// @Failure 409 {object} map[string]string "Cheque not pending"
// @Failure 422 {object} map[string]string "Insufficient bank balance"
// @Security BearerAuth
// @Router /cheques/{chequeID}/clear [post]
func (h *transactionHandler) clearCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, _ := middleware.GetUserIDFromContext(c)
	cheque, err := h.cheques.ClearCheque(c.Request.Context(), c.Param("chequeID"), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to clear cheque")
		return
	}
	c.JSON(http.StatusOK, dto.ToChequeResponse(cheque))
}

// cancelCheque godoc
// @Summary Cancel a pending cheque
// @Tags cheques
// @Produce  json
// @Param   chequeID path string true "Cheque ID"
// @Success 200 {object} dto.ChequeResponse
// @Failure 409 {object} map[string]string "Cheque not pending"
// @Security BearerAuth
// @Router /cheques/{chequeID}/cancel [post]
func (h *transactionHandler) cancelCheque(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, _ := middleware.GetUserIDFromContext(c)
	cheque, err := h.cheques.CancelCheque(c.Request.Context(), c.Param("chequeID"), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to cancel cheque")
		return
	}
	c.JSON(http.StatusOK, dto.ToChequeResponse(cheque))
}
