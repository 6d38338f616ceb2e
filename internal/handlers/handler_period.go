package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_period_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler exposes period closure, recalculation and reconciliation.
// Everything except reading the open period is admin only.
type periodHandler struct {
	periods        portssvc.PeriodSvcFacade
	recalculation  portssvc.RecalculationSvc
	reconciliation portssvc.ReconciliationSvc
}

func registerPeriodRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &periodHandler{periods: services.Period, recalculation: services.Recalculation, reconciliation: services.Reconciliation}

	rg.GET("/accounts/:accountID/open-period", h.getOpenPeriod)

	admin := rg.Group("", middleware.RequireAdmin())
	{
		admin.POST("/periods/close", h.closePeriod)
		admin.POST("/accounts/:accountID/periods/open", h.openPeriod)
		admin.POST("/accounts/:accountID/periods/reopen", h.reopenPeriod)
		admin.POST("/accounts/:accountID/recalculate", h.recalculateAccount)
		admin.POST("/accounts/:accountID/ledger-heads/:ledgerHeadID/recalculate", h.recalculateHead)
		admin.POST("/reconciliation/run", h.runReconciliation)
	}
}

// getOpenPeriod godoc
// @Summary Get the open period of an account
// @Tags periods
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.OpenPeriodResponse
// @Failure 404 {object} map[string]string "No open period"
// @Security BearerAuth
// @Router /accounts/{accountID}/open-period [get]
func (h *periodHandler) getOpenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	period, err := h.periods.GetOpenPeriodForAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to get open period")
		return
	}
	c.JSON(http.StatusOK, dto.OpenPeriodResponse{AccountID: accountID, Month: period.Month, Year: period.Year})
}

// closePeriod godoc
// @Summary Close a month
// @Description Closes the month for one account, or for every account when accountID is omitted
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   request body dto.ClosePeriodRequest true "Month to close"
// @Success 200 {object} dto.ClosePeriodResponse
// @Failure 400 {object} map[string]string "Future month"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Already closed or out of sequence"
// @Security BearerAuth
// @Router /periods/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ClosePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	results, err := h.periods.ClosePeriod(c.Request.Context(), domain.Period{Month: req.Month, Year: req.Year}, req.AccountID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to close period")
		return
	}
	c.JSON(http.StatusOK, dto.ToClosePeriodResponse(results))
}

// openPeriod godoc
// @Summary Open a month for an account
// @Tags periods
// @Accept  json
// @Param   accountID path string true "Account ID"
// @Param   request body dto.OpenPeriodRequest true "Month to open"
// @Success 204 "Opened"
// @Failure 409 {object} map[string]string "Month is closed"
// @Security BearerAuth
// @Router /accounts/{accountID}/periods/open [post]
func (h *periodHandler) openPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for OpenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	if err := h.periods.OpenPeriod(c.Request.Context(), domain.Period{Month: req.Month, Year: req.Year}, c.Param("accountID"), actorID); err != nil {
		respondError(c, logger, err, "Failed to open period")
		return
	}
	c.Status(http.StatusNoContent)
}

// reopenPeriod godoc
// @Summary Move last_closed_date back
// @Description Reopens every month after the new closing date; optionally recalculates afterwards
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   request body dto.ReopenPeriodRequest true "New closing date"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Date not before the current closing date"
// @Security BearerAuth
// @Router /accounts/{accountID}/periods/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	closing, err := dto.ParseDate(req.NewClosingDate)
	if err != nil {
		respondError(c, logger, err, "Failed to reopen period")
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	account, err := h.periods.ReopenPeriod(c.Request.Context(), c.Param("accountID"), closing, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to reopen period")
		return
	}
	if req.Recalculate && account.LastClosedDate != nil {
		// Start after the normalised month end, not the raw request date.
		from := account.LastClosedDate.AddDate(0, 0, 1)
		if _, err := h.recalculation.RecalculateAccount(c.Request.Context(), account.AccountID, from, actorID); err != nil {
			respondError(c, logger, err, "Period reopened but recalculation failed")
			return
		}
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func bindRecalculate(c *gin.Context, logger *slog.Logger) (time.Time, bool) {
	var req dto.RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Recalculate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return time.Time{}, false
	}
	from, err := dto.ParseDate(req.FromDate)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate")
		return time.Time{}, false
	}
	return from, true
}

// recalculateAccount godoc
// @Summary Recalculate every ledger head of an account
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   request body dto.RecalculateRequest true "Start date"
// @Success 200 {array} dto.RecalculationResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/recalculate [post]
func (h *periodHandler) recalculateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, ok := bindRecalculate(c, logger)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	results, err := h.recalculation.RecalculateAccount(c.Request.Context(), c.Param("accountID"), from, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate account")
		return
	}
	out := make([]dto.RecalculationResponse, len(results))
	for i := range results {
		out[i] = dto.ToRecalculationResponse(&results[i])
	}
	c.JSON(http.StatusOK, out)
}

// recalculateHead godoc
// @Summary Recalculate one ledger head
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   ledgerHeadID path string true "Ledger head ID"
// @Param   request body dto.RecalculateRequest true "Start date"
// @Success 200 {object} dto.RecalculationResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/ledger-heads/{ledgerHeadID}/recalculate [post]
func (h *periodHandler) recalculateHead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from, ok := bindRecalculate(c, logger)
	if !ok {
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.recalculation.Recalculate(c.Request.Context(), c.Param("accountID"), c.Param("ledgerHeadID"), from, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to recalculate ledger head")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecalculationResponse(result))
}

// runReconciliation godoc
// @Summary Run the reconciliation sweep now
// @Tags periods
// @Produce  json
// @Success 200 {object} domain.ReconciliationReport
// @Security BearerAuth
// @Router /reconciliation/run [post]
func (h *periodHandler) runReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	report, err := h.reconciliation.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Reconciliation failed")
		return
	}
	c.JSON(http.StatusOK, report)
}
