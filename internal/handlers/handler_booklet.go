package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_period_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_period_engine/internal/dto"
	"github.com/SscSPs/ledger_period_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

type bookletHandler struct {
	booklets portssvc.BookletSvcFacade
}

func registerBookletRoutes(rg *gin.RouterGroup, booklets portssvc.BookletSvcFacade) {
	h := &bookletHandler{booklets: booklets}
	rg.POST("/accounts/:accountID/booklets", h.createBooklet)
	rg.GET("/booklets/:bookletID", h.getBooklet)
}

// createBooklet godoc
// @Summary Register a receipt booklet
// @Tags booklets
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   booklet body dto.CreateBookletRequest true "Numbering range"
// @Success 201 {object} dto.BookletResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 409 {object} map[string]string "Range overlaps an existing booklet"
// @Security BearerAuth
// @Router /accounts/{accountID}/booklets [post]
func (h *bookletHandler) createBooklet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBooklet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(c)

	booklet, err := h.booklets.CreateBooklet(c.Request.Context(), c.Param("accountID"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create booklet")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookletResponse(booklet))
}

// getBooklet godoc
// @Summary Get a booklet with its free pages
// @Tags booklets
// @Produce  json
// @Param   bookletID path string true "Booklet ID"
// @Success 200 {object} dto.BookletResponse
// @Failure 404 {object} map[string]string "Booklet not found"
// @Security BearerAuth
// @Router /booklets/{bookletID} [get]
func (h *bookletHandler) getBooklet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	booklet, err := h.booklets.GetBookletByID(c.Request.Context(), c.Param("bookletID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve booklet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookletResponse(booklet))
}
