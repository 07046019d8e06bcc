package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/savings_ledger/internal/core/ports/services"
	"github.com/SscSPs/savings_ledger/internal/dto"
	"github.com/SscSPs/savings_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalReaderSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalReaderSvc) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalReaderSvc) {
	h := newJournalHandler(journalService)
	rg.GET("/journals/:journalID", h.getJournal)
}

// getJournal godoc
// @Summary Get a journal entry and its lines
// @Description Retrieves a journal produced by a savings unit of work
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	journalID := c.Param("journalID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("journal_id", journalID))
	logger.Info("Received request to get journal")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
