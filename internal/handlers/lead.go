// Package handlers implements the HTTP handlers for the intake API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/lead-intake/internal/intake"
	"github.com/jonesrussell/lead-intake/internal/ledger"
	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/models"
)

// User-facing failure messages. Vendor errors are logged server-side and
// never reach the client.
const (
	MsgSaveFailed   = "Unable to save your request. Please try again."
	MsgGenericError = "An error occurred while processing your request. Please try again or contact us directly."
)

// IntakeService runs the lead workflow for one submission.
type IntakeService interface {
	Process(ctx context.Context, req *models.LeadIntakeRequest) (*intake.Result, error)
}

type LeadHandler struct {
	service IntakeService
	ledger  ledger.Ledger
	logger  logger.Logger
}

func NewLeadHandler(service IntakeService, l ledger.Ledger, log logger.Logger) *LeadHandler {
	return &LeadHandler{
		service: service,
		ledger:  l,
		logger:  log,
	}
}

// Submit handles POST /lead-intake.
func (h *LeadHandler) Submit(c *gin.Context) {
	var req models.LeadIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Invalid lead submission",
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	req.ApplyDefaults()

	result, err := h.service.Process(c.Request.Context(), &req)
	if err != nil {
		message := MsgGenericError
		var fatal *intake.FatalError
		if errors.As(err, &fatal) && fatal.Step == intake.StepPersist {
			message = MsgSaveFailed
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": message})
		return
	}

	c.JSON(http.StatusOK, models.LeadIntakeResponse{
		Status:  "ok",
		LeadID:  result.LeadID,
		Message: result.Message,
	})
}

// GetByID handles GET /leads/:id. The lookup is best-effort: upstream
// failures surface as not-found.
func (h *LeadHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	record, err := h.ledger.GetLeadByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Debug("Lead not found",
			logger.String("lead_id", id),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}
