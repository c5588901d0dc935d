// Package intake implements the sequential lead workflow:
// extract, persist, notify, confirm.
package intake

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonesrussell/lead-intake/internal/leadid"
	"github.com/jonesrussell/lead-intake/internal/ledger"
	"github.com/jonesrussell/lead-intake/internal/logger"
	"github.com/jonesrussell/lead-intake/internal/metrics"
	"github.com/jonesrussell/lead-intake/internal/models"
	"github.com/jonesrussell/lead-intake/internal/notify"
)

// AckMessage is the fixed acknowledgment returned on success.
const AckMessage = "Thank you! Your project has been received. Our team will follow up within one business day."

const (
	// FlagAIUnavailable marks a fallback extraction in confidence_flags.
	FlagAIUnavailable = "ai_unavailable"
	// FallbackNotes marks a fallback extraction in misc_notes.
	FallbackNotes = "AI extraction unavailable (fallback summary used)."

	fallbackSummaryLimit = 240
)

// Extractor derives a structured extraction from a freeform note.
type Extractor interface {
	Extract(ctx context.Context, freeformNote, role string) (*models.Extraction, error)
}

// Step names, in workflow order.
const (
	StepExtract = "extract"
	StepPersist = "persist"
	StepNotify  = "notify"
	StepConfirm = "confirm"
)

// StepStatus is the typed outcome of one workflow step, making the
// fatal/best-effort policy visible rather than buried in error-handling
// order.
type StepStatus string

const (
	StepOK        StepStatus = "ok"
	StepRecovered StepStatus = "recovered"
)

type StepResult struct {
	Name   string
	Status StepStatus
	Err    error
}

// FatalError aborts the workflow: the lead has no durable record, so
// reporting success would be incorrect. Handlers translate it to a generic
// user-facing message, never the underlying cause.
type FatalError struct {
	Step string
	Err  error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal failure at step %s: %v", e.Step, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

var errDeliveryFailed = errors.New("delivery failed for one or more recipients")

// Result is the outcome of a successfully persisted submission. Steps
// records each step's typed outcome, including ones that recovered.
type Result struct {
	LeadID  string
	Message string
	Steps   []StepResult
}

// Service orchestrates one submission at a time. The capability handles are
// constructed once at startup and injected; the service itself is stateless
// and safe for concurrent use.
type Service struct {
	extractor   Extractor
	ledger      ledger.Ledger
	notifier    notify.Notifier
	salesEmail  string
	adminEmails []string
	metrics     *metrics.Metrics
	logger      logger.Logger
}

func NewService(
	extractor Extractor,
	l ledger.Ledger,
	n notify.Notifier,
	salesEmail string,
	adminEmails []string,
	m *metrics.Metrics,
	log logger.Logger,
) *Service {
	return &Service{
		extractor:   extractor,
		ledger:      l,
		notifier:    n,
		salesEmail:  salesEmail,
		adminEmails: adminEmails,
		metrics:     m,
		logger:      log,
	}
}

// Process runs the workflow strictly in order: generate identifier, extract,
// persist, notify, confirm. Extraction and email failures recover locally;
// a ledger append failure returns a FatalError and later steps never run.
func (s *Service) Process(ctx context.Context, req *models.LeadIntakeRequest) (*Result, error) {
	leadID := leadid.New()
	timestamp := time.Now().UTC()
	log := s.logger.With(logger.String("lead_id", leadID))

	s.metrics.LeadsReceived.Inc()

	steps := make([]StepResult, 0, 4)

	extraction, err := s.extractor.Extract(ctx, req.FreeformNote, req.Role)
	if err != nil {
		log.Error("AI extraction failed, using fallback", logger.Error(err))
		s.metrics.ExtractionFallbacks.Inc()
		extraction = FallbackExtraction(req.FreeformNote)
		steps = append(steps, StepResult{Name: StepExtract, Status: StepRecovered, Err: err})
	} else {
		steps = append(steps, StepResult{Name: StepExtract, Status: StepOK})
	}

	record := models.NewLeadRecord(leadID, timestamp, req, extraction)
	if err := s.ledger.AppendLead(ctx, record); err != nil {
		log.Error("Ledger append failed, lead not recorded", logger.Error(err))
		s.metrics.LedgerFailures.Inc()
		return nil, &FatalError{Step: StepPersist, Err: err}
	}
	steps = append(steps, StepResult{Name: StepPersist, Status: StepOK})

	if ok := s.notifier.SendNotification(ctx, notify.Notification{
		LeadID:       leadID,
		Company:      req.Contact.Company,
		ContactName:  req.Contact.Name,
		Email:        req.Contact.Email,
		ProductTypes: extraction.ProductTypes,
		Summary:      extraction.Summary,
		PriorityBand: string(extraction.PriorityBand),
		AdminEmails:  s.adminEmails,
	}); ok {
		steps = append(steps, StepResult{Name: StepNotify, Status: StepOK})
	} else {
		log.Error("Sales notification failed")
		s.metrics.EmailFailures.Inc()
		steps = append(steps, StepResult{Name: StepNotify, Status: StepRecovered, Err: errDeliveryFailed})
	}

	if ok := s.notifier.SendLeadConfirmation(ctx, notify.Confirmation{
		ToEmail:     req.Contact.Email,
		ContactName: req.Contact.Name,
		Company:     req.Contact.Company,
		Summary:     extraction.Summary,
		LeadID:      leadID,
		SalesEmail:  s.salesEmail,
	}); ok {
		steps = append(steps, StepResult{Name: StepConfirm, Status: StepOK})
	} else {
		log.Error("Lead confirmation failed")
		s.metrics.EmailFailures.Inc()
		steps = append(steps, StepResult{Name: StepConfirm, Status: StepRecovered, Err: errDeliveryFailed})
	}

	log.Info("Lead processed",
		logger.String("company", req.Contact.Company),
		logger.String("priority_band", string(extraction.PriorityBand)),
	)

	return &Result{
		LeadID:  leadID,
		Message: AckMessage,
		Steps:   steps,
	}, nil
}

// FallbackExtraction substitutes for a failed AI extraction: the summary is
// the first 240 characters of the note (with an ellipsis if truncated), the
// enums hold their unknown/default values, and the confidence flags carry
// the AI-unavailable sentinel.
func FallbackExtraction(freeformNote string) *models.Extraction {
	summary := freeformNote
	if runes := []rune(freeformNote); len(runes) > fallbackSummaryLimit {
		summary = string(runes[:fallbackSummaryLimit]) + "…"
	}

	return &models.Extraction{
		ProductTypes:           []string{},
		Markets:                []string{},
		BudgetSensitivity:      models.BudgetUnknown,
		SustainabilityInterest: models.TriStateUnknown,
		FactoryDirectInterest:  models.TriStateUnknown,
		CompanyType:            models.CompanyUnknown,
		PriorityBand:           models.PriorityMedium,
		Summary:                summary,
		MiscNotes:              FallbackNotes,
		ConfidenceFlags:        []string{FlagAIUnavailable},
	}
}
