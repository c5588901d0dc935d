// Package models defines the lead intake request/response shapes, the
// AI extraction record, and the ledger row layout.
package models

import (
	"strconv"
	"strings"
	"time"
)

// ContactInfo is the contact block of a lead submission.
type ContactInfo struct {
	Name    string `json:"name"    binding:"required,min=1"`
	Company string `json:"company" binding:"required,min=1"`
	Email   string `json:"email"   binding:"required,email"`
	Phone   string `json:"phone"`
}

// Metadata describes where the submission came from.
type Metadata struct {
	Source    string `json:"source"`
	UserAgent string `json:"user_agent"`
	PageURL   string `json:"page_url"`
}

// LeadIntakeRequest is the body of POST /lead-intake.
type LeadIntakeRequest struct {
	FreeformNote string      `json:"freeform_note" binding:"required,min=40"`
	Contact      ContactInfo `json:"contact"       binding:"required"`
	Role         string      `json:"role"`
	Metadata     Metadata    `json:"metadata"`
}

// ApplyDefaults fills metadata defaults for fields the form may omit.
func (r *LeadIntakeRequest) ApplyDefaults() {
	if r.Metadata.Source == "" {
		r.Metadata.Source = "widget"
	}
}

// LeadIntakeResponse is the body returned by POST /lead-intake.
type LeadIntakeResponse struct {
	Status  string `json:"status"`
	LeadID  string `json:"lead_id"`
	Message string `json:"message"`
}

// TranscribeResponse is the body returned by POST /transcribe.
type TranscribeResponse struct {
	Status  string `json:"status"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// SheetColumns is the fixed, ordered ledger row layout. Row one of the sheet
// must equal this list; every appended row follows it.
var SheetColumns = []string{
	"timestamp",
	"lead_id",
	"source",
	"page_url",
	"contact_name",
	"company",
	"email",
	"phone",
	"role",
	"raw_freeform_note",
	"ai_summary",
	"product_types",
	"intended_use",
	"markets",
	"estimated_monthly_volume",
	"timeline",
	"sustainability_interest",
	"factory_direct_interest",
	"budget_sensitivity",
	"compliance_needs",
	"priority_band",
	"misc_notes",
	"status",
}

// LeadRecord maps ledger column names to stringified values.
type LeadRecord map[string]string

// NewLeadRecord assembles the persisted row from a submission and its
// extraction. Rows are append-only; status starts as "new" and is never
// updated by this service.
func NewLeadRecord(leadID string, ts time.Time, req *LeadIntakeRequest, ex *Extraction) LeadRecord {
	volume := ""
	if ex.EstimatedMonthlyVolume != nil {
		volume = strconv.FormatInt(*ex.EstimatedMonthlyVolume, 10)
	}

	return LeadRecord{
		"timestamp":                ts.UTC().Format(time.RFC3339),
		"lead_id":                  leadID,
		"source":                   req.Metadata.Source,
		"page_url":                 req.Metadata.PageURL,
		"contact_name":             req.Contact.Name,
		"company":                  req.Contact.Company,
		"email":                    req.Contact.Email,
		"phone":                    req.Contact.Phone,
		"role":                     req.Role,
		"raw_freeform_note":        req.FreeformNote,
		"ai_summary":               ex.Summary,
		"product_types":            strings.Join(ex.ProductTypes, ", "),
		"intended_use":             ex.IntendedUse,
		"markets":                  strings.Join(ex.Markets, ", "),
		"estimated_monthly_volume": volume,
		"timeline":                 ex.Timeline,
		"sustainability_interest":  ex.SustainabilityInterest.String(),
		"factory_direct_interest":  ex.FactoryDirectInterest.String(),
		"budget_sensitivity":       string(ex.BudgetSensitivity),
		"compliance_needs":         ex.RegulatoryNeeds,
		"priority_band":            string(ex.PriorityBand),
		"misc_notes":               ex.MiscNotes,
		"status":                   "new",
	}
}
