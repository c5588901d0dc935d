package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BudgetSensitivity classifies how price-driven a lead is.
type BudgetSensitivity string

const (
	BudgetLow     BudgetSensitivity = "low"
	BudgetMedium  BudgetSensitivity = "medium"
	BudgetHigh    BudgetSensitivity = "high"
	BudgetUnknown BudgetSensitivity = "unknown"
)

func (b BudgetSensitivity) Valid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh, BudgetUnknown:
		return true
	}
	return false
}

// CompanyType classifies the submitting company.
type CompanyType string

const (
	CompanyMSO                 CompanyType = "MSO"
	CompanySingleStateOperator CompanyType = "single_state_operator"
	CompanyBrandCPG            CompanyType = "brand_cpg"
	CompanyDistributor         CompanyType = "distributor"
	CompanyOther               CompanyType = "other"
	CompanyUnknown             CompanyType = "unknown"
)

func (c CompanyType) Valid() bool {
	switch c {
	case CompanyMSO, CompanySingleStateOperator, CompanyBrandCPG,
		CompanyDistributor, CompanyOther, CompanyUnknown:
		return true
	}
	return false
}

// PriorityBand is the coarse urgency/value classification of a lead.
type PriorityBand string

const (
	PriorityHigh   PriorityBand = "high"
	PriorityMedium PriorityBand = "medium"
	PriorityLow    PriorityBand = "low"
)

func (p PriorityBand) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TriState is a boolean that distinguishes "not asked" from "asked, false".
// It marshals to JSON null/true/false.
type TriState int

const (
	TriStateUnknown TriState = iota
	TriStateFalse
	TriStateTrue
)

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriStateTrue:
		return []byte("true"), nil
	case TriStateFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = TriStateUnknown
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if b {
		*t = TriStateTrue
	} else {
		*t = TriStateFalse
	}
	return nil
}

// String renders the tri-state for a sheet cell; unknown renders empty.
func (t TriState) String() string {
	switch t {
	case TriStateTrue:
		return "true"
	case TriStateFalse:
		return "false"
	default:
		return ""
	}
}

// Extraction is the structured record derived from a freeform note. Every
// field has an "unknown"/empty representation so absent information never
// fails record construction.
type Extraction struct {
	ProductTypes           []string          `json:"product_types"`
	IntendedUse            string            `json:"intended_use"`
	Markets                []string          `json:"markets"`
	RegulatoryNeeds        string            `json:"regulatory_needs"`
	EstimatedMonthlyVolume *int64            `json:"estimated_monthly_volume"`
	Timeline               string            `json:"timeline"`
	BudgetSensitivity      BudgetSensitivity `json:"budget_sensitivity"`
	SustainabilityInterest TriState          `json:"sustainability_interest"`
	FactoryDirectInterest  TriState          `json:"factory_direct_interest"`
	CompanyType            CompanyType       `json:"company_type"`
	PriorityBand           PriorityBand      `json:"priority_band"`
	Summary                string            `json:"ai_summary"`
	MiscNotes              string            `json:"misc_notes"`
	ConfidenceFlags        []string          `json:"confidence_flags"`
}

// Validate checks that the enum fields resolved to declared values. A model
// reply that violates the schema is treated as an extraction failure by the
// caller.
func (e *Extraction) Validate() error {
	if e.BudgetSensitivity == "" {
		e.BudgetSensitivity = BudgetUnknown
	}
	if e.CompanyType == "" {
		e.CompanyType = CompanyUnknown
	}
	if e.PriorityBand == "" {
		e.PriorityBand = PriorityMedium
	}
	if !e.BudgetSensitivity.Valid() {
		return fmt.Errorf("invalid budget_sensitivity %q", e.BudgetSensitivity)
	}
	if !e.CompanyType.Valid() {
		return fmt.Errorf("invalid company_type %q", e.CompanyType)
	}
	if !e.PriorityBand.Valid() {
		return fmt.Errorf("invalid priority_band %q", e.PriorityBand)
	}
	return nil
}
