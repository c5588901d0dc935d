package extract

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are an AI assistant for eBottles, a packaging company specializing in bottles, jars, containers, and flexible packaging for regulated and wellness markets (cannabis, CBD, nutraceuticals, supplements, cosmetics, and consumer packaged goods).

Analyze the following lead intake form submission and extract structured information. Be accurate and conservative - if something is not mentioned or unclear, use null or "unknown" rather than guessing.

User's description of their needs:
---
%s
---

%s

Extract the structured data according to the schema. For the AI summary, write 2-3 sentences that would help a sales rep quickly understand what this lead needs and how to approach them.`

func buildPrompt(freeformNote, role string) string {
	roleContext := ""
	if strings.TrimSpace(role) != "" {
		roleContext = "The user identified themselves as: " + role
	}
	return fmt.Sprintf(promptTemplate, freeformNote, roleContext)
}

// extractionProperties is the tool input schema the model reply is
// constrained to. It mirrors models.Extraction field for field.
var extractionProperties = map[string]any{
	"product_types": map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "Types of packaging products mentioned (e.g., 'child resistant jars', 'dropper bottles', 'pouches')",
	},
	"intended_use": map[string]any{
		"type":        []string{"string", "null"},
		"description": "What the packaging will be used for (e.g., 'cannabis gummies', 'CBD oil', 'supplements')",
	},
	"markets": map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "Geographic markets or states mentioned (e.g., 'California', 'Michigan', 'nationwide')",
	},
	"regulatory_needs": map[string]any{
		"type":        []string{"string", "null"},
		"description": "Any compliance or regulatory requirements mentioned (e.g., 'child resistant', 'ASTM certified', 'FDA compliant')",
	},
	"estimated_monthly_volume": map[string]any{
		"type":        []string{"integer", "null"},
		"description": "Estimated monthly quantity needed as a number, or null if not specified",
	},
	"timeline": map[string]any{
		"type":        []string{"string", "null"},
		"description": "Project timeline or urgency (e.g., 'ASAP', '3 months', 'Q2 2024')",
	},
	"budget_sensitivity": map[string]any{
		"type":        "string",
		"enum":        []string{"low", "medium", "high", "unknown"},
		"description": "Budget sensitivity: 'low' = price is primary concern, 'high' = quality/features matter more than price, 'medium' = balanced, 'unknown' = not mentioned",
	},
	"sustainability_interest": map[string]any{
		"type":        []string{"boolean", "null"},
		"description": "Whether the lead expressed interest in sustainable/eco-friendly options",
	},
	"factory_direct_interest": map[string]any{
		"type":        []string{"boolean", "null"},
		"description": "Whether the lead expressed interest in factory-direct or custom manufacturing",
	},
	"company_type": map[string]any{
		"type":        "string",
		"enum":        []string{"MSO", "single_state_operator", "brand_cpg", "distributor", "other", "unknown"},
		"description": "Type of company based on context",
	},
	"priority_band": map[string]any{
		"type":        "string",
		"enum":        []string{"high", "medium", "low"},
		"description": "Lead priority: 'high' = large volume, urgent, or clear buying intent; 'medium' = moderate interest; 'low' = early research or small scale",
	},
	"ai_summary": map[string]any{
		"type":        "string",
		"description": "A concise 2-3 sentence summary of the lead's needs for the sales team",
	},
	"misc_notes": map[string]any{
		"type":        "string",
		"description": "Any other relevant details or observations not captured above",
	},
	"confidence_flags": map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": "Flags about extraction confidence (e.g., 'volume_estimated', 'timeline_unclear', 'vague_requirements')",
	},
}

var extractionRequired = []string{
	"product_types", "intended_use", "markets", "regulatory_needs",
	"estimated_monthly_volume", "timeline", "budget_sensitivity",
	"sustainability_interest", "factory_direct_interest", "company_type",
	"priority_band", "ai_summary", "misc_notes", "confidence_flags",
}
