// Package extract converts freeform lead notes into structured extraction
// records using the Anthropic API.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonesrussell/lead-intake/internal/models"
)

const (
	toolName      = "record_lead"
	maxTokens     = 2048
	temperature   = 0.1 // Low temperature for consistent extraction
	systemPrompt  = "You are a helpful assistant that extracts structured data from lead intake forms. Always record the extracted data with the " + toolName + " tool."
	defaultEnvKey = "LLM_API_KEY"
)

// Client wraps the language model call that produces an Extraction. Any
// failure (timeout, malformed reply, API error) propagates to the caller,
// which owns the fallback policy.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewClient constructs an extraction client. The timeout applies per request
// at the transport level.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New(defaultEnvKey + " is not configured")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  anthropic.Model(model),
	}, nil
}

// Extract asks the model to analyze the freeform note (with optional role
// context) and returns the parsed extraction. The model is forced to call a
// tool whose input schema is the extraction schema, so the reply is
// constrained to that shape; enum values are still validated after parsing
// and a mismatch is an error.
func (c *Client) Extract(ctx context.Context, freeformNote, role string) (*models.Extraction, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(freeformNote, role))),
		},
		Tools: []anthropic.ToolUnionParam{{
			OfTool: &anthropic.ToolParam{
				Name:        toolName,
				Description: anthropic.String("Record structured lead data extracted from an intake form submission."),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: extractionProperties,
					Required:   extractionRequired,
				},
			},
		}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: toolName},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}

	return parseReply(message)
}

// parseReply pulls the forced tool call out of the model reply and decodes
// its input into an Extraction.
func parseReply(message *anthropic.Message) (*models.Extraction, error) {
	for _, block := range message.Content {
		variant, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok || variant.Name != toolName {
			continue
		}

		var extraction models.Extraction
		if err := json.Unmarshal([]byte(variant.JSON.Input.Raw()), &extraction); err != nil {
			return nil, fmt.Errorf("parse extraction reply: %w", err)
		}
		if err := extraction.Validate(); err != nil {
			return nil, fmt.Errorf("validate extraction reply: %w", err)
		}
		return &extraction, nil
	}

	return nil, errors.New("model reply contained no " + toolName + " tool call")
}
