// Package categorize produces an AI-suggested spend category for a canonical
// transaction. Suggestions are advisory; the user-confirmed field stays under
// human control.
package categorize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dvoronin/iaa/internal/domain"
)

// DefaultModelName is the Gemini model used for category suggestions.
const DefaultModelName = "gemini-2.5-flash"

// Uncategorized is assigned when the model returns nothing usable.
const Uncategorized = "Uncategorized"

// Taxonomy is the closed set of categories the model may choose from.
var Taxonomy = []string{
	"Office Supplies",
	"Professional Services",
	"Travel",
	"Meals & Entertainment",
	"Utilities",
	"Rent & Property",
	"Payroll & Taxes",
	"Software & Subscriptions",
	Uncategorized,
}

// Suggester provides an interface for category suggestion.
// This interface enables mocking and testing of the enrichment step.
type Suggester interface {
	Suggest(ctx context.Context, tx *domain.CanonicalTransaction) (string, error)
}

// GeminiSuggester is the concrete Suggester backed by the GenAI API. It
// reads credentials from the environment the same way the rest of the
// Google clients do.
type GeminiSuggester struct {
	model string
}

// NewGeminiSuggester returns a suggester for the default model.
func NewGeminiSuggester() *GeminiSuggester {
	return &GeminiSuggester{model: DefaultModelName}
}

// Suggest asks the model for a single category name. Any answer outside the
// taxonomy collapses to Uncategorized, so a hallucinated label never reaches
// the warehouse.
func (g *GeminiSuggester) Suggest(ctx context.Context, tx *domain.CanonicalTransaction) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("Suggest: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildPrompt(tx)}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("Suggest: generate content: %w", err)
	}

	return Normalize(resp.Text()), nil
}

func buildPrompt(tx *domain.CanonicalTransaction) string {
	var sb strings.Builder
	sb.WriteString("You are a bookkeeping assistant. Classify the transaction below\n")
	sb.WriteString("into exactly one of these categories:\n")
	for _, c := range Taxonomy {
		sb.WriteString("- " + c + "\n")
	}
	sb.WriteString("\nRespond with the category name only, no punctuation, no explanation.\n\n")

	sb.WriteString("Document type: " + tx.DocumentType + "\n")
	if tx.VendorName != nil {
		sb.WriteString("Vendor: " + *tx.VendorName + "\n")
	}
	sb.WriteString("Description: " + tx.Description + "\n")
	return sb.String()
}

// Normalize maps a raw model answer onto the taxonomy, case-insensitively.
// Anything unrecognized becomes Uncategorized.
func Normalize(raw string) string {
	answer := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), "\"'."))
	for _, c := range Taxonomy {
		if strings.EqualFold(answer, c) {
			return c
		}
	}
	return Uncategorized
}
