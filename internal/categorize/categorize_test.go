package categorize

import (
	"strings"
	"testing"

	"github.com/dvoronin/iaa/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Travel", "Travel"},
		{"travel", "Travel"},
		{"  Office Supplies \n", "Office Supplies"},
		{"\"Meals & Entertainment\"", "Meals & Entertainment"},
		{"Groceries", Uncategorized},
		{"", Uncategorized},
		{"I think this is probably Travel related.", Uncategorized},
	}
	for _, tt := range tests {
		if got := Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	vendor := "Acme Corp"
	tx := &domain.CanonicalTransaction{
		DocumentType: "invoice",
		VendorName:   &vendor,
		Description:  "Invoice from Acme Corp",
	}

	prompt := buildPrompt(tx)

	if !strings.Contains(prompt, "Vendor: Acme Corp") {
		t.Errorf("prompt missing vendor line:\n%s", prompt)
	}
	for _, c := range Taxonomy {
		if !strings.Contains(prompt, c) {
			t.Errorf("prompt missing taxonomy entry %q", c)
		}
	}
}

func TestBuildPrompt_NoVendor(t *testing.T) {
	tx := &domain.CanonicalTransaction{
		DocumentType: "w2",
		Description:  "W2 from Unknown Vendor",
	}
	if strings.Contains(buildPrompt(tx), "Vendor:") {
		t.Error("prompt must omit the vendor line when unknown")
	}
}
