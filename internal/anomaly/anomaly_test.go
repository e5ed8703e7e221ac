package anomaly

import (
	"context"
	"testing"

	"github.com/dvoronin/iaa/internal/domain"
)

func TestApply_Static(t *testing.T) {
	tx := &domain.CanonicalTransaction{DocumentID: "doc-1"}

	if err := Apply(context.Background(), StaticScorer{}, tx); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if tx.IsAnomaly {
		t.Error("static scorer must not flag transactions")
	}
	if tx.AnomalyScore == nil || *tx.AnomalyScore != 0.1 {
		t.Errorf("AnomalyScore = %v, want 0.1", tx.AnomalyScore)
	}
}
