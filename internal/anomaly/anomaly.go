// Package anomaly flags suspicious transactions before they are loaded.
package anomaly

import (
	"context"

	"github.com/dvoronin/iaa/internal/domain"
)

// Score is the outcome of screening one transaction.
type Score struct {
	IsAnomaly bool
	Score     float64
}

// Scorer provides an interface for anomaly screening.
type Scorer interface {
	Score(ctx context.Context, tx *domain.CanonicalTransaction) (Score, error)
}

// StaticScorer is a stand-in until a trained model is wired in. It marks
// nothing anomalous and reports a constant low score so downstream columns
// are populated.
//
// TODO: replace with a Vertex AI model once enough labeled transactions
// have accumulated in the warehouse.
type StaticScorer struct{}

func (StaticScorer) Score(ctx context.Context, tx *domain.CanonicalTransaction) (Score, error) {
	return Score{IsAnomaly: false, Score: 0.1}, nil
}

// Apply runs the scorer and writes the result onto the transaction.
func Apply(ctx context.Context, s Scorer, tx *domain.CanonicalTransaction) error {
	score, err := s.Score(ctx, tx)
	if err != nil {
		return err
	}
	tx.IsAnomaly = score.IsAnomaly
	v := score.Score
	tx.AnomalyScore = &v
	return nil
}
