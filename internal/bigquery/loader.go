package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/googleapi"
)

// TransactionStore provides an interface for warehouse writes.
// This interface enables mocking and testing of the load step.
type TransactionStore interface {
	InsertTransactions(ctx context.Context, rows []*TransactionRow) error
}

// Loader is the concrete TransactionStore backed by a BigQuery dataset.
type Loader struct {
	client  *bigquery.Client
	dataset string
	table   string
}

// NewLoader creates a BigQuery client scoped to the given dataset and table.
// It assumes Application Default Credentials are configured.
func NewLoader(ctx context.Context, projectID, dataset, table string) (*Loader, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewLoader: bigquery client: %w", err)
	}
	return &Loader{client: client, dataset: dataset, table: table}, nil
}

// Close releases the underlying client.
func (l *Loader) Close() error {
	return l.client.Close()
}

// EnsureDataset creates the dataset if it does not already exist.
func (l *Loader) EnsureDataset(ctx context.Context) error {
	err := l.client.Dataset(l.dataset).Create(ctx, &bigquery.DatasetMetadata{})
	if err != nil && !isAlreadyExists(err) {
		return fmt.Errorf("EnsureDataset: create %q: %w", l.dataset, err)
	}
	return nil
}

// InsertTransactions streams a batch of rows into the transactions table.
func (l *Loader) InsertTransactions(ctx context.Context, rows []*TransactionRow) error {
	if len(rows) == 0 {
		return nil
	}

	inserter := l.client.Dataset(l.dataset).Table(l.table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertTransactions: inserting rows: %w", err)
	}
	return nil
}

func isAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusConflict
}
