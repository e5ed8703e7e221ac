package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dvoronin/iaa/internal/config"
	"github.com/dvoronin/iaa/internal/docai"
	"github.com/dvoronin/iaa/internal/extract"
)

// mockStorage is a hand-rolled Storage mock.
type mockStorage struct {
	PutFunc  func(ctx context.Context, localPath, objectName string) (string, error)
	GetFunc  func(ctx context.Context, objectName string) ([]byte, error)
	putCalls []string
}

func (m *mockStorage) Put(ctx context.Context, localPath, objectName string) (string, error) {
	m.putCalls = append(m.putCalls, objectName)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, localPath, objectName)
	}
	return "gs://test-bucket/" + objectName, nil
}

func (m *mockStorage) Get(ctx context.Context, objectName string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, objectName)
	}
	return nil, nil
}

// mockProcessor is a hand-rolled document-understanding mock.
type mockProcessor struct {
	ProcessDocumentFunc func(ctx context.Context, processorName string, content []byte, mimeType string) (*docai.Document, error)
	calls               int
}

func (m *mockProcessor) ProcessDocument(ctx context.Context, processorName string, content []byte, mimeType string) (*docai.Document, error) {
	m.calls++
	if m.ProcessDocumentFunc != nil {
		return m.ProcessDocumentFunc(ctx, processorName, content, mimeType)
	}
	return &docai.Document{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ProjectID: "test-project",
		Location:  "us",
		RawBucket: "test-bucket",
		ProcessorIDs: map[extract.Category]string{
			extract.CategoryInvoice:         "inv-1",
			extract.CategoryReceipt:         "rec-1",
			extract.CategoryW2:              "w2-1",
			extract.CategorySellerStatement: "ss-1",
		},
	}
}

func writeTempPDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcess_HappyPath(t *testing.T) {
	storage := &mockStorage{}
	processor := &mockProcessor{
		ProcessDocumentFunc: func(ctx context.Context, processorName string, content []byte, mimeType string) (*docai.Document, error) {
			if processorName != "projects/test-project/locations/us/processors/inv-1" {
				t.Errorf("processor name = %q", processorName)
			}
			if mimeType != "application/pdf" {
				t.Errorf("mime type = %q", mimeType)
			}
			return &docai.Document{
				Entities: []docai.Entity{{Type: "total_amount", MentionText: "$10.00", Page: 0}},
			}, nil
		},
	}

	c := NewController(testConfig(), storage, processor)
	c.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := c.Process(context.Background(), writeTempPDF(t, "inv-042.pdf"), "invoice")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if res.DocumentName != "inv-042" {
		t.Errorf("DocumentName = %q", res.DocumentName)
	}
	if len(storage.putCalls) != 1 || storage.putCalls[0] != "raw_documents/invoice/20240102030405_inv-042.pdf" {
		t.Errorf("upload key = %v", storage.putCalls)
	}
	if res.SourceURI != "gs://test-bucket/raw_documents/invoice/20240102030405_inv-042.pdf" {
		t.Errorf("SourceURI = %q", res.SourceURI)
	}
	if len(res.Rows) != 1 || res.Rows[0].Value != "10.00" {
		t.Errorf("rows = %+v", res.Rows)
	}
}

func TestProcess_AliasNormalized(t *testing.T) {
	storage := &mockStorage{}
	processor := &mockProcessor{}

	c := NewController(testConfig(), storage, processor)

	res, err := c.Process(context.Background(), writeTempPDF(t, "hud.pdf"), "sellers-statement")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if res.Category != extract.CategorySellerStatement {
		t.Errorf("category = %v", res.Category)
	}
	if len(storage.putCalls) != 1 || !strings.Contains(storage.putCalls[0], "/seller-statement/") {
		t.Errorf("upload key = %v, want normalized category segment", storage.putCalls)
	}
}

func TestProcess_UnsupportedTypeBeforeCollaborators(t *testing.T) {
	storage := &mockStorage{}
	processor := &mockProcessor{}

	c := NewController(testConfig(), storage, processor)

	_, err := c.Process(context.Background(), writeTempPDF(t, "x.pdf"), "invoice-xyz")
	if !errors.Is(err, extract.ErrUnsupportedDocumentType) {
		t.Fatalf("err = %v, want ErrUnsupportedDocumentType", err)
	}
	if len(storage.putCalls) != 0 {
		t.Error("storage must not be called for unsupported types")
	}
	if processor.calls != 0 {
		t.Error("extraction service must not be called for unsupported types")
	}
}

func TestProcess_UnconfiguredProcessor(t *testing.T) {
	cfg := testConfig()
	delete(cfg.ProcessorIDs, extract.CategoryW2)
	storage := &mockStorage{}

	c := NewController(cfg, storage, &mockProcessor{})

	_, err := c.Process(context.Background(), writeTempPDF(t, "w2.pdf"), "w2")
	if !errors.Is(err, extract.ErrUnsupportedDocumentType) {
		t.Fatalf("err = %v, want ErrUnsupportedDocumentType", err)
	}
	if len(storage.putCalls) != 0 {
		t.Error("storage must not be called when the processor is unconfigured")
	}
}

func TestProcess_StorageError(t *testing.T) {
	storage := &mockStorage{
		PutFunc: func(ctx context.Context, localPath, objectName string) (string, error) {
			return "", fmt.Errorf("bucket unavailable")
		},
	}
	processor := &mockProcessor{}

	c := NewController(testConfig(), storage, processor)

	_, err := c.Process(context.Background(), writeTempPDF(t, "x.pdf"), "invoice")
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("err = %v, want *StorageError", err)
	}
	if processor.calls != 0 {
		t.Error("extraction service must not be called after a failed upload")
	}
}

func TestProcess_ExtractionServiceError(t *testing.T) {
	processor := &mockProcessor{
		ProcessDocumentFunc: func(ctx context.Context, processorName string, content []byte, mimeType string) (*docai.Document, error) {
			return nil, fmt.Errorf("deadline exceeded")
		},
	}

	c := NewController(testConfig(), &mockStorage{}, processor)

	_, err := c.Process(context.Background(), writeTempPDF(t, "x.pdf"), "invoice")
	var svcErr *ExtractionServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ExtractionServiceError", err)
	}
}

func TestProcess_Reprocessing(t *testing.T) {
	// Re-processing the same file is not deduplicated: each call uploads a
	// new object keyed by its own timestamp.
	storage := &mockStorage{}
	c := NewController(testConfig(), storage, &mockProcessor{})

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c.now = func() time.Time { return ts }

	path := writeTempPDF(t, "same.pdf")
	if _, err := c.Process(context.Background(), path, "invoice"); err != nil {
		t.Fatal(err)
	}
	ts = ts.Add(time.Second)
	if _, err := c.Process(context.Background(), path, "invoice"); err != nil {
		t.Fatal(err)
	}

	if len(storage.putCalls) != 2 || storage.putCalls[0] == storage.putCalls[1] {
		t.Errorf("upload keys = %v, want two distinct keys", storage.putCalls)
	}
}

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.pdf", "application/pdf"},
		{"a.PNG", "image/png"},
		{"a.jpeg", "image/jpeg"},
		{"a.jpg", "image/jpeg"},
		{"a", "application/pdf"},
	}
	for _, tt := range tests {
		if got := mimeTypeFor(tt.path); got != tt.want {
			t.Errorf("mimeTypeFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
