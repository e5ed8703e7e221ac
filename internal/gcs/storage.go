// Package gcs is the durable storage collaborator. Raw documents are
// retained under deterministic keys so every extracted row can be traced
// back to its source file.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// Storage provides an interface for durable object storage.
// This interface enables mocking and testing of the pipeline.
type Storage interface {
	// Put uploads a local file under the given object name and returns the
	// object URI. Uploads are idempotent overwrites: retrying with the same
	// key is safe.
	Put(ctx context.Context, localPath, objectName string) (string, error)

	// Get downloads an object's bytes.
	Get(ctx context.Context, objectName string) ([]byte, error)
}

// Client is the concrete Storage backed by a GCS bucket. It assumes
// Application Default Credentials are configured.
type Client struct {
	bucket string
}

// NewClient creates a storage client for the given bucket.
func NewClient(bucket string) *Client {
	return &Client{bucket: bucket}
}

// Put implements the Storage interface.
func (c *Client) Put(ctx context.Context, localPath, objectName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("Put: open file %q: %w", localPath, err)
	}
	defer f.Close()

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("Put: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(c.bucket).Object(objectName).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("Put: copy file to writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Put: finalize upload: %w", err)
	}

	return URI(c.bucket, objectName), nil
}

// Get implements the Storage interface.
func (c *Client) Get(ctx context.Context, objectName string) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("Get: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(c.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("Get: reading object %s/%s: %w", c.bucket, objectName, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("Get: reading bytes: %w", err)
	}
	return data, nil
}

// URI constructs the gs:// URI for an object.
func URI(bucket, objectName string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, objectName)
}

// FilenameFromURI extracts the filename from a gs:// URI.
// e.g., "gs://bucket/folder/file.pdf" → "file.pdf"
func FilenameFromURI(uri string) string {
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}
	return path.Base(parts[1])
}
