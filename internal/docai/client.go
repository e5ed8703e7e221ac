package docai

import (
	"context"
	"fmt"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// Processor provides an interface for document-understanding calls.
// This interface enables mocking and testing of the extraction pipeline.
type Processor interface {
	// ProcessDocument submits raw document bytes to the named processor and
	// returns the structured result.
	ProcessDocument(ctx context.Context, processorName string, content []byte, mimeType string) (*Document, error)
}

// Client is the concrete Processor backed by the Document AI service.
type Client struct {
	c *documentai.DocumentProcessorClient
}

// NewClient creates a Document AI client pinned to the given location's
// regional endpoint, e.g. "us" → us-documentai.googleapis.com.
func NewClient(ctx context.Context, location string) (*Client, error) {
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	c, err := documentai.NewDocumentProcessorClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("docai.NewClient: creating processor client: %w", err)
	}
	return &Client{c: c}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.c.Close()
}

// ProcessDocument implements the Processor interface.
func (c *Client) ProcessDocument(ctx context.Context, processorName string, content []byte, mimeType string) (*Document, error) {
	req := &documentaipb.ProcessRequest{
		Name: processorName,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: mimeType,
			},
		},
	}

	resp, err := c.c.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ProcessDocument: calling %s: %w", processorName, err)
	}

	return fromProto(resp.GetDocument()), nil
}
