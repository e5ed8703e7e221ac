package pipeline

import "fmt"

// StorageError wraps a failed upload or download. It is fatal for the
// document: traceability depends on the raw file being retained, so there is
// no silent fallback. The caller may retry with the same key, uploads are
// idempotent overwrites.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExtractionServiceError wraps a failed document-understanding call. Fatal
// for the document, not retried at this layer, and never corrupts other
// documents in a batch.
type ExtractionServiceError struct {
	Processor string
	Err       error
}

func (e *ExtractionServiceError) Error() string {
	return fmt.Sprintf("extraction service (%s): %v", e.Processor, e.Err)
}

func (e *ExtractionServiceError) Unwrap() error {
	return e.Err
}
