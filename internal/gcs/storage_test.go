package gcs

import "testing"

func TestURI(t *testing.T) {
	if got := URI("raw-docs", "invoice/20240101000000_a.pdf"); got != "gs://raw-docs/invoice/20240101000000_a.pdf" {
		t.Errorf("URI() = %q", got)
	}
}

func TestFilenameFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"gs://bucket/folder/file.pdf", "file.pdf"},
		{"gs://bucket/file.pdf", "file.pdf"},
		{"gs://bucket", "bucket"},
	}
	for _, tt := range tests {
		if got := FilenameFromURI(tt.uri); got != tt.want {
			t.Errorf("FilenameFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
