package extract

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "currency with thousands comma",
			in:   "$1,234.50",
			want: "1234.50",
		},
		{
			name: "plain amount",
			in:   "1000.00",
			want: "1000.00",
		},
		{
			name: "negative amount",
			in:   "-42.10",
			want: "-42.10",
		},
		{
			name: "euro amount with spaces",
			in:   " €2,000 ",
			want: "2000",
		},
		{
			name: "no digits falls through unchanged",
			in:   "N/A",
			want: "N/A",
		},
		{
			name: "symbols only",
			in:   "$$$",
			want: "$$$",
		},
		{
			name: "whitespace collapse",
			in:   "Gross  Amount\nDue to\r Seller",
			want: "Gross Amount Due to Seller",
		},
		{
			name: "checkbox glyph normalized",
			in:   "☐ Married",
			want: "✓ Married",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "digits pulled out of mixed text",
			in:   "Invoice 42",
			want: "42",
		},
		{
			name: "digits with stray punctuation keep text form",
			in:   "Apt. 4B, Floor 2",
			want: "Apt. 4B, Floor 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
