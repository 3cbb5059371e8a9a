package services

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateChecklistPDF(t *testing.T) {
	c, ok := ChecklistBySlug("proposal-submission")
	if !ok {
		t.Fatal("fixture checklist missing")
	}

	pdf, err := GenerateChecklistPDF(c)
	if err != nil {
		t.Fatalf("GenerateChecklistPDF failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF header, got %q", pdf[:5])
	}
}

func TestGenerateChecklistPDFEveryCatalogEntry(t *testing.T) {
	for _, c := range Checklists() {
		pdf, err := GenerateChecklistPDF(c)
		if err != nil {
			t.Errorf("%s: GenerateChecklistPDF failed: %v", c.Slug, err)
			continue
		}
		if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
			t.Errorf("%s: output is not a PDF", c.Slug)
		}
	}
}

func TestWrapLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{
			name:  "short label stays on one line",
			input: "Transport insurance arranged?",
			width: 80,
			want:  []string{"Transport insurance arranged?"},
		},
		{
			name:  "long label wraps on word boundary",
			input: "one two three four five",
			width: 13,
			want:  []string{"one two three", "four five"},
		},
		{
			name:  "overlong word kept whole",
			input: "a veryveryverylongword b",
			width: 10,
			want:  []string{"a", "veryveryverylongword", "b"},
		},
		{
			name:  "empty label yields one empty line",
			input: "   ",
			width: 80,
			want:  []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLabel(tt.input, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d lines %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
			for i, l := range got {
				if len(l) > tt.width && strings.Contains(l, " ") {
					t.Errorf("line %d %q exceeds width %d", i, l, tt.width)
				}
			}
		})
	}
}
