package services

import (
	"testing"
	"time"
)

func TestGetFiscalYear(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		expect string
	}{
		{"april_start", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), "26-27"},
		{"march_end", time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC), "25-26"},
		{"january", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), "25-26"},
		{"may", time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), "26-27"},
		{"december", time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "25-26"},
		{"year_2000", time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC), "00-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetFiscalYear(tt.date)
			if got != tt.expect {
				t.Errorf("GetFiscalYear(%v) = %q, want %q", tt.date, got, tt.expect)
			}
		})
	}
}

func TestProposalRefFormat(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		fy     string
		seq    int
		expect string
	}{
		{"first of the year", "ACME", "25-26", 1, "FSS-QTN-ACME-25-26-001"},
		{"later sequence", "ACME", "25-26", 14, "FSS-QTN-ACME-25-26-014"},
		{"hyphenated customer", "TATA-NX", "26-27", 99, "FSS-QTN-TATA-NX-26-27-099"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatProposalRef(tt.ref, tt.fy, tt.seq)
			if got != tt.expect {
				t.Errorf("formatProposalRef(%q, %q, %d) = %q, want %q",
					tt.ref, tt.fy, tt.seq, got, tt.expect)
			}
		})
	}
}

func TestNextRevision(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"", "R0"},
		{"R0", "R1"},
		{"R9", "R10"},
		{" R2 ", "R3"},
		{"rev3", "R0"},
		{"Rx", "R0"},
	}
	for _, tt := range tests {
		if got := NextRevision(tt.input); got != tt.expect {
			t.Errorf("NextRevision(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
