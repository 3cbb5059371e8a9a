package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()
	month := t.Month()

	var startYear int
	if month >= time.April {
		startYear = year
	} else {
		startYear = year - 1
	}
	endYear := startYear + 1

	return fmt.Sprintf("%02d-%02d", startYear%100, endYear%100)
}

// formatProposalRef constructs the quotation reference string.
// Uses "-" as separator so the reference survives filenames and URLs.
func formatProposalRef(customerRef, fiscalYear string, sequence int) string {
	return fmt.Sprintf("FSS-QTN-%s-%s-%03d", customerRef, fiscalYear, sequence)
}

// GenerateProposalRef creates the next quotation reference.
// Format: FSS-QTN-{customer_ref}-{fiscal_year}-{sequence}
// - customer_ref: short customer code entered on the proposal
// - fiscal_year: Indian fiscal year (Apr-Mar), e.g., "25-26"
// - sequence: 3-digit zero-padded, per customer per fiscal year
func GenerateProposalRef(app *pocketbase.PocketBase, customerRef string, now time.Time) (string, error) {
	if customerRef == "" {
		return "", fmt.Errorf("customer reference is required")
	}

	fiscalYear := GetFiscalYear(now)
	prefix := fmt.Sprintf("FSS-QTN-%s-%s-", customerRef, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"proposals",
		"reference ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// No collection or no records yet, start at 1.
		existing = nil
	}

	return formatProposalRef(customerRef, fiscalYear, len(existing)+1), nil
}

// NextRevision bumps a proposal revision label. An empty or unparseable
// label starts the sequence over at R0.
func NextRevision(current string) string {
	current = strings.TrimSpace(current)
	if !strings.HasPrefix(current, "R") {
		return "R0"
	}
	n, err := strconv.Atoi(current[1:])
	if err != nil {
		return "R0"
	}
	return fmt.Sprintf("R%d", n+1)
}
