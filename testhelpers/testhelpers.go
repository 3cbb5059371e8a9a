// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProposal creates a proposal record with the given name.
func CreateTestProposal(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("proposals")
	if err != nil {
		t.Fatalf("failed to find proposals collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("customer_ref", "ACME")
	record.Set("revision", "R0")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proposal: %v", err)
	}

	return record
}

// CreateTestSection creates a section under a proposal with sensible
// pricing defaults: 25% margin, INR quote currency, single numbering.
func CreateTestSection(t *testing.T, app *pocketbase.PocketBase, proposalID, name string, sortOrder int) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("sections")
	if err != nil {
		t.Fatalf("failed to find sections collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proposal", proposalID)
	record.Set("sort_order", sortOrder)
	record.Set("name", name)
	record.Set("margin", 0.25)
	record.Set("quote_currency", "INR")
	record.Set("numbering_scheme", "single")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test section: %v", err)
	}

	return record
}

// RowSpec is the authored part of a test row. Nil pointers become empty
// cells in the stored record.
type RowSpec struct {
	Marker      string
	Item        string
	Description string
	Qty         *float64
	Unit        string
	Scope       string
	Currency    string
	UnitCost    *float64
	Discount    float64
}

// F is shorthand for taking the address of a literal in a RowSpec.
func F(v float64) *float64 { return &v }

// CreateTestRow creates a row record under a section.
func CreateTestRow(t *testing.T, app *pocketbase.PocketBase, sectionID string, sortOrder int, spec RowSpec) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rows")
	if err != nil {
		t.Fatalf("failed to find rows collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("section", sectionID)
	record.Set("sort_order", sortOrder)
	record.Set("marker", spec.Marker)
	record.Set("item", spec.Item)
	record.Set("description", spec.Description)
	if spec.Qty != nil {
		record.Set("qty", *spec.Qty)
	}
	record.Set("unit", spec.Unit)
	record.Set("scope", spec.Scope)
	record.Set("currency", spec.Currency)
	if spec.UnitCost != nil {
		record.Set("unit_cost", *spec.UnitCost)
	}
	record.Set("discount", spec.Discount)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test row: %v", err)
	}

	return record
}

// CreateTestRate creates a currency_rates record.
func CreateTestRate(t *testing.T, app *pocketbase.PocketBase, code string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("currency_rates")
	if err != nil {
		t.Fatalf("failed to find currency_rates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("rate", rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rate: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
