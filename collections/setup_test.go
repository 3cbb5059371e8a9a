package collections_test

import (
	"testing"

	"proposalengine/collections"
	"proposalengine/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"proposals",
	"sections",
	"rows",
	"currency_rates",
	"summary_entries",
	"discount_trials",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q was recreated: id %q != %q", name, col.Id, ids[name])
		}
	}
}

func TestSetup_RowNumbersNullable(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Nullable Proposal")
	section := testhelpers.CreateTestSection(t, app, proposal.Id, "Nullable Section", 1)

	// A row without qty or unit_cost must store empty cells, not zeros.
	row := testhelpers.CreateTestRow(t, app, section.Id, 1, testhelpers.RowSpec{
		Description: "unpriced placeholder",
	})

	loaded, err := app.FindRecordById("rows", row.Id)
	if err != nil {
		t.Fatalf("could not reload row: %v", err)
	}
	if v := loaded.Get("qty"); v != nil {
		if f, ok := v.(float64); ok && f != 0 {
			t.Errorf("expected empty qty, got %v", v)
		}
	}
}
