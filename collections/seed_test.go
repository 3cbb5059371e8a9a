package collections_test

import (
	"testing"

	"proposalengine/collections"
	"proposalengine/testhelpers"
)

func TestSeed_InsertsDemoProposal(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	proposals, err := app.FindAllRecords("proposals")
	if err != nil {
		t.Fatalf("could not query proposals: %v", err)
	}
	if len(proposals) != 1 {
		t.Fatalf("expected 1 seeded proposal, got %d", len(proposals))
	}

	sections, err := app.FindRecordsByFilter(
		"sections", "proposal = {:pid}", "sort_order", 0, 0,
		map[string]any{"pid": proposals[0].Id},
	)
	if err != nil {
		t.Fatalf("could not query sections: %v", err)
	}
	if len(sections) != 2 {
		t.Errorf("expected 2 seeded sections, got %d", len(sections))
	}

	rows, err := app.FindRecordsByFilter(
		"rows", "section = {:sid}", "sort_order", 0, 0,
		map[string]any{"sid": sections[0].Id},
	)
	if err != nil {
		t.Fatalf("could not query rows: %v", err)
	}
	if len(rows) == 0 {
		t.Error("expected seeded rows in the first section")
	}
}

func TestSeed_InsertsCurrencyRates(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	rates, err := app.FindAllRecords("currency_rates")
	if err != nil {
		t.Fatalf("could not query rates: %v", err)
	}
	if len(rates) < 5 {
		t.Errorf("expected at least 5 seeded rates, got %d", len(rates))
	}

	found := false
	for _, r := range rates {
		if r.GetString("code") == "INR" && r.GetFloat("rate") == 1 {
			found = true
		}
	}
	if !found {
		t.Error("expected an INR rate of exactly 1")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	proposals, _ := app.FindAllRecords("proposals")
	if len(proposals) != 1 {
		t.Errorf("expected seed to run once, got %d proposals", len(proposals))
	}
	rates, _ := app.FindAllRecords("currency_rates")
	if len(rates) != 6 {
		t.Errorf("expected 6 rates after double seed, got %d", len(rates))
	}
}
