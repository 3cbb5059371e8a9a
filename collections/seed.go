package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type rowDef struct {
	sortOrder   int
	marker      string
	item        string
	description string
	qty         any // nil keeps the cell empty
	unit        string
	scope       string
	currency    string
	unitCost    any
	discount    float64
}

type sectionDef struct {
	sortOrder          int
	name               string
	margin             float64
	escalationDefault  float64
	escalationWarranty float64
	escalationFreight  float64
	escalationSpecial  float64
	quoteCurrency      string
	numberingScheme    string
	scopeRemark        string
	rows               []rowDef
}

type rateDef struct {
	code string
	rate float64
}

// defaultRates is the starting currency table, INR per unit.
var defaultRates = []rateDef{
	{"INR", 1},
	{"USD", 83.50},
	{"EUR", 90.25},
	{"GBP", 105.80},
	{"JPY", 0.56},
	{"SGD", 62.10},
}

var demoSections = []sectionDef{
	{
		sortOrder:         1,
		name:              "Automation System",
		margin:            0.25,
		escalationDefault: 0.05,
		escalationFreight: 0.03,
		quoteCurrency:     "INR",
		numberingScheme:   "single",
		rows: []rowDef{
			{sortOrder: 1, marker: "1", description: "PLC control system, fully wired and tested", qty: 1.0, unit: "lot"},
			{sortOrder: 2, item: "1.1", description: "CPU module, 1 MB work memory", qty: 2.0, unit: "nos", currency: "EUR", unitCost: 1450.0, discount: 0.12},
			{sortOrder: 3, item: "1.2", description: "Digital IO card, 32 channel", qty: 8.0, unit: "nos", currency: "EUR", unitCost: 240.0, discount: 0.12},
			{sortOrder: 4, item: "1.3", description: "Control panel, 800 x 2000, IP54", qty: 1.0, unit: "nos", currency: "INR", unitCost: 85000.0},
			{sortOrder: 5, marker: "2", description: "Engineering and commissioning", qty: 1.0, unit: "lot"},
			{sortOrder: 6, item: "2.1", description: "Application software development", qty: 30.0, unit: "nos", currency: "INR", unitCost: 8500.0},
			{sortOrder: 7, item: "2.2", description: "Site commissioning support", qty: 10.0, unit: "nos", currency: "INR", unitCost: 12000.0},
		},
	},
	{
		sortOrder:         2,
		name:              "Spare Parts",
		margin:            0.20,
		escalationDefault: 0.05,
		quoteCurrency:     "INR",
		numberingScheme:   "double",
		scopeRemark:       "OPTION",
		rows: []rowDef{
			{sortOrder: 1, marker: "10", description: "Two year operational spares", qty: 1.0, unit: "set", scope: "OPTION"},
			{sortOrder: 2, item: "10.1", description: "CPU module, spare", qty: 1.0, unit: "nos", scope: "OPTION", currency: "EUR", unitCost: 1450.0, discount: 0.12},
			{sortOrder: 3, item: "10.2", description: "Digital IO card, spare", qty: 2.0, unit: "nos", scope: "OPTION", currency: "EUR", unitCost: 240.0, discount: 0.12},
		},
	},
}

// Seed inserts the default currency table and one demo proposal. Safe to
// call on every startup; it returns early once data exists.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedRates(app); err != nil {
		return err
	}

	proposalsCol, err := app.FindCollectionByNameOrId("proposals")
	if err != nil {
		return fmt.Errorf("seed: could not find proposals collection: %w", err)
	}
	existing, err := app.FindAllRecords(proposalsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query proposals: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: proposals collection is empty, inserting demo proposal ...")

	sectionsCol, err := app.FindCollectionByNameOrId("sections")
	if err != nil {
		return fmt.Errorf("seed: could not find sections collection: %w", err)
	}
	rowsCol, err := app.FindCollectionByNameOrId("rows")
	if err != nil {
		return fmt.Errorf("seed: could not find rows collection: %w", err)
	}

	proposal := core.NewRecord(proposalsCol)
	proposal.Set("name", "Packing Line Automation")
	proposal.Set("customer_ref", "ACME")
	proposal.Set("reference", "FSS-QTN-ACME-25-26-001")
	proposal.Set("revision", "R0")
	proposal.Set("discount_fraction", 0.05)
	proposal.Set("simulation_levels", 3)
	if err := app.Save(proposal); err != nil {
		return fmt.Errorf("seed: could not save demo proposal: %w", err)
	}

	for _, sd := range demoSections {
		section := core.NewRecord(sectionsCol)
		section.Set("proposal", proposal.Id)
		section.Set("sort_order", sd.sortOrder)
		section.Set("name", sd.name)
		section.Set("margin", sd.margin)
		section.Set("escalation_default", sd.escalationDefault)
		section.Set("escalation_warranty", sd.escalationWarranty)
		section.Set("escalation_freight", sd.escalationFreight)
		section.Set("escalation_special", sd.escalationSpecial)
		section.Set("quote_currency", sd.quoteCurrency)
		section.Set("numbering_scheme", sd.numberingScheme)
		section.Set("scope_remark", sd.scopeRemark)
		if err := app.Save(section); err != nil {
			return fmt.Errorf("seed: could not save section %q: %w", sd.name, err)
		}

		for _, rd := range sd.rows {
			row := core.NewRecord(rowsCol)
			row.Set("section", section.Id)
			row.Set("sort_order", rd.sortOrder)
			row.Set("marker", rd.marker)
			row.Set("item", rd.item)
			row.Set("description", rd.description)
			row.Set("qty", rd.qty)
			row.Set("unit", rd.unit)
			row.Set("scope", rd.scope)
			row.Set("currency", rd.currency)
			row.Set("unit_cost", rd.unitCost)
			row.Set("discount", rd.discount)
			if err := app.Save(row); err != nil {
				return fmt.Errorf("seed: could not save row %q: %w", rd.description, err)
			}
		}
	}

	log.Println("seed: demo proposal inserted.")
	return nil
}

// seedRates inserts the default currency table when none is stored yet.
func seedRates(app *pocketbase.PocketBase) error {
	ratesCol, err := app.FindCollectionByNameOrId("currency_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find currency_rates collection: %w", err)
	}
	existing, err := app.FindAllRecords(ratesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query currency_rates: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, rd := range defaultRates {
		rec := core.NewRecord(ratesCol)
		rec.Set("code", rd.code)
		rec.Set("rate", rd.rate)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save rate %s: %w", rd.code, err)
		}
	}

	log.Printf("seed: inserted %d default currency rates.", len(defaultRates))
	return nil
}
