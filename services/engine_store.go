package services

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// The engine itself is pure; this file is the only place it touches the
// database. Reads build the in-memory Project, writes put every derived
// cell back on its record and rebuild the summary collections.

// numCell reads an optional number field. A field that was never set comes
// back as nil from the store and maps to an empty cell; zero is a real
// value, not an empty one.
func numCell(r *core.Record, field string) Cell {
	switch v := r.Get(field).(type) {
	case float64:
		return Num(v)
	case int:
		return Num(float64(v))
	case int64:
		return Num(float64(v))
	default:
		return Empty()
	}
}

// setCell writes a Cell to an optional number field, clearing it when the
// cell is empty so the stored row reads like the sheet it came from.
func setCell(r *core.Record, field string, c Cell) {
	if c.Valid {
		r.Set(field, c.Value)
	} else {
		r.Set(field, nil)
	}
}

// LoadRates reads the currency table.
func LoadRates(app *pocketbase.PocketBase) (RateTable, error) {
	records, err := app.FindRecordsByFilter("currency_rates", "id != ''", "code", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("loading currency rates: %w", err)
	}
	rates := make(RateTable, len(records))
	for _, rec := range records {
		rates[rec.GetString("code")] = rec.GetFloat("rate")
	}
	return rates, nil
}

// LoadProject reads a proposal and everything under it into the engine
// model. Sections and rows come back in sort order; the returned records
// are kept aside so derived values can be written back position for
// position.
func LoadProject(app *pocketbase.PocketBase, proposalID string) (*Project, [][]*core.Record, error) {
	proposal, err := app.FindRecordById("proposals", proposalID)
	if err != nil {
		return nil, nil, fmt.Errorf("proposal not found: %w", err)
	}

	rates, err := LoadRates(app)
	if err != nil {
		return nil, nil, err
	}

	p := &Project{
		Name:             proposal.GetString("name"),
		Reference:        proposal.GetString("reference"),
		Revision:         proposal.GetString("revision"),
		Rates:            rates,
		DiscountFraction: numCell(proposal, "discount_fraction"),
		SimulationLevels: int(proposal.GetFloat("simulation_levels")),
	}

	sectionRecords, err := app.FindRecordsByFilter(
		"sections", "proposal = {:proposal}", "sort_order", 0, 0,
		map[string]any{"proposal": proposalID},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("loading sections: %w", err)
	}

	rowRecords := make([][]*core.Record, 0, len(sectionRecords))
	for _, sec := range sectionRecords {
		records, err := app.FindRecordsByFilter(
			"rows", "section = {:section}", "sort_order", 0, 0,
			map[string]any{"section": sec.Id},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("loading rows of section %s: %w", sec.Id, err)
		}

		s := Section{
			Name: sec.GetString("name"),
			Escalations: Escalations{
				Default:  sec.GetFloat("escalation_default"),
				Warranty: sec.GetFloat("escalation_warranty"),
				Freight:  sec.GetFloat("escalation_freight"),
				Special:  sec.GetFloat("escalation_special"),
			},
			Margin:          sec.GetFloat("margin"),
			QuoteCurrency:   sec.GetString("quote_currency"),
			NumberingScheme: NumberingScheme(sec.GetString("numbering_scheme")),
			ScopeRemark:     sec.GetString("scope_remark"),
			Rows:            make([]Row, 0, len(records)),
		}
		for _, rec := range records {
			s.Rows = append(s.Rows, Row{
				Marker:        rec.GetString("marker"),
				Item:          rec.GetString("item"),
				Description:   rec.GetString("description"),
				Qty:           numCell(rec, "qty"),
				Unit:          rec.GetString("unit"),
				Scope:         Scope(rec.GetString("scope")),
				Currency:      rec.GetString("currency"),
				UnitCost:      numCell(rec, "unit_cost"),
				Discount:      rec.GetFloat("discount"),
				PriceOverride: numCell(rec, "price_override"),
			})
		}
		p.Sections = append(p.Sections, s)
		rowRecords = append(rowRecords, records)
	}

	return p, rowRecords, nil
}

// writeRowDerived puts every engine output back on the row record.
func writeRowDerived(rec *core.Record, d RowDerived) {
	rec.Set("role", string(d.Role))
	rec.Set("serial", d.Serial)
	rec.Set("pricing_mode", string(d.PricingMode))
	setCell(rec, "rate", d.Rate)
	setCell(rec, "discounted_unit_cost", d.DiscountedUnitCost)
	setCell(rec, "discounted_subtotal", d.DiscountedSubtotal)
	setCell(rec, "quote_unit_cost", d.QuoteUnitCost)
	setCell(rec, "quote_subtotal", d.QuoteSubtotal)
	setCell(rec, "base_unit_cost", d.BaseUnitCost)
	setCell(rec, "base_subtotal", d.BaseSubtotal)
	setCell(rec, "escalation_default", d.EscalationDefault)
	setCell(rec, "escalation_warranty", d.EscalationWarranty)
	setCell(rec, "escalation_freight", d.EscalationFreight)
	setCell(rec, "escalation_special", d.EscalationSpecial)
	setCell(rec, "risk", d.Risk)
	setCell(rec, "recommended_unit_price", d.RecommendedUnitPrice)
	setCell(rec, "recommended_subtotal", d.RecommendedSubtotal)
	setCell(rec, "effective_unit_price", d.EffectiveUnitPrice)
	setCell(rec, "subtotal_price", d.SubtotalPrice)
	setCell(rec, "profit", d.Profit)
	setCell(rec, "margin_pct", d.MarginPct)
	setCell(rec, "lumpsum_material", d.LumpsumMaterial)
	setCell(rec, "lumpsum_base", d.LumpsumBase)
	setCell(rec, "lumpsum_price", d.LumpsumPrice)
	setCell(rec, "lumpsum_material_total", d.LumpsumMaterialTotal)
	setCell(rec, "lumpsum_base_total", d.LumpsumBaseTotal)
	setCell(rec, "lumpsum_price_total", d.LumpsumPriceTotal)
	setCell(rec, "display_unit_price", d.DisplayUnitPrice)
	setCell(rec, "display_subtotal", d.DisplaySubtotal)
}

// clearCollection deletes every record of a collection belonging to the
// proposal. The summary is always rebuilt from scratch.
func clearCollection(app *pocketbase.PocketBase, name, proposalID string) error {
	records, err := app.FindRecordsByFilter(
		name, "proposal = {:proposal}", "", 0, 0,
		map[string]any{"proposal": proposalID},
	)
	if err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	for _, rec := range records {
		if err := app.Delete(rec); err != nil {
			return fmt.Errorf("clearing %s: %w", name, err)
		}
	}
	return nil
}

// RecomputeProposal loads a proposal, runs the full engine over it and
// persists every derived field plus the rebuilt summary. A failure leaves
// the error with the caller; there is no partial retry.
func RecomputeProposal(app *pocketbase.PocketBase, proposalID string) (Summary, error) {
	p, rowRecords, err := LoadProject(app, proposalID)
	if err != nil {
		return Summary{}, err
	}

	sum := Recompute(p)

	for si := range p.Sections {
		for ri, rec := range rowRecords[si] {
			writeRowDerived(rec, p.Sections[si].Rows[ri].Derived)
			if err := app.Save(rec); err != nil {
				return Summary{}, fmt.Errorf("saving row %s: %w", rec.Id, err)
			}
		}
	}

	if err := clearCollection(app, "summary_entries", proposalID); err != nil {
		return Summary{}, err
	}
	if err := clearCollection(app, "discount_trials", proposalID); err != nil {
		return Summary{}, err
	}

	entriesCol, err := app.FindCollectionByNameOrId("summary_entries")
	if err != nil {
		return Summary{}, fmt.Errorf("summary_entries collection: %w", err)
	}
	for _, e := range sum.Entries {
		rec := core.NewRecord(entriesCol)
		rec.Set("proposal", proposalID)
		rec.Set("sort_order", e.Index)
		rec.Set("section_name", e.SectionName)
		setCell(rec, "selling", e.Selling)
		setCell(rec, "material", e.Material)
		setCell(rec, "base", e.Base)
		setCell(rec, "escalation_default", e.EscalationDefault)
		setCell(rec, "escalation_warranty", e.EscalationWarranty)
		setCell(rec, "escalation_freight", e.EscalationFreight)
		setCell(rec, "escalation_special", e.EscalationSpecial)
		setCell(rec, "risk", e.Risk)
		setCell(rec, "margin_pct", e.MarginPct)
		rec.Set("scope_remark", e.ScopeRemark)
		if err := app.Save(rec); err != nil {
			return Summary{}, fmt.Errorf("saving summary entry %d: %w", e.Index, err)
		}
	}

	trialsCol, err := app.FindCollectionByNameOrId("discount_trials")
	if err != nil {
		return Summary{}, fmt.Errorf("discount_trials collection: %w", err)
	}
	for _, trial := range sum.Trials {
		rec := core.NewRecord(trialsCol)
		rec.Set("proposal", proposalID)
		rec.Set("level_pct", trial.LevelPct)
		rec.Set("price", trial.Price)
		rec.Set("discount", trial.Discount)
		rec.Set("discounted_price", trial.DiscountedPrice)
		rec.Set("cost", trial.Cost)
		rec.Set("profit", trial.Profit)
		setCell(rec, "margin_pct", trial.MarginPct)
		if err := app.Save(rec); err != nil {
			return Summary{}, fmt.Errorf("saving discount trial %d%%: %w", trial.LevelPct, err)
		}
	}

	proposal, err := app.FindRecordById("proposals", proposalID)
	if err != nil {
		return Summary{}, fmt.Errorf("proposal not found: %w", err)
	}
	setCell(proposal, "project_total", sum.ProjectTotal)
	setCell(proposal, "project_base", sum.ProjectBase)
	if err := app.Save(proposal); err != nil {
		return Summary{}, fmt.Errorf("saving proposal totals: %w", err)
	}

	return sum, nil
}
