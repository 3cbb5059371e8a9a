package services

import "math"

// addCell accumulates a cell into a running sum, skipping empty cells the
// way a spreadsheet SUM does.
func addCell(sum *float64, c Cell) {
	if c.Valid {
		*sum += c.Value
	}
}

// ComputeSectionTotals rolls a recomputed section's rows into the totals
// the project summary reads. Selling sums the customer-facing subtotal
// column, so each amount is counted exactly once: a lumpsum shows on its
// Title and its absorbed children show nothing.
func ComputeSectionTotals(s *Section) {
	var selling, material, base float64
	var escDef, escWar, escFre, escSpe float64
	var risk, profit float64
	for i := range s.Rows {
		d := s.Rows[i].Derived
		addCell(&selling, d.DisplaySubtotal)
		addCell(&material, d.QuoteSubtotal)
		addCell(&base, d.BaseSubtotal)
		addCell(&escDef, d.EscalationDefault)
		addCell(&escWar, d.EscalationWarranty)
		addCell(&escFre, d.EscalationFreight)
		addCell(&escSpe, d.EscalationSpecial)
		addCell(&risk, d.Risk)
		addCell(&profit, d.Profit)
	}
	t := &s.Totals
	t.Selling = Num(selling)
	t.Material = Num(material)
	t.Base = Num(base)
	t.EscalationDefault = Num(escDef)
	t.EscalationWarranty = Num(escWar)
	t.EscalationFreight = Num(escFre)
	t.EscalationSpecial = Num(escSpe)
	t.Risk = Num(risk)
	t.Profit = Num(profit)
	if selling != 0 {
		t.MarginPct = Num(profit / selling)
	} else {
		t.MarginPct = Empty()
	}
}

// BuildSummary rebuilds the project summary from scratch: one entry per
// section in order, a project total excluding OPTION sections, the
// requested discount if any, and the trial-discount table when simulation
// levels were asked for.
func BuildSummary(p *Project) Summary {
	var sum Summary
	var total, baseTotal float64
	for i := range p.Sections {
		s := &p.Sections[i]
		sum.Entries = append(sum.Entries, SummaryEntry{
			Index:              i + 1,
			SectionName:        s.Name,
			Selling:            s.Totals.Selling,
			Material:           s.Totals.Material,
			Base:               s.Totals.Base,
			EscalationDefault:  s.Totals.EscalationDefault,
			EscalationWarranty: s.Totals.EscalationWarranty,
			EscalationFreight:  s.Totals.EscalationFreight,
			EscalationSpecial:  s.Totals.EscalationSpecial,
			Risk:               s.Totals.Risk,
			MarginPct:          s.Totals.MarginPct,
			ScopeRemark:        s.ScopeRemark,
		})
		if s.ScopeRemark == string(ScopeOption) {
			continue
		}
		addCell(&total, s.Totals.Selling)
		addCell(&baseTotal, s.Totals.Base)
	}
	sum.ProjectTotal = Num(total)
	sum.ProjectBase = Num(baseTotal)

	if p.DiscountFraction.Valid {
		amount := total * p.DiscountFraction.Value
		sum.DiscountAmount = Num(amount)
		sum.DiscountedTotal = Num(total - amount)
		if total != 0 {
			sum.DiscountPct = Num(amount / total)
		} else {
			sum.DiscountPct = Empty()
		}
	}

	for level := 1; level <= p.SimulationLevels; level++ {
		price := total
		discount := math.Ceil(price * float64(level) / 100)
		discounted := price - discount
		profit := discounted - baseTotal
		trial := DiscountTrial{
			LevelPct:        level,
			Price:           price,
			Discount:        discount,
			DiscountedPrice: discounted,
			Cost:            baseTotal,
			Profit:          profit,
		}
		if discounted != 0 {
			trial.MarginPct = Num(profit / discounted)
		}
		sum.Trials = append(sum.Trials, trial)
	}
	return sum
}
