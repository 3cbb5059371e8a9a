package services

// parentScopes resolves, for every row, the scope of the nearest preceding
// Title in the section. Rows before the first Title have no parent and
// resolve to the normal scope.
func parentScopes(s *Section) []Scope {
	scopes := make([]Scope, len(s.Rows))
	current := ScopeNormal
	for i := range s.Rows {
		if s.Rows[i].Derived.Role == RoleTitle {
			current = s.Rows[i].Scope
		}
		scopes[i] = current
	}
	return scopes
}

// RecomputeSection runs the full derivation chain over one section:
// classify, convert, cost, price, aggregate, allocate, number, total.
// Every derived field is overwritten, so running it twice on unchanged
// input is a no-op.
func RecomputeSection(s *Section, rates RateTable) {
	ClassifySection(s)
	assignPricingModes(s)
	parents := parentScopes(s)

	for i := range s.Rows {
		r := &s.Rows[i]
		d := &r.Derived
		d.Rate = ConvertRate(rates, r.Currency, s.QuoteCurrency)
		d.DiscountedUnitCost = CalcDiscountedUnitCost(*r)
		d.DiscountedSubtotal = CalcDiscountedSubtotal(*r)
		d.QuoteUnitCost = CalcQuoteUnitCost(*r)
		d.QuoteSubtotal = CalcQuoteSubtotal(*r, parents[i])
		d.BaseUnitCost = CalcBaseUnitCost(*r, s.Escalations)
		d.BaseSubtotal = CalcBaseSubtotal(*r, parents[i])
		d.RecommendedUnitPrice = CalcRecommendedUnitPrice(*r, s.Margin)
		d.RecommendedSubtotal = CalcRecommendedSubtotal(*r, parents[i])
		d.EffectiveUnitPrice = CalcEffectiveUnitPrice(*r)
		d.SubtotalPrice = CalcSubtotalPrice(*r, parents[i])
	}

	// Title aggregates depend on every child's subtotal, and the
	// escalation, risk and profit columns depend on those aggregates.
	AggregateLumpsums(s)
	for i := range s.Rows {
		r := &s.Rows[i]
		CalcEscalationAllocations(r, s.Escalations)
		r.Derived.Risk = CalcRisk(*r)
		r.Derived.Profit = CalcProfit(*r)
		r.Derived.MarginPct = CalcMarginPct(*r)
		CalcDisplayPrice(r, parents[i])
	}

	AssignNumbering(s)
	ComputeSectionTotals(s)
}

// Recompute derives every computed field of the project and returns the
// rebuilt summary. Sections are walked front to back; nothing is
// recomputed partially.
func Recompute(p *Project) Summary {
	for i := range p.Sections {
		RecomputeSection(&p.Sections[i], p.Rates)
	}
	return BuildSummary(p)
}
