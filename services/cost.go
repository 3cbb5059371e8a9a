package services

// priced reports whether a row carries both a quantity and a unit cost,
// the precondition for every cost-derived field.
func priced(r Row) bool {
	return r.Qty.Valid && r.UnitCost.Valid
}

// CalcDiscountedUnitCost returns unit cost after the buying discount.
func CalcDiscountedUnitCost(r Row) Cell {
	if !r.UnitCost.Valid {
		return Empty()
	}
	return Num(r.UnitCost.Value * (1 - r.Discount))
}

// CalcDiscountedSubtotal returns qty x discounted unit cost. OPTION rows
// stay empty so they never leak into a cost total.
func CalcDiscountedSubtotal(r Row) Cell {
	if !priced(r) || r.Scope == ScopeOption || !r.Derived.DiscountedUnitCost.Valid {
		return Empty()
	}
	return Num(r.Qty.Value * r.Derived.DiscountedUnitCost.Value)
}

// CalcQuoteUnitCost converts the discounted unit cost into the section's
// quote currency. Rows without a resolvable rate stay unpriced.
func CalcQuoteUnitCost(r Row) Cell {
	if !priced(r) || !r.Derived.DiscountedUnitCost.Valid || !r.Derived.Rate.Valid {
		return Empty()
	}
	return Num(r.Derived.DiscountedUnitCost.Value * r.Derived.Rate.Value)
}

// CalcQuoteSubtotal returns qty x quote-currency unit cost, gated on both
// the row's own scope and the scope of its nearest preceding Title.
func CalcQuoteSubtotal(r Row, parentScope Scope) Cell {
	if !priced(r) || !r.Derived.QuoteUnitCost.Valid {
		return Empty()
	}
	if r.Scope == ScopeOption || parentScope == ScopeOption {
		return Empty()
	}
	return Num(r.Qty.Value * r.Derived.QuoteUnitCost.Value)
}

// CalcBaseUnitCost loads the quote-currency cost with every escalation
// category and the fixed risk reserve.
func CalcBaseUnitCost(r Row, esc Escalations) Cell {
	if !priced(r) || !r.Derived.QuoteUnitCost.Valid {
		return Empty()
	}
	return Num(r.Derived.QuoteUnitCost.Value * (1 + esc.Sum()) / (1 - RiskReserve))
}

// CalcBaseSubtotal returns qty x base unit cost with the same scope gating
// as the quote subtotal.
func CalcBaseSubtotal(r Row, parentScope Scope) Cell {
	if !priced(r) || !r.Derived.BaseUnitCost.Valid {
		return Empty()
	}
	if r.Scope == ScopeOption || parentScope == ScopeOption {
		return Empty()
	}
	return Num(r.Qty.Value * r.Derived.BaseUnitCost.Value)
}

// escalationBasis picks the amount a row's escalation allocations are
// computed on: the aggregated lumpsum material total for a Title, the
// row's own quote subtotal for a unit-priced lineitem. Other roles and
// OPTION rows carry no allocation.
func escalationBasis(r Row) Cell {
	if r.Scope == ScopeOption {
		return Empty()
	}
	switch r.Derived.Role {
	case RoleTitle:
		if r.Qty.Valid && r.Unit != "" {
			return r.Derived.LumpsumMaterialTotal
		}
	case RoleLineitem:
		if r.Derived.PricingMode == ModeUnitPrice {
			return r.Derived.QuoteSubtotal
		}
	}
	return Empty()
}

// CalcEscalationAllocations fills the four per-category escalation cells.
func CalcEscalationAllocations(r *Row, esc Escalations) {
	basis := escalationBasis(*r)
	alloc := func(frac float64) Cell {
		if !basis.Valid {
			return Empty()
		}
		return Num(basis.Value * frac)
	}
	r.Derived.EscalationDefault = alloc(esc.Default)
	r.Derived.EscalationWarranty = alloc(esc.Warranty)
	r.Derived.EscalationFreight = alloc(esc.Freight)
	r.Derived.EscalationSpecial = alloc(esc.Special)
}

// CalcRisk returns the residual between a row's base cost and the sum of
// its material cost plus escalation allocations, on the same dual basis as
// the allocations themselves.
func CalcRisk(r Row) Cell {
	d := r.Derived
	escSum := func() (float64, bool) {
		if !d.EscalationDefault.Valid || !d.EscalationWarranty.Valid ||
			!d.EscalationFreight.Valid || !d.EscalationSpecial.Valid {
			return 0, false
		}
		return d.EscalationDefault.Value + d.EscalationWarranty.Value +
			d.EscalationFreight.Value + d.EscalationSpecial.Value, true
	}
	if r.Scope == ScopeOption {
		return Empty()
	}
	switch d.Role {
	case RoleTitle:
		if r.Qty.Valid && r.Unit != "" && d.LumpsumBaseTotal.Valid && d.LumpsumMaterialTotal.Valid {
			if sum, ok := escSum(); ok {
				return Num(d.LumpsumBaseTotal.Value - (d.LumpsumMaterialTotal.Value + sum))
			}
		}
	case RoleLineitem:
		if d.PricingMode == ModeUnitPrice && d.BaseSubtotal.Valid && d.QuoteSubtotal.Valid {
			if sum, ok := escSum(); ok {
				return Num(d.BaseSubtotal.Value - (d.QuoteSubtotal.Value + sum))
			}
		}
	}
	return Empty()
}
