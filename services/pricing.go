package services

import "math"

// CalcRecommendedUnitPrice marks up the base unit cost by the section
// margin and rounds up to a whole unit of currency. A margin at or above
// 100% has no finite price; the cell stays empty.
func CalcRecommendedUnitPrice(r Row, margin float64) Cell {
	if !priced(r) || !r.Derived.BaseUnitCost.Valid {
		return Empty()
	}
	if margin >= 1 {
		return Empty()
	}
	return Num(math.Ceil(r.Derived.BaseUnitCost.Value / (1 - margin)))
}

// sellable reports whether a row contributes to selling-price totals:
// OPTION, INCLUDED and WAIVED rows do not, and neither does any row under
// an OPTION Title.
func sellable(r Row, parentScope Scope) bool {
	if r.Scope == ScopeOption || r.Scope == ScopeIncluded || r.Scope == ScopeWaived {
		return false
	}
	return parentScope != ScopeOption
}

// CalcRecommendedSubtotal returns qty x recommended unit price for rows
// that contribute to price totals.
func CalcRecommendedSubtotal(r Row, parentScope Scope) Cell {
	if !priced(r) || !r.Derived.RecommendedUnitPrice.Valid || !sellable(r, parentScope) {
		return Empty()
	}
	return Num(r.Qty.Value * r.Derived.RecommendedUnitPrice.Value)
}

// CalcEffectiveUnitPrice resolves the unit price a row is actually sold
// at: the manual override when present, the recommendation otherwise.
func CalcEffectiveUnitPrice(r Row) Cell {
	if !priced(r) {
		return Empty()
	}
	if r.PriceOverride.Valid {
		return r.PriceOverride
	}
	return r.Derived.RecommendedUnitPrice
}

// CalcSubtotalPrice returns qty x effective unit price, price-scope gated.
func CalcSubtotalPrice(r Row, parentScope Scope) Cell {
	if !priced(r) || !r.Derived.EffectiveUnitPrice.Valid || !sellable(r, parentScope) {
		return Empty()
	}
	return Num(r.Qty.Value * r.Derived.EffectiveUnitPrice.Value)
}

// CalcProfit returns selling subtotal minus base subtotal cost. For a
// qualifying Title both sides come from the lumpsum aggregates instead of
// the row's own columns.
func CalcProfit(r Row) Cell {
	d := r.Derived
	if d.Role == RoleTitle && d.LumpsumPriceTotal.Valid && d.LumpsumBaseTotal.Valid {
		return Num(d.LumpsumPriceTotal.Value - d.LumpsumBaseTotal.Value)
	}
	if r.Scope == ScopeOption || r.Scope == ScopeIncluded {
		return Empty()
	}
	// Absorbed lumpsum children carry no profit of their own; it shows up
	// on the Title's aggregate instead.
	if d.Role == RoleLineitem && d.PricingMode == ModeLumpsum {
		return Empty()
	}
	if !priced(r) || !d.SubtotalPrice.Valid || !d.BaseSubtotal.Valid {
		return Empty()
	}
	return Num(d.SubtotalPrice.Value - d.BaseSubtotal.Value)
}

// CalcMarginPct returns profit over selling subtotal. Zero or missing
// selling leaves the margin undefined rather than dividing by zero.
func CalcMarginPct(r Row) Cell {
	d := r.Derived
	if !d.Profit.Valid || d.Profit.Value == 0 {
		return Empty()
	}
	selling := d.SubtotalPrice
	if d.Role == RoleTitle && d.LumpsumPriceTotal.Valid {
		selling = d.LumpsumPriceTotal
	}
	if !selling.Valid || selling.Value == 0 {
		return Empty()
	}
	return Num(d.Profit.Value / selling.Value)
}

// CalcDisplayPrice fills the customer-facing unit price and subtotal
// columns. A qualifying Title shows its lumpsum selling total; lineitems
// absorbed into a lumpsum show nothing; everything else shows the
// effective unit price.
func CalcDisplayPrice(r *Row, parentScope Scope) {
	d := &r.Derived
	switch {
	case d.Role == RoleTitle && d.LumpsumPriceTotal.Valid:
		d.DisplayUnitPrice = d.LumpsumPriceTotal
	case d.Role == RoleLineitem && d.PricingMode == ModeLumpsum && r.Scope != ScopeOption:
		d.DisplayUnitPrice = Empty()
	default:
		d.DisplayUnitPrice = d.EffectiveUnitPrice
	}
	if d.DisplayUnitPrice.Valid && r.Qty.Valid && sellable(*r, parentScope) {
		d.DisplaySubtotal = Num(r.Qty.Value * d.DisplayUnitPrice.Value)
	} else {
		d.DisplaySubtotal = Empty()
	}
}
