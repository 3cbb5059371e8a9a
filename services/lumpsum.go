package services

// LumpsumQualifies reports whether a Title row aggregates its child span
// as a lumpsum: quantity exactly 1 sold as one lot.
func LumpsumQualifies(r Row) bool {
	return r.Derived.Role == RoleTitle &&
		r.Qty.Valid && r.Qty.Value == 1 &&
		r.Unit == LotUnit
}

// assignPricingModes tags every row with how it is priced. A lineitem
// under a qualifying Title is absorbed into the lumpsum; everything else
// priced is per unit.
func assignPricingModes(s *Section) {
	underLumpsum := false
	for i := range s.Rows {
		r := &s.Rows[i]
		switch r.Derived.Role {
		case RoleTitle:
			if LumpsumQualifies(*r) {
				underLumpsum = true
				r.Derived.PricingMode = ModeLumpsum
			} else {
				underLumpsum = false
				if priced(*r) {
					r.Derived.PricingMode = ModeUnitPrice
				} else {
					r.Derived.PricingMode = ModeNone
				}
			}
		case RoleLineitem:
			if underLumpsum {
				r.Derived.PricingMode = ModeLumpsum
			} else {
				r.Derived.PricingMode = ModeUnitPrice
			}
		default:
			r.Derived.PricingMode = ModeNone
		}
	}
}

// AggregateLumpsums fills the lumpsum fields of every row. For a
// qualifying Title the child span runs strictly after it up to the next
// Title or the end of the section; each child's quote, base and price
// subtotals are summed into the Title's material, base and selling
// totals. A unit-priced lineitem's lumpsum fields are just its own
// single-row values.
func AggregateLumpsums(s *Section) {
	for i := range s.Rows {
		r := &s.Rows[i]
		d := &r.Derived
		switch {
		case LumpsumQualifies(*r):
			var material, base, price float64
			for j := i + 1; j < len(s.Rows); j++ {
				c := s.Rows[j].Derived
				if c.Role == RoleTitle {
					break
				}
				if c.QuoteSubtotal.Valid {
					material += c.QuoteSubtotal.Value
				}
				if c.BaseSubtotal.Valid {
					base += c.BaseSubtotal.Value
				}
				if c.SubtotalPrice.Valid {
					price += c.SubtotalPrice.Value
				}
			}
			d.LumpsumMaterial = Num(material)
			d.LumpsumBase = Num(base)
			d.LumpsumPrice = Num(price)
			d.LumpsumMaterialTotal = Num(material * r.Qty.Value)
			d.LumpsumBaseTotal = Num(base * r.Qty.Value)
			d.LumpsumPriceTotal = Num(price * r.Qty.Value)
		case d.Role == RoleLineitem && d.PricingMode == ModeUnitPrice:
			d.LumpsumMaterial = d.QuoteUnitCost
			d.LumpsumBase = d.BaseUnitCost
			d.LumpsumPrice = d.EffectiveUnitPrice
			d.LumpsumMaterialTotal = d.QuoteSubtotal
			d.LumpsumBaseTotal = d.BaseSubtotal
			d.LumpsumPriceTotal = d.SubtotalPrice
		default:
			d.LumpsumMaterial = Empty()
			d.LumpsumBase = Empty()
			d.LumpsumPrice = Empty()
			d.LumpsumMaterialTotal = Empty()
			d.LumpsumBaseTotal = Empty()
			d.LumpsumPriceTotal = Empty()
		}
	}
}
