package services

// ConvertRate resolves the rate for a row's buying currency relative to the
// section's quote currency. An empty currency code or a code missing from
// the table yields an empty Cell: the row stays unpriced rather than
// failing the recompute.
func ConvertRate(rates RateTable, currency, quoteCurrency string) Cell {
	if currency == "" {
		return Empty()
	}
	if currency == quoteCurrency {
		// Exact by definition, independent of table contents.
		return Num(1.0)
	}
	from, ok := rates[currency]
	if !ok {
		return Empty()
	}
	quote, ok := rates[quoteCurrency]
	if !ok || quote == 0 {
		return Empty()
	}
	return Num(from / quote)
}
