package services

// UnitOptions is the list of units an editor can pick for a row. Kept
// lowercase to match what the normalizer produces.
var UnitOptions = []string{
	"nos",
	LotUnit,
	"set",
	"m",
	"kg",
	"sqm",
	"ltr",
	"pair",
	"box",
	"roll",
	"day",
	"month",
	"hour",
	"visit",
}

// ScopeOptions is the list of scope tags an editor can pick for a row.
// The empty tag (normal scope) is deliberately first.
var ScopeOptions = []string{
	string(ScopeNormal),
	string(ScopeOption),
	string(ScopeIncluded),
	string(ScopeWaived),
}

// CurrencyOptions is the list of buying currencies the rate table seeds.
var CurrencyOptions = []string{"INR", "USD", "EUR", "GBP", "JPY", "CHF", "SGD"}

// SchemeOptions is the list of numbering schemes a section can use.
var SchemeOptions = []string{string(SchemeSingle), string(SchemeDouble)}
