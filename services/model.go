// Package services implements the pricing and aggregation engine for
// proposal bills of material, plus the export and formatting helpers
// built on top of it.
package services

// Cell is a numeric cell value that may be empty. Every derived field of
// the engine is a Cell so that "not computable" propagates the same way an
// empty spreadsheet cell would.
type Cell struct {
	Value float64
	Valid bool
}

// Num returns a populated Cell.
func Num(v float64) Cell {
	return Cell{Value: v, Valid: true}
}

// Empty returns an empty Cell.
func Empty() Cell {
	return Cell{}
}

// Role is the structural role of a row, derived from its content pattern.
type Role string

const (
	RoleNone        Role = ""
	RoleTitle       Role = "Title"
	RoleLineitem    Role = "Lineitem"
	RoleComment     Role = "Comment"
	RoleSubtitle    Role = "Subtitle"
	RoleSubsystem   Role = "Subsystem"
	RoleDescription Role = "Description"
)

// Scope is the exclusion tag on a row. OPTION rows are excluded from every
// total; INCLUDED and WAIVED rows are excluded from price totals but kept
// in cost totals.
type Scope string

const (
	ScopeNormal   Scope = ""
	ScopeOption   Scope = "OPTION"
	ScopeIncluded Scope = "INCLUDED"
	ScopeWaived   Scope = "WAIVED"
)

// PricingMode says whether a lineitem is absorbed into its Title's lumpsum
// or priced per unit.
type PricingMode string

const (
	ModeNone      PricingMode = ""
	ModeLumpsum   PricingMode = "Lumpsum"
	ModeUnitPrice PricingMode = "Unit Price"
)

// LotUnit is the unit that qualifies a Title row for lumpsum aggregation.
const LotUnit = "lot"

// RiskReserve is the fixed reserve factor applied on top of escalated cost.
const RiskReserve = 0.05

// Row is one bill-of-materials line. The first block of fields is authored
// input; everything under Derived is rewritten on each recompute.
type Row struct {
	Marker        string // identifier cell: main marker, anchor or sub-marker
	Item          string // secondary identifier; non-empty marks a lineitem
	Description   string
	Qty           Cell
	Unit          string
	Scope         Scope
	Currency      string // buying currency code; empty means unpriced
	UnitCost      Cell
	Discount      float64 // fraction, 0 when none
	PriceOverride Cell    // manual unit price, wins over the recommendation

	Derived RowDerived
}

// RowDerived holds every engine-computed field of a row.
type RowDerived struct {
	Role        Role
	Serial      string // rewritten marker after numbering
	PricingMode PricingMode

	Rate               Cell // buying currency per quote currency
	DiscountedUnitCost Cell
	DiscountedSubtotal Cell
	QuoteUnitCost      Cell
	QuoteSubtotal      Cell
	BaseUnitCost       Cell
	BaseSubtotal       Cell

	EscalationDefault  Cell
	EscalationWarranty Cell
	EscalationFreight  Cell
	EscalationSpecial  Cell
	Risk               Cell

	RecommendedUnitPrice Cell
	RecommendedSubtotal  Cell
	EffectiveUnitPrice   Cell
	SubtotalPrice        Cell
	Profit               Cell
	MarginPct            Cell

	// Lumpsum fields: per-unit aggregates over the bounded child span for a
	// qualifying Title, the row's own values for a unit-priced lineitem.
	LumpsumMaterial      Cell
	LumpsumBase          Cell
	LumpsumPrice         Cell
	LumpsumMaterialTotal Cell
	LumpsumBaseTotal     Cell
	LumpsumPriceTotal    Cell

	// Display price columns: what the customer-facing sheet shows.
	DisplayUnitPrice Cell
	DisplaySubtotal  Cell
}

// Escalations holds the four per-category surcharge fractions of a section.
type Escalations struct {
	Default  float64
	Warranty float64
	Freight  float64
	Special  float64
}

// Sum returns the combined escalation fraction.
func (e Escalations) Sum() float64 {
	return e.Default + e.Warranty + e.Freight + e.Special
}

// NumberingScheme selects start/step for main-marker numbering.
type NumberingScheme string

const (
	SchemeSingle NumberingScheme = "single" // 1, 2, 3, ...
	SchemeDouble NumberingScheme = "double" // 10, 20, 30, ...
)

// StartStep returns the numbering start and step for the scheme. Unknown
// schemes fall back to single.
func (s NumberingScheme) StartStep() (int, int) {
	if s == SchemeDouble {
		return 10, 10
	}
	return 1, 1
}

// Section is one product section of a proposal: an ordered run of rows plus
// the pricing configuration that applies to them.
type Section struct {
	Name            string
	Rows            []Row
	Margin          float64 // fraction
	Escalations     Escalations
	QuoteCurrency   string
	NumberingScheme NumberingScheme
	ScopeRemark     string // preserved verbatim across recomputes

	Totals SectionTotals
}

// SectionTotals are the per-section aggregates feeding the project summary.
type SectionTotals struct {
	Selling            Cell
	Material           Cell
	Base               Cell
	EscalationDefault  Cell
	EscalationWarranty Cell
	EscalationFreight  Cell
	EscalationSpecial  Cell
	Risk               Cell
	Profit             Cell
	MarginPct          Cell
}

// RateTable maps a currency code to its rate relative to a base unit.
type RateTable map[string]float64

// Project is the unit of recompute: every section plus project-level
// configuration. The engine walks it synchronously, front to back.
type Project struct {
	Name             string
	Reference        string
	Revision         string
	Sections         []Section
	Rates            RateTable
	DiscountFraction Cell // optional requested discount
	SimulationLevels int  // 0 = no simulation table
}

// SummaryEntry is one per-section line of the rebuilt summary.
type SummaryEntry struct {
	Index              int
	SectionName        string
	Selling            Cell
	Material           Cell
	Base               Cell
	EscalationDefault  Cell
	EscalationWarranty Cell
	EscalationFreight  Cell
	EscalationSpecial  Cell
	Risk               Cell
	MarginPct          Cell
	ScopeRemark        string
}

// DiscountTrial is one row of the what-if discount table.
type DiscountTrial struct {
	LevelPct        int
	Price           float64
	Discount        float64
	DiscountedPrice float64
	Cost            float64
	Profit          float64
	MarginPct       Cell
}

// Summary is rebuilt in full on every recompute; nothing in it survives
// from a previous run except the verbatim scope remarks.
type Summary struct {
	Entries         []SummaryEntry
	ProjectTotal    Cell
	ProjectBase     Cell
	DiscountAmount  Cell
	DiscountedTotal Cell
	DiscountPct     Cell
	Trials          []DiscountTrial
}
