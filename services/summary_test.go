package services

import (
	"math"
	"testing"
)

func sectionWithTotals(name string, selling, base float64, remark string) Section {
	return Section{
		Name:        name,
		ScopeRemark: remark,
		Totals: SectionTotals{
			Selling: Num(selling),
			Base:    Num(base),
		},
	}
}

func TestBuildSummaryProjectTotalExcludesOptionSections(t *testing.T) {
	p := &Project{Sections: []Section{
		sectionWithTotals("Automation", 1000, 800, ""),
		sectionWithTotals("Spares", 500, 400, "OPTION"),
	}}
	sum := BuildSummary(p)

	if len(sum.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(sum.Entries))
	}
	if math.Abs(sum.ProjectTotal.Value-1000) > 0.001 {
		t.Errorf("project total = %v, want 1000", sum.ProjectTotal.Value)
	}
	if math.Abs(sum.ProjectBase.Value-800) > 0.001 {
		t.Errorf("project base = %v, want 800", sum.ProjectBase.Value)
	}
	// The OPTION section still gets its summary row, remark intact.
	if sum.Entries[1].ScopeRemark != "OPTION" {
		t.Errorf("remark = %q, want OPTION", sum.Entries[1].ScopeRemark)
	}
	if sum.Entries[0].Index != 1 || sum.Entries[1].Index != 2 {
		t.Errorf("indices = %d, %d, want 1, 2", sum.Entries[0].Index, sum.Entries[1].Index)
	}
}

func TestBuildSummaryDiscount(t *testing.T) {
	p := &Project{
		Sections:         []Section{sectionWithTotals("A", 1000, 800, "")},
		DiscountFraction: Num(0.1),
	}
	sum := BuildSummary(p)

	if math.Abs(sum.DiscountAmount.Value-100) > 0.001 {
		t.Errorf("discount amount = %v, want 100", sum.DiscountAmount.Value)
	}
	if math.Abs(sum.DiscountedTotal.Value-900) > 0.001 {
		t.Errorf("discounted total = %v, want 900", sum.DiscountedTotal.Value)
	}
	if math.Abs(sum.DiscountPct.Value-0.1) > 0.001 {
		t.Errorf("discount pct = %v, want 0.1", sum.DiscountPct.Value)
	}
}

func TestBuildSummaryDiscountZeroTotalGuard(t *testing.T) {
	p := &Project{
		Sections:         []Section{sectionWithTotals("A", 0, 0, "")},
		DiscountFraction: Num(0.1),
	}
	sum := BuildSummary(p)

	if sum.DiscountPct.Valid {
		t.Errorf("discount pct = %+v, want empty on zero total", sum.DiscountPct)
	}
}

func TestBuildSummarySimulationTable(t *testing.T) {
	p := &Project{
		Sections:         []Section{sectionWithTotals("A", 1000, 800, "")},
		SimulationLevels: 3,
	}
	sum := BuildSummary(p)

	if len(sum.Trials) != 3 {
		t.Fatalf("trials = %d, want 3", len(sum.Trials))
	}
	wantDiscounts := []float64{10, 20, 30}
	for i, trial := range sum.Trials {
		if trial.LevelPct != i+1 {
			t.Errorf("trial %d level = %d, want %d", i, trial.LevelPct, i+1)
		}
		if math.Abs(trial.Discount-wantDiscounts[i]) > 0.001 {
			t.Errorf("trial %d discount = %v, want %v", i, trial.Discount, wantDiscounts[i])
		}
		if math.Abs(trial.Price-1000) > 0.001 {
			t.Errorf("trial %d price = %v, want 1000", i, trial.Price)
		}
		wantProfit := (1000 - wantDiscounts[i]) - 800
		if math.Abs(trial.Profit-wantProfit) > 0.001 {
			t.Errorf("trial %d profit = %v, want %v", i, trial.Profit, wantProfit)
		}
		wantMargin := wantProfit / (1000 - wantDiscounts[i])
		if math.Abs(trial.MarginPct.Value-wantMargin) > 0.001 {
			t.Errorf("trial %d margin = %v, want %v", i, trial.MarginPct.Value, wantMargin)
		}
	}
}

func TestBuildSummarySimulationDiscountRoundsUp(t *testing.T) {
	p := &Project{
		Sections:         []Section{sectionWithTotals("A", 999.5, 800, "")},
		SimulationLevels: 1,
	}
	sum := BuildSummary(p)

	// ceil(999.5 * 0.01) = 10
	if math.Abs(sum.Trials[0].Discount-10) > 0.001 {
		t.Errorf("discount = %v, want 10", sum.Trials[0].Discount)
	}
}

func TestComputeSectionTotals(t *testing.T) {
	title := Row{Marker: "1", Description: "System", Qty: Num(1), Unit: LotUnit}
	title.Derived.Role = RoleTitle
	title.Derived.DisplaySubtotal = Num(350)
	title.Derived.EscalationDefault = Num(7.5)
	title.Derived.EscalationWarranty = Num(5)
	title.Derived.Risk = Num(12)
	title.Derived.Profit = Num(50)

	child := Row{Item: "A", Description: "part", Qty: Num(1), UnitCost: Num(1)}
	child.Derived.Role = RoleLineitem
	child.Derived.QuoteSubtotal = Num(250)
	child.Derived.BaseSubtotal = Num(300)

	s := &Section{Rows: []Row{title, child}}
	ComputeSectionTotals(s)

	if math.Abs(s.Totals.Selling.Value-350) > 0.001 {
		t.Errorf("selling = %v, want 350", s.Totals.Selling.Value)
	}
	if math.Abs(s.Totals.Material.Value-250) > 0.001 {
		t.Errorf("material = %v, want 250", s.Totals.Material.Value)
	}
	if math.Abs(s.Totals.Base.Value-300) > 0.001 {
		t.Errorf("base = %v, want 300", s.Totals.Base.Value)
	}
	if math.Abs(s.Totals.EscalationDefault.Value-7.5) > 0.001 {
		t.Errorf("escalation default = %v, want 7.5", s.Totals.EscalationDefault.Value)
	}
	if math.Abs(s.Totals.MarginPct.Value-50.0/350.0) > 0.001 {
		t.Errorf("margin = %v, want %v", s.Totals.MarginPct.Value, 50.0/350.0)
	}
}
