package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

// buildSectionEditData loads the proposal, recomputes it in memory and
// assembles the section editor data for one section. The row IDs come from
// the stored records; computed columns from the live engine run.
func buildSectionEditData(app *pocketbase.PocketBase, proposalID, sectionID string) (templates.SectionEditData, error) {
	p, rowRecords, err := services.LoadProject(app, proposalID)
	if err != nil {
		return templates.SectionEditData{}, err
	}
	services.Recompute(p)

	sectionRecords, err := app.FindRecordsByFilter(
		"sections", "proposal = {:proposal}", "sort_order", 0, 0,
		map[string]any{"proposal": proposalID},
	)
	if err != nil {
		return templates.SectionEditData{}, fmt.Errorf("loading sections: %w", err)
	}

	sectionIdx := -1
	for i, rec := range sectionRecords {
		if rec.Id == sectionID {
			sectionIdx = i
			break
		}
	}
	if sectionIdx < 0 {
		return templates.SectionEditData{}, fmt.Errorf("section %s not in proposal %s", sectionID, proposalID)
	}

	s := &p.Sections[sectionIdx]
	data := templates.SectionEditData{
		ProposalID:      proposalID,
		SectionID:       sectionID,
		SectionName:     s.Name,
		QuoteCurrency:   s.QuoteCurrency,
		MarginDisplay:   fmt.Sprintf("%.0f%%", s.Margin*100),
		SellingFmt:      fmtMoney(s.Totals.Selling),
		QuoteTotalFmt:   fmtMoney(s.Totals.Material),
		ProfitFmt:       fmtMoney(s.Totals.Profit),
		CurrencyOptions: services.CurrencyOptions,
		ScopeOptions:    services.ScopeOptions,
		UnitOptions:     services.UnitOptions,
		Errors:          make(map[string]string),
	}

	for i, rec := range rowRecords[sectionIdx] {
		r := &s.Rows[i]
		d := r.Derived
		item := templates.SectionRowItem{
			ID:          rec.Id,
			Marker:      r.Marker,
			Item:        r.Item,
			Description: r.Description,
			Qty:         fmtNum(r.Qty),
			Unit:        r.Unit,
			UnitCost:    fmtNum(r.UnitCost),
			Currency:    r.Currency,
			Scope:       string(r.Scope),
			Override:    fmtNum(r.PriceOverride),

			Role:            string(d.Role),
			Serial:          d.Serial,
			EffectiveFmt:    fmtMoney(d.EffectiveUnitPrice),
			SubtotalFmt:     fmtMoney(d.SubtotalPrice),
			DisplayPriceFmt: fmtMoney(d.DisplayUnitPrice),
			DisplaySubFmt:   fmtMoney(d.DisplaySubtotal),
			ProfitFmt:       fmtMoney(d.Profit),
			MarginPctFmt:    fmtPct(d.MarginPct),
		}
		if r.Discount != 0 {
			item.Discount = fmtFloat(r.Discount)
		}
		data.Rows = append(data.Rows, item)
	}

	return data, nil
}

// HandleSectionView shows the row editor for one section.
func HandleSectionView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		sectionID := e.Request.PathValue("sectionId")

		data, err := buildSectionEditData(app, proposalID, sectionID)
		if err != nil {
			log.Printf("section_edit: %v", err)
			return ErrorToast(e, http.StatusNotFound, "Section not found")
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.SectionEditContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.SectionEditPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
