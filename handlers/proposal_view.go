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

// HandleProposalView shows the section list of one proposal. Totals are
// computed live from the current authored data so the page never shows a
// stale figure.
func HandleProposalView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")

		p, _, err := services.LoadProject(app, proposalID)
		if err != nil {
			log.Printf("proposal_view: could not load proposal %s: %v", proposalID, err)
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}
		sum := services.Recompute(p)

		sectionRecords, err := app.FindRecordsByFilter(
			"sections", "proposal = {:proposal}", "sort_order", 0, 0,
			map[string]any{"proposal": proposalID},
		)
		if err != nil {
			log.Printf("proposal_view: could not load sections of %s: %v", proposalID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		data := templates.ProposalViewData{
			ID:           proposalID,
			Name:         p.Name,
			Reference:    p.Reference,
			Revision:     p.Revision,
			TotalDisplay: fmtMoney(sum.ProjectTotal),
			SectionForm:  newSectionFormData(),
		}

		for i, rec := range sectionRecords {
			s := &p.Sections[i]
			data.Sections = append(data.Sections, templates.ProposalSectionItem{
				ID:              rec.Id,
				Name:            s.Name,
				RowCount:        len(s.Rows),
				QuoteCurrency:   s.QuoteCurrency,
				MarginDisplay:   fmt.Sprintf("%.0f%%", s.Margin*100),
				ScopeRemark:     s.ScopeRemark,
				SellingDisplay:  fmtMoney(s.Totals.Selling),
				NumberingScheme: string(s.NumberingScheme),
			})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProposalViewContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProposalViewPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

func newSectionFormData() templates.SectionFormData {
	return templates.SectionFormData{
		QuoteCurrency:   "INR",
		NumberingScheme: string(services.SchemeSingle),
		CurrencyOptions: services.CurrencyOptions,
		SchemeOptions:   services.SchemeOptions,
		ScopeOptions:    services.ScopeOptions,
		Errors:          make(map[string]string),
	}
}
