package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

// HandleSummary shows the project summary. Optional query params discount
// (fraction) and levels (simulation depth) override the stored settings for
// a what-if view without touching the proposal record.
func HandleSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")

		p, _, err := services.LoadProject(app, proposalID)
		if err != nil {
			log.Printf("summary: could not load proposal %s: %v", proposalID, err)
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}

		q := e.Request.URL.Query()
		if s := q.Get("discount"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0 && v <= 1 {
				p.DiscountFraction = services.Num(v)
			}
		}
		if s := q.Get("levels"); s != "" {
			if v, err := strconv.Atoi(s); err == nil && v >= 0 {
				p.SimulationLevels = v
			}
		}

		sum := services.Recompute(p)

		data := templates.SummaryData{
			ProposalID:   proposalID,
			ProposalName: p.Name,
			Reference:    p.Reference,
			Revision:     p.Revision,
			ProjectFmt:   fmtMoney(sum.ProjectTotal),
		}

		if sum.DiscountAmount.Valid {
			data.DiscountFmt = fmtMoney(sum.DiscountAmount)
			data.DiscountedFmt = fmtMoney(sum.DiscountedTotal)
			data.DiscountPct = fmtPct(sum.DiscountPct)
		}

		for _, entry := range sum.Entries {
			data.Rows = append(data.Rows, templates.SummaryRowItem{
				Index:       entry.Index,
				SectionName: entry.SectionName,
				SellingFmt:  fmtMoney(entry.Selling),
				QuoteFmt:    fmtMoney(entry.Material),
				BaseFmt:     fmtMoney(entry.Base),
				ProfitFmt:   profitOf(entry),
				MarginFmt:   fmtPct(entry.MarginPct),
				ScopeRemark: entry.ScopeRemark,
			})
		}

		for _, trial := range sum.Trials {
			data.Trials = append(data.Trials, templates.SummaryTrialItem{
				Level:         trial.LevelPct,
				PriceFmt:      services.FormatINR(trial.Price),
				DiscountFmt:   services.FormatINR(trial.Discount),
				DiscountedFmt: services.FormatINR(trial.DiscountedPrice),
				ProfitFmt:     services.FormatINR(trial.Profit),
				MarginFmt:     fmtPct(trial.MarginPct),
			})
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.SummaryContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.SummaryPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// profitOf derives the per-section profit shown on the summary page from
// selling and base, both quoted figures.
func profitOf(entry services.SummaryEntry) string {
	if !entry.Selling.Valid || !entry.Base.Valid {
		return ""
	}
	return services.FormatINR(entry.Selling.Value - entry.Base.Value)
}
