package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
	"proposalengine/templates"
)

func HandleProposalList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalsCol, err := app.FindCollectionByNameOrId("proposals")
		if err != nil {
			log.Printf("proposal_list: could not find proposals collection: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindAllRecords(proposalsCol)
		if err != nil {
			log.Printf("proposal_list: could not query proposals: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		sectionsCol, _ := app.FindCollectionByNameOrId("sections")
		active := GetActiveProposal(e.Request)

		var items []templates.ProposalListItem
		for _, rec := range records {
			var sectionCount int
			if sectionsCol != nil {
				sections, err := app.FindRecordsByFilter(
					sectionsCol, "proposal = {:pid}", "", 0, 0,
					map[string]any{"pid": rec.Id},
				)
				if err == nil {
					sectionCount = len(sections)
				}
			}

			createdDate := "—"
			if dt := rec.GetDateTime("created"); !dt.IsZero() {
				createdDate = dt.Time().Format("02 Jan 2006")
			}

			totalDisplay := ""
			if total := rec.Get("project_total"); total != nil {
				if v, ok := total.(float64); ok {
					totalDisplay = services.FormatINR(v)
				}
			}

			items = append(items, templates.ProposalListItem{
				ID:           rec.Id,
				Name:         rec.GetString("name"),
				CustomerRef:  rec.GetString("customer_ref"),
				Reference:    rec.GetString("reference"),
				Revision:     rec.GetString("revision"),
				SectionCount: sectionCount,
				TotalDisplay: totalDisplay,
				IsActive:     active != nil && active.ID == rec.Id,
				CreatedDate:  createdDate,
			})
		}

		data := templates.ProposalListData{
			Items:      items,
			TotalCount: len(records),
		}

		var component templ.Component
		if e.Request.Header.Get("HX-Request") == "true" {
			component = templates.ProposalListContent(data)
		} else {
			headerData := GetHeaderData(e.Request)
			sidebarData := GetSidebarData(e.Request)
			component = templates.ProposalListPage(data, headerData, sidebarData)
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}
