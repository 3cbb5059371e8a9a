package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"

	"proposalengine/templates"
)

// BuildSidebarData constructs the SidebarData from the current request
// context: the active proposal plus section and rate counts.
func BuildSidebarData(r *http.Request, app *pocketbase.PocketBase) templates.SidebarData {
	data := templates.SidebarData{
		ActivePath: r.URL.Path,
	}

	ratesCol, _ := app.FindCollectionByNameOrId("currency_rates")
	if ratesCol != nil {
		rates, _ := app.FindAllRecords(ratesCol)
		data.RateCount = len(rates)
	}

	active := GetActiveProposal(r)
	if active == nil {
		return data
	}
	data.ActiveProposal = active

	sectionsCol, _ := app.FindCollectionByNameOrId("sections")
	if sectionsCol != nil {
		sections, _ := app.FindRecordsByFilter(
			sectionsCol, "proposal = {:pid}", "", 0, 0,
			map[string]any{"pid": active.ID},
		)
		data.SectionCount = len(sections)
	}

	return data
}
