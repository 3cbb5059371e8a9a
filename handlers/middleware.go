package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/templates"
)

type contextKey string

const ActiveProposalKey contextKey = "activeProposal"
const HeaderDataKey contextKey = "headerData"
const SidebarDataKey contextKey = "sidebarData"

// GetActiveProposal extracts the active proposal from the request context.
func GetActiveProposal(r *http.Request) *templates.ActiveProposal {
	if val, ok := r.Context().Value(ActiveProposalKey).(*templates.ActiveProposal); ok {
		return val
	}
	return nil
}

// GetHeaderData extracts the pre-built HeaderData from the request context.
func GetHeaderData(r *http.Request) templates.HeaderData {
	if val, ok := r.Context().Value(HeaderDataKey).(templates.HeaderData); ok {
		return val
	}
	return templates.HeaderData{}
}

// GetSidebarData extracts the pre-built SidebarData from the request context.
func GetSidebarData(r *http.Request) templates.SidebarData {
	if val, ok := r.Context().Value(SidebarDataKey).(templates.SidebarData); ok {
		return val
	}
	return templates.SidebarData{}
}

// ActiveProposalMiddleware reads the "active_proposal" cookie, loads the
// proposal record, builds HeaderData with the full proposal list, and stores
// both in the request context so handlers and templates can use them.
func ActiveProposalMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var active *templates.ActiveProposal

		cookie, err := e.Request.Cookie("active_proposal")
		if err == nil && cookie.Value != "" {
			rec, err := app.FindRecordById("proposals", cookie.Value)
			if err == nil {
				active = &templates.ActiveProposal{
					ID:        rec.Id,
					Name:      rec.GetString("name"),
					Reference: rec.GetString("reference"),
				}
			} else {
				log.Printf("middleware: active proposal %s not found, clearing cookie", cookie.Value)
				http.SetCookie(e.Response, &http.Cookie{
					Name:   "active_proposal",
					Value:  "",
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		// Full proposal list for the header switcher
		proposalsCol, _ := app.FindCollectionByNameOrId("proposals")
		var selectorItems []templates.ProposalSelectorItem
		if proposalsCol != nil {
			records, _ := app.FindAllRecords(proposalsCol)
			for _, rec := range records {
				isActive := active != nil && rec.Id == active.ID
				selectorItems = append(selectorItems, templates.ProposalSelectorItem{
					ID:       rec.Id,
					Name:     rec.GetString("name"),
					Customer: rec.GetString("customer_ref"),
					IsActive: isActive,
				})
			}
		}

		headerData := templates.HeaderData{
			ActiveProposal: active,
			Proposals:      selectorItems,
		}

		ctx := context.WithValue(e.Request.Context(), ActiveProposalKey, active)
		ctx = context.WithValue(ctx, HeaderDataKey, headerData)
		e.Request = e.Request.WithContext(ctx)

		// Sidebar needs the active proposal in context first
		sidebarData := BuildSidebarData(e.Request, app)
		ctx = context.WithValue(e.Request.Context(), SidebarDataKey, sidebarData)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
