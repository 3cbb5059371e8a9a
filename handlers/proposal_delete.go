package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProposalDelete deletes a proposal. Sections, rows, summary entries
// and discount trials go with it via cascade relations.
func HandleProposalDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")
		if proposalID == "" {
			return e.String(http.StatusBadRequest, "Missing proposal ID")
		}

		rec, err := app.FindRecordById("proposals", proposalID)
		if err != nil {
			log.Printf("proposal_delete: could not find proposal %s: %v", proposalID, err)
			return e.String(http.StatusNotFound, "Proposal not found")
		}

		if err := app.Delete(rec); err != nil {
			log.Printf("proposal_delete: failed to delete proposal %s: %v", proposalID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete proposal")
		}

		// Drop the active cookie if it pointed at the deleted proposal.
		if cookie, err := e.Request.Cookie("active_proposal"); err == nil && cookie.Value == proposalID {
			http.SetCookie(e.Response, &http.Cookie{
				Name:   "active_proposal",
				Value:  "",
				Path:   "/",
				MaxAge: -1,
			})
		}

		SetToast(e, "success", "Proposal deleted")

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/proposals")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/proposals")
	}
}
