package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProposalActivate sets the active proposal cookie and returns a full
// page redirect via HX-Redirect so the entire shell re-renders.
func HandleProposalActivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")

		if _, err := app.FindRecordById("proposals", proposalID); err != nil {
			return ErrorToast(e, http.StatusNotFound, "Proposal not found")
		}

		http.SetCookie(e.Response, &http.Cookie{
			Name:     "active_proposal",
			Value:    proposalID,
			Path:     "/",
			MaxAge:   60 * 60 * 24 * 30,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		SetToast(e, "success", "Proposal activated")

		e.Response.Header().Set("HX-Redirect", "/proposals/"+proposalID)
		return e.String(200, "OK")
	}
}

// HandleProposalDeactivate clears the active proposal cookie.
func HandleProposalDeactivate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		http.SetCookie(e.Response, &http.Cookie{
			Name:   "active_proposal",
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})

		SetToast(e, "success", "Proposal deactivated")

		e.Response.Header().Set("HX-Redirect", "/proposals")
		return e.String(200, "OK")
	}
}
