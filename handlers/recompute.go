package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
)

// HandleRecompute handles POST /proposals/{id}/recompute: the full engine
// run with every derived field written back and the summary rebuilt.
func HandleRecompute(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		proposalID := e.Request.PathValue("id")

		sum, err := services.RecomputeProposal(app, proposalID)
		if err != nil {
			log.Printf("recompute: proposal %s: %v", proposalID, err)
			return ErrorToast(e, http.StatusInternalServerError, "Recompute failed. Please try again.")
		}

		SetToast(e, "success", "Recomputed "+fmtMoney(sum.ProjectTotal))

		if e.Request.Header.Get("HX-Request") == "true" {
			e.Response.Header().Set("HX-Redirect", "/proposals/"+proposalID+"/summary")
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/proposals/"+proposalID+"/summary")
	}
}
