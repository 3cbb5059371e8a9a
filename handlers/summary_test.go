package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proposalengine/testhelpers"
)

func TestHandleSummary_ShowsSectionTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, _ := seedProposal(t, app)

	handler := HandleSummary(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+proposal.Id+"/summary", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Automation", "465.00", "Project Total")

	// No stored discount and no simulation request, so neither block renders.
	if strings.Contains(body, "Discount Simulation") {
		t.Error("expected no simulation table without a levels setting")
	}
}

func TestHandleSummary_QueryParamOverrides(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, _ := seedProposal(t, app)

	handler := HandleSummary(app)

	req := httptest.NewRequest(http.MethodGet,
		"/proposals/"+proposal.Id+"/summary?discount=0.1&levels=2", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// 10% of 465.
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "46.50", "Discount Simulation")

	// The override is a what-if view only.
	loaded, err := app.FindRecordById("proposals", proposal.Id)
	if err != nil {
		t.Fatalf("reload proposal: %v", err)
	}
	if got := loaded.GetFloat("discount_fraction"); got != 0 {
		t.Errorf("stored discount_fraction changed to %v", got)
	}
}

func TestHandleSummary_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleSummary(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/missing/summary", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
