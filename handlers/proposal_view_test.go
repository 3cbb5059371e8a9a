package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"proposalengine/testhelpers"
)

func TestHandleProposalView_ShowsSectionsAndTotal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, _ := seedProposal(t, app)

	handler := HandleProposalView(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/"+proposal.Id, nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	// Live totals: 2x127 + 1x211 = 465 for the lumpsum section.
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Automation", "465.00")
}

func TestHandleProposalView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalView(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals/missing", nil)
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

func TestHandleProposalDelete_RemovesProposal(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal, section := seedProposal(t, app)

	handler := HandleProposalDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/proposals/"+proposal.Id, nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if _, err := app.FindRecordById("proposals", proposal.Id); err == nil {
		t.Error("expected proposal to be deleted")
	}
	// Sections cascade with the proposal.
	if _, err := app.FindRecordById("sections", section.Id); err == nil {
		t.Error("expected sections to cascade")
	}
}

func TestHandleProposalActivate_SetsCookie(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Cookie Proposal")

	handler := HandleProposalActivate(app)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/activate", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookieSet := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "active_proposal" && c.Value == proposal.Id {
			cookieSet = true
		}
	}
	if !cookieSet {
		t.Error("expected active_proposal cookie to be set")
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+proposal.Id)
}

func TestHandleProposalRevise_BumpsRevision(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proposal := testhelpers.CreateTestProposal(t, app, "Revised Proposal")

	handler := HandleProposalRevise(app)

	req := httptest.NewRequest(http.MethodPost, "/proposals/"+proposal.Id+"/revise", nil)
	req.SetPathValue("id", proposal.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	loaded, _ := app.FindRecordById("proposals", proposal.Id)
	if got := loaded.GetString("revision"); got != "R1" {
		t.Errorf("revision = %q, want R1", got)
	}
}
