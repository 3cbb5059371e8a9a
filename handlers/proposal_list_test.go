package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"proposalengine/testhelpers"
)

func TestHandleProposalList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalList(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "No proposals yet")
}

func TestHandleProposalList_WithProposals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProposal(t, app, "Alpha Plant")
	testhelpers.CreateTestProposal(t, app, "Beta Plant")

	handler := HandleProposalList(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Alpha Plant", "Beta Plant")
}

func TestHandleProposalList_HTMXPartial(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProposal(t, app, "Partial Proposal")

	handler := HandleProposalList(app)

	req := httptest.NewRequest(http.MethodGet, "/proposals", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Partial Proposal")
	// Partials must not re-render the page shell.
	if strings.Contains(body, "<html") {
		t.Errorf("expected a fragment, got a full page")
	}
}
