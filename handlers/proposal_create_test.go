package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"proposalengine/testhelpers"
)

func postForm(t *testing.T, path string, form url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleProposalSave_Creates(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalSave(app)

	form := url.Values{
		"name":              {"New Plant Proposal"},
		"customer_ref":      {"ACME"},
		"revision":          {"R0"},
		"discount_fraction": {"0.05"},
		"simulation_levels": {"3"},
	}
	req := postForm(t, "/proposals", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, err := app.FindAllRecords("proposals")
	if err != nil || len(records) != 1 {
		t.Fatalf("expected 1 proposal saved, got %d (err %v)", len(records), err)
	}
	saved := records[0]
	if saved.GetString("name") != "New Plant Proposal" {
		t.Errorf("name = %q", saved.GetString("name"))
	}
	if ref := saved.GetString("reference"); !strings.Contains(ref, "FSS-QTN-ACME-") {
		t.Errorf("expected a generated reference, got %q", ref)
	}
	if got := saved.GetFloat("discount_fraction"); got != 0.05 {
		t.Errorf("discount_fraction = %v", got)
	}
}

func TestHandleProposalSave_RequiresName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalSave(app)

	req := postForm(t, "/proposals", url.Values{"customer_ref": {"ACME"}})
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, _ := app.FindAllRecords("proposals")
	if len(records) != 0 {
		t.Errorf("expected no proposal saved, got %d", len(records))
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "Proposal name is required")
}

func TestHandleProposalSave_RejectsDuplicateName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProposal(t, app, "Taken Name")
	handler := HandleProposalSave(app)

	form := url.Values{
		"name":         {"Taken Name"},
		"customer_ref": {"ACME"},
	}
	req := postForm(t, "/proposals", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, _ := app.FindAllRecords("proposals")
	if len(records) != 1 {
		t.Errorf("expected duplicate to be rejected, got %d proposals", len(records))
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "already exists")
}

func TestHandleProposalSave_HTMXRedirect(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalSave(app)

	form := url.Values{
		"name":         {"Redirect Proposal"},
		"customer_ref": {"ACME"},
	}
	req := postForm(t, "/proposals", form)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, _ := app.FindAllRecords("proposals")
	if len(records) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(records))
	}
	testhelpers.AssertHXRedirect(t, rec.Header().Get("HX-Redirect"), "/proposals/"+records[0].Id)
}

func TestHandleProposalSave_InvalidDiscount(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProposalSave(app)

	form := url.Values{
		"name":              {"Bad Discount"},
		"customer_ref":      {"ACME"},
		"discount_fraction": {"1.5"},
	}
	req := postForm(t, "/proposals", form)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	records, _ := app.FindAllRecords("proposals")
	if len(records) != 0 {
		t.Errorf("expected out-of-range discount to be rejected")
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), "between 0 and 1")
}
