package handlers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/testhelpers"
)

// seedProposal creates a rate table and a small priced proposal: one lumpsum
// Title over two lineitems. With 25% margin the selling total comes to 465.
func seedProposal(t *testing.T, app *pocketbase.PocketBase) (proposal, section *core.Record) {
	t.Helper()

	testhelpers.CreateTestRate(t, app, "INR", 1.0)
	testhelpers.CreateTestRate(t, app, "EUR", 90.0)

	proposal = testhelpers.CreateTestProposal(t, app, "Packing line upgrade")
	section = testhelpers.CreateTestSection(t, app, proposal.Id, "Automation", 1)

	testhelpers.CreateTestRow(t, app, section.Id, 1, testhelpers.RowSpec{
		Marker: "1", Description: "Control system",
		Qty: testhelpers.F(1), Unit: "lot",
	})
	testhelpers.CreateTestRow(t, app, section.Id, 2, testhelpers.RowSpec{
		Item: "A-100", Description: "Controller",
		Qty: testhelpers.F(2), Unit: "nos", Currency: "INR",
		UnitCost: testhelpers.F(100), Discount: 0.1,
	})
	testhelpers.CreateTestRow(t, app, section.Id, 3, testhelpers.RowSpec{
		Item: "B-200", Description: "Operator panel",
		Qty: testhelpers.F(1), Unit: "nos", Currency: "INR",
		UnitCost: testhelpers.F(150),
	})

	return proposal, section
}
