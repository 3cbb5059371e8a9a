package services

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates the customer-facing quotation PDF using maroto/v2.
// Only display columns appear; cost and margin data never leave the app.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addProposalHeader(m, data)

	for i := range data.Sections {
		addSectionTable(m, &data.Sections[i])
	}

	addProjectSummary(m, data.Summary)
	addGeneratedFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addProposalHeader adds the title, reference and date.
func addProposalHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	ref := data.Reference
	if data.Revision != "" {
		ref += " " + data.Revision
	}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", ref), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.CreatedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// addSectionTable renders one section: heading, column header, data rows
// and the section total.
func addSectionTable(m core.Maroto, s *Section) {
	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New(s.Name, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
		),
	)

	addSectionTableHeader(m)

	for i := range s.Rows {
		r := &s.Rows[i]
		// Internal comment rows stay off the customer document.
		if r.Derived.Role == RoleComment {
			continue
		}
		addSectionTableRow(m, r)
	}

	if s.Totals.Selling.Valid {
		m.AddRows(
			row.New(8).Add(
				col.New(9).Add(
					text.New("Section Total", props.Text{
						Size:  9,
						Style: fontstyle.Bold,
						Align: align.Right,
					}),
				),
				col.New(3).Add(
					text.New(FormatINR(s.Totals.Selling.Value), props.Text{
						Size:  9,
						Style: fontstyle.Bold,
						Align: align.Right,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

func addSectionTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(
				text.New("#", headerText),
			).WithStyle(&headerCell),
			col.New(4).Add(
				text.New("Description", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Qty", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Unit", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Unit Price", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Amount", headerText),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Remarks", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addSectionTableRow adds a single data row, styled by role.
func addSectionTableRow(m core.Maroto, r *Row) {
	d := r.Derived

	var cellStyle *props.Cell
	var textSize float64 = 7
	var textStyle fontstyle.Type = fontstyle.Normal
	descPrefix := ""

	switch d.Role {
	case RoleTitle:
		textStyle = fontstyle.Bold
		textSize = 8
	case RoleSubtitle, RoleSubsystem:
		textStyle = fontstyle.Bold
		bg := &props.Color{Red: 245, Green: 245, Blue: 245}
		cellStyle = &props.Cell{BackgroundColor: bg}
	case RoleLineitem, RoleDescription:
		descPrefix = "  "
	}

	baseText := props.Text{
		Size:  textSize,
		Style: textStyle,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	qtyStr := ""
	if r.Qty.Valid {
		qtyStr = formatQty(r.Qty.Value)
	}
	priceStr := ""
	if d.DisplayUnitPrice.Valid {
		priceStr = FormatINR(d.DisplayUnitPrice.Value)
	}
	amountStr := ""
	if d.DisplaySubtotal.Valid {
		amountStr = FormatINR(d.DisplaySubtotal.Value)
	}

	colSerial := col.New(1).Add(text.New(d.Serial, baseText))
	colDesc := col.New(4).Add(text.New(descPrefix+r.Description, leftText))
	colQty := col.New(1).Add(text.New(qtyStr, rightText))
	colUnit := col.New(1).Add(text.New(r.Unit, baseText))
	colPrice := col.New(2).Add(text.New(priceStr, rightText))
	colAmount := col.New(2).Add(text.New(amountStr, rightText))
	colRemark := col.New(1).Add(text.New(string(r.Scope), baseText))

	if cellStyle != nil {
		colSerial = colSerial.WithStyle(cellStyle)
		colDesc = colDesc.WithStyle(cellStyle)
		colQty = colQty.WithStyle(cellStyle)
		colUnit = colUnit.WithStyle(cellStyle)
		colPrice = colPrice.WithStyle(cellStyle)
		colAmount = colAmount.WithStyle(cellStyle)
		colRemark = colRemark.WithStyle(cellStyle)
	}

	m.AddRows(
		row.New(7).Add(
			colSerial,
			colDesc,
			colQty,
			colUnit,
			colPrice,
			colAmount,
			colRemark,
		),
	)
}

// addProjectSummary adds the project total block and, when a discount was
// requested, the discounted total.
func addProjectSummary(m core.Maroto, sum Summary) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	addLine := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatINR(amount), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	if sum.ProjectTotal.Valid {
		addLine("Project Total", sum.ProjectTotal.Value)
	}
	if sum.DiscountAmount.Valid {
		addLine("Discount", sum.DiscountAmount.Value)
	}
	if sum.DiscountedTotal.Valid {
		addLine("Discounted Total", sum.DiscountedTotal.Value)
	}
}

// addGeneratedFooter adds the generated-date line at the bottom.
func addGeneratedFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.CreatedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}

// formatQty returns a string representation of the quantity value.
// Whole numbers are formatted without decimals; fractional values get 2 decimal places.
func formatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}
