package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// checklistWrapWidth is the label wrap width in characters.
const checklistWrapWidth = 80

// GenerateChecklistPDF renders one checklist form as a printable PDF.
func GenerateChecklistPDF(c Checklist) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addChecklistHeader(m, c)

	for _, item := range c.Items {
		switch item.Kind {
		case ItemCheckbox:
			addCheckboxItem(m, item)
		case ItemChoice:
			addChoiceItem(m, item)
		case ItemTextField:
			addTextFieldItem(m, item)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate checklist PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addChecklistHeader(m core.Maroto, c Checklist) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(c.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(2).Add(
			col.New(12).Add(
				line.New(props.Line{SizePercent: 100}),
			),
		),
		row.New(4),
	)
}

// addCheckboxItem draws a tick box followed by the wrapped label. Wrapped
// continuation lines align with the label, not the box.
func addCheckboxItem(m core.Maroto, item ChecklistItem) {
	lines := wrapLabel(item.Label, checklistWrapWidth)

	for i, l := range lines {
		box := ""
		if i == 0 {
			box = "[   ]"
		}
		m.AddRows(
			row.New(7).Add(
				col.New(1).Add(
					text.New(box, props.Text{Size: 9, Align: align.Left}),
				),
				col.New(11).Add(
					text.New(l, props.Text{Size: 9, Align: align.Left}),
				),
			),
		)
	}
}

// addChoiceItem draws the label on the left and the options on the right,
// each in its own box so one can be ticked.
func addChoiceItem(m core.Maroto, item ChecklistItem) {
	lines := wrapLabel(item.Label, checklistWrapWidth)

	opts := make([]string, 0, len(item.Options))
	for _, o := range item.Options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		opts = append(opts, fmt.Sprintf("[   ] %s", o))
	}

	for i, l := range lines {
		optStr := ""
		if i == len(lines)-1 {
			optStr = strings.Join(opts, "   ")
		}
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(
					text.New(l, props.Text{Size: 9, Align: align.Left}),
				),
				col.New(4).Add(
					text.New(optStr, props.Text{Size: 9, Align: align.Right}),
				),
			),
		)
	}
}

// addTextFieldItem draws the label followed by a ruled line to write on.
// Width decides how much of the row the rule takes.
func addTextFieldItem(m core.Maroto, item ChecklistItem) {
	labelCols := 4
	if item.Width > 50 {
		labelCols = 2
	}

	m.AddRows(
		row.New(9).Add(
			col.New(labelCols).Add(
				text.New(item.Label+":", props.Text{
					Size:  9,
					Align: align.Left,
					Top:   2,
				}),
			),
			col.New(12-labelCols).Add(
				line.New(props.Line{
					SizePercent:   95,
					OffsetPercent: 75,
				}),
			),
		),
	)
}

// wrapLabel breaks a label into lines no longer than width characters,
// splitting on word boundaries. A single overlong word stays on its own
// line unbroken.
func wrapLabel(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len(current)+1+len(w) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	lines = append(lines, current)
	return lines
}
