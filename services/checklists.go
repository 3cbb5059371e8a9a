package services

// The checklist subsystem is independent of the pricing engine: a static
// catalog of form documents the team prints and fills by hand.

// ChecklistItemKind selects how an item renders on the form.
type ChecklistItemKind string

const (
	ItemCheckbox  ChecklistItemKind = "checkbox"
	ItemChoice    ChecklistItemKind = "choice"
	ItemTextField ChecklistItemKind = "textfield"
)

// ChecklistItem is one row of a checklist form. Options applies to choice
// items; Width is the fill-in line length for textfield items, in
// characters.
type ChecklistItem struct {
	Kind    ChecklistItemKind
	Label   string
	Options []string
	Width   int
}

// Checklist is a printable form document.
type Checklist struct {
	Slug  string
	Title string
	Items []ChecklistItem
}

// Common choice sets. The leading blank keeps the form unanswered until
// someone circles a value.
var (
	nilYesNo   = []string{" ", "Yes", "No"}
	nilYesNoNA = []string{" ", "Yes", "No", "NA"}
)

func checkbox(label string) ChecklistItem {
	return ChecklistItem{Kind: ItemCheckbox, Label: label}
}

func choice(label string, options []string) ChecklistItem {
	return ChecklistItem{Kind: ItemChoice, Label: label, Options: options}
}

func textfield(label string, width int) ChecklistItem {
	return ChecklistItem{Kind: ItemTextField, Label: label, Width: width}
}

// Checklists returns the full catalog in display order.
func Checklists() []Checklist {
	return []Checklist{
		{
			Slug:  "proposal-submission",
			Title: "Proposal Submission Checklist",
			Items: []ChecklistItem{
				textfield("Proposal reference", 40),
				textfield("Customer", 60),
				checkbox("Currency rates updated within the last week?"),
				checkbox("All sections recomputed after the final edit?"),
				checkbox("Scope remarks reviewed for every OPTION section?"),
				choice("Does any section carry a margin below 15%?", nilYesNo),
				choice("If yes, has the commercial head approved the margin?", nilYesNoNA),
				checkbox("Price overrides double-checked against the recommendation?"),
				checkbox("Summary project total matches the covering letter?"),
				choice("Is a discount offered on this proposal?", nilYesNo),
				choice("If yes, is the discount simulation attached?", nilYesNoNA),
				textfield("Submitted by", 50),
				textfield("Date", 25),
			},
		},
		{
			Slug:  "site-survey",
			Title: "Site Survey Checklist",
			Items: []ChecklistItem{
				textfield("Site / plant", 60),
				textfield("Contact person", 50),
				checkbox("Panel room dimensions measured and photographed?"),
				checkbox("Incoming power supply rating confirmed?"),
				checkbox("Cable routing between field and panel room walked?"),
				choice("Is the existing earthing pit usable?", nilYesNoNA),
				choice("Is a crane or forklift available for unloading?", nilYesNo),
				checkbox("Ambient temperature and dust conditions noted?"),
				textfield("Special site constraints", 100),
				textfield("Surveyed by", 50),
				textfield("Date", 25),
			},
		},
		{
			Slug:  "pre-dispatch",
			Title: "Pre-Dispatch Checklist",
			Items: []ChecklistItem{
				textfield("Proposal reference", 40),
				checkbox("Factory acceptance test report signed?"),
				checkbox("Packing list checked against the priced sections?"),
				choice("Are any OPTION items being shipped?", nilYesNo),
				choice("If yes, is a confirmed order amendment on file?", nilYesNoNA),
				checkbox("Loose supplied items photographed before packing?"),
				checkbox("Transport insurance arranged?"),
				textfield("Dispatched by", 50),
				textfield("Date", 25),
			},
		},
	}
}

// ChecklistBySlug looks up one catalog entry.
func ChecklistBySlug(slug string) (Checklist, bool) {
	for _, c := range Checklists() {
		if c.Slug == slug {
			return c, true
		}
	}
	return Checklist{}, false
}
