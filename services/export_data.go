package services

// ExportData holds everything a proposal export needs: the recomputed
// sections and the rebuilt summary, plus the header strings.
type ExportData struct {
	Title       string
	Reference   string
	Revision    string
	CreatedDate string
	Sections    []Section
	Summary     Summary
}

// BuildExportData assembles export input from a recomputed project. The
// project must have gone through Recompute first; the export reads derived
// fields and never computes anything itself.
func BuildExportData(p *Project, sum Summary, createdDate string) ExportData {
	return ExportData{
		Title:       p.Name,
		Reference:   p.Reference,
		Revision:    p.Revision,
		CreatedDate: createdDate,
		Sections:    p.Sections,
		Summary:     sum,
	}
}
