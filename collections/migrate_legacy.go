package collections

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"proposalengine/services"
)

// MigrateLegacyRows backfills data imported from old workbooks: sections
// without a numbering scheme get one inferred from their markers, and row
// scope and unit aliases are normalized to the canonical spellings.
// Safe to call on every startup; untouched records are not rewritten.
func MigrateLegacyRows(app *pocketbase.PocketBase) error {
	if err := migrateNumberingSchemes(app); err != nil {
		return err
	}
	return migrateRowAliases(app)
}

func migrateNumberingSchemes(app *pocketbase.PocketBase) error {
	sections, err := app.FindRecordsByFilter(
		"sections", "numbering_scheme = ''", "", 0, 0,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query sections: %w", err)
	}
	if len(sections) == 0 {
		return nil
	}

	log.Printf("migrate: %d section(s) without a numbering scheme, inferring ...", len(sections))

	for _, sec := range sections {
		rows, err := app.FindRecordsByFilter(
			"rows", "section = {:section}", "sort_order", 0, 0,
			map[string]any{"section": sec.Id},
		)
		if err != nil {
			log.Printf("migrate: could not load rows of section %s: %v", sec.Id, err)
			continue
		}

		sec.Set("numbering_scheme", string(inferScheme(rows)))
		if err := app.Save(sec); err != nil {
			log.Printf("migrate: failed to save section %s: %v", sec.Id, err)
		}
	}
	return nil
}

// inferScheme picks the numbering scheme from the first main marker: a run
// starting at 10 means the tens scheme, anything else the plain one.
func inferScheme(rows []*core.Record) services.NumberingScheme {
	for _, rec := range rows {
		marker := strings.TrimSpace(rec.GetString("marker"))
		if marker == "" {
			continue
		}
		v, err := strconv.ParseFloat(marker, 64)
		if err != nil || v != math.Trunc(v) {
			continue
		}
		if int(v) == 10 {
			return services.SchemeDouble
		}
		return services.SchemeSingle
	}
	return services.SchemeSingle
}

func migrateRowAliases(app *pocketbase.PocketBase) error {
	rows, err := app.FindRecordsByFilter("rows", "id != ''", "", 0, 0)
	if err != nil {
		return fmt.Errorf("migrate: could not query rows: %w", err)
	}

	changed := 0
	for _, rec := range rows {
		dirty := false

		scope := rec.GetString("scope")
		if normalized := string(services.NormalizeScope(scope)); normalized != scope {
			rec.Set("scope", normalized)
			dirty = true
		}

		unit := rec.GetString("unit")
		if normalized := services.NormalizeUnit(unit); normalized != unit {
			rec.Set("unit", normalized)
			dirty = true
		}

		if !dirty {
			continue
		}
		if err := app.Save(rec); err != nil {
			log.Printf("migrate: failed to save row %s: %v", rec.Id, err)
			continue
		}
		changed++
	}

	if changed > 0 {
		log.Printf("migrate: normalized %d legacy row(s).", changed)
	}
	return nil
}
