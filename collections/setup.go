package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the proposals, sections, rows,
// currency_rates, summary_entries and discount_trials collections exist.
func Setup(app *pocketbase.PocketBase) {
	proposals := ensureCollection(app, "proposals", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_ref", Required: false})
		c.Fields.Add(&core.TextField{Name: "reference", Required: false})
		c.Fields.Add(&core.TextField{Name: "revision", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount_fraction", Required: false})
		c.Fields.Add(&core.NumberField{Name: "simulation_levels", Required: false})
		c.Fields.Add(&core.NumberField{Name: "project_total", Required: false})
		c.Fields.Add(&core.NumberField{Name: "project_base", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	sections := ensureCollection(app, "sections", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "margin", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_default", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_warranty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_freight", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_special", Required: false})
		c.Fields.Add(&core.TextField{Name: "quote_currency", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "numbering_scheme",
			Required:  false,
			Values:    []string{"single", "double"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "scope_remark", Required: false})
	})

	ensureCollection(app, "rows", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "section",
			Required:      true,
			CollectionId:  sections.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})

		// Authored cells. Numeric cells stay optional so an empty cell is
		// distinguishable from zero.
		c.Fields.Add(&core.TextField{Name: "marker", Required: false})
		c.Fields.Add(&core.TextField{Name: "item", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "qty", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "scope",
			Required:  false,
			Values:    []string{"OPTION", "INCLUDED", "WAIVED"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "currency", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price_override", Required: false})

		// Derived cells, rewritten on every recompute.
		c.Fields.Add(&core.TextField{Name: "role", Required: false})
		c.Fields.Add(&core.TextField{Name: "serial", Required: false})
		c.Fields.Add(&core.TextField{Name: "pricing_mode", Required: false})
		for _, name := range derivedNumberFields {
			c.Fields.Add(&core.NumberField{Name: name, Required: false})
		}
	})

	ensureCollection(app, "currency_rates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "summary_entries", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "section_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "selling", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material", Required: false})
		c.Fields.Add(&core.NumberField{Name: "base", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_default", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_warranty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_freight", Required: false})
		c.Fields.Add(&core.NumberField{Name: "escalation_special", Required: false})
		c.Fields.Add(&core.NumberField{Name: "risk", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin_pct", Required: false})
		c.Fields.Add(&core.TextField{Name: "scope_remark", Required: false})
	})

	ensureCollection(app, "discount_trials", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "proposal",
			Required:      true,
			CollectionId:  proposals.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "level_pct", Required: true})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "discounted_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "profit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin_pct", Required: false})
	})
}

// derivedNumberFields lists every numeric column the engine writes back to
// a row record. Kept in one place so the schema and the store adapter
// cannot drift apart.
var derivedNumberFields = []string{
	"rate",
	"discounted_unit_cost",
	"discounted_subtotal",
	"quote_unit_cost",
	"quote_subtotal",
	"base_unit_cost",
	"base_subtotal",
	"escalation_default",
	"escalation_warranty",
	"escalation_freight",
	"escalation_special",
	"risk",
	"recommended_unit_price",
	"recommended_subtotal",
	"effective_unit_price",
	"subtotal_price",
	"profit",
	"margin_pct",
	"lumpsum_material",
	"lumpsum_base",
	"lumpsum_price",
	"lumpsum_material_total",
	"lumpsum_base_total",
	"lumpsum_price_total",
	"display_unit_price",
	"display_subtotal",
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
