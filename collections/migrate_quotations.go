package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateQuotationDiscountTypes backfills the discount_type field on
// quotations saved before the field became required. Records with an empty
// type are treated as a fixed amount, which matches how the totals were
// computed at the time.
func MigrateQuotationDiscountTypes(app *pocketbase.PocketBase) error {
	quotationsCol, err := app.FindCollectionByNameOrId("quotations")
	if err != nil {
		return fmt.Errorf("migrate_discount: could not find quotations collection: %w", err)
	}

	stale, err := app.FindRecordsByFilter(
		quotationsCol,
		"discount_type = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate_discount: could not query quotations: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	log.Printf("migrate_discount: found %d quotation(s) without a discount type -- defaulting to fixed...\n", len(stale))

	for _, q := range stale {
		q.Set("discount_type", "fixed")
		if err := app.Save(q); err != nil {
			log.Printf("migrate_discount: failed to update quotation %s: %v\n", q.Id, err)
			continue
		}
	}

	return nil
}
