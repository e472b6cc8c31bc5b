package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateOfferMinimumQuantities backfills the minimum_quantity field on
// vendor offers created before the field existed. Offers with a missing or
// non-positive minimum get the default of 1.
// Safe to call on every startup -- returns early if nothing to migrate.
func MigrateOfferMinimumQuantities(app *pocketbase.PocketBase) error {
	offersCol, err := app.FindCollectionByNameOrId("vendor_offers")
	if err != nil {
		return fmt.Errorf("migrate: could not find vendor_offers collection: %w", err)
	}

	stale, err := app.FindRecordsByFilter(
		offersCol,
		"minimum_quantity < 1",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query vendor offers: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	log.Printf("migrate: found %d offer(s) without a minimum quantity -- defaulting to 1...\n", len(stale))

	for _, offer := range stale {
		offer.Set("minimum_quantity", 1)
		if err := app.Save(offer); err != nil {
			log.Printf("migrate: failed to update offer %s: %v\n", offer.Id, err)
			continue
		}
	}

	log.Println("migrate: offer minimum quantity migration complete.")
	return nil
}
