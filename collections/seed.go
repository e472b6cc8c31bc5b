package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type vendorDef struct {
	name        string
	contactName string
	phone       string
	email       string
	city        string
	taxID       string
	reliability int
}

type offerDef struct {
	vendor          string // vendor name, resolved to id at insert time
	price           float64
	currency        string
	validDays       int
	minimumQuantity int
	deliveryTime    string
}

type productDef struct {
	name           string
	sku            string
	category       string
	unit           string
	description    string
	specifications map[string]any
	offers         []offerDef
}

// Seed populates the catalog with a small set of vendors, products and
// current price offers so a fresh install has something to compare.
// It is safe to call on every startup because it returns early if any
// vendor records already exist.
func Seed(app *pocketbase.PocketBase) error {
	vendorsCol, err := app.FindCollectionByNameOrId("vendors")
	if err != nil {
		return fmt.Errorf("seed: could not find vendors collection: %w", err)
	}
	existing, err := app.FindAllRecords(vendorsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query vendors: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: vendors collection is empty – inserting seed data …")

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	offersCol, err := app.FindCollectionByNameOrId("vendor_offers")
	if err != nil {
		return fmt.Errorf("seed: could not find vendor_offers collection: %w", err)
	}
	settingsCol, err := app.FindCollectionByNameOrId("settings")
	if err != nil {
		return fmt.Errorf("seed: could not find settings collection: %w", err)
	}

	vendors := []vendorDef{
		{"Asia Pacific Trading Co", "Li Wei", "+86 21 5550 0101", "sales@aptrading.example", "Shanghai", "CN-310101", 5},
		{"Gulf Supplies FZE", "Omar Hassan", "+971 4 555 0102", "quotes@gulfsupplies.example", "Dubai", "AE-100234", 4},
		{"EuroTech Components", "Anna Schmidt", "+49 40 555 0103", "info@eurotech.example", "Hamburg", "DE-224466", 3},
	}

	vendorIDs := make(map[string]string)
	for _, v := range vendors {
		r := core.NewRecord(vendorsCol)
		r.Set("name", v.name)
		r.Set("contact_name", v.contactName)
		r.Set("phone", v.phone)
		r.Set("email", v.email)
		r.Set("city", v.city)
		r.Set("tax_id", v.taxID)
		r.Set("reliability", v.reliability)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save vendor %q: %w", v.name, err)
		}
		vendorIDs[v.name] = r.Id
	}

	products := []productDef{
		{
			name:        "Armoured Power Cable 4x16mm",
			sku:         "CBL-4X16",
			category:    "Electrical",
			unit:        "drum",
			description: "Low voltage armoured copper cable, 500m drum",
			specifications: map[string]any{
				"conductor": "copper",
				"cores":     "4",
				"section":   "16mm2",
			},
			offers: []offerDef{
				{"Asia Pacific Trading Co", 1250, "USD", 45, 1, "4-6 weeks"},
				{"Gulf Supplies FZE", 1190, "USD", 30, 2, "10 days"},
				{"EuroTech Components", 1340, "USD", 60, 1, "2-3 weeks"},
			},
		},
		{
			name:        "Industrial Circuit Breaker 250A",
			sku:         "CB-250A",
			category:    "Electrical",
			unit:        "pcs",
			description: "Moulded case circuit breaker, 3 pole, 250A",
			specifications: map[string]any{
				"poles":  "3",
				"rating": "250A",
			},
			offers: []offerDef{
				{"Gulf Supplies FZE", 310, "USD", 30, 5, "1 week"},
				{"EuroTech Components", 295, "USD", 90, 10, "3 weeks"},
			},
		},
		{
			name:        "Galvanized Cable Tray 300mm",
			sku:         "CT-300",
			category:    "Mechanical",
			unit:        "length",
			description: "Hot-dip galvanized perforated tray, 3m lengths",
			offers: []offerDef{
				{"Asia Pacific Trading Co", 42.5, "USD", 45, 50, "4 weeks"},
			},
		},
	}

	now := time.Now()
	for _, p := range products {
		r := core.NewRecord(productsCol)
		r.Set("name", p.name)
		r.Set("sku", p.sku)
		r.Set("category", p.category)
		r.Set("unit", p.unit)
		r.Set("description", p.description)
		if p.specifications != nil {
			r.Set("specifications", p.specifications)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save product %q: %w", p.name, err)
		}

		for _, o := range p.offers {
			offer := core.NewRecord(offersCol)
			offer.Set("product", r.Id)
			offer.Set("vendor", vendorIDs[o.vendor])
			offer.Set("price", o.price)
			offer.Set("currency", o.currency)
			offer.Set("valid_until", now.AddDate(0, 0, o.validDays))
			offer.Set("minimum_quantity", o.minimumQuantity)
			offer.Set("delivery_time", o.deliveryTime)
			offer.Set("superseded", false)
			if err := app.Save(offer); err != nil {
				return fmt.Errorf("seed: save offer for %q: %w", p.name, err)
			}
		}
	}

	settings := core.NewRecord(settingsCol)
	settings.Set("company_name", "TradeOps General Trading LLC")
	settings.Set("address", "Jebel Ali Free Zone, Dubai, UAE")
	settings.Set("email", "sales@tradeops.example")
	settings.Set("phone", "+971 4 555 0100")
	settings.Set("currency", "USD")
	if err := app.Save(settings); err != nil {
		return fmt.Errorf("seed: save settings: %w", err)
	}

	log.Println("seed: done")
	return nil
}
