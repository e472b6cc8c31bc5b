package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/cache"
	"tradeops/collections"
	"tradeops/handlers"
)

// newPriceCache picks the analytics cache backend. With REDIS_ADDR set and
// reachable it is Redis, otherwise an in-process map.
func newPriceCache() cache.PriceCache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return cache.NewMemoryCache()
	}
	rc := cache.NewRedisCache(addr)
	if err := rc.Ping(); err != nil {
		log.Printf("redis at %s unreachable, using in-memory cache: %v", addr, err)
		return cache.NewMemoryCache()
	}
	log.Printf("analytics cache: redis at %s", addr)
	return rc
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	app := pocketbase.New()
	pc := newPriceCache()

	// Create collections, seed data and run migrations on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateOfferMinimumQuantities(app); err != nil {
			log.Printf("Warning: offer migration failed: %v", err)
		}
		if err := collections.MigrateQuotationDiscountTypes(app); err != nil {
			log.Printf("Warning: quotation migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.ActorMiddleware())

		// ── Vendor CRUD ──────────────────────────────────────────
		se.Router.GET("/api/vendors", handlers.HandleVendorList(app))
		se.Router.POST("/api/vendors", handlers.HandleVendorCreate(app))
		se.Router.GET("/api/vendors/{id}", handlers.HandleVendorView(app))
		se.Router.PUT("/api/vendors/{id}", handlers.HandleVendorUpdate(app))
		se.Router.DELETE("/api/vendors/{id}", handlers.HandleVendorDelete(app))

		// ── Product CRUD ─────────────────────────────────────────
		se.Router.GET("/api/products", handlers.HandleProductList(app))
		se.Router.POST("/api/products", handlers.HandleProductCreate(app))
		se.Router.GET("/api/products/{id}", handlers.HandleProductView(app))
		se.Router.PUT("/api/products/{id}", handlers.HandleProductUpdate(app))
		se.Router.DELETE("/api/products/{id}", handlers.HandleProductDelete(app))

		// ── Offers ───────────────────────────────────────────────
		se.Router.GET("/api/products/{productId}/offers", handlers.HandleOfferList(app))
		se.Router.POST("/api/products/{productId}/offers", handlers.HandleOfferCreate(app, pc))
		se.Router.POST("/api/offers/{id}/revise", handlers.HandleOfferRevise(app, pc))
		se.Router.DELETE("/api/offers/{id}", handlers.HandleOfferDelete(app, pc))

		// ── Pricing engine ───────────────────────────────────────
		se.Router.GET("/api/products/{id}/recommendations", handlers.HandleProductRecommendations(app))
		se.Router.GET("/api/products/{id}/offers/analysis", handlers.HandleProductOfferAnalysis(app))
		se.Router.GET("/api/analytics/prices", handlers.HandleAnalyticsPrices(app, pc))
		se.Router.GET("/api/analytics/variance", handlers.HandleAnalyticsVariance(app, pc))
		se.Router.GET("/api/analytics/prices/excel", handlers.HandleAnalyticsPricesExcel(app))

		// ── Quotations ───────────────────────────────────────────
		se.Router.GET("/api/quotations", handlers.HandleQuotationList(app))
		se.Router.POST("/api/quotations", handlers.HandleQuotationCreate(app))
		se.Router.GET("/api/quotations/{id}", handlers.HandleQuotationView(app))
		se.Router.PUT("/api/quotations/{id}", handlers.HandleQuotationUpdate(app))
		se.Router.DELETE("/api/quotations/{id}", handlers.HandleQuotationDelete(app))
		se.Router.PUT("/api/quotations/{id}/items", handlers.HandleQuotationItemsReplace(app))
		se.Router.POST("/api/quotations/{id}/optimize", handlers.HandleQuotationOptimize(app))
		se.Router.POST("/api/quotations/{id}/invoice", handlers.HandleQuotationToInvoice(app))
		se.Router.GET("/api/quotations/{id}/pdf", handlers.HandleQuotationExportPDF(app))

		// ── Invoices ─────────────────────────────────────────────
		se.Router.GET("/api/invoices", handlers.HandleInvoiceList(app))
		se.Router.GET("/api/invoices/{id}", handlers.HandleInvoiceView(app))
		se.Router.PATCH("/api/invoices/{id}/payment", handlers.HandleInvoicePaymentUpdate(app))
		se.Router.POST("/api/invoices/{id}/delivery-note", handlers.HandleInvoiceToDeliveryNote(app))
		se.Router.GET("/api/invoices/{id}/pdf", handlers.HandleInvoiceExportPDF(app))

		// ── Delivery notes ───────────────────────────────────────
		se.Router.GET("/api/delivery-notes", handlers.HandleDeliveryNoteList(app))
		se.Router.GET("/api/delivery-notes/{id}", handlers.HandleDeliveryNoteView(app))
		se.Router.PATCH("/api/delivery-notes/{id}/status", handlers.HandleDeliveryNoteStatus(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
