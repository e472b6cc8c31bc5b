package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"tradeops/cache"
	"tradeops/services"
)

// defaultMinVariancePct is the variance threshold applied when the caller
// does not ask for one. Spreads below it are routine price noise.
const defaultMinVariancePct = 10.0

func analyticsVarianceCacheKey(minVariancePct float64) string {
	return fmt.Sprintf("analytics:variance:%g", minVariancePct)
}

func varianceReportJSON(report services.PortfolioVariance) map[string]any {
	products := make([]map[string]any, 0, len(report.Products))
	for _, p := range report.Products {
		products = append(products, map[string]any{
			"product_id":        p.ProductID,
			"product_name":      p.ProductName,
			"offer_count":       p.OfferCount,
			"min_price":         p.MinPrice,
			"max_price":         p.MaxPrice,
			"cheapest_vendor":   p.CheapestVendor,
			"priciest_vendor":   p.PriciestVendor,
			"variance_pct":      p.VariancePct,
			"potential_savings": p.PotentialSavings,
		})
	}
	return map[string]any{
		"products":                products,
		"average_variance_pct":    report.AverageVariancePct,
		"total_potential_savings": report.TotalPotentialSavings,
	}
}

// HandleAnalyticsVariance reports cross-vendor price variance across the
// whole catalog, highest spread first.
func HandleAnalyticsVariance(app *pocketbase.PocketBase, pc cache.PriceCache) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		minVariancePct := defaultMinVariancePct
		if raw := e.Request.URL.Query().Get("min_variance"); raw != "" {
			parsed, err := strconv.ParseFloat(raw, 64)
			if err != nil || parsed < 0 {
				return apiError(e, http.StatusBadRequest, "Invalid min_variance")
			}
			minVariancePct = parsed
		}

		key := analyticsVarianceCacheKey(minVariancePct)
		if pc != nil {
			if cached, ok := pc.Get(key); ok {
				e.Response.Header().Set("Content-Type", "application/json")
				e.Response.WriteHeader(http.StatusOK)
				_, err := e.Response.Write([]byte(cached))
				return err
			}
		}

		products, err := loadAllProductOffers(app, "", "", "")
		if err != nil {
			log.Printf("analytics_variance: %v", err)
			return apiError(e, http.StatusInternalServerError, "Something went wrong")
		}

		report := services.AnalyzePortfolio(products, minVariancePct, time.Now())
		resp := varianceReportJSON(report)

		if pc != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := pc.Set(key, string(data), cache.DefaultTTL); err != nil {
					log.Printf("analytics_variance: cache set failed: %v", err)
				}
			}
		}

		return e.JSON(http.StatusOK, resp)
	}
}
