package services

import (
	"sort"
	"time"
)

// VarianceResult is the cross-vendor price spread for one product.
type VarianceResult struct {
	ProductID        string
	ProductName      string
	OfferCount       int
	MinPrice         float64
	MaxPrice         float64
	CheapestVendor   string
	PriciestVendor   string
	VariancePct      float64
	PotentialSavings float64
}

// PortfolioVariance is the portfolio-wide variance report. Products is
// sorted descending by variance percentage so the biggest price
// discrepancies come first.
type PortfolioVariance struct {
	Products              []VarianceResult
	AverageVariancePct    float64
	TotalPotentialSavings float64
}

// PriceVariance computes the price spread across a product's valid
// offers. Products with fewer than two valid offers are not comparable
// and return ok=false.
func PriceVariance(p ProductOffers, now time.Time) (VarianceResult, bool) {
	valid := FilterValidOffers(p.Offers, now)
	if len(valid) < 2 {
		return VarianceResult{}, false
	}

	cheapest, priciest := valid[0], valid[0]
	for _, o := range valid[1:] {
		if o.Price < cheapest.Price {
			cheapest = o
		}
		if o.Price > priciest.Price {
			priciest = o
		}
	}

	result := VarianceResult{
		ProductID:        p.ProductID,
		ProductName:      p.ProductName,
		OfferCount:       len(valid),
		MinPrice:         cheapest.Price,
		MaxPrice:         priciest.Price,
		CheapestVendor:   cheapest.VendorName,
		PriciestVendor:   priciest.VendorName,
		PotentialSavings: priciest.Price - cheapest.Price,
	}
	if cheapest.Price > 0 {
		result.VariancePct = (priciest.Price - cheapest.Price) / cheapest.Price * 100
	}
	return result, true
}

// AnalyzePortfolio applies PriceVariance across many products, drops
// results below the minimum variance threshold and aggregates the
// remainder.
func AnalyzePortfolio(products []ProductOffers, minVariancePct float64, now time.Time) PortfolioVariance {
	var report PortfolioVariance
	var varianceSum float64

	for _, p := range products {
		result, ok := PriceVariance(p, now)
		if !ok || result.VariancePct < minVariancePct {
			continue
		}
		report.Products = append(report.Products, result)
		varianceSum += result.VariancePct
		report.TotalPotentialSavings += result.PotentialSavings
	}

	if len(report.Products) > 0 {
		report.AverageVariancePct = varianceSum / float64(len(report.Products))
	}

	sort.SliceStable(report.Products, func(i, j int) bool {
		a, b := report.Products[i], report.Products[j]
		if a.VariancePct != b.VariancePct {
			return a.VariancePct > b.VariancePct
		}
		return a.ProductID < b.ProductID
	})

	return report
}
