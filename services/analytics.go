package services

import (
	"sort"
	"time"
)

// ProductOffers groups the current offers for a single product. It is
// the unit of input for the analytics and variance functions.
type ProductOffers struct {
	ProductID   string
	ProductName string
	Category    string
	Offers      []VendorOffer
}

// VendorPriceStats summarizes one vendor's contribution to a price
// analysis.
type VendorPriceStats struct {
	VendorID     string
	VendorName   string
	OfferCount   int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
}

// PriceSummary is the aggregate result of a price analysis pass.
// Vendors is sorted ascending by average price so the cheapest vendor
// comes first.
type PriceSummary struct {
	ProductCount int
	VendorCount  int
	OfferCount   int
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
	Vendors      []VendorPriceStats
}

// SummarizePrices reduces the valid offers across the given products
// into summary statistics and a per-vendor comparison table. Expired
// offers are ignored. An empty or fully expired input yields zero
// counts and an empty table.
func SummarizePrices(products []ProductOffers, now time.Time) PriceSummary {
	var summary PriceSummary

	type vendorAcc struct {
		stats VendorPriceStats
		sum   float64
	}
	vendorIndex := make(map[string]int)
	var vendors []*vendorAcc

	var priceSum float64
	productsSeen := make(map[string]bool)

	for _, p := range products {
		for _, o := range FilterValidOffers(p.Offers, now) {
			summary.OfferCount++
			priceSum += o.Price
			if !productsSeen[p.ProductID] {
				productsSeen[p.ProductID] = true
				summary.ProductCount++
			}

			if summary.OfferCount == 1 || o.Price < summary.MinPrice {
				summary.MinPrice = o.Price
			}
			if summary.OfferCount == 1 || o.Price > summary.MaxPrice {
				summary.MaxPrice = o.Price
			}

			i, seen := vendorIndex[o.VendorID]
			if !seen {
				i = len(vendors)
				vendorIndex[o.VendorID] = i
				vendors = append(vendors, &vendorAcc{stats: VendorPriceStats{
					VendorID:   o.VendorID,
					VendorName: o.VendorName,
					MinPrice:   o.Price,
					MaxPrice:   o.Price,
				}})
			}
			acc := vendors[i]
			acc.stats.OfferCount++
			acc.sum += o.Price
			if o.Price < acc.stats.MinPrice {
				acc.stats.MinPrice = o.Price
			}
			if o.Price > acc.stats.MaxPrice {
				acc.stats.MaxPrice = o.Price
			}
		}
	}

	if summary.OfferCount == 0 {
		return summary
	}

	summary.AveragePrice = priceSum / float64(summary.OfferCount)
	summary.VendorCount = len(vendors)

	summary.Vendors = make([]VendorPriceStats, len(vendors))
	for i, acc := range vendors {
		acc.stats.AveragePrice = acc.sum / float64(acc.stats.OfferCount)
		summary.Vendors[i] = acc.stats
	}
	sort.SliceStable(summary.Vendors, func(i, j int) bool {
		a, b := summary.Vendors[i], summary.Vendors[j]
		if a.AveragePrice != b.AveragePrice {
			return a.AveragePrice < b.AveragePrice
		}
		return a.VendorID < b.VendorID
	})

	return summary
}
