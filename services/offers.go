// Package services provides the pricing, analytics and quotation
// calculation functions for the trading backend. Everything in this
// package is pure computation: callers fetch the records, hand them in
// together with the evaluation instant, and persist whatever comes out.
package services

import (
	"fmt"
	"time"
)

// VendorOffer is one vendor's price commitment for one product.
// Revisions supersede each other; callers pass at most one current
// offer per vendor when comparing.
type VendorOffer struct {
	VendorID        string
	VendorName      string
	Reliability     int // 1-5
	Price           float64
	Currency        string
	ValidUntil      time.Time
	MinimumQuantity int // 0 is treated as 1
	DeliveryTime    string
	LastUpdated     time.Time
}

// ValidAt reports whether the offer can still be acted on at the given
// instant. ValidUntil must be strictly in the future.
func (o VendorOffer) ValidAt(now time.Time) bool {
	return o.ValidUntil.After(now)
}

// EffectiveMinimumQuantity returns the minimum order quantity with the
// default of 1 applied.
func (o VendorOffer) EffectiveMinimumQuantity() int {
	if o.MinimumQuantity < 1 {
		return 1
	}
	return o.MinimumQuantity
}

// ValidateOffer checks the numeric fields of an offer before it is
// stored or evaluated.
func ValidateOffer(o VendorOffer) error {
	if o.Price < 0 {
		return fmt.Errorf("offer price must not be negative, got %v", o.Price)
	}
	if o.Reliability < 1 || o.Reliability > 5 {
		return fmt.Errorf("reliability must be between 1 and 5, got %d", o.Reliability)
	}
	if o.MinimumQuantity < 0 {
		return fmt.Errorf("minimum quantity must not be negative, got %d", o.MinimumQuantity)
	}
	return nil
}

// FilterValidOffers returns the offers still valid at the given
// instant, preserving input order.
func FilterValidOffers(offers []VendorOffer, now time.Time) []VendorOffer {
	var valid []VendorOffer
	for _, o := range offers {
		if o.ValidAt(now) {
			valid = append(valid, o)
		}
	}
	return valid
}

// LatestPerVendor reduces a revision history to the current offer per
// vendor: the one with the newest LastUpdated wins, later input
// position breaking exact timestamp ties. Order of first appearance
// per vendor is preserved so repeated calls stay deterministic.
func LatestPerVendor(offers []VendorOffer) []VendorOffer {
	index := make(map[string]int)
	var current []VendorOffer
	for _, o := range offers {
		i, seen := index[o.VendorID]
		if !seen {
			index[o.VendorID] = len(current)
			current = append(current, o)
			continue
		}
		if !o.LastUpdated.Before(current[i].LastUpdated) {
			current[i] = o
		}
	}
	return current
}

// ReplaceVendorOffer returns a new offer list with the entry for the
// revised offer's vendor replaced. If the vendor has no entry yet the
// revision is appended. The input slice is never mutated; the caller
// owns persistence of the result.
func ReplaceVendorOffer(offers []VendorOffer, revised VendorOffer) []VendorOffer {
	out := make([]VendorOffer, 0, len(offers)+1)
	replaced := false
	for _, o := range offers {
		if o.VendorID == revised.VendorID {
			out = append(out, revised)
			replaced = true
			continue
		}
		out = append(out, o)
	}
	if !replaced {
		out = append(out, revised)
	}
	return out
}
