package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Recommendation types emitted by RecommendVendors.
const (
	RecommendBestPrice       = "best_price"
	RecommendBestValue       = "best_value"
	RecommendFastestDelivery = "fastest_delivery"
	RecommendMostReliable    = "most_reliable"
)

// Weights of the best_value blend.
const (
	valuePriceWeight       = 0.6
	valueReliabilityWeight = 0.4
)

// Recommendation is one scored vendor suggestion for a product.
type Recommendation struct {
	Type       string
	Offer      VendorOffer
	Score      float64
	Reason     string
	Savings    float64
	SavingsPct float64
}

// RecommendationSet is the full evaluation result for one product:
// the ranked recommendations plus summary statistics over the valid
// offers. All fields are zero when no valid offers exist.
type RecommendationSet struct {
	Recommendations []Recommendation
	LowestPrice     float64
	HighestPrice    float64
	AveragePrice    float64
	PriceRange      float64
	VendorCount     int
}

// RecommendOptions tunes the evaluation. The zero value matches the
// historical behavior.
type RecommendOptions struct {
	// StructuredDelivery compares delivery times by parsing a day
	// count out of the descriptor instead of the descriptor-length
	// heuristic. Descriptors that cannot be parsed fall back to the
	// heuristic and rank after parseable ones.
	StructuredDelivery bool
}

// RecommendVendors evaluates the current offers for one product and
// returns ranked recommendations using the default options.
func RecommendVendors(offers []VendorOffer, now time.Time) RecommendationSet {
	return RecommendVendorsWithOptions(offers, now, RecommendOptions{})
}

// RecommendVendorsWithOptions is RecommendVendors with explicit
// options. Expired offers are excluded up front; at most one
// recommendation per type is emitted and a later type that would pick
// an already recommended offer is suppressed.
func RecommendVendorsWithOptions(offers []VendorOffer, now time.Time, opts RecommendOptions) RecommendationSet {
	valid := FilterValidOffers(offers, now)
	if len(valid) == 0 {
		return RecommendationSet{}
	}

	set := RecommendationSet{
		LowestPrice:  valid[0].Price,
		HighestPrice: valid[0].Price,
	}
	var priceSum float64
	vendors := make(map[string]bool)
	for _, o := range valid {
		priceSum += o.Price
		if o.Price < set.LowestPrice {
			set.LowestPrice = o.Price
		}
		if o.Price > set.HighestPrice {
			set.HighestPrice = o.Price
		}
		vendors[o.VendorID] = true
	}
	set.AveragePrice = priceSum / float64(len(valid))
	set.PriceRange = set.HighestPrice - set.LowestPrice
	set.VendorCount = len(vendors)

	recommended := make(map[string]bool) // vendor IDs already picked

	// best_price: strictly lowest price, first encountered wins ties.
	best := valid[0]
	for _, o := range valid[1:] {
		if o.Price < best.Price {
			best = o
		}
	}
	bestPrice := Recommendation{
		Type:    RecommendBestPrice,
		Offer:   best,
		Score:   100,
		Savings: set.HighestPrice - best.Price,
	}
	if set.HighestPrice > 0 {
		bestPrice.SavingsPct = bestPrice.Savings / set.HighestPrice * 100
	}
	bestPrice.Reason = fmt.Sprintf(
		"%s offers the lowest price at %.2f, saving %.2f (%.1f%%) against the highest offer",
		best.VendorName, best.Price, bestPrice.Savings, bestPrice.SavingsPct,
	)
	set.Recommendations = append(set.Recommendations, bestPrice)
	recommended[best.VendorID] = true

	// best_value: price/reliability blend, suppressed when it lands on
	// the best_price offer anyway.
	valueOffer, valueScore := bestValueOffer(valid, set.LowestPrice, set.HighestPrice)
	if valueOffer.VendorID != best.VendorID {
		set.Recommendations = append(set.Recommendations, Recommendation{
			Type:  RecommendBestValue,
			Offer: valueOffer,
			Score: valueScore,
			Reason: fmt.Sprintf(
				"%s has the best price/reliability balance (%.1f/100 at reliability %d/5)",
				valueOffer.VendorName, valueScore, valueOffer.Reliability,
			),
		})
		recommended[valueOffer.VendorID] = true
	}

	// fastest_delivery: shortest delivery descriptor among offers that
	// expose one.
	if fastest, ok := fastestDeliveryOffer(valid, opts.StructuredDelivery); ok && !recommended[fastest.VendorID] {
		set.Recommendations = append(set.Recommendations, Recommendation{
			Type:  RecommendFastestDelivery,
			Offer: fastest,
			Score: 85,
			Reason: fmt.Sprintf(
				"%s promises the quickest delivery (%s)",
				fastest.VendorName, fastest.DeliveryTime,
			),
		})
		recommended[fastest.VendorID] = true
	}

	// most_reliable: highest reliability, only worth surfacing at 4+.
	reliable := valid[0]
	for _, o := range valid[1:] {
		if o.Reliability > reliable.Reliability {
			reliable = o
		}
	}
	if reliable.Reliability >= 4 && !recommended[reliable.VendorID] {
		set.Recommendations = append(set.Recommendations, Recommendation{
			Type:  RecommendMostReliable,
			Offer: reliable,
			Score: 90,
			Reason: fmt.Sprintf(
				"%s has the highest reliability rating (%d/5)",
				reliable.VendorName, reliable.Reliability,
			),
		})
	}

	sort.SliceStable(set.Recommendations, func(i, j int) bool {
		return set.Recommendations[i].Score > set.Recommendations[j].Score
	})

	return set
}

// bestValueOffer scores every offer as a weighted blend of normalized
// price and reliability and returns the winner. When all prices are
// equal every offer gets the full price score, so reliability decides.
func bestValueOffer(valid []VendorOffer, minPrice, maxPrice float64) (VendorOffer, float64) {
	best := valid[0]
	bestScore := -1.0
	for _, o := range valid {
		priceScore := 100.0
		if maxPrice > minPrice {
			priceScore = (maxPrice - o.Price) / (maxPrice - minPrice) * 100
		}
		reliabilityScore := float64(o.Reliability) / 5 * 100
		score := valuePriceWeight*priceScore + valueReliabilityWeight*reliabilityScore
		if score > bestScore {
			best = o
			bestScore = score
		}
	}
	return best, bestScore
}

// fastestDeliveryOffer picks the offer with the shortest delivery
// descriptor. The historical comparison is descriptor string length;
// structured mode parses a day count instead and only falls back to
// length for descriptors with no digits, ranking those last.
func fastestDeliveryOffer(valid []VendorOffer, structured bool) (VendorOffer, bool) {
	rank := func(o VendorOffer) (int, int) {
		if structured {
			if days, ok := parseDeliveryDays(o.DeliveryTime); ok {
				return 0, days
			}
			return 1, len(o.DeliveryTime)
		}
		return 0, len(o.DeliveryTime)
	}

	var best VendorOffer
	bestGroup, bestKey := 0, 0
	found := false
	for _, o := range valid {
		if o.DeliveryTime == "" {
			continue
		}
		group, key := rank(o)
		if !found || group < bestGroup || (group == bestGroup && key < bestKey) {
			best, bestGroup, bestKey = o, group, key
			found = true
		}
	}
	return best, found
}

// parseDeliveryDays extracts the largest number from a delivery
// descriptor, so "5-7 days" reads as 7 and "2 weeks" as 2. It is a
// best effort; descriptors without digits return ok=false.
func parseDeliveryDays(s string) (int, bool) {
	max, found := 0, false
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		if !found || n > max {
			max, found = n, true
		}
	}
	return max, found
}

// BestPriceForQuantity selects the cheapest valid offer whose minimum
// order quantity allows the requested quantity. ok=false means no
// offer is eligible; that is an empty result, not an error.
func BestPriceForQuantity(offers []VendorOffer, quantity int, now time.Time) (VendorOffer, bool) {
	var best VendorOffer
	found := false
	for _, o := range FilterValidOffers(offers, now) {
		if o.EffectiveMinimumQuantity() > quantity {
			continue
		}
		if !found || o.Price < best.Price {
			best = o
			found = true
		}
	}
	return best, found
}

// LineSelection is one quotation line with its currently selected
// offer and every current offer for the same product, used for
// portfolio optimization.
type LineSelection struct {
	LineID       string
	ProductID    string
	ProductName  string
	Quantity     int
	Current      VendorOffer
	Alternatives []VendorOffer
}

// Suggestion proposes swapping a line's vendor for a cheaper eligible
// one. Savings is the absolute amount saved over the line quantity;
// SavingsPct is measured against the current vendor's price.
type Suggestion struct {
	LineID      string
	ProductID   string
	ProductName string
	Quantity    int
	Current     VendorOffer
	Recommended VendorOffer
	Savings     float64
	SavingsPct  float64
}

// OptimizeSelections walks the quotation lines and emits a suggestion
// wherever a cheaper quantity-eligible offer exists, sorted descending
// by absolute savings. Lines with at most one known offer are skipped.
func OptimizeSelections(lines []LineSelection, now time.Time) []Suggestion {
	var suggestions []Suggestion
	for _, line := range lines {
		if len(line.Alternatives) <= 1 {
			continue
		}
		alt, ok := BestPriceForQuantity(line.Alternatives, line.Quantity, now)
		if !ok || alt.Price >= line.Current.Price {
			continue
		}
		s := Suggestion{
			LineID:      line.LineID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Current:     line.Current,
			Recommended: alt,
			Savings:     (line.Current.Price - alt.Price) * float64(line.Quantity),
		}
		if line.Current.Price > 0 {
			s.SavingsPct = (line.Current.Price - alt.Price) / line.Current.Price * 100
		}
		suggestions = append(suggestions, s)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Savings != b.Savings {
			return a.Savings > b.Savings
		}
		return a.LineID < b.LineID
	})
	return suggestions
}
