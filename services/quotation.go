package services

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountType selects how the quotation discount value is read.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// LineItem is one priced product line of a quotation or invoice.
type LineItem struct {
	ProductID    string
	Description  string
	Quantity     int
	Unit         string
	VendorCost   float64
	SellingPrice float64
}

// LineTotals holds the derived figures of a single line. Margin is
// profit over cost; a zero-cost line has margin 0 by definition.
type LineTotals struct {
	LineTotal  float64
	LineCost   float64
	LineProfit float64
	MarginPct  float64
}

// QuotationTotals is the full financial result for a document. Every
// field derives from the inputs of CalculateQuotation; nothing here is
// ever patched incrementally.
type QuotationTotals struct {
	Subtotal           float64
	DiscountAmount     float64
	AfterDiscount      float64
	TaxAmount          float64
	TransportationCost float64
	GrandTotal         float64

	TotalCost   float64
	TotalProfit float64
	ProfitPct   float64

	Lines []LineTotals
}

// CalcLineItem derives the totals for a single line item, rounded to
// two decimal places.
func CalcLineItem(item LineItem) LineTotals {
	qty := decimal.NewFromInt(int64(item.Quantity))
	lineTotal := decimal.NewFromFloat(item.SellingPrice).Mul(qty).Round(2)
	lineCost := decimal.NewFromFloat(item.VendorCost).Mul(qty).Round(2)
	lineProfit := lineTotal.Sub(lineCost)

	totals := LineTotals{
		LineTotal:  lineTotal.InexactFloat64(),
		LineCost:   lineCost.InexactFloat64(),
		LineProfit: lineProfit.InexactFloat64(),
	}
	if lineCost.IsPositive() {
		totals.MarginPct = lineProfit.Div(lineCost).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return totals
}

// CalculateQuotation derives the complete financial result for a set
// of line items and policy inputs. The derivation order is fixed:
// subtotal, discount, tax on the discounted subtotal (transportation
// is never taxed), then grand total. Invoices built from a quotation
// rerun this function on the copied inputs so their totals stay
// independently reproducible.
func CalculateQuotation(items []LineItem, discount float64, discountType DiscountType, transportationCost, taxRate float64) (QuotationTotals, error) {
	if discount < 0 {
		return QuotationTotals{}, fmt.Errorf("discount must not be negative, got %v", discount)
	}
	if transportationCost < 0 {
		return QuotationTotals{}, fmt.Errorf("transportation cost must not be negative, got %v", transportationCost)
	}
	if taxRate < 0 {
		return QuotationTotals{}, fmt.Errorf("tax rate must not be negative, got %v", taxRate)
	}
	if discountType != DiscountPercentage && discountType != DiscountFixed {
		return QuotationTotals{}, fmt.Errorf("unknown discount type %q", discountType)
	}

	hundred := decimal.NewFromInt(100)

	subtotal := decimal.Zero
	totalCost := decimal.Zero
	totals := QuotationTotals{Lines: make([]LineTotals, 0, len(items))}

	for i, item := range items {
		if item.Quantity <= 0 {
			return QuotationTotals{}, fmt.Errorf("line %d: quantity must be positive, got %d", i+1, item.Quantity)
		}
		if item.SellingPrice < 0 {
			return QuotationTotals{}, fmt.Errorf("line %d: selling price must not be negative, got %v", i+1, item.SellingPrice)
		}
		if item.VendorCost < 0 {
			return QuotationTotals{}, fmt.Errorf("line %d: vendor cost must not be negative, got %v", i+1, item.VendorCost)
		}

		line := CalcLineItem(item)
		totals.Lines = append(totals.Lines, line)
		subtotal = subtotal.Add(decimal.NewFromFloat(line.LineTotal))
		totalCost = totalCost.Add(decimal.NewFromFloat(line.LineCost))
	}

	discountAmount := decimal.NewFromFloat(discount)
	if discountType == DiscountPercentage {
		discountAmount = subtotal.Mul(decimal.NewFromFloat(discount)).Div(hundred)
	}
	discountAmount = discountAmount.Round(2)

	afterDiscount := subtotal.Sub(discountAmount)
	taxAmount := afterDiscount.Mul(decimal.NewFromFloat(taxRate)).Div(hundred).Round(2)
	transport := decimal.NewFromFloat(transportationCost).Round(2)
	grandTotal := afterDiscount.Add(transport).Add(taxAmount)

	totalProfit := grandTotal.Sub(totalCost)

	totals.Subtotal = subtotal.InexactFloat64()
	totals.DiscountAmount = discountAmount.InexactFloat64()
	totals.AfterDiscount = afterDiscount.InexactFloat64()
	totals.TaxAmount = taxAmount.InexactFloat64()
	totals.TransportationCost = transport.InexactFloat64()
	totals.GrandTotal = grandTotal.InexactFloat64()
	totals.TotalCost = totalCost.InexactFloat64()
	totals.TotalProfit = totalProfit.InexactFloat64()
	if totalCost.IsPositive() {
		totals.ProfitPct = totalProfit.Div(totalCost).Mul(hundred).Round(2).InexactFloat64()
	}

	return totals, nil
}
