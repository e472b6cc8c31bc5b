package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GeneratePriceComparisonExcel creates a vendor price-comparison
// workbook from a completed analytics pass and returns the file
// contents as a byte slice.
func GeneratePriceComparisonExcel(data ComparisonExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 chars by the format.
	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Price Comparison"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E"}
	lastCol := columns[len(columns)-1]

	widths := []float64{30, 12, 16, 16, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create cell style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	valueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create value style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if data.Scope != "" {
		if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge scope: %w", err)
		}
		f.SetCellValue(sheetName, "A2", "Scope: "+sanitizeExcelCell(data.Scope))
		f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A3", "Generated: "+data.GeneratedAt)
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Summary block ───────────────────────────────────────────────────

	summary := []struct {
		label string
		value string
	}{
		{"Products compared:", fmt.Sprintf("%d", data.Summary.ProductCount)},
		{"Vendors:", fmt.Sprintf("%d", data.Summary.VendorCount)},
		{"Offers:", fmt.Sprintf("%d", data.Summary.OfferCount)},
		{"Average price:", FormatMoney(data.Currency, data.Summary.AveragePrice)},
		{"Lowest price:", FormatMoney(data.Currency, data.Summary.MinPrice)},
		{"Highest price:", FormatMoney(data.Currency, data.Summary.MaxPrice)},
	}

	row := 5
	for _, s := range summary {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, s.label)
		f.SetCellStyle(sheetName, "A"+rowStr, "A"+rowStr, labelStyle)
		f.SetCellValue(sheetName, "B"+rowStr, s.value)
		f.SetCellStyle(sheetName, "B"+rowStr, "B"+rowStr, valueStyle)
		row++
	}
	row++

	// ── Vendor comparison table ─────────────────────────────────────────

	headers := []string{"Vendor", "Offers", "Average", "Lowest", "Highest"}
	headerRow := fmt.Sprintf("%d", row)
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+headerRow, h)
	}
	f.SetCellStyle(sheetName, "A"+headerRow, lastCol+headerRow, headerStyle)
	row++

	for _, v := range data.Summary.Vendors {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(v.VendorName))
		f.SetCellValue(sheetName, "B"+rowStr, v.OfferCount)
		f.SetCellValue(sheetName, "C"+rowStr, FormatMoney(data.Currency, v.AveragePrice))
		f.SetCellValue(sheetName, "D"+rowStr, FormatMoney(data.Currency, v.MinPrice))
		f.SetCellValue(sheetName, "E"+rowStr, FormatMoney(data.Currency, v.MaxPrice))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, cellStyle)
		row++
	}

	// ── Variance table (only when the caller supplied one) ──────────────

	if len(data.Variance.Products) > 0 {
		row++
		headerRow = fmt.Sprintf("%d", row)
		varianceHeaders := []string{"Product", "Offers", "Variance %", "Cheapest", "Savings"}
		for i, h := range varianceHeaders {
			f.SetCellValue(sheetName, columns[i]+headerRow, h)
		}
		f.SetCellStyle(sheetName, "A"+headerRow, lastCol+headerRow, headerStyle)
		row++

		for _, p := range data.Variance.Products {
			rowStr := fmt.Sprintf("%d", row)
			f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(p.ProductName))
			f.SetCellValue(sheetName, "B"+rowStr, p.OfferCount)
			f.SetCellValue(sheetName, "C"+rowStr, fmt.Sprintf("%.1f%%", p.VariancePct))
			f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(p.CheapestVendor))
			f.SetCellValue(sheetName, "E"+rowStr, FormatMoney(data.Currency, p.PotentialSavings))
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, cellStyle)
			row++
		}

		rowStr := fmt.Sprintf("%d", row+1)
		f.SetCellValue(sheetName, "D"+rowStr, "Total potential savings:")
		f.SetCellStyle(sheetName, "D"+rowStr, "D"+rowStr, labelStyle)
		f.SetCellValue(sheetName, "E"+rowStr, FormatMoney(data.Currency, data.Variance.TotalPotentialSavings))
		f.SetCellStyle(sheetName, "E"+rowStr, "E"+rowStr, valueStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
