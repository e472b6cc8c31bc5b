package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateQuotationPDF renders a quotation document using maroto/v2
// and returns the raw PDF bytes.
func GenerateQuotationPDF(data *DocumentExportData) ([]byte, error) {
	data.Title = "QUOTATION"
	return generateDocumentPDF(data)
}

// GenerateInvoicePDF renders an invoice document.
func GenerateInvoicePDF(data *DocumentExportData) ([]byte, error) {
	data.Title = "INVOICE"
	return generateDocumentPDF(data)
}

func generateDocumentPDF(data *DocumentExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addDocumentHeader(m, data)
	addClientBlock(m, data)
	addLineItemsTable(m, data)
	addDocumentTotals(m, data)
	addAmountInWords(m, data)
	addDocumentNotes(m, data)
	addSignatureBlock(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s PDF: %w", data.Title, err)
	}

	return doc.GetBytes(), nil
}

// addDocumentHeader adds the company identity on the left and the
// document title, number and dates on the right.
func addDocumentHeader(m core.Maroto, data *DocumentExportData) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New(data.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	contact := data.CompanyAddress
	if data.CompanyEmail != "" {
		contact = fmt.Sprintf("%s | %s", contact, data.CompanyEmail)
	}
	if data.CompanyPhone != "" {
		contact = fmt.Sprintf("%s | %s", contact, data.CompanyPhone)
	}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(contact, props.Text{
					Size:  8,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("No: %s", data.Number), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
	)

	meta := fmt.Sprintf("Date: %s", data.IssueDate)
	if data.ValidUntil != "" {
		meta += fmt.Sprintf("  |  Valid until: %s", data.ValidUntil)
	}
	if data.DueDate != "" {
		meta += fmt.Sprintf("  |  Due: %s", data.DueDate)
	}
	if data.QuotationRef != "" {
		meta += fmt.Sprintf("  |  Ref: %s", data.QuotationRef)
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(meta, props.Text{
					Size:  8,
					Align: align.Right,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addClientBlock adds the billed-to client details.
func addClientBlock(m core.Maroto, data *DocumentExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	boldValue := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}

	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(text.New("BILLED TO", labelStyle)),
		),
		row.New(6).Add(
			col.New(12).Add(text.New(data.Client.Name, boldValue)),
		),
	)
	if data.Client.Address != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(text.New(data.Client.Address, valueStyle)),
			),
		)
	}

	contactLine := ""
	if data.Client.ContactName != "" {
		contactLine = "Attn: " + data.Client.ContactName
	}
	if data.Client.Phone != "" {
		if contactLine != "" {
			contactLine += "  |  "
		}
		contactLine += data.Client.Phone
	}
	if data.Client.Email != "" {
		if contactLine != "" {
			contactLine += "  |  "
		}
		contactLine += data.Client.Email
	}
	if contactLine != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(contactLine, valueStyle)),
			),
		)
	}
	if data.Client.TaxID != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New("Tax ID: "+data.Client.TaxID, valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addLineItemsTable adds the line item table with header and body rows.
func addLineItemsTable(m core.Maroto, data *DocumentExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("SI No", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, item := range data.LineItems {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		colSINo := col.New(1).Add(text.New(fmt.Sprintf("%d", item.SINo), bodyText))
		colDesc := col.New(5).Add(text.New(item.Description, bodyTextLeft))
		colQty := col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), bodyTextRight))
		colUnit := col.New(1).Add(text.New(item.Unit, bodyText))
		colPrice := col.New(2).Add(text.New(FormatMoney(data.Currency, item.UnitPrice), bodyTextRight))
		colTotal := col.New(2).Add(text.New(FormatMoney(data.Currency, item.LineTotal), bodyTextRight))

		if cellStyle != nil {
			colSINo = colSINo.WithStyle(cellStyle)
			colDesc = colDesc.WithStyle(cellStyle)
			colQty = colQty.WithStyle(cellStyle)
			colUnit = colUnit.WithStyle(cellStyle)
			colPrice = colPrice.WithStyle(cellStyle)
			colTotal = colTotal.WithStyle(cellStyle)
		}

		m.AddRows(
			row.New(7).Add(colSINo, colDesc, colQty, colUnit, colPrice, colTotal),
		)
	}

	m.AddRows(row.New(2))
}

// addDocumentTotals adds the right-aligned totals block in derivation
// order: subtotal, discount, tax, transportation, grand total.
func addDocumentTotals(m core.Maroto, data *DocumentExportData) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	addTotalRow := func(label, value string, grand bool) {
		style := valueStyle
		lstyle := labelStyle
		if grand {
			style = grandStyle
			lstyle = grandStyle
		}
		m.AddRows(
			row.New(7).Add(
				col.New(9).Add(text.New(label, lstyle)).WithStyle(summaryCell),
				col.New(3).Add(text.New(value, style)).WithStyle(summaryCell),
			),
		)
	}

	addTotalRow("Subtotal", FormatMoney(data.Currency, data.Totals.Subtotal), false)

	if data.Totals.DiscountAmount > 0 {
		label := "Discount"
		if data.DiscountType == DiscountPercentage {
			label = fmt.Sprintf("Discount (%.1f%%)", data.Discount)
		}
		addTotalRow(label, "-"+FormatMoney(data.Currency, data.Totals.DiscountAmount), false)
	}

	if data.Totals.TaxAmount > 0 {
		addTotalRow(fmt.Sprintf("Tax (%.1f%%)", data.TaxRate),
			FormatMoney(data.Currency, data.Totals.TaxAmount), false)
	}

	if data.Totals.TransportationCost > 0 {
		addTotalRow("Transportation", FormatMoney(data.Currency, data.Totals.TransportationCost), false)
	}

	addTotalRow("Grand Total", FormatMoney(data.Currency, data.Totals.GrandTotal), true)

	m.AddRows(row.New(2))
}

// addAmountInWords prints the grand total in words.
func addAmountInWords(m core.Maroto, data *DocumentExportData) {
	if data.AmountInWords == "" {
		return
	}
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New("Amount in words: "+data.AmountInWords, props.Text{
					Size:  8,
					Style: fontstyle.Italic,
					Align: align.Left,
				}),
			),
		),
		row.New(2),
	)
}

// addDocumentNotes prints free-form notes when present.
func addDocumentNotes(m core.Maroto, data *DocumentExportData) {
	if data.Notes == "" {
		return
	}
	m.AddRows(
		row.New(5).Add(
			col.New(12).Add(
				text.New("NOTES", props.Text{
					Size:  7,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 100, Green: 100, Blue: 100},
				}),
			),
		),
		row.New(7).Add(
			col.New(12).Add(
				text.New(data.Notes, props.Text{Size: 8, Align: align.Left}),
			),
		),
		row.New(2),
	)
}

// addSignatureBlock adds signature lines for both parties.
func addSignatureBlock(m core.Maroto, data *DocumentExportData) {
	m.AddRows(row.New(12))
	sigStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	m.AddRows(
		row.New(7).Add(
			col.New(5).Add(text.New("_________________________", sigStyle)),
			col.New(2),
			col.New(5).Add(text.New("_________________________", sigStyle)),
		),
		row.New(5).Add(
			col.New(5).Add(text.New("For "+data.CompanyName, sigStyle)),
			col.New(2),
			col.New(5).Add(text.New("Client Acceptance", sigStyle)),
		),
	)
}
