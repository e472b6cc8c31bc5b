package services

// ComparisonExportData holds everything needed to render a vendor
// price-comparison workbook.
type ComparisonExportData struct {
	Title       string
	Scope       string // human description of the applied filter
	GeneratedAt string
	Currency    string
	Summary     PriceSummary
	Variance    PortfolioVariance
}

// DocumentClient is the client block on a printed quotation or invoice.
type DocumentClient struct {
	Name        string
	Address     string // formatted multi-line
	ContactName string
	Phone       string
	Email       string
	TaxID       string
}

// DocumentLineItem is one row of the printed line item table.
type DocumentLineItem struct {
	SINo        int
	Description string
	Quantity    int
	Unit        string
	UnitPrice   float64
	LineTotal   float64
}

// DocumentExportData holds all data needed to generate a quotation or
// invoice PDF. Totals are always the output of CalculateQuotation on
// the document's current line items, never stored figures.
type DocumentExportData struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string

	Title        string // "QUOTATION" or "INVOICE"
	Number       string
	IssueDate    string
	ValidUntil   string // quotations
	DueDate      string // invoices
	QuotationRef string // invoices converted from a quotation
	Status       string

	Client   DocumentClient
	Currency string

	LineItems []DocumentLineItem

	Discount     float64
	DiscountType DiscountType
	TaxRate      float64
	Totals       QuotationTotals

	AmountInWords string
	Notes         string
}
