package entity

// DocketHeader holds the property header printed at the top of a docket.
type DocketHeader struct {
	PropertyName string `json:"property_name"`
	UnitName     string `json:"unit_name,omitempty"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

// DocketItem represents a single charge line on a docket.
type DocketItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// DocketTax is a tax amount shown on a docket. Only rules flagged visible on
// receipt appear; non-service-charge kinds are folded into the VAT bucket.
type DocketTax struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// DocketBank is a settlement instruction printed on folio/proforma documents.
type DocketBank struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
}

// Docket is a value object representing a printable settlement document.
// It is NOT a database entity - it is composed from a transaction plus the
// current settings snapshot at print time.
type Docket struct {
	Header    DocketHeader `json:"header"`
	Reference string       `json:"reference"`
	Kind      string       `json:"kind"` // POS, Folio, Proforma
	Date      string       `json:"date"`
	Cashier   string       `json:"cashier,omitempty"`
	Guest     string       `json:"guest,omitempty"`
	Stay      string       `json:"stay,omitempty"`
	Items     []DocketItem `json:"items"`
	SubTotal  float64      `json:"sub_total"`
	Discount  float64      `json:"discount"`
	Taxes     []DocketTax  `json:"taxes,omitempty"`
	Total     float64      `json:"total"`
	Paid      float64      `json:"paid"`
	Balance   float64      `json:"balance"`
	Banks     []DocketBank `json:"banks,omitempty"`
	Footer    string       `json:"footer,omitempty"`
}
