package models

// Quotation is one equipment-pricing row. Numeric fields are pointers so a
// NULL column survives a round trip instead of turning into 0.
type Quotation struct {
	ID                int64    `json:"id"`
	SerialNo          string   `json:"serial_no"`
	ItemName          string   `json:"item_name"`
	SpecModel         string   `json:"spec_model"`
	Description       string   `json:"description"`
	Brand             string   `json:"brand"`
	Unit              string   `json:"unit"`
	Quantity          *float64 `json:"quantity"`
	QuotedBrand       string   `json:"quoted_brand"`
	Model             string   `json:"model"`
	UnitPrice         *float64 `json:"unit_price"`
	EquipmentSubtotal *float64 `json:"equipment_subtotal"`
	LaborUnitPrice    *float64 `json:"labor_unit_price"`
	LaborSubtotal     *float64 `json:"labor_subtotal"`
	CombinedTotal     *float64 `json:"combined_total"`
	Currency          string   `json:"currency"`
	Warranty          string   `json:"warranty"`
	LeadTime          string   `json:"lead_time"`
	Remarks           string   `json:"remarks"`
	Inquirer          string   `json:"inquirer"`
	Project           string   `json:"project"`
	Supplier          string   `json:"supplier"`
	InquiryDate       string   `json:"inquiry_date"`
	EnteredBy         string   `json:"entered_by"`
	Region            string   `json:"region"`
}

// ManualQuotationRequest is the hand-entry form. The required set follows the
// entry form, not the import validator: brand is mandatory here.
type ManualQuotationRequest struct {
	Project     string  `json:"project" binding:"required"`
	Supplier    string  `json:"supplier" binding:"required"`
	Inquirer    string  `json:"inquirer" binding:"required"`
	ItemName    string  `json:"item_name" binding:"required"`
	Brand       string  `json:"brand" binding:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Currency    string  `json:"currency" binding:"required"`
	Description string  `json:"description"`
	InquiryDate string  `json:"inquiry_date" binding:"required"`
}

// QuotationFilter carries the search selections. Region is the resolved
// scope after role gating: empty means unrestricted (admin with no filter).
type QuotationFilter struct {
	Keyword  string
	Fields   []string
	Project  string
	Supplier string
	Brand    string
	Currency string
	Region   string
}

// PriceStat is one aggregate row: mean and minimum unit price per item and
// currency.
type PriceStat struct {
	ItemName string  `json:"item_name"`
	Currency string  `json:"currency"`
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avg_price"`
	MinPrice float64 `json:"min_price"`
}

type DeleteQuotationsRequest struct {
	IDs     []int64 `json:"ids" binding:"required"`
	Confirm bool    `json:"confirm"`
}
