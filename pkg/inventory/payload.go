package inventory

// Line is one row of an inventory document. Quantity fields not used by a
// screen stay zero.
type Line struct {
	ItemCode     string  `json:"itemCode" mapstructure:"itemCode"`
	Description  string  `json:"description,omitempty" mapstructure:"description"`
	UOM          string  `json:"uom,omitempty" mapstructure:"uom"`
	Quantity     float64 `json:"quantity,omitempty" mapstructure:"quantity"`
	Rate         float64 `json:"rate,omitempty" mapstructure:"rate"`
	POQty        float64 `json:"poQty,omitempty" mapstructure:"poQty"`
	ReceivedQty  float64 `json:"receivedQty,omitempty" mapstructure:"receivedQty"`
	IssueQty     float64 `json:"issueQty,omitempty" mapstructure:"issueQty"`
	ReturnQty    float64 `json:"returnQty,omitempty" mapstructure:"returnQty"`
	RequestedQty float64 `json:"requestedQty,omitempty" mapstructure:"requestedQty"`
	Remarks      string  `json:"remarks,omitempty" mapstructure:"remarks"`
}

type PurchaseOrder struct {
	PONumber string `json:"poNumber" mapstructure:"poNumber"`
	Supplier string `json:"supplier" mapstructure:"supplier"`
	PODate   string `json:"poDate" mapstructure:"poDate"`
	Remarks  string `json:"remarks,omitempty" mapstructure:"remarks"`
	Rows     []Line `json:"rows" mapstructure:"rows"`
}

// Total is the sum of quantity × rate over all rows.
func (p PurchaseOrder) Total() float64 {
	var total float64
	for _, row := range p.Rows {
		total += row.Quantity * row.Rate
	}
	return total
}

// GRN is a goods receipt note recorded against a purchase order.
type GRN struct {
	GRNNumber    string `json:"grnNumber" mapstructure:"grnNumber"`
	PONumber     string `json:"poNumber" mapstructure:"poNumber"`
	ReceivedDate string `json:"receivedDate" mapstructure:"receivedDate"`
	Remarks      string `json:"remarks,omitempty" mapstructure:"remarks"`
	Rows         []Line `json:"rows" mapstructure:"rows"`
}

// Shortfalls returns the rows that received less than ordered.
func (g GRN) Shortfalls() []Line {
	var out []Line
	for _, row := range g.Rows {
		if row.ReceivedQty < row.POQty {
			out = append(out, row)
		}
	}
	return out
}

type Issue struct {
	IssueNumber string `json:"issueNumber" mapstructure:"issueNumber"`
	IssueDate   string `json:"issueDate" mapstructure:"issueDate"`
	Department  string `json:"department" mapstructure:"department"`
	Rows        []Line `json:"rows" mapstructure:"rows"`
}

type Return struct {
	ReturnNumber string `json:"returnNumber" mapstructure:"returnNumber"`
	ReturnDate   string `json:"returnDate" mapstructure:"returnDate"`
	Reason       string `json:"reason" mapstructure:"reason"`
	Rows         []Line `json:"rows" mapstructure:"rows"`
}

type Requisition struct {
	RequisitionNumber string `json:"requisitionNumber" mapstructure:"requisitionNumber"`
	RequiredBy        string `json:"requiredBy" mapstructure:"requiredBy"`
	Priority          string `json:"priority" mapstructure:"priority"`
	Rows              []Line `json:"rows" mapstructure:"rows"`
}
