package domain

// InvoiceRecord is an invoice row as stored in the hosted database,
// used by the alternate detail view. Field names follow the table schema.
type InvoiceRecord struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	Status        string  `json:"status"`
	IssueDate     string  `json:"issue_date"`
	DueDate       string  `json:"due_date"`
	Notes         string  `json:"notes"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
}

// InvoiceItemRecord is a stored line item referencing an InvoiceRecord.
type InvoiceItemRecord struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}
