package models

// FeeInvoice is a billable fee item. It cannot be deleted while any
// StudentPayment references it.
type FeeInvoice struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"dueDate"`
}

// StudentPayment records a payment made against an invoice.
type StudentPayment struct {
	ID          string  `json:"id"`
	StudentID   string  `json:"studentId"`
	InvoiceID   string  `json:"invoiceId"`
	AmountPaid  float64 `json:"amountPaid"`
	PaymentDate string  `json:"paymentDate"`
}
