package models

import "time"

const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// InvoiceItem is one billed line. Amount is stored as given; it is not
// recomputed from Quantity and Rate.
type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	ClientID      string        `json:"client_id"`
	ProjectID     *string       `json:"project_id"`
	Amount        float64       `json:"amount"`
	Status        string        `json:"status"`
	DueDate       string        `json:"due_date"`
	Items         []InvoiceItem `json:"items"`
	Notes         *string       `json:"notes"`
	// AttachmentKey is the object-storage key of the uploaded attachment, if any.
	AttachmentKey *string   `json:"attachment_key"`
	CreatedAt     time.Time `json:"created_at"`
}

// AttachmentURL is a presigned object-storage URL handed to clients.
type AttachmentURL struct {
	StorageKey string    `json:"storage_key"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
}
