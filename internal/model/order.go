package model

import (
	"strings"
	"time"
)

// Order statuses as reported by the scanning backend. The backend may emit
// other values; these are the ones the console treats specially.
const (
	StatusApproved    = "Approved"
	StatusNeedsReview = "Needs Review"
)

const (
	PriorityUrgent = "Urgent"
	PriorityNormal = "Normal"
)

const SourceManual = "Manual"

// Order is one machine-extracted purchase order in the live collection.
// The id is backend-assigned and immutable; quantity is free-form text and
// not guaranteed numeric.
type Order struct {
	ID              int    `json:"id"`
	OrderNumber     string `json:"order_number"`
	ProductName     string `json:"product_name"`
	QuantityOrdered string `json:"quantity_ordered"`
	Unit            string `json:"unit"`
	DeliveryDueDate string `json:"delivery_due_date"`
	RetailerName    string `json:"retailer_name"`
	RetailerEmail   string `json:"retailer_email"`
	RetailerAddress string `json:"retailer_address"`
	RetailerPhone   string `json:"retailer_phone"`
	EmailSubject    string `json:"client_email_subject"`
	OrderStatus     string `json:"order_status"`
	PriorityLevel   string `json:"priority_level"`
	ConfidenceScore int    `json:"confidence_score"`
	SourceOfOrder   string `json:"source_of_order"`
	CreatedAt       string `json:"created_at"`
	Remarks         string `json:"remarks"`
	ExtractedText   string `json:"extracted_text"`
	AttachmentPath  string `json:"attachment_path"`
}

// OrderDraft carries the fields an operator supplies when entering an order
// manually. Everything else (id, order number, status, confidence) is
// backend-assigned.
type OrderDraft struct {
	ProductName   string `json:"product_name"`
	Quantity      string `json:"quantity"`
	Unit          string `json:"unit"`
	DueDate       string `json:"due_date"`
	RetailerName  string `json:"retailer_name"`
	RetailerEmail string `json:"retailer_email"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Priority      string `json:"priority"`
	Remarks       string `json:"remarks"`
}

// OrderStats is the KPI snapshot computed from the reconciled live
// collection.
type OrderStats struct {
	TotalOrders   int     `json:"total_orders"`
	OrdersToday   int     `json:"orders_today"`
	UrgentOrders  int     `json:"urgent_orders"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// createdAtLayouts covers the timestamp shapes the backend has been seen to
// emit (stringified datetimes, with and without fractional seconds).
var createdAtLayouts = []string{
	"2006-01-02 15:04:05.000000",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// CreatedDate parses the order's creation timestamp and reports whether the
// value was parseable at all.
func (o Order) CreatedDate() (time.Time, bool) {
	raw := strings.TrimSpace(o.CreatedAt)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
