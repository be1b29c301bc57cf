package console

import (
	"sort"
	"strconv"
	"strings"

	"go-order-console/internal/model"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// numericSortFields are compared as numbers; everything else compares as a
// case-folded string.
var numericSortFields = map[string]struct{}{
	"id":               {},
	"confidence_score": {},
}

// ApplyView produces the filtered and sorted sequence for the operator's
// current query. It is a pure function over the input collection.
//
// The filter is a case-insensitive substring match of the query against
// product name, retailer name/email/address, email subject, status, priority
// and the stringified id and quantity; an empty query matches everything.
// Sorting is stable, so equal keys keep their relative order.
func ApplyView(orders []model.Order, query string, sortField string, direction string) []model.Order {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if needle == "" || matches(o, needle) {
			out = append(out, o)
		}
	}

	if sortField == "" {
		return out
	}

	desc := strings.EqualFold(direction, SortDesc)

	if _, numeric := numericSortFields[sortField]; numeric {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := numericValue(out[i], sortField), numericValue(out[j], sortField)
			if desc {
				return a > b
			}
			return a < b
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := strings.ToLower(fieldString(out[i], sortField))
		b := strings.ToLower(fieldString(out[j], sortField))
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

func matches(o model.Order, needle string) bool {
	haystacks := []string{
		o.ProductName,
		o.RetailerName,
		o.RetailerEmail,
		o.RetailerAddress,
		o.EmailSubject,
		o.OrderStatus,
		o.PriorityLevel,
		strconv.Itoa(o.ID),
		o.QuantityOrdered,
	}

	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func numericValue(o model.Order, field string) float64 {
	switch field {
	case "id":
		return float64(o.ID)
	case "confidence_score":
		return float64(o.ConfidenceScore)
	}

	if v, err := strconv.ParseFloat(fieldString(o, field), 64); err == nil {
		return v
	}
	return 0
}

// fieldString maps a sort key to the record attribute, coercing absent values
// to the empty string.
func fieldString(o model.Order, field string) string {
	switch field {
	case "id":
		return strconv.Itoa(o.ID)
	case "order_number":
		return o.OrderNumber
	case "product_name":
		return o.ProductName
	case "quantity_ordered":
		return o.QuantityOrdered
	case "unit":
		return o.Unit
	case "delivery_due_date":
		return o.DeliveryDueDate
	case "retailer_name":
		return o.RetailerName
	case "retailer_email":
		return o.RetailerEmail
	case "retailer_address":
		return o.RetailerAddress
	case "retailer_phone":
		return o.RetailerPhone
	case "client_email_subject":
		return o.EmailSubject
	case "order_status":
		return o.OrderStatus
	case "priority_level":
		return o.PriorityLevel
	case "confidence_score":
		return strconv.Itoa(o.ConfidenceScore)
	case "source_of_order":
		return o.SourceOfOrder
	case "created_at":
		return o.CreatedAt
	case "remarks":
		return o.Remarks
	default:
		return ""
	}
}
