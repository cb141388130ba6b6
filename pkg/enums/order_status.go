package enums

import "fmt"

// OrderStatus is the fulfillment state assigned to an order and copied onto
// each of its line items.
type OrderStatus string

const (
	OrderStatusComplete   OrderStatus = "Complete"
	OrderStatusReturned   OrderStatus = "Returned"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusProcessing OrderStatus = "Processing"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusComplete,
	OrderStatusReturned,
	OrderStatusCancelled,
	OrderStatusShipped,
	OrderStatusProcessing,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// Ships reports whether items in this status leave the warehouse, which
// controls whether shipped_at is populated.
func (o OrderStatus) Ships() bool {
	return o == OrderStatusComplete || o == OrderStatusReturned || o == OrderStatusShipped
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
