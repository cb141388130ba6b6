// Package model defines the rows of the five output tables and the in-memory
// session record that links the simulator to the order materializer. Entities
// are created once by the generation pipeline and never mutated; references
// between tables are plain sequential integer ids.
package model

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/pkg/enums"
)

// TimeLayout is the timestamp format used in every table.
const TimeLayout = "2006-01-02 15:04:05"

// Product is one catalog row.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Brand       string
	RetailPrice decimal.Decimal
	Cost        decimal.Decimal
	Department  enums.Department
}

// ProductHeader is the products.csv header row.
var ProductHeader = []string{"product_id", "product_name", "category", "brand", "retail_price", "cost", "department"}

// Record renders the row in ProductHeader column order.
func (p Product) Record() []string {
	return []string{
		FormatID(p.ID),
		p.Name,
		p.Category,
		p.Brand,
		p.RetailPrice.StringFixed(2),
		p.Cost.StringFixed(2),
		p.Department.String(),
	}
}

// User is one population row. State is nil exactly when the user is outside
// the United States.
type User struct {
	ID            int64
	Age           int
	Gender        enums.Gender
	Country       string
	State         *string
	TrafficSource enums.TrafficSource
	CreatedAt     time.Time
}

// UserHeader is the users.csv header row.
var UserHeader = []string{"user_id", "age", "gender", "country", "state", "traffic_source", "created_at"}

// Record renders the row in UserHeader column order.
func (u User) Record() []string {
	state := ""
	if u.State != nil {
		state = *u.State
	}
	return []string{
		FormatID(u.ID),
		strconv.Itoa(u.Age),
		u.Gender.String(),
		u.Country,
		state,
		u.TrafficSource.String(),
		FormatTime(u.CreatedAt),
	}
}

// Session is the per-visit container events hang off. Sessions are not
// persisted as a table of their own; they exist so the simulator can carry
// the device, browser and deepest funnel stage across a visit.
type Session struct {
	ID        int64
	UserID    int64
	StartedAt time.Time
	Device    enums.DeviceType
	Browser   enums.Browser
	Reached   enums.EventType
}

// Event is one web event row. ProductID is set from the product stage onward
// and carries the one product bound to the session.
type Event struct {
	ID            int64
	SessionID     int64
	UserID        int64
	Type          enums.EventType
	CreatedAt     time.Time
	Device        enums.DeviceType
	Browser       enums.Browser
	TrafficSource enums.TrafficSource
	URI           string
	ProductID     *int64
}

// EventHeader is the events.csv header row.
var EventHeader = []string{"event_id", "session_id", "user_id", "event_type", "created_at", "device_type", "browser", "traffic_source", "uri", "product_id"}

// Record renders the row in EventHeader column order.
func (e Event) Record() []string {
	productID := ""
	if e.ProductID != nil {
		productID = FormatID(*e.ProductID)
	}
	return []string{
		FormatID(e.ID),
		FormatID(e.SessionID),
		FormatID(e.UserID),
		e.Type.String(),
		FormatTime(e.CreatedAt),
		e.Device.String(),
		e.Browser.String(),
		e.TrafficSource.String(),
		e.URI,
		productID,
	}
}

// Order is one order header row, created from exactly one purchase event.
type Order struct {
	ID             int64
	UserID         int64
	Status         enums.OrderStatus
	NumOfItem      int
	TotalSalePrice decimal.Decimal
	CreatedAt      time.Time
	TrafficSource  enums.TrafficSource
}

// OrderHeader is the orders.csv header row.
var OrderHeader = []string{"order_id", "user_id", "status", "num_of_item", "total_sale_price", "created_at", "traffic_source"}

// Record renders the row in OrderHeader column order.
func (o Order) Record() []string {
	return []string{
		FormatID(o.ID),
		FormatID(o.UserID),
		o.Status.String(),
		strconv.Itoa(o.NumOfItem),
		o.TotalSalePrice.StringFixed(2),
		FormatTime(o.CreatedAt),
		o.TrafficSource.String(),
	}
}

// OrderItem is one line item row. ShippedAt is set only for statuses that
// ship; ReturnedAt only for Returned.
type OrderItem struct {
	ID         int64
	OrderID    int64
	UserID     int64
	ProductID  int64
	Status     enums.OrderStatus
	SalePrice  decimal.Decimal
	CreatedAt  time.Time
	ShippedAt  *time.Time
	ReturnedAt *time.Time
}

// OrderItemHeader is the order_items.csv header row.
var OrderItemHeader = []string{"order_item_id", "order_id", "user_id", "product_id", "status", "sale_price", "created_at", "shipped_at", "returned_at"}

// Record renders the row in OrderItemHeader column order.
func (i OrderItem) Record() []string {
	return []string{
		FormatID(i.ID),
		FormatID(i.OrderID),
		FormatID(i.UserID),
		FormatID(i.ProductID),
		i.Status.String(),
		i.SalePrice.StringFixed(2),
		FormatTime(i.CreatedAt),
		FormatTimePtr(i.ShippedAt),
		FormatTimePtr(i.ReturnedAt),
	}
}

// Dataset is the full in-memory result of one generation run.
type Dataset struct {
	Products   []Product
	Users      []User
	Sessions   []Session
	Events     []Event
	Orders     []Order
	OrderItems []OrderItem
}

// FormatTime renders a timestamp in the table format.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatTimePtr renders a nullable timestamp, empty when nil.
func FormatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(TimeLayout)
}

// FormatID renders an entity id as its column value.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
