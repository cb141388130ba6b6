package analysis

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storesim/internal/model"
	"github.com/angelmondragon/storesim/pkg/enums"
)

// Load reads the five generated tables from dataDir.
func Load(dataDir string) (*Tables, error) {
	tables := &Tables{}

	if err := loadTable(dataDir, "products", model.ProductHeader, func(rec []string) error {
		row, err := parseProduct(rec)
		if err != nil {
			return err
		}
		tables.Products = append(tables.Products, row)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadTable(dataDir, "users", model.UserHeader, func(rec []string) error {
		row, err := parseUser(rec)
		if err != nil {
			return err
		}
		tables.Users = append(tables.Users, row)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadTable(dataDir, "events", model.EventHeader, func(rec []string) error {
		row, err := parseEvent(rec)
		if err != nil {
			return err
		}
		tables.Events = append(tables.Events, row)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadTable(dataDir, "orders", model.OrderHeader, func(rec []string) error {
		row, err := parseOrder(rec)
		if err != nil {
			return err
		}
		tables.Orders = append(tables.Orders, row)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := loadTable(dataDir, "order_items", model.OrderItemHeader, func(rec []string) error {
		row, err := parseOrderItem(rec)
		if err != nil {
			return err
		}
		tables.OrderItems = append(tables.OrderItems, row)
		return nil
	}); err != nil {
		return nil, err
	}

	return tables, nil
}

func loadTable(dataDir, name string, header []string, consume func([]string) error) error {
	path := filepath.Join(dataDir, name+".csv")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	got, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading %s header: %w", name, err)
	}
	for i, col := range header {
		if got[i] != col {
			return fmt.Errorf("%s column %d: expected %q, got %q", name, i, col, got[i])
		}
	}

	line := 1
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("reading %s row %d: %w", name, line, err)
		}
		line++
		if err := consume(rec); err != nil {
			return fmt.Errorf("parsing %s row %d: %w", name, line, err)
		}
	}
	return nil
}

func parseProduct(rec []string) (model.Product, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return model.Product{}, fmt.Errorf("product_id: %w", err)
	}
	retail, err := decimal.NewFromString(rec[4])
	if err != nil {
		return model.Product{}, fmt.Errorf("retail_price: %w", err)
	}
	cost, err := decimal.NewFromString(rec[5])
	if err != nil {
		return model.Product{}, fmt.Errorf("cost: %w", err)
	}
	return model.Product{
		ID:          id,
		Name:        rec[1],
		Category:    rec[2],
		Brand:       rec[3],
		RetailPrice: retail,
		Cost:        cost,
		Department:  enums.Department(rec[6]),
	}, nil
}

func parseUser(rec []string) (model.User, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return model.User{}, fmt.Errorf("user_id: %w", err)
	}
	age, err := strconv.Atoi(rec[1])
	if err != nil {
		return model.User{}, fmt.Errorf("age: %w", err)
	}
	source, err := enums.ParseTrafficSource(rec[5])
	if err != nil {
		return model.User{}, err
	}
	createdAt, err := time.Parse(model.TimeLayout, rec[6])
	if err != nil {
		return model.User{}, fmt.Errorf("created_at: %w", err)
	}
	var state *string
	if rec[4] != "" {
		s := rec[4]
		state = &s
	}
	return model.User{
		ID:            id,
		Age:           age,
		Gender:        enums.Gender(rec[2]),
		Country:       rec[3],
		State:         state,
		TrafficSource: source,
		CreatedAt:     createdAt,
	}, nil
}

func parseEvent(rec []string) (model.Event, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("event_id: %w", err)
	}
	sessionID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("session_id: %w", err)
	}
	userID, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return model.Event{}, fmt.Errorf("user_id: %w", err)
	}
	eventType, err := enums.ParseEventType(rec[3])
	if err != nil {
		return model.Event{}, err
	}
	createdAt, err := time.Parse(model.TimeLayout, rec[4])
	if err != nil {
		return model.Event{}, fmt.Errorf("created_at: %w", err)
	}
	source, err := enums.ParseTrafficSource(rec[7])
	if err != nil {
		return model.Event{}, err
	}
	var productID *int64
	if rec[9] != "" {
		pid, err := strconv.ParseInt(rec[9], 10, 64)
		if err != nil {
			return model.Event{}, fmt.Errorf("product_id: %w", err)
		}
		productID = &pid
	}
	return model.Event{
		ID:            id,
		SessionID:     sessionID,
		UserID:        userID,
		Type:          eventType,
		CreatedAt:     createdAt,
		Device:        enums.DeviceType(rec[5]),
		Browser:       enums.Browser(rec[6]),
		TrafficSource: source,
		URI:           rec[8],
		ProductID:     productID,
	}, nil
}

func parseOrder(rec []string) (model.Order, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return model.Order{}, fmt.Errorf("order_id: %w", err)
	}
	userID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return model.Order{}, fmt.Errorf("user_id: %w", err)
	}
	status, err := enums.ParseOrderStatus(rec[2])
	if err != nil {
		return model.Order{}, err
	}
	numOfItem, err := strconv.Atoi(rec[3])
	if err != nil {
		return model.Order{}, fmt.Errorf("num_of_item: %w", err)
	}
	total, err := decimal.NewFromString(rec[4])
	if err != nil {
		return model.Order{}, fmt.Errorf("total_sale_price: %w", err)
	}
	createdAt, err := time.Parse(model.TimeLayout, rec[5])
	if err != nil {
		return model.Order{}, fmt.Errorf("created_at: %w", err)
	}
	source, err := enums.ParseTrafficSource(rec[6])
	if err != nil {
		return model.Order{}, err
	}
	return model.Order{
		ID:             id,
		UserID:         userID,
		Status:         status,
		NumOfItem:      numOfItem,
		TotalSalePrice: total,
		CreatedAt:      createdAt,
		TrafficSource:  source,
	}, nil
}

func parseOrderItem(rec []string) (model.OrderItem, error) {
	id, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("order_item_id: %w", err)
	}
	orderID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("order_id: %w", err)
	}
	userID, err := strconv.ParseInt(rec[2], 10, 64)
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("user_id: %w", err)
	}
	productID, err := strconv.ParseInt(rec[3], 10, 64)
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("product_id: %w", err)
	}
	status, err := enums.ParseOrderStatus(rec[4])
	if err != nil {
		return model.OrderItem{}, err
	}
	salePrice, err := decimal.NewFromString(rec[5])
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("sale_price: %w", err)
	}
	createdAt, err := time.Parse(model.TimeLayout, rec[6])
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("created_at: %w", err)
	}
	shippedAt, err := parseNullableTime(rec[7])
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("shipped_at: %w", err)
	}
	returnedAt, err := parseNullableTime(rec[8])
	if err != nil {
		return model.OrderItem{}, fmt.Errorf("returned_at: %w", err)
	}
	return model.OrderItem{
		ID:         id,
		OrderID:    orderID,
		UserID:     userID,
		ProductID:  productID,
		Status:     status,
		SalePrice:  salePrice,
		CreatedAt:  createdAt,
		ShippedAt:  shippedAt,
		ReturnedAt: returnedAt,
	}, nil
}

func parseNullableTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(model.TimeLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
