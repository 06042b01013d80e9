package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// OrderStatus is the fulfillment state of an order. Orders move strictly
// forward (pending -> confirmed -> shipping -> completed); cancelled is
// reachable from any non-terminal state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipping  OrderStatus = "shipping"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus tracks payment independently of fulfillment; a cancelled
// order may still be refunded.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentRefunded PaymentStatus = "refunded"
)

// Pricing constants applied at checkout (VND).
const (
	ShippingFeeVND = 50000
	TaxRatePercent = 10
)

var forwardTransitions = map[OrderStatus]OrderStatus{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusShipping,
	StatusShipping:  StatusCompleted,
}

// IsValid reports whether s is one of the five known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipping, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status machine allows moving from s
// to next. Cancellation is allowed from any non-terminal state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return forwardTransitions[s] == next
}

// Order represents a customer order in the system. TotalAmount is held in
// integer VND to avoid floating point drift; Items is the display-ready
// summary shown in the order table, structured line items live in
// OrderLineItem.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"-"`
	PublicID        string         `gorm:"uniqueIndex;not null" json:"id"`
	OrderNumber     string         `gorm:"uniqueIndex;not null" json:"order_number"`
	Status          OrderStatus    `gorm:"not null;default:'pending'" json:"status"`
	TotalAmount     int64          `gorm:"not null" json:"total_amount"`
	Items           string         `json:"items"`
	SearchBlob      string         `gorm:"index" json:"-"`
	PaymentStatus   PaymentStatus  `gorm:"not null;default:'pending'" json:"payment_status"`
	PaymentMethod   string         `json:"payment_method,omitempty"`
	ShippingAddress string         `json:"shipping_address,omitempty"`
	CustomerID      uint           `gorm:"index" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeSave keeps the lower-cased search column in sync with the order
// number and items summary. sqlite's LOWER() folds ASCII only, so the
// folding happens here with the same strings.ToLower the in-memory
// filter uses.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.SearchBlob = strings.ToLower(o.OrderNumber + "\n" + o.Items)
	return nil
}

// CanCancel reports whether the order may still be cancelled.
func (o *Order) CanCancel() bool {
	return !o.Status.IsTerminal()
}

// CreatedDate returns CreatedAt truncated to the calendar date. All date
// filtering and sorting in this subsystem works at day precision.
func (o *Order) CreatedDate() time.Time {
	y, m, d := o.CreatedAt.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// OrderLineItem is one product line of an order.
type OrderLineItem struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	OrderID     uint   `gorm:"index;not null" json:"-"`
	ProductName string `gorm:"not null" json:"product_name"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	UnitPrice   int64  `gorm:"not null" json:"unit_price"`
	LineTotal   int64  `gorm:"not null" json:"line_total"`
}

// TableName specifies the table name for the OrderLineItem model
func (OrderLineItem) TableName() string {
	return "order_items"
}

// OrderDetail is the full order view returned by the detail endpoint:
// the order summary plus the amount breakdown and structured line items.
type OrderDetail struct {
	Order
	Subtotal    int64           `json:"subtotal"`
	ShippingFee int64           `json:"shipping_fee"`
	Tax         int64           `json:"tax"`
	LineItems   []OrderLineItem `json:"line_items"`
}

// ComputeTotals derives the shipping fee, tax and grand total for a
// subtotal. Empty orders carry no shipping fee.
func ComputeTotals(subtotal int64) (shippingFee, tax, total int64) {
	if subtotal > 0 {
		shippingFee = ShippingFeeVND
	}
	tax = subtotal * TaxRatePercent / 100
	return shippingFee, tax, subtotal + shippingFee + tax
}

// SummarizeItems builds the display string shown in the order table from
// the structured line items, e.g. "Xăng RON 95 (x2), Inverter 5KW (x1)".
func SummarizeItems(items []OrderLineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (x%d)", it.ProductName, it.Quantity))
	}
	return strings.Join(parts, ", ")
}

func mockDate(day int) time.Time {
	return time.Date(2024, time.December, day, 0, 0, 0, 0, time.UTC)
}

// MockOrders returns the seeded demo collection used when no backend is
// reachable: five hand-written orders covering every status plus fifteen
// generated ones.
func MockOrders() []Order {
	orders := []Order{
		{
			PublicID:      "order_1",
			OrderNumber:   "#ORD-2024-001",
			CreatedAt:     mockDate(20),
			Status:        StatusCompleted,
			TotalAmount:   1250000,
			Items:         "Xăng RON 95 (100 lít), Dầu nhớt Total 5W-30",
			PaymentStatus: PaymentPaid,
		},
		{
			PublicID:      "order_2",
			OrderNumber:   "#ORD-2024-002",
			CreatedAt:     mockDate(21),
			Status:        StatusShipping,
			TotalAmount:   850000,
			Items:         "Dầu Diesel (50 lít), Lọc gió ô tô",
			PaymentStatus: PaymentPaid,
		},
		{
			PublicID:      "order_3",
			OrderNumber:   "#ORD-2024-003",
			CreatedAt:     mockDate(22),
			Status:        StatusPending,
			TotalAmount:   500000,
			Items:         "Pin Lithium 48V-100Ah, Bộ sạc nhanh",
			PaymentStatus: PaymentPending,
		},
		{
			PublicID:      "order_4",
			OrderNumber:   "#ORD-2024-004",
			CreatedAt:     mockDate(23),
			Status:        StatusConfirmed,
			TotalAmount:   3200000,
			Items:         "Tấm pin năng lượng mặt trời 450W, Inverter 5KW",
			PaymentStatus: PaymentPaid,
		},
		{
			PublicID:      "order_5",
			OrderNumber:   "#ORD-2024-005",
			CreatedAt:     mockDate(24),
			Status:        StatusCancelled,
			TotalAmount:   750000,
			Items:         "Bình gas công nghiệp 45kg",
			PaymentStatus: PaymentRefunded,
		},
	}

	statuses := []OrderStatus{StatusPending, StatusConfirmed, StatusShipping, StatusCompleted, StatusCancelled}
	products := []string{
		"Xăng RON 95",
		"Dầu nhớt Total 5W-30",
		"Dầu Diesel",
		"Lọc gió ô tô",
		"Pin Lithium",
		"Bộ sạc nhanh",
		"Tấm pin năng lượng mặt trời",
		"Inverter",
		"Bình gas công nghiệp",
		"Ắc quy xe điện",
	}

	for i := 0; i < 15; i++ {
		unit := "cái"
		if i%3 == 0 {
			unit = "lít"
		}
		payment := PaymentPaid
		if i%4 == 0 {
			payment = PaymentPending
		}
		orders = append(orders, Order{
			PublicID:      fmt.Sprintf("order_%d", i+6),
			OrderNumber:   fmt.Sprintf("#ORD-2024-%03d", i+6),
			CreatedAt:     mockDate(25 + i/5),
			Status:        statuses[i%len(statuses)],
			TotalAmount:   int64(500000 + i*100000),
			Items:         fmt.Sprintf("%s (%d %s)", products[i%len(products)], 10+i*2, unit),
			PaymentStatus: payment,
		})
	}

	return orders
}
