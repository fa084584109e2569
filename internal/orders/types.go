package orders

import (
	"time"

	"github.com/imrishuroy/go-restaurant-orders/internal/lifecycle"
)

// Order types
const (
	TypeDelivery = "delivery"
	TypePickup   = "pickup"
)

// Item is a line of an order: a copy of menu data at order time, not a reference.
type Item struct {
	Name     string  `json:"name" dynamodbav:"name"`
	Price    float64 `json:"price" dynamodbav:"price"`
	Quantity int     `json:"quantity" dynamodbav:"quantity"`
}

// Order represents the item stored in the orders table.
type Order struct {
	ID                  string    `json:"id" dynamodbav:"id"`                   // PK
	OrderNumber         string    `json:"orderNumber" dynamodbav:"orderNumber"` // ORD-<unix ms>
	CustomerName        string    `json:"customerName" dynamodbav:"customerName"`
	CustomerEmail       string    `json:"customerEmail" dynamodbav:"customerEmail"`
	CustomerPhone       string    `json:"customerPhone" dynamodbav:"customerPhone"`
	Items               []Item    `json:"items" dynamodbav:"items"`
	TotalAmount         float64   `json:"totalAmount" dynamodbav:"totalAmount"` // client supplied
	DeliveryAddress     string    `json:"deliveryAddress" dynamodbav:"deliveryAddress"`
	OrderType           string    `json:"orderType" dynamodbav:"orderType"` // delivery | pickup
	SpecialInstructions string    `json:"specialInstructions" dynamodbav:"specialInstructions"`
	Status              string    `json:"status" dynamodbav:"status"`
	CreatedAt           time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewOrder carries the caller-supplied fields of an order.
type NewOrder struct {
	CustomerName        string
	CustomerEmail       string
	CustomerPhone       string
	Items               []Item
	TotalAmount         float64
	DeliveryAddress     string
	OrderType           string // empty means delivery
	SpecialInstructions string
}

// Statuses returns the fixed order status set.
func Statuses() []string { return lifecycle.Orders.States() }
