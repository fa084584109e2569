package client

import (
	"context"
	"net/http"

	"github.com/imrishuroy/go-restaurant-orders/internal/menu"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
	"github.com/imrishuroy/go-restaurant-orders/internal/reservations"
)

// MenuItemInput is the body of a menu create or full update.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// OrderInput is the body of POST /api/orders.
type OrderInput struct {
	CustomerName        string        `json:"customerName"`
	CustomerEmail       string        `json:"customerEmail,omitempty"`
	CustomerPhone       string        `json:"customerPhone"`
	Items               []orders.Item `json:"items"`
	TotalAmount         float64       `json:"totalAmount"`
	DeliveryAddress     string        `json:"deliveryAddress,omitempty"`
	OrderType           string        `json:"orderType,omitempty"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
}

// ReservationInput is the body of POST /api/reservations.
type ReservationInput struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	CustomerPhone   string `json:"customerPhone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	NumberOfGuests  int    `json:"numberOfGuests"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

// Stats mirrors GET /api/stats.
type Stats struct {
	TotalOrders          int            `json:"totalOrders"`
	PendingOrders        int            `json:"pendingOrders"`
	OrdersByStatus       map[string]int `json:"ordersByStatus"`
	TotalReservations    int            `json:"totalReservations"`
	ReservationsByStatus map[string]int `json:"reservationsByStatus"`
	MenuItems            int            `json:"menuItems"`
	AvailableMenuItems   int            `json:"availableMenuItems"`
}

// StatusTable mirrors GET /api/{orders,reservations}/statuses.
type StatusTable struct {
	Statuses    []string            `json:"statuses"`
	Transitions map[string][]string `json:"transitions"`
	Strict      bool                `json:"strict"`
}

// Menu

// ListMenu returns the menu sorted by category and name, optionally
// restricted to one category.
func (c *Client) ListMenu(ctx context.Context, category string) ([]menu.MenuItem, error) {
	var out []menu.MenuItem
	err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("menu"), Query: query("category", category), Key: "items", Out: &out})
	return out, err
}

// MenuByCategory returns the items of one category.
func (c *Client) MenuByCategory(ctx context.Context, category string) ([]menu.MenuItem, error) {
	var out []menu.MenuItem
	err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("menu", "category", category), Key: "items", Out: &out})
	return out, err
}

// GetMenuItem fetches one item. IsNotFound reports a missing id.
func (c *Client) GetMenuItem(ctx context.Context, id string) (*menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("menu", id), Key: "item", Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMenuItem adds an item to the menu.
func (c *Client) CreateMenuItem(ctx context.Context, in MenuItemInput) (*menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, call{Method: http.MethodPost, Path: pathOf("menu"), Body: in, Key: "item", Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMenuItem replaces every field of item id.
func (c *Client) UpdateMenuItem(ctx context.Context, id string, in MenuItemInput) (*menu.MenuItem, error) {
	var out menu.MenuItem
	if err := c.do(ctx, call{Method: http.MethodPut, Path: pathOf("menu", id), Body: in, Key: "item", Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMenuItem removes item id.
func (c *Client) DeleteMenuItem(ctx context.Context, id string) error {
	return c.do(ctx, call{Method: http.MethodDelete, Path: pathOf("menu", id)})
}

// Orders

// CreateOrder places an order. A non-empty idempotencyKey is sent as the
// Idempotency-Key header so a retried submit does not create a second order.
// A retry that arrives while the first submit is still running gets
// ErrInProgress.
func (c *Client) CreateOrder(ctx context.Context, in OrderInput, idempotencyKey string) (*orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, call{
		Method:  http.MethodPost,
		Path:    pathOf("orders"),
		Body:    in,
		Headers: map[string]string{"Idempotency-Key": idempotencyKey},
		Key:     "order",
		Out:     &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders returns orders, newest first, optionally filtered by status.
func (c *Client) ListOrders(ctx context.Context, status string) ([]orders.Order, error) {
	var out []orders.Order
	err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("orders"), Query: query("status", status), Key: "orders", Out: &out})
	return out, err
}

// OrdersByCustomer returns the orders placed with phone.
func (c *Client) OrdersByCustomer(ctx context.Context, phone string) ([]orders.Order, error) {
	var out []orders.Order
	err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("orders", "customer", phone), Key: "orders", Out: &out})
	return out, err
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	var out orders.Order
	if err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("orders", id), Key: "order", Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves order id to status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*orders.Order, error) {
	var out orders.Order
	err := c.do(ctx, call{
		Method: http.MethodPatch,
		Path:   pathOf("orders", id, "status"),
		Body:   map[string]string{"status": status},
		Key:    "order",
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder removes order id.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, call{Method: http.MethodDelete, Path: pathOf("orders", id)})
}

// OrderStatuses returns the order statuses and allowed transitions.
func (c *Client) OrderStatuses(ctx context.Context) (*StatusTable, error) {
	var out StatusTable
	if err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("orders", "statuses"), Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reservations

// CreateReservation books a table. idempotencyKey works as in CreateOrder.
func (c *Client) CreateReservation(ctx context.Context, in ReservationInput, idempotencyKey string) (*reservations.Reservation, error) {
	var out reservations.Reservation
	err := c.do(ctx, call{
		Method:  http.MethodPost,
		Path:    pathOf("reservations"),
		Body:    in,
		Headers: map[string]string{"Idempotency-Key": idempotencyKey},
		Key:     "reservation",
		Out:     &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListReservations returns reservations by date and time, optionally
// filtered by status and date.
func (c *Client) ListReservations(ctx context.Context, status, date string) ([]reservations.Reservation, error) {
	var out []reservations.Reservation
	err := c.do(ctx, call{
		Method: http.MethodGet,
		Path:   pathOf("reservations"),
		Query:  query("status", status, "date", date),
		Key:    "reservations",
		Out:    &out,
	})
	return out, err
}

// ReservationsByCustomer returns the reservations made with phone.
func (c *Client) ReservationsByCustomer(ctx context.Context, phone string) ([]reservations.Reservation, error) {
	var out []reservations.Reservation
	err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("reservations", "customer", phone), Key: "reservations", Out: &out})
	return out, err
}

// GetReservation fetches one reservation.
func (c *Client) GetReservation(ctx context.Context, id string) (*reservations.Reservation, error) {
	var out reservations.Reservation
	if err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("reservations", id), Key: "reservation", Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateReservationStatus moves reservation id to status.
func (c *Client) UpdateReservationStatus(ctx context.Context, id, status string) (*reservations.Reservation, error) {
	var out reservations.Reservation
	err := c.do(ctx, call{
		Method: http.MethodPatch,
		Path:   pathOf("reservations", id, "status"),
		Body:   map[string]string{"status": status},
		Key:    "reservation",
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReservation removes reservation id.
func (c *Client) DeleteReservation(ctx context.Context, id string) error {
	return c.do(ctx, call{Method: http.MethodDelete, Path: pathOf("reservations", id)})
}

// ReservationStatuses returns the reservation statuses and allowed transitions.
func (c *Client) ReservationStatuses(ctx context.Context) (*StatusTable, error) {
	var out StatusTable
	if err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("reservations", "statuses"), Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats returns the admin dashboard summary.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if err := c.do(ctx, call{Method: http.MethodGet, Path: pathOf("stats"), Key: "stats", Out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}
