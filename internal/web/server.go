// Package web serves the customer and admin pages. Every page is rendered
// on the server from data fetched through the API client.
package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/client"
	"github.com/imrishuroy/go-restaurant-orders/internal/menu"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
	"github.com/imrishuroy/go-restaurant-orders/internal/reservations"
)

//go:embed templates/*.html
var templateFS embed.FS

// API is the part of the API client the pages use.
type API interface {
	ListMenu(ctx context.Context, category string) ([]menu.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*menu.MenuItem, error)
	CreateOrder(ctx context.Context, in client.OrderInput, idempotencyKey string) (*orders.Order, error)
	ListOrders(ctx context.Context, status string) ([]orders.Order, error)
	OrdersByCustomer(ctx context.Context, phone string) ([]orders.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*orders.Order, error)
	OrderStatuses(ctx context.Context) (*client.StatusTable, error)
	CreateReservation(ctx context.Context, in client.ReservationInput, idempotencyKey string) (*reservations.Reservation, error)
	ListReservations(ctx context.Context, status, date string) ([]reservations.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id, status string) (*reservations.Reservation, error)
	ReservationStatuses(ctx context.Context) (*client.StatusTable, error)
	Stats(ctx context.Context) (*client.Stats, error)
}

var _ API = (*client.Client)(nil)

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"when":  func(t time.Time) string { return t.Local().Format("Jan 2 15:04") },
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// NewRouter returns a gin engine serving every page.
func NewRouter(api API) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	Register(r, api)
	return r, nil
}

// Register mounts the pages on r. r must already have the templates loaded.
func Register(r *gin.Engine, api API) {
	p := &pages{api: api}

	r.GET("/", p.home)
	r.GET("/menu", p.menu)
	r.GET("/menu/:id/order", p.orderForm)
	r.POST("/menu/:id/order", p.placeOrder)
	r.GET("/orders", p.orders)
	r.GET("/reservations/new", p.reservationForm)
	r.POST("/reservations", p.reserve)
	r.GET("/admin", p.admin)
	r.POST("/admin/orders/:id/status", p.setOrderStatus)
	r.POST("/admin/reservations/:id/status", p.setReservationStatus)
}
