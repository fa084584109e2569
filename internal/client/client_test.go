package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/dynamotest"
	"github.com/imrishuroy/go-restaurant-orders/internal/handlers"
	"github.com/imrishuroy/go-restaurant-orders/internal/idempotency"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
)

// newTestClient serves the real API over an in-memory store.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, _ := newTestServer(t)
	return c
}

func newTestServer(t *testing.T) (*Client, *dynamotest.Fake) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fake := dynamotest.New()
	for _, tbl := range []string{"menu", "orders", "reservations"} {
		fake.CreateTable(tbl, "id")
	}
	fake.CreateTable("idem", "idempotency_key")

	r := gin.New()
	handlers.RegisterRoutes(r, handlers.HandlerConfig{
		DynamoDBClient:    fake,
		MenuTable:         "menu",
		OrdersTable:       "orders",
		ReservationsTable: "reservations",
		IdempotencyTable:  "idem",
		TTLWindow:         time.Hour,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client()), fake
}

func TestClient_MenuRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	item, err := c.CreateMenuItem(ctx, MenuItemInput{Name: "Pizza", Price: 12.5, Category: "Mains"})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	if !item.Available || item.ID == "" {
		t.Fatalf("unexpected item %+v", item)
	}
	if _, err := c.CreateMenuItem(ctx, MenuItemInput{Name: "Cake", Price: 5, Category: "Desserts"}); err != nil {
		t.Fatal(err)
	}

	mains, err := c.MenuByCategory(ctx, "Mains")
	if err != nil || len(mains) != 1 || mains[0].Name != "Pizza" {
		t.Fatalf("MenuByCategory = %+v, %v", mains, err)
	}
	all, err := c.ListMenu(ctx, "")
	if err != nil || len(all) != 2 || all[0].Category != "Desserts" {
		t.Fatalf("ListMenu = %+v, %v", all, err)
	}

	off := false
	updated, err := c.UpdateMenuItem(ctx, item.ID, MenuItemInput{Name: "Pizza", Price: 14, Category: "Mains", Available: &off})
	if err != nil || updated.Price != 14 || updated.Available {
		t.Fatalf("UpdateMenuItem = %+v, %v", updated, err)
	}

	if err := c.DeleteMenuItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}
	if _, err := c.GetMenuItem(ctx, item.ID); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClient_APIErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t)
	_, err := c.CreateMenuItem(context.Background(), MenuItemInput{Name: "Nameless"})
	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if ae.Status != http.StatusBadRequest || ae.Message == "" {
		t.Fatalf("unexpected error %+v", ae)
	}
}

func TestClient_OrdersFlow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	in := OrderInput{
		CustomerName:  "Ana",
		CustomerPhone: "555 0100",
		Items:         []orders.Item{{Name: "Pizza", Price: 12.5, Quantity: 2}},
		TotalAmount:   25,
	}

	o1, err := c.CreateOrder(ctx, in, "submit-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	o2, err := c.CreateOrder(ctx, in, "submit-1")
	if err != nil {
		t.Fatalf("CreateOrder retry: %v", err)
	}
	if o1.ID != o2.ID {
		t.Fatalf("retry with the same key created a new order: %s != %s", o1.ID, o2.ID)
	}

	// phone contains a space and must be path escaped
	mine, err := c.OrdersByCustomer(ctx, "555 0100")
	if err != nil || len(mine) != 1 {
		t.Fatalf("OrdersByCustomer = %+v, %v", mine, err)
	}

	got, err := c.UpdateOrderStatus(ctx, o1.ID, "preparing")
	if err != nil || got.Status != "preparing" {
		t.Fatalf("UpdateOrderStatus = %+v, %v", got, err)
	}
	if _, err := c.UpdateOrderStatus(ctx, o1.ID, "bogus"); err == nil {
		t.Fatalf("expected invalid status error")
	}

	list, err := c.ListOrders(ctx, "preparing")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListOrders = %+v, %v", list, err)
	}

	table, err := c.OrderStatuses(ctx)
	if err != nil || len(table.Statuses) != 7 || table.Strict {
		t.Fatalf("OrderStatuses = %+v, %v", table, err)
	}

	if err := c.DeleteOrder(ctx, o1.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetOrder(ctx, o1.ID); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClient_ReservationsAndStats(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, at := range []string{"20:00", "18:00"} {
		if _, err := c.CreateReservation(ctx, ReservationInput{
			CustomerName: "Ana", CustomerPhone: "1", Date: "2025-06-01", Time: at, NumberOfGuests: 2,
		}, ""); err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
	}

	list, err := c.ListReservations(ctx, "", "2025-06-01")
	if err != nil || len(list) != 2 || list[0].Time != "18:00" {
		t.Fatalf("ListReservations = %+v, %v", list, err)
	}
	res, err := c.UpdateReservationStatus(ctx, list[0].ID, "confirmed")
	if err != nil || res.Status != "confirmed" {
		t.Fatalf("UpdateReservationStatus = %+v, %v", res, err)
	}
	if got, err := c.GetReservation(ctx, res.ID); err != nil || got.Status != "confirmed" {
		t.Fatalf("GetReservation = %+v, %v", got, err)
	}
	mine, err := c.ReservationsByCustomer(ctx, "1")
	if err != nil || len(mine) != 2 || mine[0].Time != "20:00" {
		t.Fatalf("ReservationsByCustomer = %+v, %v", mine, err)
	}
	if _, err := c.ReservationStatuses(ctx); err != nil {
		t.Fatal(err)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalReservations != 2 || stats.ReservationsByStatus["confirmed"] != 1 || stats.TotalOrders != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if err := c.DeleteReservation(ctx, res.ID); err != nil {
		t.Fatal(err)
	}
}

func TestClient_NonJSONErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).ListMenu(context.Background(), "")
	var ae *APIError
	if !errors.As(err, &ae) || ae.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 APIError, got %v", err)
	}
}

func TestClient_CreateWhileFirstRequestRunning(t *testing.T) {
	c, fake := newTestServer(t)
	ctx := context.Background()

	// a request holding these keys is still running
	idem := idempotency.NewStore(fake, "idem", time.Hour)
	for _, scope := range []string{"orders", "reservations"} {
		if first, err := idem.CreateIfNotExists(ctx, scope, "k-running", ""); err != nil || !first {
			t.Fatalf("seed %s: %v %v", scope, first, err)
		}
	}

	_, err := c.CreateOrder(ctx, OrderInput{
		CustomerName: "Ana", CustomerPhone: "1", TotalAmount: 9,
		Items: []orders.Item{{Name: "Pizza", Price: 9, Quantity: 1}},
	}, "k-running")
	if !errors.Is(err, ErrInProgress) {
		t.Fatalf("CreateOrder: expected ErrInProgress, got %v", err)
	}

	_, err = c.CreateReservation(ctx, ReservationInput{
		CustomerName: "Ana", CustomerPhone: "1", Date: "2025-06-01", Time: "19:00", NumberOfGuests: 2,
	}, "k-running")
	if !errors.Is(err, ErrInProgress) {
		t.Fatalf("CreateReservation: expected ErrInProgress, got %v", err)
	}

	list, err := c.ListOrders(ctx, "")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no order to be created, got %+v %v", list, err)
	}
}

func TestClient_AcceptedIsNotAnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"success":true,"message":"request already in progress"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).CreateOrder(context.Background(), OrderInput{}, "k1")
	var ae *APIError
	if !errors.Is(err, ErrInProgress) || errors.As(err, &ae) {
		t.Fatalf("expected ErrInProgress, got %v", err)
	}
}
