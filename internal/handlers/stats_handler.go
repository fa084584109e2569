package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/lifecycle"
	"github.com/imrishuroy/go-restaurant-orders/internal/menu"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
	"github.com/imrishuroy/go-restaurant-orders/internal/reservations"
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalOrders          int            `json:"totalOrders"`
	PendingOrders        int            `json:"pendingOrders"`
	OrdersByStatus       map[string]int `json:"ordersByStatus"`
	TotalReservations    int            `json:"totalReservations"`
	ReservationsByStatus map[string]int `json:"reservationsByStatus"`
	MenuItems            int            `json:"menuItems"`
	AvailableMenuItems   int            `json:"availableMenuItems"`
}

// RegisterStatsRoutes registers GET /stats.
func RegisterStatsRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	menuStore := menu.NewStore(cfg.DynamoDBClient, cfg.MenuTable)
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable, cfg.StrictTransitions)
	reservationsStore := reservations.NewStore(cfg.DynamoDBClient, cfg.ReservationsTable, cfg.StrictTransitions)

	g.GET("/stats", func(c *gin.Context) {
		ctx := c.Request.Context()
		const failed = "Failed to fetch stats"

		orderList, err := ordersStore.List(ctx, "")
		if err != nil {
			failure(c, err, "", failed)
			return
		}
		resList, err := reservationsStore.List(ctx, reservations.Filter{})
		if err != nil {
			failure(c, err, "", failed)
			return
		}
		items, err := menuStore.List(ctx, "")
		if err != nil {
			failure(c, err, "", failed)
			return
		}

		// group counts by status, every known status present
		s := Stats{
			OrdersByStatus:       map[string]int{},
			ReservationsByStatus: map[string]int{},
		}
		for _, st := range lifecycle.Orders.States() {
			s.OrdersByStatus[st] = 0
		}
		for _, st := range lifecycle.Reservations.States() {
			s.ReservationsByStatus[st] = 0
		}
		for _, o := range orderList {
			s.OrdersByStatus[o.Status]++
		}
		for _, r := range resList {
			s.ReservationsByStatus[r.Status]++
		}
		for _, it := range items {
			if it.Available {
				s.AvailableMenuItems++
			}
		}
		s.TotalOrders = len(orderList)
		s.PendingOrders = s.OrdersByStatus[lifecycle.OrderPending]
		s.TotalReservations = len(resList)
		s.MenuItems = len(items)

		c.JSON(http.StatusOK, gin.H{"success": true, "stats": s})
	})
}
