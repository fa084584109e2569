package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
	"github.com/imrishuroy/go-restaurant-orders/internal/lifecycle"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
	"github.com/imrishuroy/go-restaurant-orders/internal/validation"
)

const orderNotFound = "Order not found"

// orderEvents publishes order events when a queue is configured.
// Publishing is best effort: a failure is logged and the request still succeeds.
type orderEvents struct {
	pub *aws.Publisher
}

func (e orderEvents) emit(ctx context.Context, typ string, o *orders.Order, correlationID string) {
	if e.pub == nil {
		return
	}
	ev := orders.EventFor(typ, o)
	ev.CorrelationID = correlationID
	attrs := map[string]string{
		"event_type":     typ,
		"order_id":       o.ID,
		"correlation_id": correlationID,
	}
	if err := e.pub.Publish(ctx, ev, attrs); err != nil {
		log.Printf("[events] publish %s for order %s: %v", typ, o.ID, err)
	}
}

func newOrder(req validation.CreateOrderRequest) orders.NewOrder {
	items := make([]orders.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.Item{
			Name:     it.Name,
			Price:    it.Price.MustFloat(),
			Quantity: it.Quantity.MustInt(),
		})
	}
	return orders.NewOrder{
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
		Items:               items,
		TotalAmount:         req.TotalAmount.MustFloat(),
		DeliveryAddress:     req.DeliveryAddress,
		OrderType:           req.OrderType,
		SpecialInstructions: req.SpecialInstructions,
	}
}

// RegisterOrdersRoutes registers routes for order API.
func RegisterOrdersRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	v := validation.New()
	idempStore := cfg.idempotencyStore()
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable, cfg.StrictTransitions)
	events := orderEvents{pub: cfg.publisher()}
	r := g.Group("/orders")

	r.POST("", func(c *gin.Context) {
		var req validation.CreateOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			failure(c, err, orderNotFound, "Failed to create order")
			return
		}

		createOnce(c, idempStore, "orders", func(ctx context.Context) (*created, error) {
			order, err := ordersStore.Create(ctx, newOrder(req))
			if err != nil {
				return nil, err
			}
			events.emit(ctx, orders.EventCreated, order, c.GetHeader("X-Request-Id"))
			return &created{
				ID:       order.ID,
				Location: "/api/orders/" + order.ID,
				Body:     gin.H{"success": true, "message": "Order created successfully", "order": order},
			}, nil
		}, func(err error) {
			failure(c, err, orderNotFound, "Failed to create order")
		})
	})

	r.GET("", func(c *gin.Context) {
		list, err := ordersStore.List(c.Request.Context(), c.Query("status"))
		if err != nil {
			failure(c, err, orderNotFound, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "orders": list})
	})

	r.GET("/statuses", func(c *gin.Context) {
		c.JSON(http.StatusOK, statusTable(lifecycle.Orders.States(), lifecycle.Orders.Next, cfg.StrictTransitions))
	})

	r.GET("/customer/:phone", func(c *gin.Context) {
		list, err := ordersStore.ListByCustomer(c.Request.Context(), c.Param("phone"))
		if err != nil {
			failure(c, err, orderNotFound, "Failed to fetch customer orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "orders": list})
	})

	r.GET("/:id", func(c *gin.Context) {
		order, err := ordersStore.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			failure(c, err, orderNotFound, "Failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	})

	r.PATCH("/:id/status", func(c *gin.Context) {
		var req validation.StatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			failure(c, err, orderNotFound, "Failed to update order status")
			return
		}
		ctx := c.Request.Context()
		order, err := ordersStore.SetStatus(ctx, c.Param("id"), req.Status)
		if err != nil {
			failure(c, err, orderNotFound, "Failed to update order status")
			return
		}
		events.emit(ctx, orders.EventStatusChanged, order, c.GetHeader("X-Request-Id"))
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully", "order": order})
	})

	r.DELETE("/:id", func(c *gin.Context) {
		if err := ordersStore.Delete(c.Request.Context(), c.Param("id")); err != nil {
			failure(c, err, orderNotFound, "Failed to delete order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted successfully"})
	})
}
