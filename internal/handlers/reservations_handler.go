package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/lifecycle"
	"github.com/imrishuroy/go-restaurant-orders/internal/reservations"
	"github.com/imrishuroy/go-restaurant-orders/internal/validation"
)

const reservationNotFound = "Reservation not found"

// RegisterReservationsRoutes registers routes for reservation API.
func RegisterReservationsRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	v := validation.New()
	idempStore := cfg.idempotencyStore()
	store := reservations.NewStore(cfg.DynamoDBClient, cfg.ReservationsTable, cfg.StrictTransitions)
	r := g.Group("/reservations")

	r.POST("", func(c *gin.Context) {
		var req validation.CreateReservationRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			failure(c, err, reservationNotFound, "Failed to create reservation")
			return
		}

		createOnce(c, idempStore, "reservations", func(ctx context.Context) (*created, error) {
			res, err := store.Create(ctx, reservations.NewReservation{
				CustomerName:    req.CustomerName,
				CustomerEmail:   req.CustomerEmail,
				CustomerPhone:   req.CustomerPhone,
				Date:            req.Date,
				Time:            req.Time,
				NumberOfGuests:  req.NumberOfGuests.MustInt(),
				SpecialRequests: req.SpecialRequests,
			})
			if err != nil {
				return nil, err
			}
			return &created{
				ID:       res.ID,
				Location: "/api/reservations/" + res.ID,
				Body:     gin.H{"success": true, "message": "Reservation created successfully", "reservation": res},
			}, nil
		}, func(err error) {
			failure(c, err, reservationNotFound, "Failed to create reservation")
		})
	})

	r.GET("", func(c *gin.Context) {
		list, err := store.List(c.Request.Context(), reservations.Filter{
			Status: c.Query("status"),
			Date:   c.Query("date"),
		})
		if err != nil {
			failure(c, err, reservationNotFound, "Failed to fetch reservations")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "reservations": list})
	})

	r.GET("/statuses", func(c *gin.Context) {
		c.JSON(http.StatusOK, statusTable(lifecycle.Reservations.States(), lifecycle.Reservations.Next, cfg.StrictTransitions))
	})

	r.GET("/customer/:phone", func(c *gin.Context) {
		list, err := store.ListByCustomer(c.Request.Context(), c.Param("phone"))
		if err != nil {
			failure(c, err, reservationNotFound, "Failed to fetch customer reservations")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(list), "reservations": list})
	})

	r.GET("/:id", func(c *gin.Context) {
		res, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			failure(c, err, reservationNotFound, "Failed to fetch reservation")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "reservation": res})
	})

	r.PATCH("/:id/status", func(c *gin.Context) {
		var req validation.StatusRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			failure(c, err, reservationNotFound, "Failed to update reservation status")
			return
		}
		res, err := store.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			failure(c, err, reservationNotFound, "Failed to update reservation status")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation status updated successfully", "reservation": res})
	})

	r.DELETE("/:id", func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
			failure(c, err, reservationNotFound, "Failed to delete reservation")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Reservation deleted successfully"})
	})
}
