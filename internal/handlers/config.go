package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
	"github.com/imrishuroy/go-restaurant-orders/internal/idempotency"
)

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	DynamoDBClient    aws.DynamoDBAPI
	SQSClient         aws.SQSAPI // optional, nil disables order events
	MenuTable         string
	OrdersTable       string
	ReservationsTable string
	IdempotencyTable  string // optional, empty disables Idempotency-Key handling
	QueueURL          string
	TTLWindow         time.Duration
	StrictTransitions bool
}

func (cfg HandlerConfig) idempotencyStore() *idempotency.Store {
	if cfg.IdempotencyTable == "" {
		return nil
	}
	return idempotency.NewStore(cfg.DynamoDBClient, cfg.IdempotencyTable, cfg.TTLWindow)
}

func (cfg HandlerConfig) publisher() *aws.Publisher {
	if cfg.SQSClient == nil || cfg.QueueURL == "" {
		return nil
	}
	return aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)
}

// RegisterRoutes mounts every resource under /api.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	api := r.Group("/api")
	RegisterMenuRoutes(api, cfg)
	RegisterOrdersRoutes(api, cfg)
	RegisterReservationsRoutes(api, cfg)
	RegisterStatsRoutes(api, cfg)
}
