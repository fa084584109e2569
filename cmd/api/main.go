package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
	"github.com/imrishuroy/go-restaurant-orders/internal/config"
	"github.com/imrishuroy/go-restaurant-orders/internal/handlers"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), handlers.CORS())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(r, cfg)

	return r
}

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient:    clients.DynamoDB,
		SQSClient:         clients.SQS,
		MenuTable:         conf.Tables.Menu,
		OrdersTable:       conf.Tables.Orders,
		ReservationsTable: conf.Tables.Reservations,
		IdempotencyTable:  conf.Tables.Idempotency,
		QueueURL:          conf.Queue.OrdersURL,
		TTLWindow:         conf.API.IdempotencyTTL,
		StrictTransitions: conf.API.StrictTransitions,
	}

	r := setupRouter(cfg)

	// RUN_LOCAL=true serves HTTP directly for development.
	if conf.RunLocal {
		addr := ":" + conf.API.Port
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
