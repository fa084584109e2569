package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
	"github.com/imrishuroy/go-restaurant-orders/internal/orders"
)

// metricName is the CloudWatch metric counted once per processed event.
const metricName = "OrderEvents"

// Processor turns order events into kitchen tickets and metrics.
type Processor struct {
	orderStore *orders.Store
	metrics    *aws.Metrics // nil disables metrics
}

// NewProcessor creates a worker processor. An empty namespace disables metrics.
func NewProcessor(clients *aws.AWSClients, ordersTable, namespace string) *Processor {
	p := &Processor{
		orderStore: orders.NewStore(clients.DynamoDB, ordersTable, false),
	}
	if namespace != "" && clients.CloudWatch != nil {
		p.metrics = aws.NewMetrics(clients.CloudWatch, namespace)
	}
	return p
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	log.Printf("[worker] received %d SQS messages", len(ev.Records))
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("[worker] error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg orders.Event
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if msg.OrderID == "" || msg.Type == "" {
		return fmt.Errorf("invalid message %s: missing type or order_id", rec.MessageId)
	}

	order, err := p.orderStore.Get(ctx, msg.OrderID)
	if errors.Is(err, apperr.ErrNotFound) {
		log.Printf("[worker] order=%s deleted before %s was processed, skipping", msg.OrderID, msg.Type)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}

	log.Printf("[worker] %s", ticket(msg, order))

	if p.metrics != nil {
		dims := map[string]string{"Status": msg.Status, "EventType": msg.Type}
		if err := p.metrics.Count(ctx, metricName, 1, dims); err != nil {
			// best effort, the message is not retried for a metric
			log.Printf("[worker] metric for order=%s: %v", msg.OrderID, err)
		}
	}
	return nil
}

// ticket renders one kitchen line, e.g.
// "order.created ORD-1 (delivery) status=pending: 2x Pizza, 1x Salad".
func ticket(msg orders.Event, o *orders.Order) string {
	lines := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s) status=%s", msg.Type, o.OrderNumber, o.OrderType, msg.Status)
	if o.Status != msg.Status {
		fmt.Fprintf(&b, " now=%s", o.Status)
	}
	if len(lines) > 0 {
		b.WriteString(": " + strings.Join(lines, ", "))
	}
	if o.SpecialInstructions != "" {
		b.WriteString(" note=" + o.SpecialInstructions)
	}
	if msg.CorrelationID != "" {
		b.WriteString(" corr=" + msg.CorrelationID)
	}
	return b.String()
}
