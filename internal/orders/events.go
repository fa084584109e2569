package orders

// Event types published to the orders queue.
const (
	EventCreated       = "order.created"
	EventStatusChanged = "order.status_changed"
)

// Event is the payload sent from the API to the orders queue and read by the worker.
type Event struct {
	Type          string `json:"type"`
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number,omitempty"`
	Status        string `json:"status"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// EventFor builds an event of type typ for o.
func EventFor(typ string, o *Order) Event {
	return Event{
		Type:        typ,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
	}
}
