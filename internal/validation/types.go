package validation

// MenuItemRequest is the payload for POST /api/menu and PUT /api/menu/:id.
// PUT replaces the whole record: absent optional fields are written as defaults.
type MenuItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       Number `json:"price"` // required, >= 0
	Category    string `json:"category" validate:"required"`
	Image       string `json:"image"`
	Available   *bool  `json:"available"` // defaults to true
}

// OrderItemRequest is one line of an order, a snapshot of menu data.
type OrderItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Price    Number `json:"price"`    // required, >= 0
	Quantity Number `json:"quantity"` // required, >= 1
}

// CreateOrderRequest is the payload for POST /api/orders.
// TotalAmount is taken as supplied; it is not checked against the items.
type CreateOrderRequest struct {
	CustomerName        string             `json:"customerName" validate:"required"`
	CustomerEmail       string             `json:"customerEmail"`
	CustomerPhone       string             `json:"customerPhone" validate:"required"`
	Items               []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount         Number             `json:"totalAmount"` // required, >= 0
	DeliveryAddress     string             `json:"deliveryAddress"`
	OrderType           string             `json:"orderType" validate:"omitempty,oneof=delivery pickup"`
	SpecialInstructions string             `json:"specialInstructions"`
}

// CreateReservationRequest is the payload for POST /api/reservations.
type CreateReservationRequest struct {
	CustomerName    string `json:"customerName" validate:"required"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone" validate:"required"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	NumberOfGuests  Number `json:"numberOfGuests"` // required, >= 1
	SpecialRequests string `json:"specialRequests"`
}

// StatusRequest is the payload for PATCH /:id/status. Membership is checked
// by the lifecycle, not here, so an empty status gets the same message as
// any other invalid one.
type StatusRequest struct {
	Status string `json:"status"`
}
