package reservations

import (
	"time"

	"github.com/imrishuroy/go-restaurant-orders/internal/lifecycle"
)

// Reservation represents the item stored in the reservations table.
type Reservation struct {
	ID                string    `json:"id" dynamodbav:"id"`                               // PK
	ReservationNumber string    `json:"reservationNumber" dynamodbav:"reservationNumber"` // RES-<unix ms>
	CustomerName      string    `json:"customerName" dynamodbav:"customerName"`
	CustomerEmail     string    `json:"customerEmail" dynamodbav:"customerEmail"`
	CustomerPhone     string    `json:"customerPhone" dynamodbav:"customerPhone"`
	Date              string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Time              string    `json:"time" dynamodbav:"time"` // HH:MM
	NumberOfGuests    int       `json:"numberOfGuests" dynamodbav:"numberOfGuests"`
	SpecialRequests   string    `json:"specialRequests" dynamodbav:"specialRequests"`
	Status            string    `json:"status" dynamodbav:"status"`
	CreatedAt         time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewReservation carries the caller-supplied fields of a reservation.
type NewReservation struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            string
	Time            string
	NumberOfGuests  int
	SpecialRequests string
}

// Filter selects reservations by exact status and/or date. Empty fields match all.
type Filter struct {
	Status string
	Date   string
}

// Statuses returns the fixed reservation status set.
func Statuses() []string { return lifecycle.Reservations.States() }
