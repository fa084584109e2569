// Package lifecycle models the fixed status sets of orders and reservations
// together with their documented transition tables.
package lifecycle

import "github.com/imrishuroy/go-restaurant-orders/internal/apperr"

// Transition is one documented edge of a status workflow.
type Transition struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Machine is a fixed status set plus its transition table.
// Whether the table is enforced is up to the caller (see Check).
type Machine struct {
	states      []string
	transitions []Transition
	edges       map[Transition]bool
	member      map[string]bool
}

// New builds a Machine. The first state is the initial one.
func New(states []string, transitions []Transition) *Machine {
	m := &Machine{
		states:      states,
		transitions: transitions,
		edges:       make(map[Transition]bool, len(transitions)),
		member:      make(map[string]bool, len(states)),
	}
	for _, s := range states {
		m.member[s] = true
	}
	for _, t := range transitions {
		m.edges[t] = true
	}
	return m
}

// Initial returns the status new records start in.
func (m *Machine) Initial() string { return m.states[0] }

// States returns the status set in declaration order.
func (m *Machine) States() []string { return append([]string(nil), m.states...) }

// Transitions returns the documented transition table.
func (m *Machine) Transitions() []Transition { return append([]Transition(nil), m.transitions...) }

// Valid reports whether status belongs to the set.
func (m *Machine) Valid(status string) bool { return m.member[status] }

// Validate returns an *apperr.InvalidStatusError when status is outside the set.
func (m *Machine) Validate(status string) error {
	if m.Valid(status) {
		return nil
	}
	return &apperr.InvalidStatusError{Status: status, Allowed: m.States()}
}

// Next returns the states reachable from status in one step.
func (m *Machine) Next(status string) []string {
	var next []string
	for _, t := range m.transitions {
		if t.From == status {
			next = append(next, t.To)
		}
	}
	return next
}

// Terminal reports whether no transition leaves status.
func (m *Machine) Terminal(status string) bool { return len(m.Next(status)) == 0 }

// CanTransition reports whether from -> to is in the table.
func (m *Machine) CanTransition(from, to string) bool {
	return m.edges[Transition{From: from, To: to}]
}

// Check validates a requested change. Membership of to is always checked;
// the transition table only when strict is set.
func (m *Machine) Check(from, to string, strict bool) error {
	if err := m.Validate(to); err != nil {
		return err
	}
	if strict && !m.CanTransition(from, to) {
		return &apperr.TransitionError{From: from, To: to, Next: m.Next(from)}
	}
	return nil
}

// Order statuses.
const (
	OrderPending        = "pending"
	OrderConfirmed      = "confirmed"
	OrderPreparing      = "preparing"
	OrderReady          = "ready"
	OrderOutForDelivery = "out-for-delivery"
	OrderDelivered      = "delivered"
	OrderCancelled      = "cancelled"
)

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationSeated    = "seated"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
	ReservationNoShow    = "no-show"
)

// Orders is the order workflow: a forward chain with cancelled reachable
// from every non-terminal state. Pickup orders may skip out-for-delivery.
var Orders = New(
	[]string{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderOutForDelivery, OrderDelivered, OrderCancelled},
	[]Transition{
		{OrderPending, OrderConfirmed},
		{OrderConfirmed, OrderPreparing},
		{OrderPreparing, OrderReady},
		{OrderReady, OrderOutForDelivery},
		{OrderReady, OrderDelivered},
		{OrderOutForDelivery, OrderDelivered},
		{OrderPending, OrderCancelled},
		{OrderConfirmed, OrderCancelled},
		{OrderPreparing, OrderCancelled},
		{OrderReady, OrderCancelled},
		{OrderOutForDelivery, OrderCancelled},
	},
)

// Reservations is the reservation workflow.
var Reservations = New(
	[]string{ReservationPending, ReservationConfirmed, ReservationSeated, ReservationCompleted, ReservationCancelled, ReservationNoShow},
	[]Transition{
		{ReservationPending, ReservationConfirmed},
		{ReservationConfirmed, ReservationSeated},
		{ReservationSeated, ReservationCompleted},
		{ReservationPending, ReservationCancelled},
		{ReservationConfirmed, ReservationCancelled},
		{ReservationConfirmed, ReservationNoShow},
	},
)
