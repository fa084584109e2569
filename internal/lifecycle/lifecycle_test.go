package lifecycle

import (
	"errors"
	"testing"

	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
)

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderOutForDelivery, true},
		{OrderReady, OrderDelivered, true},
		{OrderOutForDelivery, OrderDelivered, true},
		{OrderPending, OrderCancelled, true},
		{OrderOutForDelivery, OrderCancelled, true},
		{OrderPending, OrderDelivered, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderCancelled, OrderPending, false},
		{OrderPreparing, OrderConfirmed, false},
		{"", OrderPending, false},
	}
	for _, tt := range tests {
		got := Orders.CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("Orders.CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReservationTransitions(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{ReservationPending, ReservationConfirmed, true},
		{ReservationConfirmed, ReservationSeated, true},
		{ReservationSeated, ReservationCompleted, true},
		{ReservationConfirmed, ReservationNoShow, true},
		{ReservationPending, ReservationSeated, false},
		{ReservationCompleted, ReservationCancelled, false},
		{ReservationNoShow, ReservationConfirmed, false},
	}
	for _, tt := range tests {
		got := Reservations.CanTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("Reservations.CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []string{OrderDelivered, OrderCancelled} {
		if !Orders.Terminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []string{ReservationCompleted, ReservationCancelled, ReservationNoShow} {
		if !Reservations.Terminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	// cancelled is reachable from every non-terminal order state
	for _, s := range Orders.States() {
		if Orders.Terminal(s) {
			continue
		}
		if !Orders.CanTransition(s, OrderCancelled) {
			t.Errorf("cancelled not reachable from %s", s)
		}
	}
}

func TestCheck_PermissiveAllowsAnyMember(t *testing.T) {
	if err := Orders.Check(OrderDelivered, OrderPending, false); err != nil {
		t.Fatalf("permissive check should allow any member, got %v", err)
	}
	err := Orders.Check(OrderPending, "shipped", false)
	if !errors.Is(err, apperr.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	want := "Invalid status. Must be one of: pending, confirmed, preparing, ready, out-for-delivery, delivered, cancelled"
	if err.Error() != want {
		t.Fatalf("got %q", err.Error())
	}
}

func TestCheck_StrictEnforcesTable(t *testing.T) {
	if err := Reservations.Check(ReservationPending, ReservationConfirmed, true); err != nil {
		t.Fatalf("expected allowed, got %v", err)
	}
	err := Reservations.Check(ReservationPending, ReservationCompleted, true)
	if !errors.Is(err, apperr.ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got %v", err)
	}
	var te *apperr.TransitionError
	if !errors.As(err, &te) || len(te.Next) != 2 {
		t.Fatalf("expected next states in error, got %+v", te)
	}
}

func TestInitial(t *testing.T) {
	if Orders.Initial() != OrderPending || Reservations.Initial() != ReservationPending {
		t.Fatal("initial status should be pending")
	}
}
