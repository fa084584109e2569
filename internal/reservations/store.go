package reservations

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
	"github.com/imrishuroy/go-restaurant-orders/internal/kv"
	"github.com/imrishuroy/go-restaurant-orders/internal/lifecycle"
)

// Store encapsulates operations on the reservations table.
type Store struct {
	table   *kv.Table
	strict  bool
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new reservations Store. With strict set, status
// changes must follow lifecycle.Reservations' transition table.
func NewStore(client aws.DynamoDBAPI, tableName string, strict bool) *Store {
	return &Store{
		table:   kv.NewTable(client, tableName),
		strict:  strict,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// Create stores a new pending reservation.
func (s *Store) Create(ctx context.Context, in NewReservation) (*Reservation, error) {
	now := s.nowFunc().UTC()
	r := Reservation{
		ID:                s.newID(),
		ReservationNumber: fmt.Sprintf("RES-%d", now.UnixMilli()),
		CustomerName:      in.CustomerName,
		CustomerEmail:     in.CustomerEmail,
		CustomerPhone:     in.CustomerPhone,
		Date:              in.Date,
		Time:              in.Time,
		NumberOfGuests:    in.NumberOfGuests,
		SpecialRequests:   in.SpecialRequests,
		Status:            lifecycle.Reservations.Initial(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.table.Put(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Get fetches a reservation by id. Returns apperr.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (*Reservation, error) {
	var r Reservation
	if err := s.table.Get(ctx, id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns reservations matching f, earliest (date, time) first.
func (s *Store) List(ctx context.Context, f Filter) ([]Reservation, error) {
	out, err := kv.Scan[Reservation](ctx, s.table,
		kv.Field{Name: "status", Value: f.Status},
		kv.Field{Name: "date", Value: f.Date},
	)
	if err != nil {
		return nil, err
	}
	SortBySchedule(out, false)
	return out, nil
}

// ListByCustomer returns the reservations made with phone, latest (date, time) first.
func (s *Store) ListByCustomer(ctx context.Context, phone string) ([]Reservation, error) {
	if phone == "" {
		return []Reservation{}, nil
	}
	out, err := kv.Scan[Reservation](ctx, s.table, kv.Field{Name: "customerPhone", Value: phone})
	if err != nil {
		return nil, err
	}
	SortBySchedule(out, true)
	return out, nil
}

// SetStatus overwrites the status and updatedAt of a reservation; see
// orders.Store.SetStatus for the strict-mode contract.
func (s *Store) SetStatus(ctx context.Context, id, status string) (*Reservation, error) {
	if err := lifecycle.Reservations.Validate(status); err != nil {
		return nil, err
	}

	var expect *kv.Field
	if s.strict {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := lifecycle.Reservations.Check(current.Status, status, true); err != nil {
			return nil, err
		}
		expect = &kv.Field{Name: "status", Value: current.Status}
	}

	var r Reservation
	err := s.table.Update(ctx, id, []kv.Field{
		{Name: "status", Value: status},
		{Name: "updatedAt", Value: s.nowFunc().UTC()},
	}, expect, &r)
	if errors.Is(err, kv.ErrConditionFailed) {
		return nil, apperr.ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes id. Deleting an absent id succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.table.Delete(ctx, id)
}

// SortBySchedule orders by date then time, ascending or descending.
// Dates and times compare as strings, which is chronological for
// zero-padded YYYY-MM-DD and HH:MM values.
func SortBySchedule(list []Reservation, desc bool) {
	slices.SortStableFunc(list, func(a, b Reservation) int {
		c := cmp.Compare(a.Date, b.Date)
		if c == 0 {
			c = cmp.Compare(a.Time, b.Time)
		}
		if desc {
			return -c
		}
		return c
	})
}
