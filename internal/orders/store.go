package orders

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

// Store encapsulates operations on the orders table.
type Store struct {
	table   *kv.Table
	strict  bool
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new orders Store. With strict set, status changes must
// follow lifecycle.Orders' transition table.
func NewStore(client aws.DynamoDBAPI, tableName string, strict bool) *Store {
	return &Store{
		table:   kv.NewTable(client, tableName),
		strict:  strict,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// Create stores a new pending order.
func (s *Store) Create(ctx context.Context, in NewOrder) (*Order, error) {
	now := s.nowFunc().UTC()
	orderType := in.OrderType
	if orderType == "" {
		orderType = TypeDelivery
	}
	items := in.Items
	if items == nil {
		items = []Item{}
	}
	o := Order{
		ID:                  s.newID(),
		OrderNumber:         fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CustomerName:        in.CustomerName,
		CustomerEmail:       in.CustomerEmail,
		CustomerPhone:       in.CustomerPhone,
		Items:               items,
		TotalAmount:         in.TotalAmount,
		DeliveryAddress:     in.DeliveryAddress,
		OrderType:           orderType,
		SpecialInstructions: in.SpecialInstructions,
		Status:              lifecycle.Orders.Initial(),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.table.Put(ctx, o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Get fetches an order by id. Returns apperr.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := s.table.Get(ctx, id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns orders, optionally with the given status, newest first.
func (s *Store) List(ctx context.Context, status string) ([]Order, error) {
	out, err := kv.Scan[Order](ctx, s.table, kv.Field{Name: "status", Value: status})
	if err != nil {
		return nil, err
	}
	SortNewestFirst(out)
	return out, nil
}

// ListByCustomer returns the orders placed with phone, newest first.
func (s *Store) ListByCustomer(ctx context.Context, phone string) ([]Order, error) {
	if phone == "" {
		return []Order{}, nil
	}
	out, err := kv.Scan[Order](ctx, s.table, kv.Field{Name: "customerPhone", Value: phone})
	if err != nil {
		return nil, err
	}
	SortNewestFirst(out)
	return out, nil
}

// SetStatus overwrites the status and updatedAt of an order and returns the
// updated record. A status outside the set is rejected before the store is
// touched. In strict mode the current status is read first and the write is
// conditional on it, so a concurrent change yields apperr.ErrStatusConflict.
func (s *Store) SetStatus(ctx context.Context, id, status string) (*Order, error) {
	if err := lifecycle.Orders.Validate(status); err != nil {
		return nil, err
	}

	var expect *kv.Field
	if s.strict {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := lifecycle.Orders.Check(current.Status, status, true); err != nil {
			return nil, err
		}
		expect = &kv.Field{Name: "status", Value: current.Status}
	}

	var o Order
	err := s.table.Update(ctx, id, []kv.Field{
		{Name: "status", Value: status},
		{Name: "updatedAt", Value: s.nowFunc().UTC()},
	}, expect, &o)
	if errors.Is(err, kv.ErrConditionFailed) {
		return nil, apperr.ErrStatusConflict
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Delete removes id. Deleting an absent id succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.table.Delete(ctx, id)
}

// SortNewestFirst orders by createdAt descending, ties broken by id.
func SortNewestFirst(list []Order) {
	slices.SortStableFunc(list, func(a, b Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
