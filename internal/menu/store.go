package menu

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/imrishuroy/go-restaurant-orders/internal/aws"
	"github.com/imrishuroy/go-restaurant-orders/internal/kv"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Store encapsulates operations on the menu table.
type Store struct {
	table   *kv.Table
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new menu Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		table:   kv.NewTable(client, tableName),
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// Create stores a new item with a fresh id; createdAt and updatedAt are equal.
func (s *Store) Create(ctx context.Context, in Input) (*MenuItem, error) {
	now := s.nowFunc().UTC()
	item := MenuItem{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Available:   in.available(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.table.Put(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get fetches an item by id. Returns apperr.ErrNotFound if absent.
func (s *Store) Get(ctx context.Context, id string) (*MenuItem, error) {
	var item MenuItem
	if err := s.table.Get(ctx, id, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns the items, optionally restricted to one category, ordered by
// (category, name) ascending.
func (s *Store) List(ctx context.Context, category string) ([]MenuItem, error) {
	items, err := kv.Scan[MenuItem](ctx, s.table, kv.Field{Name: "category", Value: category})
	if err != nil {
		return nil, err
	}
	SortByCategoryAndName(items)
	return items, nil
}

// Replace overwrites every editable field of an existing item. Fields the
// caller left empty are written as their defaults, never merged with the
// previous values. Returns apperr.ErrNotFound if id is absent.
func (s *Store) Replace(ctx context.Context, id string, in Input) (*MenuItem, error) {
	var item MenuItem
	err := s.table.Update(ctx, id, []kv.Field{
		{Name: "name", Value: in.Name},
		{Name: "description", Value: in.Description},
		{Name: "price", Value: in.Price},
		{Name: "category", Value: in.Category},
		{Name: "image", Value: in.Image},
		{Name: "available", Value: in.available()},
		{Name: "updatedAt", Value: s.nowFunc().UTC()},
	}, nil, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes id. Deleting an absent id succeeds.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.table.Delete(ctx, id)
}

// SortByCategoryAndName orders items by category, then name, using English
// collation so "desserts" sorts before "Mains".
func SortByCategoryAndName(items []MenuItem) {
	// a Collator keeps internal buffers and is not safe for concurrent use
	col := collate.New(language.English)
	slices.SortStableFunc(items, func(a, b MenuItem) int {
		if c := col.CompareString(a.Category, b.Category); c != 0 {
			return c
		}
		return col.CompareString(a.Name, b.Name)
	})
}
