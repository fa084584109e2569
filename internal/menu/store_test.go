package menu

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
	"github.com/imrishuroy/go-restaurant-orders/internal/dynamotest"
)

func newTestStore(t *testing.T) (*Store, *dynamotest.Fake) {
	t.Helper()
	fake := dynamotest.New()
	fake.CreateTable("menu", "id")
	s := NewStore(fake, "menu")
	var n int
	s.newID = func() string { n++; return fmt.Sprintf("item-%d", n) }
	return s, fake
}

func TestCreate_Defaults(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, Input{Name: "Pizza", Price: 12.5, Category: "Mains"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("createdAt and updatedAt must be equal at creation")
	}

	got, err := s.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Available {
		t.Fatalf("available should default to true")
	}
	if got.Description != "" || got.Image != "" {
		t.Fatalf("optional strings should default to empty, got %+v", got)
	}
	if got.Price != 12.5 || got.Category != "Mains" {
		t.Fatalf("unexpected item %+v", got)
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	fake := dynamotest.New()
	fake.CreateTable("menu", "id")
	s := NewStore(fake, "menu") // real uuid generator

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		item, err := s.Create(context.Background(), Input{Name: "x", Category: "y"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %s", item.ID)
		}
		seen[item.ID] = true
	}
	if fake.Len("menu") != 50 {
		t.Fatalf("expected 50 stored items, got %d", fake.Len("menu"))
	}
}

func TestList_SortedAndFiltered(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	for _, in := range []Input{
		{Name: "Tiramisu", Category: "Desserts"},
		{Name: "Pizza", Category: "Mains"},
		{Name: "Burger", Category: "Mains"},
		{Name: "Cake", Category: "Desserts"},
	} {
		if _, err := s.Create(ctx, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Cake", "Tiramisu", "Burger", "Pizza"}
	for i, item := range all {
		if item.Name != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i], item.Name)
		}
	}

	mains, err := s.List(ctx, "Mains")
	if err != nil {
		t.Fatalf("list mains: %v", err)
	}
	if len(mains) != 2 || mains[0].Name != "Burger" || mains[1].Name != "Pizza" {
		t.Fatalf("unexpected mains %+v", mains)
	}

	none, err := s.List(ctx, "Drinks")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %v %v", none, err)
	}
}

func TestSortByCategoryAndName_MixedCase(t *testing.T) {
	items := []MenuItem{
		{Name: "Lemonade", Category: "drinks"},
		{Name: "Burger", Category: "Mains"},
		{Name: "iced tea", Category: "drinks"},
		{Name: "cake", Category: "desserts"},
		{Name: "Éclair", Category: "desserts"},
	}
	SortByCategoryAndName(items)

	want := []string{"cake", "Éclair", "iced tea", "Lemonade", "Burger"}
	for i, item := range items {
		if item.Name != want[i] {
			t.Fatalf("position %d: want %s, got %s (%+v)", i, want[i], item.Name, items)
		}
	}
}

func TestReplace_WritesDefaultsForAbsentFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	unavailable := false
	created, _ := s.Create(ctx, Input{
		Name: "Pizza", Description: "cheesy", Price: 12.5, Category: "Mains",
		Image: "http://img/pizza.png", Available: &unavailable,
	})

	base := s.nowFunc
	s.nowFunc = func() time.Time { return base().Add(time.Minute) }

	updated, err := s.Replace(ctx, created.ID, Input{Name: "Pizza XL", Price: 15, Category: "Mains"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if updated.Description != "" || updated.Image != "" {
		t.Fatalf("replace must not merge previous values, got %+v", updated)
	}
	if !updated.Available {
		t.Fatalf("absent available should be written as true")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt must be preserved")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("updatedAt must advance")
	}
}

func TestReplace_NotFound(t *testing.T) {
	s, fake := newTestStore(t)
	_, err := s.Replace(context.Background(), "missing", Input{Name: "x", Category: "y"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if fake.Len("menu") != 0 {
		t.Fatalf("replace of a missing id must not create it")
	}
}

func TestGetAndDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "nope"); err != nil {
		t.Fatalf("delete of absent id should succeed, got %v", err)
	}

	item, _ := s.Create(ctx, Input{Name: "Soup", Category: "Starters"})
	if err := s.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, item.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreFailure(t *testing.T) {
	s, fake := newTestStore(t)
	fake.FailWith(errors.New("no route to host"))

	var se *apperr.StoreError
	if _, err := s.List(context.Background(), ""); !errors.As(err, &se) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}
