package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestAddAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	r := NewRepo()
	a, err := r.Add(ctx, "T-Shirt", 499, "Black tee")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, _ := r.Add(ctx, "Mug", 299, "Ceramic")
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d,%d want 1,2", a.ID, b.ID)
	}
	if _, err := r.Remove(ctx, b.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	c, _ := r.Add(ctx, "Bag", 199, "Eco")
	if c.ID != 3 {
		t.Fatalf("removed id must not be reused, got %d", c.ID)
	}
}

func TestAddRejectsNonPositivePrice(t *testing.T) {
	ctx := context.Background()
	r := NewRepo()
	for _, p := range []float64{0, -1} {
		if _, err := r.Add(ctx, "X", p, ""); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %v: expected ErrInvalidPrice, got %v", p, err)
		}
	}
	if r.Len() != 0 {
		t.Fatalf("catalog must stay empty, len=%d", r.Len())
	}
}

func TestGetRemoveList(t *testing.T) {
	ctx := context.Background()
	r := NewRepo()
	for _, in := range DemoItems() {
		if _, err := r.Add(ctx, in.Name, in.Price, in.Description); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	got, err := r.Get(ctx, 2)
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if got.Name != "Кружка 'AI Inside'" || got.Price != 299 {
		t.Fatalf("unexpected item %+v", got)
	}

	if _, err := r.Remove(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	removed, err := r.Remove(ctx, 2)
	if err != nil || removed.ID != 2 {
		t.Fatalf("remove: %v %v", removed, err)
	}
	if it, _ := r.Get(ctx, 2); it != nil {
		t.Fatalf("item 2 still present: %+v", it)
	}

	list, _ := r.List(ctx)
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 3 {
		t.Fatalf("list order broken: %+v", list)
	}
}

func TestParseItemInput(t *testing.T) {
	in, err := ParseItemInput("T-Shirt;499;Black tee")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if in.Name != "T-Shirt" || in.Price != 499 || in.Description != "Black tee" {
		t.Fatalf("unexpected %+v", in)
	}

	in, err = ParseItemInput("  Кружка ; 12,50 ; опис; з крапкою з комою ")
	if err != nil {
		t.Fatalf("parse comma price: %v", err)
	}
	if in.Price != 12.5 || in.Description != "опис; з крапкою з комою" {
		t.Fatalf("unexpected %+v", in)
	}

	bad := map[string]error{
		"only;two":       ErrInvalidFormat,
		"no separators":  ErrInvalidFormat,
		";10;desc":       ErrInvalidFormat,
		"Name;abc;desc":  ErrInvalidPrice,
		"Name;0;desc":    ErrInvalidPrice,
		"Name;-5;desc":   ErrInvalidPrice,
		"Name;NaN;desc":  ErrInvalidPrice,
		"Name;+Inf;desc": ErrInvalidPrice,
	}
	for text, want := range bad {
		if _, err := ParseItemInput(text); !errors.Is(err, want) {
			t.Fatalf("%q: expected %v, got %v", text, want, err)
		}
	}
}

func TestParsePriceHasNoUpperBound(t *testing.T) {
	v, err := ParsePrice("5e12")
	if err != nil || v != 5e12 {
		t.Fatalf("ParsePrice(5e12) = %v, %v", v, err)
	}
	if _, err := ParsePrice("-Inf"); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice for -Inf, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	if id, err := ParseID(" 17 "); err != nil || id != 17 {
		t.Fatalf("ParseID = %d, %v", id, err)
	}
	if _, err := ParseID("x1"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
