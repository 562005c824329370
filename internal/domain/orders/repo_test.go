package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Spok95/orderbots/internal/domain/catalog"
)

var tee = catalog.Item{ID: 3, Name: "T-Shirt", Price: 499, Description: "Black tee"}

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func TestCreateSnapshotsItem(t *testing.T) {
	ctx := context.Background()
	r := NewRepo()
	item := tee
	o, err := r.Create(ctx, Customer{ID: 7, FullName: "Ivan"}, item)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Status != StatusPending || o.ID != 1 {
		t.Fatalf("unexpected order %+v", o)
	}
	item.Name = "renamed"
	got, _ := r.Get(ctx, o.ID)
	if got.Item.Name != "T-Shirt" {
		t.Fatalf("order item must be a snapshot, got %q", got.Item.Name)
	}
}

func TestSnapshotSurvivesCatalogRemoval(t *testing.T) {
	ctx := context.Background()
	cat := catalog.NewRepo()
	it, _ := cat.Add(ctx, "Mug", 299, "Ceramic")
	r := NewRepo()
	o, _ := r.Create(ctx, Customer{ID: 1}, *it)
	if _, err := cat.Remove(ctx, it.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ := r.Get(ctx, o.ID)
	if got == nil || got.Item.ID != it.ID || got.Item.Name != "Mug" || got.Item.Price != 299 {
		t.Fatalf("order changed after catalog removal: %+v", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusWaitingPayment}: true,
		{StatusPending, StatusCancelled}:      true,
		{StatusWaitingPayment, StatusPaid}:      true,
		{StatusWaitingPayment, StatusCancelled}: true,
	}
	all := []Status{StatusPending, StatusWaitingPayment, StatusPaid, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			if got := from.CanTransition(to); got != allowed[[2]Status{from, to}] {
				t.Fatalf("%s -> %s: CanTransition=%v", from, to, got)
			}
		}
	}
	if !StatusPaid.Terminal() || !StatusCancelled.Terminal() || StatusPending.Terminal() {
		t.Fatal("terminal flags are wrong")
	}
	if Status("shipped").Valid() {
		t.Fatal("unknown status must be invalid")
	}
}

func TestSetStatusRejectsIllegalTransition(t *testing.T) {
	ctx := context.Background()
	r := NewRepo()
	o, _ := r.Create(ctx, Customer{ID: 1}, tee)

	if _, err := r.SetStatus(ctx, o.ID, StatusPaid); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("pending -> paid must fail, got %v", err)
	}
	if _, err := r.SetStatus(ctx, o.ID, StatusWaitingPayment); err != nil {
		t.Fatalf("pending -> waiting_payment: %v", err)
	}
	if _, err := r.SetStatus(ctx, o.ID, StatusPaid); err != nil {
		t.Fatalf("waiting_payment -> paid: %v", err)
	}

	_, err := r.SetStatus(ctx, o.ID, StatusCancelled)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if te.From != StatusPaid || te.To != StatusCancelled {
		t.Fatalf("unexpected transition error %+v", te)
	}
	got, _ := r.Get(ctx, o.ID)
	if got.Status != StatusPaid {
		t.Fatalf("status changed after rejected transition: %s", got.Status)
	}

	if _, err := r.SetStatus(ctx, 404, StatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByUserNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	r := NewRepo().WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	for i := 0; i < 15; i++ {
		_, _ = r.Create(ctx, Customer{ID: 1}, tee)
		_, _ = r.Create(ctx, Customer{ID: 2}, tee)
	}
	list, _ := r.ListByUser(ctx, 1, UserListLimit)
	if len(list) != UserListLimit {
		t.Fatalf("len = %d, want %d", len(list), UserListLimit)
	}
	for i, o := range list {
		if o.Customer.ID != 1 {
			t.Fatalf("foreign order in list: %+v", o)
		}
		if i > 0 && !list[i-1].CreatedAt.After(o.CreatedAt) {
			t.Fatalf("list not newest-first at %d", i)
		}
	}
	if list[0].ID != 29 {
		t.Fatalf("newest order id = %d, want 29", list[0].ID)
	}

	recent, _ := r.ListRecent(ctx, AdminListLimit)
	if len(recent) != AdminListLimit || recent[0].ID != 30 {
		t.Fatalf("recent: len=%d first=%d", len(recent), recent[0].ID)
	}

	all, _ := r.All(ctx)
	if len(all) != 30 || all[0].ID != 1 || all[29].ID != 30 {
		t.Fatalf("All must be ascending, got len=%d", len(all))
	}
}

func TestListSameTimestampFallsBackToID(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRepo().WithClock(func() time.Time { return at })
	for i := 0; i < 3; i++ {
		_, _ = r.Create(ctx, Customer{ID: 5}, tee)
	}
	list, _ := r.ListByUser(ctx, 5, 0)
	if list[0].ID != 3 || list[2].ID != 1 {
		t.Fatalf("tie-break by id failed: %d..%d", list[0].ID, list[2].ID)
	}
}
