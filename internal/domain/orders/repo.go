package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Spok95/orderbots/internal/domain/catalog"
)

type Repo struct {
	mu     sync.RWMutex
	nextID int64
	orders map[int64]Order
	now    func() time.Time
}

func NewRepo() *Repo {
	return &Repo{nextID: 1, orders: make(map[int64]Order), now: time.Now}
}

// WithClock подменяет часы (для тестов)
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

func (r *Repo) Create(_ context.Context, c Customer, item catalog.Item) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o := Order{
		ID:        r.nextID,
		Customer:  c,
		Item:      item,
		CreatedAt: r.now(),
		Status:    StatusPending,
	}
	r.nextID++
	r.orders[o.ID] = o
	return &o, nil
}

// Get возвращает nil, nil если заказа нет.
func (r *Repo) Get(_ context.Context, id int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

// SetStatus меняет статус только по таблице переходов.
func (r *Repo) SetStatus(_ context.Context, id int64, to Status) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !o.Status.CanTransition(to) {
		return nil, &TransitionError{ID: id, From: o.Status, To: to}
	}
	o.Status = to
	r.orders[id] = o
	return &o, nil
}

// ListByUser новые сверху, не больше limit (limit <= 0 без ограничения)
func (r *Repo) ListByUser(_ context.Context, userID int64, limit int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := lo.Filter(lo.Values(r.orders), func(o Order, _ int) bool {
		return o.Customer.ID == userID
	})
	return newestFirst(list, limit), nil
}

func (r *Repo) ListRecent(_ context.Context, limit int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return newestFirst(lo.Values(r.orders), limit), nil
}

// All все заказы по возрастанию id (для выгрузки)
func (r *Repo) All(_ context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := lo.Values(r.orders)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func newestFirst(list []Order, limit int) []Order {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
