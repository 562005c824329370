package catalog

import (
	"context"
	"sync"

	"github.com/samber/lo"
)

// Repo: каталог в памяти процесса. id выдаются по возрастанию и не переиспользуются.
type Repo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Item
	order  []int64
}

func NewRepo() *Repo {
	return &Repo{nextID: 1, items: make(map[int64]Item)}
}

func (r *Repo) Add(_ context.Context, name string, price float64, description string) (*Item, error) {
	if !(price > 0) {
		return nil, ErrInvalidPrice
	}
	if name == "" {
		return nil, ErrInvalidFormat
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	it := Item{ID: r.nextID, Name: name, Price: price, Description: description}
	r.nextID++
	r.items[it.ID] = it
	r.order = append(r.order, it.ID)
	return &it, nil
}

func (r *Repo) Remove(_ context.Context, id int64) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.items, id)
	r.order = lo.Without(r.order, id)
	return &it, nil
}

// Get возвращает nil, nil если товара нет.
func (r *Repo) Get(_ context.Context, id int64) (*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

// List в порядке добавления
func (r *Repo) List(_ context.Context) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *Repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
