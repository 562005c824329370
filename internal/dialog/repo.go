package dialog

import (
	"context"
	"fmt"
	"sync"
)

// Repo хранит состояние диалога по chat/user id в памяти процесса.
// Отсутствие записи равносильно начальному состоянию.
type Repo[S comparable] struct {
	mu      sync.Mutex
	initial S
	valid   func(S) bool
	items   map[int64]Item[S]
}

func NewRepo[S comparable](initial S, valid func(S) bool) *Repo[S] {
	return &Repo[S]{initial: initial, valid: valid, items: make(map[int64]Item[S])}
}

func (r *Repo[S]) Get(_ context.Context, chatID int64) (*Item[S], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[chatID]
	if !ok {
		// если записи нет, считаем, что состояние начальное
		return &Item[S]{ChatID: chatID, State: r.initial, Payload: Payload{}}, nil
	}
	return &Item[S]{ChatID: chatID, State: it.State, Payload: it.Payload.clone()}, nil
}

func (r *Repo[S]) Set(_ context.Context, chatID int64, state S, payload Payload) error {
	if r.valid != nil && !r.valid(state) {
		return fmt.Errorf("%w: %v", ErrInvalidState, state)
	}
	if payload == nil {
		payload = Payload{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[chatID] = Item[S]{ChatID: chatID, State: state, Payload: payload.clone()}
	return nil
}

func (r *Repo[S]) Reset(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, chatID)
	return nil
}

// GetString Helper для безопасного чтения строк из payload
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
