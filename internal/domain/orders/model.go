package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/Spok95/orderbots/internal/domain/catalog"
)

type Status string

const (
	StatusPending        Status = "pending"
	StatusWaitingPayment Status = "waiting_payment"
	StatusPaid           Status = "paid"
	StatusCancelled      Status = "cancelled"
)

// Сколько заказов показываем пользователю и админу
const (
	UserListLimit  = 10
	AdminListLimit = 20
)

var (
	ErrNotFound          = errors.New("orders: order not found")
	ErrIllegalTransition = errors.New("orders: illegal status transition")
)

// transitions: единственное место, где описан жизненный цикл заказа.
var transitions = map[Status][]Status{
	StatusPending:        {StatusWaitingPayment, StatusCancelled},
	StatusWaitingPayment: {StatusPaid, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusWaitingPayment, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionError попытка перевести заказ в недопустимый статус
type TransitionError struct {
	ID   int64
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("orders: order #%d cannot move from %s to %s", e.ID, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrIllegalTransition }

type Customer struct {
	ID       int64
	Username string
	FullName string
}

// Order хранит копию товара на момент создания: правки каталога на заказ не влияют.
type Order struct {
	ID        int64
	Customer  Customer
	Item      catalog.Item
	CreatedAt time.Time
	Status    Status
}
