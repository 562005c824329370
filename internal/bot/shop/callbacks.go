package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/Spok95/orderbots/internal/domain/orders"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

const (
	badItemIDToast  = "Помилка ID товару"
	badOrderIDToast = "Помилка ID замовлення"
	itemNotFoundCB  = "Товар не знайдено"
	orderNotFoundCB = "Замовлення не знайдено"
	notYourOrder    = "⛔ Це не ваше замовлення."
)

// orderAction что делает кнопка с заказом
type orderAction struct {
	from   orders.Status // кнопка действует только из этого статуса
	to     orders.Status
	toast  string
	notify string // заголовок уведомления админам, "" не уведомлять
	text   func(o orders.Order) string
}

var orderActions = map[string]orderAction{
	cbConfirm: {
		from:   orders.StatusPending,
		to:     orders.StatusWaitingPayment,
		toast:  "Замовлення підтверджено, рахунок створено.",
		notify: "📩 <b>Нове замовлення</b>\n",
		text:   formatInvoice,
	},
	cbCancel: {
		from:  orders.StatusPending,
		to:    orders.StatusCancelled,
		toast: "Замовлення скасовано.",
		text: func(o orders.Order) string {
			return fmt.Sprintf("Замовлення #%d скасовано.", o.ID)
		},
	},
	cbPayOK: {
		from:   orders.StatusWaitingPayment,
		to:     orders.StatusPaid,
		toast:  "Оплату підтверджено.",
		notify: "💸 <b>Оплата підтверджена</b>\n",
		text: func(o orders.Order) string {
			return fmt.Sprintf("🎉 Дякуємо за оплату! Замовлення #%d має статус <b>оплачено</b>.\n"+
				"Наш менеджер зв'яжеться з вами для уточнення деталей.", o.ID)
		},
	},
	cbPayCancel: {
		from:   orders.StatusWaitingPayment,
		to:     orders.StatusCancelled,
		toast:  "Оплату скасовано.",
		notify: "🚫 <b>Оплату скасовано</b>\n",
		text: func(o orders.Order) string {
			return fmt.Sprintf("Оплату для замовлення #%d скасовано.\n"+
				"Якщо ви передумаєте, можете зробити нове замовлення через /catalog.", o.ID)
		},
	},
}

func (b *Bot) handleCallback(ctx context.Context, ev telegram.Event) {
	action, id, _, err := telegram.ParseCallback(ev.Data)

	switch action {
	case cbCatalog:
		b.cbCatalog(ctx, ev)

	case cbItem, cbBuy:
		if err != nil {
			b.answer(ev, badItemIDToast)
			return
		}
		if action == cbItem {
			b.cbViewItem(ctx, ev, id)
		} else {
			b.cbBuy(ctx, ev, id)
		}

	case cbConfirm, cbCancel, cbPayOK, cbPayCancel:
		if err != nil {
			b.answer(ev, badOrderIDToast)
			return
		}
		b.cbOrder(ctx, ev, id, orderActions[action])

	default:
		b.logger(ctx).Warn("unknown callback", "data", ev.Data)
		b.answer(ev, "")
	}
}

func (b *Bot) cbCatalog(ctx context.Context, ev telegram.Event) {
	items, err := b.catalog.List(ctx)
	if err != nil {
		b.logger(ctx).Error("list catalog failed", "err", err)
		b.answer(ev, "")
		return
	}
	if len(items) == 0 {
		b.answer(ev, "Каталог порожній")
		b.edit(ev, "Каталог поки що порожній 🕳", nil)
		return
	}
	kb := catalogKeyboard(items)
	b.edit(ev, "🛍 <b>Каталог товарів</b>\nОберіть товар:", &kb)
	b.answer(ev, "")
}

func (b *Bot) cbViewItem(ctx context.Context, ev telegram.Event, itemID int64) {
	it, err := b.catalog.Get(ctx, itemID)
	if err != nil || it == nil {
		b.answer(ev, itemNotFoundCB)
		return
	}
	kb := itemKeyboard(it.ID)
	b.edit(ev, formatItem(*it), &kb)
	b.answer(ev, "")
}

func (b *Bot) cbBuy(ctx context.Context, ev telegram.Event, itemID int64) {
	it, err := b.catalog.Get(ctx, itemID)
	if err != nil || it == nil {
		b.answer(ev, itemNotFoundCB)
		return
	}
	o, err := b.orders.Create(ctx, customerFrom(ev.User), *it)
	if err != nil {
		b.logger(ctx).Error("create order failed", "item_id", itemID, "err", err)
		b.answer(ev, "")
		return
	}
	b.metrics.Transition(string(orders.StatusPending))
	b.logger(ctx).Info("order created", "order_id", o.ID, "item_id", it.ID)

	kb := orderConfirmKeyboard(o.ID)
	b.edit(ev, formatItem(o.Item)+"\n\nПідтвердити замовлення цього товару?", &kb)
	b.answer(ev, "")
}

// cbOrder общий путь всех кнопок заказа: найти, проверить владельца,
// сменить статус по таблице, обновить сообщение, уведомить админов.
func (b *Bot) cbOrder(ctx context.Context, ev telegram.Event, orderID int64, act orderAction) {
	log := b.logger(ctx).With("order_id", orderID)

	o, err := b.orders.Get(ctx, orderID)
	if err != nil || o == nil {
		b.answer(ev, orderNotFoundCB)
		return
	}
	if o.Customer.ID != ev.User.ID && !b.isAdmin(ev.User.ID) {
		log.Warn("foreign order button", "owner_id", o.Customer.ID)
		b.answer(ev, notYourOrder)
		return
	}

	var updated *orders.Order
	if o.Status == act.from {
		updated, err = b.orders.SetStatus(ctx, orderID, act.to)
	} else {
		// кнопка со старой клавиатуры: статус уже другой
		err = &orders.TransitionError{ID: orderID, From: o.Status, To: act.to}
	}
	var te *orders.TransitionError
	switch {
	case errors.As(err, &te):
		log.Error("illegal order transition", "from", te.From, "to", te.To)
		b.answer(ev, fmt.Sprintf("⚠️ Дія недоступна: замовлення #%d має статус %s.", orderID, te.From))
		return
	case errors.Is(err, orders.ErrNotFound):
		b.answer(ev, orderNotFoundCB)
		return
	case err != nil:
		log.Error("set status failed", "err", err)
		b.answer(ev, "")
		return
	}

	b.metrics.Transition(string(updated.Status))
	log.Info("order status changed", "from", o.Status, "to", updated.Status)

	if act.to.Terminal() {
		b.edit(ev, act.text(*updated), nil)
	} else {
		kb := paymentKeyboard(updated.ID)
		b.edit(ev, act.text(*updated), &kb)
	}
	if act.notify != "" {
		b.notifyAdmins(ctx, act.notify+formatOrder(*updated))
	}
	b.answer(ev, act.toast)
}
