package shop

import (
	"context"
	"strings"
	"testing"

	"github.com/Spok95/orderbots/internal/domain/orders"
	"github.com/Spok95/orderbots/internal/infra/telegram/telegramtest"
)

func TestBuyThenConfirmNotifiesEachAdminOnce(t *testing.T) {
	e := newEnv(t, true)

	e.press(buyer, "buy:3")
	o := e.order(t, 1)
	if o.Status != orders.StatusPending || o.Item.ID != 3 || o.Customer.ID != buyerID {
		t.Fatalf("order after buy = %+v", o)
	}
	if o.Customer.FullName != "Ivan Petrenko" || o.Customer.Username != "ivan" {
		t.Fatalf("customer = %+v", o.Customer)
	}
	if len(e.api.MessagesTo(adminID))+len(e.api.MessagesTo(adminChat)) != 0 {
		t.Fatal("buy must not notify admins")
	}
	edit, _ := e.api.LastEdit()
	if !strings.Contains(edit.Text, "Підтвердити замовлення цього товару?") || edit.ReplyMarkup == nil {
		t.Fatalf("buy edit = %+v", edit)
	}

	e.press(buyer, "confirm:1")
	if got := e.order(t, 1).Status; got != orders.StatusWaitingPayment {
		t.Fatalf("status = %s, want waiting_payment", got)
	}
	for _, id := range []int64{adminID, adminChat} {
		msgs := e.api.MessagesTo(id)
		if len(msgs) != 1 || !strings.Contains(msgs[0].Text, "Нове замовлення") ||
			!strings.Contains(msgs[0].Text, "Замовлення #1") {
			t.Fatalf("admin %d got %+v", id, msgs)
		}
	}
	edit, _ = e.api.LastEdit()
	if !strings.Contains(edit.Text, "<code>000001</code>") || edit.ReplyMarkup == nil {
		t.Fatalf("invoice edit = %+v", edit)
	}
	if *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData != "pay_ok:1" {
		t.Fatal("invoice must offer payment buttons")
	}
	if e.api.LastCallbackText() != "Замовлення підтверджено, рахунок створено." {
		t.Fatalf("toast = %q", e.api.LastCallbackText())
	}
}

func TestPaymentFlowAndTerminalStatuses(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")
	e.press(buyer, "confirm:1")
	e.press(buyer, "pay_ok:1")

	if got := e.order(t, 1).Status; got != orders.StatusPaid {
		t.Fatalf("status = %s, want paid", got)
	}
	msgs := e.api.MessagesTo(adminID)
	if len(msgs) != 2 || !strings.Contains(msgs[1].Text, "Оплата підтверджена") {
		t.Fatalf("admin messages = %+v", msgs)
	}
	if edit, _ := e.api.LastEdit(); edit.ReplyMarkup != nil || !strings.Contains(edit.Text, "оплачено") {
		t.Fatalf("paid edit = %+v", edit)
	}

	// из paid никуда: все кнопки отклоняются без побочных эффектов
	edits := len(e.api.Edits())
	for _, data := range []string{"pay_cancel:1", "cancel:1", "confirm:1", "pay_ok:1"} {
		e.press(buyer, data)
		if got := e.order(t, 1).Status; got != orders.StatusPaid {
			t.Fatalf("%s changed status to %s", data, got)
		}
		if !strings.Contains(e.api.LastCallbackText(), "Дія недоступна") {
			t.Fatalf("%s toast = %q", data, e.api.LastCallbackText())
		}
	}
	if len(e.api.MessagesTo(adminID)) != 2 {
		t.Fatal("rejected transitions must not notify admins")
	}
	if len(e.api.Edits()) != edits {
		t.Fatal("rejected transitions must not edit the message")
	}
}

func TestPayCancelNotifiesAdmins(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:2")
	e.press(buyer, "confirm:1")
	e.press(buyer, "pay_cancel:1")

	if got := e.order(t, 1).Status; got != orders.StatusCancelled {
		t.Fatalf("status = %s", got)
	}
	msgs := e.api.MessagesTo(adminChat)
	if len(msgs) != 2 || !strings.Contains(msgs[1].Text, "Оплату скасовано") {
		t.Fatalf("admin messages = %+v", msgs)
	}
}

func TestCancelPendingOrder(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")
	e.press(buyer, "cancel:1")

	if got := e.order(t, 1).Status; got != orders.StatusCancelled {
		t.Fatalf("status = %s", got)
	}
	if len(e.api.MessagesTo(adminID)) != 0 {
		t.Fatal("cancelling a pending order does not notify admins")
	}
	if e.api.LastCallbackText() != "Замовлення скасовано." {
		t.Fatalf("toast = %q", e.api.LastCallbackText())
	}

	e.press(buyer, "confirm:1")
	if got := e.order(t, 1).Status; got != orders.StatusCancelled {
		t.Fatalf("confirm after cancel changed status to %s", got)
	}
}

func TestPendingCannotBePaidDirectly(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")
	e.press(buyer, "pay_ok:1")
	if got := e.order(t, 1).Status; got != orders.StatusPending {
		t.Fatalf("pending -> paid must be rejected, got %s", got)
	}
}

func TestCancelButtonIgnoredAfterInvoice(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")
	e.press(buyer, "confirm:1")
	admins := len(e.api.MessagesTo(adminID))
	edits := len(e.api.Edits())

	// кнопка «скасувати» осталась на старой клавиатуре
	e.press(buyer, "cancel:1")
	if got := e.order(t, 1).Status; got != orders.StatusWaitingPayment {
		t.Fatalf("cancel on waiting_payment changed status to %s", got)
	}
	if !strings.Contains(e.api.LastCallbackText(), "Дія недоступна") {
		t.Fatalf("toast = %q", e.api.LastCallbackText())
	}
	if len(e.api.MessagesTo(adminID)) != admins || len(e.api.Edits()) != edits {
		t.Fatal("rejected cancel must not notify or edit")
	}

	e.press(buyer, "pay_cancel:1")
	msgs := e.api.MessagesTo(adminID)
	if got := e.order(t, 1).Status; got != orders.StatusCancelled || len(msgs) != admins+1 ||
		!strings.Contains(msgs[len(msgs)-1].Text, "Оплату скасовано") {
		t.Fatalf("pay_cancel: status %s, admin messages %+v", got, msgs)
	}
}

func TestPayCancelRejectedBeforeInvoice(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")
	e.press(buyer, "pay_cancel:1")

	if got := e.order(t, 1).Status; got != orders.StatusPending {
		t.Fatalf("pay_cancel on pending changed status to %s", got)
	}
	if !strings.Contains(e.api.LastCallbackText(), "Дія недоступна") {
		t.Fatalf("toast = %q", e.api.LastCallbackText())
	}
	if len(e.api.MessagesTo(adminID))+len(e.api.MessagesTo(adminChat)) != 0 {
		t.Fatal("pay_cancel on pending must not notify admins")
	}
}

func TestFailedToastDoesNotBlockConfirm(t *testing.T) {
	e := newEnv(t, true)
	e.api.FailCallbacks["cb-confirm:1"] = telegramtest.ErrBlocked
	e.press(buyer, "buy:1")
	e.press(buyer, "confirm:1")

	if got := e.order(t, 1).Status; got != orders.StatusWaitingPayment {
		t.Fatalf("status = %s, want waiting_payment", got)
	}
	if len(e.api.MessagesTo(adminID)) != 1 {
		t.Fatal("admins must still be notified")
	}
}

func TestButtonsWithUnknownIDs(t *testing.T) {
	e := newEnv(t, true)
	cases := map[string]string{
		"item:99":      itemNotFoundCB,
		"buy:99":       itemNotFoundCB,
		"confirm:5":    orderNotFoundCB,
		"cancel:5":     orderNotFoundCB,
		"pay_ok:5":     orderNotFoundCB,
		"pay_cancel:5": orderNotFoundCB,
		"item:abc":     badItemIDToast,
		"buy:":         badItemIDToast,
		"confirm:x":    badOrderIDToast,
	}
	for data, want := range cases {
		e.press(buyer, data)
		if got := e.api.LastCallbackText(); got != want {
			t.Fatalf("%s: toast %q, want %q", data, got, want)
		}
	}
	if list, _ := e.orders.All(context.Background()); len(list) != 0 {
		t.Fatalf("orders created: %d", len(list))
	}
	if len(e.api.Edits()) != 0 {
		t.Fatal("unknown ids must not edit messages")
	}
}

func TestForeignOrderButtons(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")

	e.press(other, "confirm:1")
	if e.api.LastCallbackText() != notYourOrder {
		t.Fatalf("toast = %q", e.api.LastCallbackText())
	}
	if got := e.order(t, 1).Status; got != orders.StatusPending {
		t.Fatalf("foreign confirm changed status to %s", got)
	}

	e.press(admin, "confirm:1")
	if got := e.order(t, 1).Status; got != orders.StatusWaitingPayment {
		t.Fatalf("admin confirm: status = %s", got)
	}
}

func TestCatalogAndItemButtons(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "item:2")
	edit, _ := e.api.LastEdit()
	if !strings.Contains(edit.Text, "<b>Кружка &#39;AI Inside&#39;</b>") || !strings.Contains(edit.Text, "299.00 грн") {
		t.Fatalf("item edit = %q", edit.Text)
	}
	if *edit.ReplyMarkup.InlineKeyboard[1][0].CallbackData != cbCatalog {
		t.Fatal("item view must offer a way back")
	}

	e.press(buyer, "catalog")
	edit, _ = e.api.LastEdit()
	if edit.ReplyMarkup == nil || len(edit.ReplyMarkup.InlineKeyboard) != 3 {
		t.Fatalf("catalog edit = %+v", edit)
	}

	empty := newEnv(t, false)
	empty.press(buyer, "catalog")
	if empty.api.LastCallbackText() != "Каталог порожній" {
		t.Fatalf("toast = %q", empty.api.LastCallbackText())
	}
}

func TestOrderSnapshotSurvivesItemRemoval(t *testing.T) {
	e := newEnv(t, true)
	e.press(buyer, "buy:1")

	e.command(admin, "remove_item")
	e.text(admin, "1")
	if it, _ := e.catalog.Get(context.Background(), 1); it != nil {
		t.Fatal("item must be removed")
	}

	o := e.order(t, 1)
	if o.Item.Name != "Футболка з логотипом" || o.Item.Price != 499 {
		t.Fatalf("order item changed: %+v", o.Item)
	}
	e.press(buyer, "confirm:1")
	if got := e.order(t, 1).Status; got != orders.StatusWaitingPayment {
		t.Fatalf("order on removed item must still be confirmable, got %s", got)
	}
	e.command(buyer, "order")
	if !strings.Contains(e.api.LastText(buyerID), "Футболка з логотипом") {
		t.Fatalf("/order = %q", e.api.LastText(buyerID))
	}
}

func TestNoRecipientsStillCompletesFlow(t *testing.T) {
	e := newEnv(t, true)
	e.bot.recipients = nil
	e.press(buyer, "buy:1")
	e.press(buyer, "confirm:1")
	if e.order(t, 1).Status != orders.StatusWaitingPayment {
		t.Fatal("flow must not depend on admins being configured")
	}
}
