package shop

import (
	"fmt"
	"html"
	"strings"

	"github.com/Spok95/orderbots/internal/domain/catalog"
	"github.com/Spok95/orderbots/internal/domain/orders"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

const (
	noName     = "Без імені"
	timeLayout = "2006-01-02 15:04:05"
)

// esc для всего, что ввёл человек, перед вставкой в HTML
func esc(s string) string { return html.EscapeString(s) }

func customerFrom(u telegram.User) orders.Customer {
	name := u.FullName()
	if name == "" {
		name = noName
	}
	return orders.Customer{ID: u.ID, Username: u.Username, FullName: name}
}

func userRef(username string) string {
	if username == "" {
		return ""
	}
	return " (@" + esc(username) + ")"
}

func formatItem(it catalog.Item) string {
	return fmt.Sprintf("<b>%s</b>\nЦіна: <b>%.2f грн</b>\n\n%s",
		esc(it.Name), it.Price, esc(it.Description))
}

func formatOrder(o orders.Order) string {
	return fmt.Sprintf(
		"🧾 <b>Замовлення #%d</b>\n"+
			"Користувач: %s%s\n"+
			"ID: <code>%d</code>\n\n"+
			"Товар: <b>%s</b>\n"+
			"Ціна: <b>%.2f грн</b>\n"+
			"Статус: <b>%s</b>\n"+
			"Створено: %s",
		o.ID,
		esc(o.Customer.FullName), userRef(o.Customer.Username),
		o.Customer.ID,
		esc(o.Item.Name),
		o.Item.Price,
		o.Status,
		o.CreatedAt.Format(timeLayout),
	)
}

func formatInvoice(o orders.Order) string {
	return fmt.Sprintf(
		"✅ Замовлення #%d підтверджено.\n\n"+
			"Товар: <b>%s</b>\n"+
			"Сума до оплати: <b>%.2f грн</b>\n\n"+
			"Номер рахунку: <code>%06d</code>\n\n"+
			"Після здійснення оплати натисніть кнопку нижче, щоб підтвердити оплату "+
			"або скасувати замовлення.",
		o.ID, esc(o.Item.Name), o.Item.Price, o.ID,
	)
}

func formatUserOrders(list []orders.Order) string {
	lines := []string{"Ваші замовлення:"}
	for _, o := range list {
		lines = append(lines, fmt.Sprintf("#%d – %s (%.0f грн) – статус: %s",
			o.ID, esc(o.Item.Name), o.Item.Price, o.Status))
	}
	return strings.Join(lines, "\n")
}

func formatAdminOrders(list []orders.Order) string {
	lines := []string{"📋 <b>Останні замовлення</b>\n"}
	for _, o := range list {
		lines = append(lines, fmt.Sprintf("#%d: %s – %.0f грн – %s%s – статус: %s",
			o.ID, esc(o.Item.Name), o.Item.Price,
			esc(o.Customer.FullName), userRef(o.Customer.Username), o.Status))
	}
	return strings.Join(lines, "\n")
}

func formatFeedback(u telegram.User, text string) string {
	return fmt.Sprintf(
		"📝 <b>Новий відгук</b>\n\nВід: %s%s\nID: <code>%d</code>\n\nТекст:\n%s",
		esc(u.FullName()), userRef(u.Username), u.ID, esc(text),
	)
}

func formatRemoveList(items []catalog.Item) string {
	lines := []string{"🔻 Вкажіть ID товару для видалення:", ""}
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("%d: %s (%.0f грн)", it.ID, esc(it.Name), it.Price))
	}
	return strings.Join(lines, "\n")
}
