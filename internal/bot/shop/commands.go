package shop

import (
	"context"

	"github.com/Spok95/orderbots/internal/domain/orders"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

const (
	welcomeText = "Вітаю! 👋\n" +
		"Я чат-бот магазину для демонстрації можливостей Telegram Bot API.\n\n" +
		"Я можу:\n" +
		"• показувати каталог товарів\n" +
		"• оформлювати замовлення\n" +
		"• надсилати замовлення адміністраторам\n" +
		"• приймати відгуки від користувачів\n\n" +
		"Скористайтесь кнопками нижче або командами /help та /catalog."

	helpText = "🆘 <b>Доступні команди</b>\n\n" +
		"/start – перезапустити бота\n" +
		"/help – список команд\n" +
		"/info – інформація про бота\n" +
		"/catalog – каталог товарів\n" +
		"/order – показати ваші замовлення\n" +
		"/feedback – залишити відгук\n" +
		"/cancel – скасувати поточну дію\n\n" +
		"Адміністраторам доступні:\n" +
		"/admin – меню адміністратора\n" +
		"/add_item – додати товар\n" +
		"/remove_item – видалити товар\n" +
		"/orders – список усіх замовлень\n" +
		"/export_orders – вивантажити замовлення в Excel"

	infoText = "ℹ️ <b>Про бота</b>\n\n" +
		"Цей бот створений як навчальний проєкт.\n" +
		"Технології: Go + Telegram Bot API.\n" +
		"Функціонал: каталог товарів, оформлення замовлень, " +
		"адмін-меню, відгуки, імітація оплати."

	adminMenuText = "🔐 <b>Адмін-меню</b>\n\n" +
		"/add_item – додати товар до каталогу\n" +
		"/remove_item – видалити товар з каталогу\n" +
		"/orders – переглянути всі замовлення\n" +
		"/export_orders – вивантажити замовлення в Excel"

	addItemPrompt = "➕ Додавання товару.\n\n" +
		"Надішліть дані у форматі:\n" +
		"<code>Назва;ціна;опис</code>\n\n" +
		"Наприклад:\n" +
		"<code>Футболка з логотипом;499;Чорна футболка з білим логотипом</code>"

	feedbackPrompt = "✉️ Напишіть, будь ласка, свій відгук одним повідомленням.\n" +
		"Щоб скасувати, надішліть /cancel."

	catalogTitle      = "🛍 <b>Каталог товарів</b>\nОберіть товар, щоб переглянути деталі:"
	catalogEmptyText  = "Каталог поки що порожній 🕳\nАдміністратор може додати товари командою /add_item."
	noOrdersUserText  = "У вас поки що немає замовлень 🧾"
	noOrdersAdminText = "Замовлень поки що немає 🧾"
	unknownCommand    = "Невідома команда. Наберіть /help"

	denyAdmin   = "⛔ У вас немає прав адміністратора."
	denyAdd     = "⛔ Лише адміністратор може додавати товари."
	denyRemove  = "⛔ Лише адміністратор може видаляти товари."
	denyOrders  = "⛔ Лише адміністратор може переглядати замовлення."
	denyExport  = "⛔ Лише адміністратор може вивантажувати замовлення."
	cancelled   = "Поточну дію скасовано ✅"
	nothingToDo = "Немає активних дій для скасування."
)

func (b *Bot) handleCommand(ctx context.Context, ev telegram.Event) {
	chatID := ev.ChatID
	userID := ev.User.ID

	switch ev.Command {
	case "start":
		b.logger(ctx).Info("start", "username", ev.User.Username)
		b.replyWith(chatID, welcomeText, mainMenu())

	case "help":
		b.reply(chatID, helpText)

	case "info":
		b.reply(chatID, infoText)

	case "catalog":
		b.showCatalog(ctx, chatID)

	case "order":
		list, err := b.orders.ListByUser(ctx, userID, orders.UserListLimit)
		if err != nil {
			b.logger(ctx).Error("list user orders failed", "err", err)
			return
		}
		if len(list) == 0 {
			b.reply(chatID, noOrdersUserText)
			return
		}
		b.reply(chatID, formatUserOrders(list))

	case "feedback":
		b.setMode(ctx, userID, ModeFeedback)
		b.reply(chatID, feedbackPrompt)

	case "cancel":
		prev := b.mode(ctx, userID)
		b.resetMode(ctx, userID)
		if prev != ModeNone {
			b.reply(chatID, cancelled)
			return
		}
		b.reply(chatID, nothingToDo)

	case "admin":
		if !b.isAdmin(userID) {
			b.reply(chatID, denyAdmin)
			return
		}
		b.reply(chatID, adminMenuText)

	case "add_item":
		if !b.isAdmin(userID) {
			b.logger(ctx).Warn("non-admin add_item")
			b.reply(chatID, denyAdd)
			return
		}
		b.setMode(ctx, userID, ModeAddItem)
		b.reply(chatID, addItemPrompt)

	case "remove_item":
		if !b.isAdmin(userID) {
			b.logger(ctx).Warn("non-admin remove_item")
			b.reply(chatID, denyRemove)
			return
		}
		items, err := b.catalog.List(ctx)
		if err != nil {
			b.logger(ctx).Error("list catalog failed", "err", err)
			return
		}
		if len(items) == 0 {
			b.reply(chatID, "Каталог порожній, немає що видаляти.")
			return
		}
		b.setMode(ctx, userID, ModeRemoveItem)
		b.reply(chatID, formatRemoveList(items))

	case "orders":
		if !b.isAdmin(userID) {
			b.reply(chatID, denyOrders)
			return
		}
		list, err := b.orders.ListRecent(ctx, orders.AdminListLimit)
		if err != nil {
			b.logger(ctx).Error("list orders failed", "err", err)
			return
		}
		if len(list) == 0 {
			b.reply(chatID, noOrdersAdminText)
			return
		}
		b.reply(chatID, formatAdminOrders(list))

	case "export_orders":
		if !b.isAdmin(userID) {
			b.reply(chatID, denyExport)
			return
		}
		b.exportOrders(ctx, chatID)

	default:
		b.reply(chatID, unknownCommand)
	}
}

func (b *Bot) showCatalog(ctx context.Context, chatID int64) {
	items, err := b.catalog.List(ctx)
	if err != nil {
		b.logger(ctx).Error("list catalog failed", "err", err)
		return
	}
	if len(items) == 0 {
		b.reply(chatID, catalogEmptyText)
		return
	}
	b.replyWith(chatID, catalogTitle, catalogKeyboard(items))
}
