package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Spok95/orderbots/internal/domain/catalog"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

const (
	badFormatText = "⚠️ Невірний формат.\nНадішліть у форматі: <code>Назва;ціна;опис</code>"
	badPriceText  = "⚠️ Ціна має бути додатним числом. Спробуйте ще раз."
	badIDText     = "⚠️ ID має бути числом. Введіть ID товару ще раз."
	itemNotFound  = "Товар з таким ID не знайдено."
	feedbackThank = "Дякуємо за ваш відгук! 💚\nВаше повідомлення надіслано адміністраторам."

	catalogHint = "Щоб переглянути доступні товари, скористайтесь командою /catalog."
	howToOrder  = "Щоб зробити замовлення:\n" +
		"1) Відкрийте /catalog\n" +
		"2) Оберіть товар та натисніть «Замовити»\n" +
		"3) Підтвердіть замовлення та оплату за підказками бота."
	greetingReply = "Привіт! 😊 Чим можу допомогти?"
	fallbackReply = "Я поки що не розумію це повідомлення 😔\n" +
		"Спробуйте скористатися командами /help або /catalog."
)

// faqRule срабатывает, если match вернул true; проверяются по порядку.
type faqRule struct {
	match func(lower string) bool
	reply string
}

var faq = []faqRule{
	{match: containsAny("товар", "каталог"), reply: catalogHint},
	{match: containsAny("як зробити замовлення", "як замовити"), reply: howToOrder},
	{match: equalsAny("привіт", "добрий день", "добрий вечір"), reply: greetingReply},
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

func equalsAny(words ...string) func(string) bool {
	return func(s string) bool {
		s = strings.TrimSpace(s)
		for _, w := range words {
			if s == w {
				return true
			}
		}
		return false
	}
}

func (b *Bot) handleText(ctx context.Context, ev telegram.Event) {
	userID := ev.User.ID
	admin := b.isAdmin(userID)

	switch mode := b.mode(ctx, userID); {
	case mode == ModeAddItem && admin:
		b.processAddItem(ctx, ev)
	case mode == ModeRemoveItem && admin:
		b.processRemoveItem(ctx, ev)
	case mode == ModeFeedback:
		b.processFeedback(ctx, ev)
	default:
		b.answerFAQ(ev)
	}
}

// processAddItem при ошибке режим не сбрасываем: админ просто пробует ещё раз.
func (b *Bot) processAddItem(ctx context.Context, ev telegram.Event) {
	in, err := catalog.ParseItemInput(ev.Text)
	if err == nil {
		var it *catalog.Item
		it, err = b.catalog.Add(ctx, in.Name, in.Price, in.Description)
		if err == nil {
			b.resetMode(ctx, ev.User.ID)
			b.logger(ctx).Info("item added", "item_id", it.ID, "name", it.Name, "price", it.Price)
			b.reply(ev.ChatID, "✅ Товар додано до каталогу:\n\n"+formatItem(*it))
			return
		}
	}
	b.logger(ctx).Info("add_item rejected", "err", err)
	if errors.Is(err, catalog.ErrInvalidPrice) {
		b.reply(ev.ChatID, badPriceText)
		return
	}
	b.reply(ev.ChatID, badFormatText)
}

// processRemoveItem: кривой id просим повторить, иначе выходим из режима.
func (b *Bot) processRemoveItem(ctx context.Context, ev telegram.Event) {
	id, err := catalog.ParseID(ev.Text)
	if err != nil {
		b.reply(ev.ChatID, badIDText)
		return
	}
	b.resetMode(ctx, ev.User.ID)

	it, err := b.catalog.Remove(ctx, id)
	if errors.Is(err, catalog.ErrNotFound) {
		b.reply(ev.ChatID, itemNotFound)
		return
	}
	if err != nil {
		b.logger(ctx).Error("remove item failed", "item_id", id, "err", err)
		return
	}
	b.logger(ctx).Info("item removed", "item_id", it.ID)
	b.reply(ev.ChatID, fmt.Sprintf("🗑 Товар <b>%s</b> (#%d) видалено з каталогу.", esc(it.Name), it.ID))
}

func (b *Bot) processFeedback(ctx context.Context, ev telegram.Event) {
	b.resetMode(ctx, ev.User.ID)
	b.notifyAdmins(ctx, formatFeedback(ev.User, ev.Text))
	b.logger(ctx).Info("feedback forwarded")
	b.reply(ev.ChatID, feedbackThank)
}

func (b *Bot) answerFAQ(ev telegram.Event) {
	lower := strings.ToLower(ev.Text)
	for _, r := range faq {
		if r.match(lower) {
			b.reply(ev.ChatID, r.reply)
			return
		}
	}
	b.reply(ev.ChatID, fallbackReply)
}
