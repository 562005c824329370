package tvorder

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/Spok95/orderbots/internal/dialog"
	"github.com/Spok95/orderbots/internal/infra/metrics"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

const (
	welcomeText = "👋 <b>Вітаю!</b>\n" +
		"Це бот для <b>замовлення телепродукції</b>.\n\n" +
		"Я допоможу оформити заявку на:\n" +
		"• ТВ-рекламу 📺\n" +
		"• Промо-ролик 🎞\n" +
		"• Музичний кліп 🎵\n" +
		"• Інший відеопродукт 🎬\n\n"
	askName = "Спочатку напишіть, будь ласка, <b>як до вас звертатися</b>."

	helpText = "ℹ️ <b>Як користуватися ботом</b>\n\n" +
		"1. Натисніть /start, щоб почати оформлення замовлення.\n" +
		"2. Відповідайте на запитання бота (імʼя, контакт, тип проекту тощо).\n" +
		"3. Наприкінці перевірте заявку та напишіть <code>підтвердити</code>.\n" +
		"4. Для скасування замовлення використовуйте команду /cancel.\n"

	cancelText = "❌ Поточне замовлення скасовано.\n" +
		"Щоб почати нове, введіть /start."

	thanksText = "🎉 <b>Дякуємо!</b>\n" +
		"Ваша заявка надіслана менеджеру. Ми звʼяжемося з вами найближчим часом."

	confirmReminder = "Щоб завершити оформлення, напишіть <code>підтвердити</code> " +
		"або використайте /cancel для скасування."
)

// токены подтверждения, сравниваются без учёта регистра
var confirmTokens = map[string]struct{}{
	"підтвердити": {},
	"confirm":     {},
	"ок":          {},
	"окей":        {},
}

func IsConfirmToken(text string) bool {
	_, ok := confirmTokens[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

type StateStore interface {
	Get(ctx context.Context, key int64) (*dialog.Item[Step], error)
	Set(ctx context.Context, key int64, state Step, payload dialog.Payload) error
	Reset(ctx context.Context, key int64) error
}

type Messenger interface {
	SendText(chatID int64, text string, markup any) error
	Broadcast(recipients []int64, text string) int
}

type Bot struct {
	tg         Messenger
	log        *slog.Logger
	states     StateStore
	recipients []int64
	metrics    *metrics.Metrics
}

func New(tg Messenger, log *slog.Logger, states StateStore, recipients []int64, m *metrics.Metrics) *Bot {
	return &Bot{
		tg:         tg,
		log:        log.With("component", "tvorder"),
		states:     states,
		recipients: lo.Uniq(recipients),
		metrics:    m,
	}
}

func (b *Bot) Handle(ctx context.Context, ev telegram.Event) {
	switch ev.Kind {
	case telegram.EventCommand:
		b.handleCommand(ctx, ev)
	case telegram.EventText:
		b.handleText(ctx, ev)
	}
}

func (b *Bot) logger(ctx context.Context) *slog.Logger {
	return telegram.Logger(ctx, b.log)
}

func (b *Bot) send(chatID int64, text string, markup any) {
	_ = b.tg.SendText(chatID, text, markup)
}

func (b *Bot) reset(ctx context.Context, chatID int64) {
	if err := b.states.Reset(ctx, chatID); err != nil {
		b.logger(ctx).Error("reset state failed", "err", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, ev telegram.Event) {
	switch ev.Command {
	case "start":
		b.reset(ctx, ev.ChatID)
		b.send(ev.ChatID, welcomeText+askName, nil)
	case "cancel":
		b.reset(ctx, ev.ChatID)
		b.send(ev.ChatID, cancelText, nil)
	case "help":
		b.send(ev.ChatID, helpText, nil)
	default:
		// прочие команды не участвуют в анкете
		b.logger(ctx).Debug("command ignored", "command", ev.Command)
	}
}

func (b *Bot) handleText(ctx context.Context, ev telegram.Event) {
	text := strings.TrimSpace(ev.Text)
	if strings.HasPrefix(text, "/") {
		return
	}

	st, err := b.states.Get(ctx, ev.ChatID)
	if err != nil {
		b.logger(ctx).Error("get state failed", "err", err)
		return
	}
	req := requestFrom(st.Payload)

	if st.State == StepConfirmed {
		if !IsConfirmToken(text) {
			b.send(ev.ChatID, confirmReminder, nil)
			return
		}
		b.finalize(ctx, ev, req)
		return
	}

	// пустой ответ не засчитываем, повторяем вопрос
	if text == "" {
		msg, markup := prompt(st.State, req)
		b.send(ev.ChatID, msg, markup)
		return
	}

	field := st.State.Field()
	if field == "" {
		b.reset(ctx, ev.ChatID)
		b.send(ev.ChatID, "Щось пішло не так. Спробуйте ще раз, введіть /start.", nil)
		return
	}
	st.Payload[field] = text
	next := st.State.Next()
	if err := b.states.Set(ctx, ev.ChatID, next, st.Payload); err != nil {
		b.logger(ctx).Error("set state failed", "step", next, "err", err)
		return
	}
	b.logger(ctx).Debug("step", "from", st.State, "to", next)

	msg, markup := prompt(next, requestFrom(st.Payload))
	b.send(ev.ChatID, msg, markup)
}

func (b *Bot) finalize(ctx context.Context, ev telegram.Event, req Request) {
	log := b.logger(ctx)
	if !req.Complete() {
		// до confirmed можно дойти только через все пять шагов
		log.Error("confirmed without complete request", "request", req)
		b.reset(ctx, ev.ChatID)
		b.send(ev.ChatID, "Щось пішло не так. Спробуйте ще раз, введіть /start.", nil)
		return
	}

	if len(b.recipients) > 0 {
		n := b.tg.Broadcast(b.recipients, adminText(req, userLink(ev.User)))
		log.Info("tv request submitted", "delivered", n, "recipients", len(b.recipients))
	} else {
		log.Warn("tv request submitted, no admin chat configured")
	}
	b.metrics.TVRequest()

	b.send(ev.ChatID, thanksText, nil)
	b.reset(ctx, ev.ChatID)
}

func userLink(u telegram.User) string {
	if u.Username != "" {
		return "@" + html.EscapeString(u.Username)
	}
	return fmt.Sprintf("id: %d", u.ID)
}
