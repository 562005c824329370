package shop

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/Spok95/orderbots/internal/dialog"
	"github.com/Spok95/orderbots/internal/domain/catalog"
	"github.com/Spok95/orderbots/internal/domain/orders"
	"github.com/Spok95/orderbots/internal/infra/metrics"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

// Mode: во что превратится следующее текстовое сообщение пользователя.
type Mode string

const (
	ModeNone       Mode = "none"
	ModeAddItem    Mode = "add_item"
	ModeRemoveItem Mode = "remove_item"
	ModeFeedback   Mode = "feedback"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModeAddItem, ModeRemoveItem, ModeFeedback:
		return true
	}
	return false
}

// NewStateRepo хранилище режимов; нет записи = ModeNone.
func NewStateRepo() *dialog.Repo[Mode] {
	return dialog.NewRepo(ModeNone, Mode.Valid)
}

type CatalogStore interface {
	Add(ctx context.Context, name string, price float64, description string) (*catalog.Item, error)
	Remove(ctx context.Context, id int64) (*catalog.Item, error)
	Get(ctx context.Context, id int64) (*catalog.Item, error)
	List(ctx context.Context) ([]catalog.Item, error)
}

type OrderStore interface {
	Create(ctx context.Context, c orders.Customer, item catalog.Item) (*orders.Order, error)
	Get(ctx context.Context, id int64) (*orders.Order, error)
	SetStatus(ctx context.Context, id int64, to orders.Status) (*orders.Order, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]orders.Order, error)
	ListRecent(ctx context.Context, limit int) ([]orders.Order, error)
	All(ctx context.Context) ([]orders.Order, error)
}

type StateStore interface {
	Get(ctx context.Context, key int64) (*dialog.Item[Mode], error)
	Set(ctx context.Context, key int64, state Mode, payload dialog.Payload) error
	Reset(ctx context.Context, key int64) error
}

type Messenger interface {
	SendText(chatID int64, text string, markup any) error
	EditText(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID, text string) error
	SendDocument(chatID int64, name string, data []byte, caption string) error
	Broadcast(recipients []int64, text string) int
}

type Bot struct {
	tg         Messenger
	log        *slog.Logger
	catalog    CatalogStore
	orders     OrderStore
	states     StateStore
	admins     map[int64]struct{}
	recipients []int64
	metrics    *metrics.Metrics
}

// New: admins могут админ-команды, recipients получают уведомления.
func New(tg Messenger, log *slog.Logger,
	catalogRepo CatalogStore, ordersRepo OrderStore, statesRepo StateStore,
	admins []int64, recipients []int64, m *metrics.Metrics) *Bot {

	return &Bot{
		tg: tg, log: log.With("component", "shop"),
		catalog: catalogRepo, orders: ordersRepo, states: statesRepo,
		admins:     lo.SliceToMap(admins, func(id int64) (int64, struct{}) { return id, struct{}{} }),
		recipients: lo.Uniq(recipients),
		metrics:    m,
	}
}

// Seed наполняет пустой каталог демо-товарами.
func Seed(ctx context.Context, repo CatalogStore, log *slog.Logger) error {
	items, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return nil
	}
	for _, in := range catalog.DemoItems() {
		if _, err := repo.Add(ctx, in.Name, in.Price, in.Description); err != nil {
			return err
		}
	}
	log.Info("catalog seeded", "items", len(catalog.DemoItems()))
	return nil
}

func (b *Bot) Handle(ctx context.Context, ev telegram.Event) {
	switch ev.Kind {
	case telegram.EventCommand:
		b.handleCommand(ctx, ev)
	case telegram.EventText:
		b.handleText(ctx, ev)
	case telegram.EventCallback:
		b.handleCallback(ctx, ev)
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.admins[userID]
	return ok
}

func (b *Bot) logger(ctx context.Context) *slog.Logger {
	return telegram.Logger(ctx, b.log)
}

// ошибки доставки уже залогированы клиентом
func (b *Bot) reply(chatID int64, text string) {
	_ = b.tg.SendText(chatID, text, nil)
}

func (b *Bot) replyWith(chatID int64, text string, markup any) {
	_ = b.tg.SendText(chatID, text, markup)
}

func (b *Bot) edit(ev telegram.Event, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	_ = b.tg.EditText(ev.ChatID, ev.MessageID, text, kb)
}

func (b *Bot) answer(ev telegram.Event, text string) {
	_ = b.tg.AnswerCallback(ev.CallbackID, text)
}

func (b *Bot) notifyAdmins(ctx context.Context, text string) {
	if len(b.recipients) == 0 {
		b.logger(ctx).Warn("no admin recipients configured")
		return
	}
	n := b.tg.Broadcast(b.recipients, text)
	b.logger(ctx).Info("admins notified", "delivered", n, "recipients", len(b.recipients))
}

func (b *Bot) mode(ctx context.Context, userID int64) Mode {
	st, err := b.states.Get(ctx, userID)
	if err != nil || st == nil {
		return ModeNone
	}
	return st.State
}

func (b *Bot) setMode(ctx context.Context, userID int64, m Mode) {
	if err := b.states.Set(ctx, userID, m, nil); err != nil {
		b.logger(ctx).Error("set mode failed", "mode", m, "err", err)
	}
}

func (b *Bot) resetMode(ctx context.Context, userID int64) {
	if err := b.states.Reset(ctx, userID); err != nil {
		b.logger(ctx).Error("reset mode failed", "err", err)
	}
}
