package telegram

import (
	"context"
	"log/slog"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/Spok95/orderbots/internal/infra/metrics"
)

// Source: long polling у *tgbotapi.BotAPI.
type Source interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Handler interface {
	Handle(ctx context.Context, ev Event)
}

type HandlerFunc func(ctx context.Context, ev Event)

func (f HandlerFunc) Handle(ctx context.Context, ev Event) { f(ctx, ev) }

type ctxKey struct{}

// WithLogger кладёт логгер события в контекст.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Logger достаёт логгер события, иначе fallback.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return fallback
}

// DropNotifier отвечает пользователю, чьё событие отброшено лимитом.
type DropNotifier interface {
	AnswerCallback(callbackID, text string) error
	SendText(chatID int64, text string, markup any) error
}

const slowDownText = "⏳ Забагато повідомлень. Зачекайте трохи і спробуйте ще раз."

// Runner читает апдейты и отдаёт их обработчику строго по одному:
// следующий апдейт не начнётся, пока не закончился предыдущий.
type Runner struct {
	src         Source
	handler     Handler
	log         *slog.Logger
	metrics     *metrics.Metrics
	limiter     *Limiter
	dropped     DropNotifier
	pollTimeout int
}

func NewRunner(src Source, h Handler, log *slog.Logger, m *metrics.Metrics, lim *Limiter, pollTimeout int) *Runner {
	return &Runner{
		src:         src,
		handler:     h,
		log:         log.With("component", "runner"),
		metrics:     m,
		limiter:     lim,
		pollTimeout: pollTimeout,
	}
}

// NotifyDrops: на отброшенный callback отвечаем пустым ответом,
// на первое отброшенное сообщение подряд пишем предупреждение.
func (r *Runner) NotifyDrops(n DropNotifier) *Runner {
	r.dropped = n
	return r
}

func (r *Runner) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.pollTimeout
	updates := r.src.GetUpdatesChan(u)
	r.log.Info("polling started", "timeout", r.pollTimeout)
	for {
		select {
		case <-ctx.Done():
			r.src.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			ev, ok := FromUpdate(upd)
			if !ok {
				continue
			}
			r.Dispatch(ctx, ev)
		}
	}
}

// Dispatch обрабатывает одно событие: лимит, логгер с rid, recover.
func (r *Runner) Dispatch(ctx context.Context, ev Event) {
	r.metrics.Update(ev.Kind.String())
	log := r.log.With(
		"rid", uuid.NewString(),
		"update_id", ev.UpdateID,
		"chat_id", ev.ChatID,
		"user_id", ev.User.ID,
		"kind", ev.Kind.String(),
	)
	if ok, first := r.limiter.Take(ev.User.ID); !ok {
		r.metrics.Drop()
		log.Warn("rate limited")
		r.notifyDrop(ev, first)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("handler panic", "panic", rec, "stack", string(debug.Stack()))
		}
	}()
	log.Debug("event")
	r.handler.Handle(WithLogger(ctx, log), ev)
}

func (r *Runner) notifyDrop(ev Event, first bool) {
	if r.dropped == nil {
		return
	}
	switch {
	case ev.Kind == EventCallback:
		_ = r.dropped.AnswerCallback(ev.CallbackID, "")
	case first && ev.ChatID != 0:
		_ = r.dropped.SendText(ev.ChatID, slowDownText, nil)
	}
}
