package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/Spok95/orderbots/internal/infra/metrics"
)

// API: часть *tgbotapi.BotAPI, которой пользуется клиент.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

const (
	MethodSendMessage    = "sendMessage"
	MethodEditText       = "editMessageText"
	MethodAnswerCallback = "answerCallbackQuery"
	MethodSendDocument   = "sendDocument"
)

// SendError: не удалось доставить сообщение конкретному получателю.
type SendError struct {
	ChatID int64
	Method string
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("telegram %s to %d: %v", e.Method, e.ChatID, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Client: исходящие вызовы. Все тексты уходят в HTML-режиме.
type Client struct {
	api     API
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewClient(api API, log *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{api: api, log: log.With("component", "telegram"), metrics: m}
}

func (c *Client) fail(chatID int64, method string, err error) error {
	c.metrics.SendError(method)
	c.log.Error("send failed", "chat_id", chatID, "method", method, "err", err)
	return &SendError{ChatID: chatID, Method: method, Err: err}
}

// SendText markup: nil, tgbotapi.InlineKeyboardMarkup, ReplyKeyboardMarkup или ReplyKeyboardRemove.
func (c *Client) SendText(chatID int64, text string, markup any) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := c.api.Send(msg); err != nil {
		return c.fail(chatID, MethodSendMessage, err)
	}
	return nil
}

// EditText меняет текст сообщения с кнопками; kb == nil убирает клавиатуру.
func (c *Client) EditText(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) error {
	var edit tgbotapi.EditMessageTextConfig
	if kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := c.api.Send(edit); err != nil {
		return c.fail(chatID, MethodEditText, err)
	}
	return nil
}

func (c *Client) AnswerCallback(callbackID, text string) error {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return c.fail(0, MethodAnswerCallback, err)
	}
	return nil
}

func (c *Client) SendDocument(chatID int64, name string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := c.api.Send(doc); err != nil {
		return c.fail(chatID, MethodSendDocument, err)
	}
	return nil
}

// Broadcast рассылает text каждому получателю по отдельности.
// Ошибка одного получателя логируется и не прерывает рассылку.
// Возвращает число успешных доставок.
func (c *Client) Broadcast(recipients []int64, text string) int {
	delivered := 0
	for _, id := range lo.Uniq(recipients) {
		if id == 0 {
			continue
		}
		if err := c.SendText(id, text, nil); err != nil {
			c.metrics.Notified(false)
			continue
		}
		c.metrics.Notified(true)
		delivered++
	}
	return delivered
}
