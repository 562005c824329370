// Package telegramtest: записывающая подделка Telegram API для тестов.
package telegramtest

import (
	"errors"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var ErrBlocked = errors.New("Forbidden: bot was blocked by the user")

// FakeAPI запоминает успешно отправленное в Sent, вызовы Request в Requests.
// Отправка в чат из FailChats возвращает заданную ошибку и в Sent не попадает.
// Так же и ответ на callback из FailCallbacks не попадает в Requests.
type FakeAPI struct {
	mu            sync.Mutex
	nextMID       int
	Sent          []tgbotapi.Chattable
	Requests      []tgbotapi.Chattable
	Attempts      int
	FailChats     map[int64]error
	FailCallbacks map[string]error
}

func NewFakeAPI() *FakeAPI {
	return &FakeAPI{nextMID: 100, FailChats: map[int64]error{}, FailCallbacks: map[string]error{}}
}

func chatOf(c tgbotapi.Chattable) int64 {
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		return v.ChatID
	case tgbotapi.EditMessageTextConfig:
		return v.ChatID
	case tgbotapi.DocumentConfig:
		return v.ChatID
	}
	return 0
}

func (f *FakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Attempts++
	chatID := chatOf(c)
	if err, ok := f.FailChats[chatID]; ok {
		return tgbotapi.Message{}, err
	}
	f.Sent = append(f.Sent, c)
	f.nextMID++
	return tgbotapi.Message{MessageID: f.nextMID, Chat: &tgbotapi.Chat{ID: chatID}}, nil
}

func (f *FakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Attempts++
	if cb, ok := c.(tgbotapi.CallbackConfig); ok {
		if err, fail := f.FailCallbacks[cb.CallbackQueryID]; fail {
			return nil, err
		}
	}
	f.Requests = append(f.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *FakeAPI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Sent = nil
	f.Requests = nil
	f.Attempts = 0
}

func (f *FakeAPI) Messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range f.Sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *FakeAPI) MessagesTo(chatID int64) []tgbotapi.MessageConfig {
	var out []tgbotapi.MessageConfig
	for _, m := range f.Messages() {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

// LastText текст последнего сообщения в чат или "".
func (f *FakeAPI) LastText(chatID int64) string {
	msgs := f.MessagesTo(chatID)
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Text
}

func (f *FakeAPI) Edits() []tgbotapi.EditMessageTextConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range f.Sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

func (f *FakeAPI) LastEdit() (tgbotapi.EditMessageTextConfig, bool) {
	edits := f.Edits()
	if len(edits) == 0 {
		return tgbotapi.EditMessageTextConfig{}, false
	}
	return edits[len(edits)-1], true
}

func (f *FakeAPI) Callbacks() []tgbotapi.CallbackConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.CallbackConfig
	for _, c := range f.Requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, cb)
		}
	}
	return out
}

func (f *FakeAPI) LastCallbackText() string {
	cbs := f.Callbacks()
	if len(cbs) == 0 {
		return ""
	}
	return cbs[len(cbs)-1].Text
}

func (f *FakeAPI) Documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.DocumentConfig
	for _, c := range f.Sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

// FakeSource отдаёт апдейты из канала вместо long polling.
type FakeSource struct {
	Updates chan tgbotapi.Update
	mu      sync.Mutex
	stopped bool
}

func NewFakeSource(buf int) *FakeSource {
	return &FakeSource{Updates: make(chan tgbotapi.Update, buf)}
}

func (s *FakeSource) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.Updates
}

func (s *FakeSource) StopReceivingUpdates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *FakeSource) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func from(u tgbotapi.User) *tgbotapi.User { return &u }

// CommandUpdate апдейт с командой вида "/start args".
func CommandUpdate(updateID int, chatID int64, u tgbotapi.User, text string) tgbotapi.Update {
	cmdLen := len(text)
	for i, r := range text {
		if r == ' ' {
			cmdLen = i
			break
		}
	}
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			MessageID: updateID,
			From:      from(u),
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
		},
	}
}

func TextUpdate(updateID int, chatID int64, u tgbotapi.User, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			MessageID: updateID,
			From:      from(u),
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
		},
	}
}

func CallbackUpdate(updateID int, chatID int64, messageID int, u tgbotapi.User, data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-" + data,
			From:    from(u),
			Message: &tgbotapi.Message{MessageID: messageID, Chat: &tgbotapi.Chat{ID: chatID}},
			Data:    data,
		},
	}
}
