package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type EventKind int

const (
	EventCommand EventKind = iota + 1
	EventText
	EventCallback
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventText:
		return "text"
	case EventCallback:
		return "callback"
	}
	return "unknown"
}

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// FullName имя и фамилия через пробел, пустая строка если обоих нет
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Event: входящее событие в виде, не зависящем от клиента Telegram.
// Для EventCommand заполнены Command и Args, для EventText Text,
// для EventCallback CallbackID и Data. MessageID у callback'а указывает
// на сообщение с кнопками.
type Event struct {
	Kind       EventKind
	UpdateID   int
	ChatID     int64
	MessageID  int
	User       User
	Command    string
	Args       string
	Text       string
	CallbackID string
	Data       string
}

func userFrom(u *tgbotapi.User) User {
	if u == nil {
		return User{}
	}
	return User{ID: u.ID, Username: u.UserName, FirstName: u.FirstName, LastName: u.LastName}
}

// FromUpdate переводит апдейт в Event. Апдейты без текста и без callback'а
// (фото, стикеры, служебные) не интересны ботам: ok == false.
func FromUpdate(upd tgbotapi.Update) (Event, bool) {
	switch {
	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		ev := Event{
			Kind:       EventCallback,
			UpdateID:   upd.UpdateID,
			User:       userFrom(cb.From),
			CallbackID: cb.ID,
			Data:       cb.Data,
		}
		if cb.Message != nil && cb.Message.Chat != nil {
			ev.ChatID = cb.Message.Chat.ID
			ev.MessageID = cb.Message.MessageID
		} else {
			ev.ChatID = ev.User.ID
		}
		return ev, true

	case upd.Message != nil:
		msg := upd.Message
		ev := Event{
			UpdateID:  upd.UpdateID,
			MessageID: msg.MessageID,
			User:      userFrom(msg.From),
		}
		if msg.Chat != nil {
			ev.ChatID = msg.Chat.ID
		}
		if msg.IsCommand() {
			ev.Kind = EventCommand
			ev.Command = msg.Command()
			ev.Args = strings.TrimSpace(msg.CommandArguments())
			return ev, true
		}
		if msg.Text == "" {
			return Event{}, false
		}
		ev.Kind = EventText
		ev.Text = msg.Text
		return ev, true
	}
	return Event{}, false
}

// ParseCallback разбирает данные кнопки вида "action:id".
// Данные без двоеточия возвращаются как action с hasID == false.
func ParseCallback(data string) (action string, id int64, hasID bool, err error) {
	action, raw, found := strings.Cut(data, ":")
	if !found {
		return action, 0, false, nil
	}
	id, err = strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return action, 0, true, fmt.Errorf("callback %q: bad id: %w", data, err)
	}
	return action, id, true, nil
}

// CallbackData собирает "action:id"
func CallbackData(action string, id int64) string {
	return action + ":" + strconv.FormatInt(id, 10)
}
