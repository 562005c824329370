package tvorder

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/orderbots/internal/dialog"
)

type Step string

const (
	StepWaitName     Step = "wait_name"
	StepWaitContact  Step = "wait_contact"
	StepWaitType     Step = "wait_type"
	StepWaitBudget   Step = "wait_budget"
	StepWaitDeadline Step = "wait_deadline"
	StepConfirmed    Step = "confirmed"
)

// порядок шагов анкеты; поле заполняется на своём шаге
var sequence = []struct {
	step  Step
	field string
}{
	{StepWaitName, "name"},
	{StepWaitContact, "contact"},
	{StepWaitType, "type"},
	{StepWaitBudget, "budget"},
	{StepWaitDeadline, "deadline"},
}

func (s Step) Valid() bool {
	if s == StepConfirmed {
		return true
	}
	for _, e := range sequence {
		if e.step == s {
			return true
		}
	}
	return false
}

// Next следующий шаг; после дедлайна confirmed, дальше некуда.
func (s Step) Next() Step {
	for i, e := range sequence {
		if e.step != s {
			continue
		}
		if i+1 < len(sequence) {
			return sequence[i+1].step
		}
		return StepConfirmed
	}
	return StepConfirmed
}

// Field ключ payload, который собирается на шаге ("" для confirmed)
func (s Step) Field() string {
	for _, e := range sequence {
		if e.step == s {
			return e.field
		}
	}
	return ""
}

func NewStateRepo() *dialog.Repo[Step] {
	return dialog.NewRepo(StepWaitName, Step.Valid)
}

// Request собранная заявка
type Request struct {
	Name     string
	Contact  string
	Type     string
	Budget   string
	Deadline string
}

func requestFrom(p dialog.Payload) Request {
	get := func(k string) string {
		v, _ := dialog.GetString(p, k)
		return v
	}
	return Request{
		Name:     get("name"),
		Contact:  get("contact"),
		Type:     get("type"),
		Budget:   get("budget"),
		Deadline: get("deadline"),
	}
}

// Complete все пять полей заполнены
func (r Request) Complete() bool {
	return r.Name != "" && r.Contact != "" && r.Type != "" && r.Budget != "" && r.Deadline != ""
}

var productTypes = [][]string{
	{"ТВ-реклама", "Промо-ролик"},
	{"Музичний кліп", "Інше"},
}

func typeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(productTypes))
	for _, r := range productTypes {
		row := make([]tgbotapi.KeyboardButton, 0, len(r))
		for _, t := range r {
			row = append(row, tgbotapi.NewKeyboardButton(t))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(row...))
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	kb.OneTimeKeyboard = true
	return kb
}

// prompt вопрос, который задаём на шаге s.
func prompt(s Step, r Request) (string, any) {
	switch s {
	case StepWaitName:
		return askName, nil
	case StepWaitContact:
		return fmt.Sprintf("Дякую, <b>%s</b>!\n"+
			"Тепер залиште, будь ласка, <b>контакт</b>: телефон або @username.", html.EscapeString(r.Name)), nil
	case StepWaitType:
		return "Оберіть, будь ласка, <b>тип телепродукції</b>, яку хочете замовити:", typeKeyboard()
	case StepWaitBudget:
		return "Вкажіть орієнтовний <b>бюджет</b> (у гривнях).\n" +
			"Можна написати суму, діапазон або <code>не знаю</code>.", tgbotapi.NewRemoveKeyboard(true)
	case StepWaitDeadline:
		return "Які <b>терміни</b> виконання вас цікавлять?\n" +
			"Наприклад: <i>до 20 січня</i> або <i>протягом 2 тижнів</i>.", nil
	}
	return summary(r), nil
}

func summary(r Request) string {
	return fmt.Sprintf(
		"✅ <b>Перевірте, будь ласка, заявку:</b>\n\n"+
			"👤 Імʼя: <b>%s</b>\n"+
			"📞 Контакт: <b>%s</b>\n"+
			"🎬 Тип телепродукції: <b>%s</b>\n"+
			"💰 Бюджет: <b>%s</b>\n"+
			"⏰ Дедлайн: <b>%s</b>\n\n"+
			"Якщо все вірно, напишіть <code>підтвердити</code>.\n"+
			"Щоб почати заново, введіть /start.",
		html.EscapeString(r.Name), html.EscapeString(r.Contact), html.EscapeString(r.Type),
		html.EscapeString(r.Budget), html.EscapeString(r.Deadline),
	)
}

func adminText(r Request, userLink string) string {
	return fmt.Sprintf(
		"📩 <b>Нова заявка на телепродукцію</b>\n\n"+
			"👤 Імʼя: %s\n"+
			"📞 Контакт: %s\n"+
			"🎬 Тип: %s\n"+
			"💰 Бюджет: %s\n"+
			"⏰ Дедлайн: %s\n\n"+
			"Від користувача: %s",
		html.EscapeString(r.Name), html.EscapeString(r.Contact), html.EscapeString(r.Type),
		html.EscapeString(r.Budget), html.EscapeString(r.Deadline), userLink,
	)
}
