package shop

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/orderbots/internal/domain/catalog"
	"github.com/Spok95/orderbots/internal/infra/telegram"
)

const (
	cbCatalog   = "catalog"
	cbItem      = "item"
	cbBuy       = "buy"
	cbConfirm   = "confirm"
	cbCancel    = "cancel"
	cbPayOK     = "pay_ok"
	cbPayCancel = "pay_cancel"
)

// mainMenu нижняя панель с основными командами
func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/catalog"),
			tgbotapi.NewKeyboardButton("/info"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/help"),
			tgbotapi.NewKeyboardButton("/feedback"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func catalogKeyboard(items []catalog.Item) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(items))
	for _, it := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s – %.0f грн", it.Name, it.Price),
				telegram.CallbackData(cbItem, it.ID),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func itemKeyboard(itemID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Замовити", telegram.CallbackData(cbBuy, itemID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад до каталогу", cbCatalog),
		),
	)
}

func orderConfirmKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Підтвердити замовлення", telegram.CallbackData(cbConfirm, orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Скасувати", telegram.CallbackData(cbCancel, orderID)),
		),
	)
}

func paymentKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Підтвердити оплату", telegram.CallbackData(cbPayOK, orderID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Відмінити оплату", telegram.CallbackData(cbPayCancel, orderID)),
		),
	)
}
