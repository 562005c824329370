package shop

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/orderbots/internal/domain/orders"
)

const ordersSheet = "Orders"

var ordersHeader = []interface{}{
	"order_id", "created_at", "status",
	"user_id", "username", "full_name",
	"item_id", "item_name", "price",
}

// BuildOrdersWorkbook все заказы одной таблицей, по строке на заказ.
func BuildOrdersWorkbook(list []orders.Order) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), ordersSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ordersSheet, "A1", &ordersHeader); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	for i, o := range list {
		row := []interface{}{
			o.ID,
			o.CreatedAt.Format(timeLayout),
			string(o.Status),
			o.Customer.ID,
			o.Customer.Username,
			o.Customer.FullName,
			o.Item.ID,
			o.Item.Name,
			o.Item.Price,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell: %w", err)
		}
		if err := f.SetSheetRow(ordersSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return buf.Bytes(), nil
}

func (b *Bot) exportOrders(ctx context.Context, chatID int64) {
	list, err := b.orders.All(ctx)
	if err != nil {
		b.logger(ctx).Error("list orders failed", "err", err)
		return
	}
	if len(list) == 0 {
		b.reply(chatID, noOrdersAdminText)
		return
	}
	data, err := BuildOrdersWorkbook(list)
	if err != nil {
		b.logger(ctx).Error("build orders workbook failed", "err", err)
		b.reply(chatID, "Помилка формування файлу.")
		return
	}
	name := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	_ = b.tg.SendDocument(chatID, name, data, fmt.Sprintf("Замовлень: %d", len(list)))
	b.logger(ctx).Info("orders exported", "count", len(list))
}
