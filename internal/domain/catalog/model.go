package catalog

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat = errors.New("catalog: expected name;price;description")
	ErrInvalidPrice  = errors.New("catalog: price must be a positive number")
	ErrInvalidID     = errors.New("catalog: id must be a number")
	ErrNotFound      = errors.New("catalog: item not found")
)

type Item struct {
	ID          int64
	Name        string
	Price       float64
	Description string
}

// Input: разобранная строка админа «Назва;ціна;опис»
type Input struct {
	Name        string
	Price       float64
	Description string
}

// ParseItemInput разбирает ровно три поля через «;». Описание может содержать «;».
func ParseItemInput(text string) (Input, error) {
	parts := strings.SplitN(strings.TrimSpace(text), ";", 3)
	if len(parts) != 3 {
		return Input{}, ErrInvalidFormat
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return Input{}, ErrInvalidFormat
	}
	price, err := ParsePrice(parts[1])
	if err != nil {
		return Input{}, err
	}
	return Input{Name: parts[0], Price: price, Description: parts[2]}, nil
}

// ParsePrice принимает запятую как десятичный разделитель.
func ParsePrice(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	// NaN и Inf тоже не цена
	if !(v > 0) || math.IsInf(v, 1) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return v, nil
}

func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// DemoItems стартовое наполнение каталога
func DemoItems() []Input {
	return []Input{
		{Name: "Футболка з логотипом", Price: 499, Description: "Чорна футболка з білим логотипом бота."},
		{Name: "Кружка 'AI Inside'", Price: 299, Description: "Керамічна кружка для любителів Python та ШІ."},
		{Name: "Еко-торба 'Telegram Shop'", Price: 199, Description: "Зручна торба для покупок з брендингом."},
	}
}
