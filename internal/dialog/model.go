package dialog

import "errors"

// ErrInvalidState is returned when a state outside the bot's enumeration is written.
var ErrInvalidState = errors.New("dialog: invalid state")

type Payload map[string]any

type Item[S comparable] struct {
	ChatID  int64
	State   S
	Payload Payload
}

// clone копия payload, чтобы вызывающий код не менял данные в хранилище
func (p Payload) clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
