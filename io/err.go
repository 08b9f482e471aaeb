package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull    = errors.New(f("channel full"))
	ErrChannelClosed  = errors.New(f("channel closed"))
	ErrChannelResized = errors.New(f("channel resized without rewind"))
)

// ErrTapeValue is returned when a tape token is not a decimal integer.
type ErrTapeValue string

func (err ErrTapeValue) Error() string {
	return f("tape value '%v' is not a number", string(err))
}
