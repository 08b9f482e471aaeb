// Package io provides I/O channel implementations for the Intcode emulator.
// It includes a bounded input queue (Queue) and a sequential decimal text
// tape (Tape).
package io

// Channel defines the interface for buffered value channels between Intcode
// machines. Values are received in the order they were sent.
type Channel interface {
	// Rewind resets the channel to empty and open.
	Rewind()
	// Await returns the next value, if one is ready.
	Await() (value int64, ok bool)
	// Send queues a single value.
	Send(value int64) error
	// Close marks that no further values will be sent.
	Close()
	// Closed returns true if no further values will become ready.
	Closed() bool
}

var _ Channel = (*Queue)(nil)
