package io

// Queue implements a bounded FIFO of input values.
// It operates as a circular buffer with separate read and write positions.
// Once closed, no more values may be sent, but values already queued may
// still be received.
type Queue struct {
	Capacity int // Capacity in values.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []int64

	closed bool
}

// Rewind resets the queue to empty and open, resetting indices and
// reinitializing the data buffer.
func (q *Queue) Rewind() {
	q.ReadIndex = 0
	q.WriteIndex = 0
	q.Size = 0
	q.Data = make([]int64, q.Capacity)
	q.closed = false
}

// Await returns the oldest queued value, if any.
func (q *Queue) Await() (value int64, ok bool) {
	if q.Size == 0 {
		return
	}

	value = q.Data[q.ReadIndex]
	q.ReadIndex++
	if q.ReadIndex == len(q.Data) {
		q.ReadIndex = 0
	}
	q.Size--
	ok = true

	return
}

// Send queues a value at the current write position.
// Returns ErrChannelClosed after Close, ErrChannelFull if the queue has
// reached capacity, and ErrChannelResized if Capacity was changed without a
// Rewind while values are queued.
func (q *Queue) Send(value int64) (err error) {
	if q.closed {
		err = ErrChannelClosed
		return
	}

	if q.Size >= q.Capacity {
		err = ErrChannelFull
		return
	}

	if len(q.Data) != q.Capacity {
		// Capacity changed with values queued; only Rewind may resize.
		if q.Size > 0 {
			err = ErrChannelResized
			return
		}
		q.Data = make([]int64, q.Capacity)
		q.ReadIndex = 0
		q.WriteIndex = 0
	}

	q.Data[q.WriteIndex] = value

	q.WriteIndex++
	if q.WriteIndex == q.Capacity {
		q.WriteIndex = 0
	}
	q.Size++

	return
}

// Close marks that no further values will be sent.
func (q *Queue) Close() {
	q.closed = true
}

// Closed returns true if the queue has been closed.
func (q *Queue) Closed() bool {
	return q.closed
}

// Full returns true if the queue is at capacity.
func (q *Queue) Full() bool {
	return q.Size >= q.Capacity
}
