package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tape provides sequential decimal I/O.
// It wraps an io.Reader of integers separated by whitespace or commas for
// input, and writes each output value on its own line to an io.Writer.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader  io.Reader // Input wrapped by scanner.
	scanner *bufio.Scanner
	pending []string
}

// Rewind is not possible on a tape; it only drops buffered input.
func (tc *Tape) Rewind() {
	tc.reader = nil
	tc.scanner = nil
	tc.pending = nil
}

// Receive reads the next value from the input.
// ok is false once the input is exhausted, or if there is no input.
func (tc *Tape) Receive() (value int64, ok bool, err error) {
	if tc.Input == nil {
		return
	}

	// A replaced input starts a new tape.
	if tc.scanner == nil || tc.reader != tc.Input {
		tc.reader = tc.Input
		tc.pending = nil
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
	}

	for len(tc.pending) == 0 {
		if !tc.scanner.Scan() {
			err = tc.scanner.Err()
			return
		}
		for _, word := range strings.Split(tc.scanner.Text(), ",") {
			if len(word) > 0 {
				tc.pending = append(tc.pending, word)
			}
		}
	}

	word := tc.pending[0]
	tc.pending = tc.pending[1:]

	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrTapeValue(word)
		return
	}

	ok = true
	return
}

// Send writes a value to the output, one value per line.
// Values are dropped if there is no output.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
