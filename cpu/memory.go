package cpu

import (
	"io"
	"slices"
	"strconv"
	"strings"
)

// Memory is the fixed size Intcode memory, holding both code and data.
type Memory []int64

// Parse parses comma separated decimal integers into a Memory.
// Whitespace around the whole text is ignored; whitespace inside a token is
// not. The first token that is not an integer is returned as an
// ErrParseNumber. Empty text is a single empty token, and fails.
func Parse(text string) (mem Memory, err error) {
	text = strings.TrimSpace(text)

	tokens := strings.Split(text, ",")
	mem = make(Memory, 0, len(tokens))
	for _, token := range tokens {
		var value int64
		value, err = strconv.ParseInt(token, 10, 64)
		if err != nil {
			mem = nil
			err = ErrParseNumber(token)
			return
		}
		mem = append(mem, value)
	}

	return
}

// ParseReader reads all of a program text, and parses it.
func ParseReader(input io.Reader) (mem Memory, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return Parse(string(text))
}

// Clone returns an independent copy of the memory.
func (mem Memory) Clone() Memory {
	return slices.Clone(mem)
}

// Valid returns true if addr is inside the memory.
func (mem Memory) Valid(addr int64) bool {
	return addr >= 0 && addr < int64(len(mem))
}

// Read returns the value at addr.
func (mem Memory) Read(addr int64) (value int64, err error) {
	if !mem.Valid(addr) {
		err = ErrUnexpectedEndOfIntcode
		return
	}

	value = mem[addr]
	return
}

// Write sets the value at addr.
func (mem Memory) Write(addr int64, value int64) (err error) {
	if !mem.Valid(addr) {
		err = ErrUnexpectedEndOfIntcode
		return
	}

	mem[addr] = value
	return
}

// String returns the memory in program text format.
func (mem Memory) String() string {
	words := make([]string, len(mem))
	for n, value := range mem {
		words[n] = strconv.FormatInt(value, 10)
	}

	return strings.Join(words, ",")
}
