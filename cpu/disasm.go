package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Disassemble renders the instruction at ip in assembler syntax, and returns
// the number of cells it uses. Words that do not decode, or instructions
// that run past the end of memory, render as a single .data word.
func Disassemble(mem Memory, ip int64) (text string, size int) {
	value, err := mem.Read(ip)
	if err != nil {
		return
	}

	data := fmt.Sprintf(".data %d", value)

	inst, err := Code(value).Decode()
	if err != nil {
		return data, 1
	}

	size = inst.Op.Size()
	if !mem.Valid(ip + int64(size) - 1) {
		return data, 1
	}

	words := []string{inst.Op.String()}
	for n := range size - 1 {
		words = append(words, inst.Modes[n].Operand(mem[ip+1+int64(n)]))
	}

	text = strings.Join(words, " ")
	return
}

// Listing iterates over the disassembly of all of memory.
func (mem Memory) Listing() iter.Seq2[int64, string] {
	return func(yield func(ip int64, text string) bool) {
		for ip := int64(0); ip < int64(len(mem)); {
			text, size := Disassemble(mem, ip)
			if !yield(ip, text) {
				return
			}
			ip += int64(size)
		}
	}
}
