package cpu

import (
	"iter"
)

// Line is a line of assembled code with its source location and generated
// memory words.
type Line struct {
	LineNo int
	Ip     int64
	Words  []string
	Codes  []int64
	Links  map[int]string // Index into Codes of words to link to a label.
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

// NewProgram wraps a memory image as a program without source lines.
func NewProgram(mem Memory) (prog *Program) {
	prog = &Program{}
	if len(mem) > 0 {
		prog.Lines = []Line{{Codes: mem.Clone()}}
	}

	return
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the source line that generated the word at ip.
func (prog *Program) Debug(ip int64) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= line.Ip && ip < line.Ip+int64(len(line.Codes)) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(ip - line.Ip),
			}
			break
		}
	}

	return
}

// Memory returns a new memory image of the program.
func (prog *Program) Memory() (mem Memory) {
	for _, code := range prog.Codes() {
		mem = append(mem, code)
	}

	return
}

// Codes iterates over the address and value of every word in the program.
func (prog *Program) Codes() iter.Seq2[int64, int64] {
	return func(yield func(ip int64, code int64) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(line.Ip+int64(n), code) {
					return
				}
			}
		}
	}
}
