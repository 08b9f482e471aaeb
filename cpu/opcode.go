package cpu

import (
	"fmt"
	"strings"
)

// Op is an operation kind.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD  = Op(1)  // add
	OP_MUL  = Op(2)  // mul
	OP_IN   = Op(3)  // in
	OP_OUT  = Op(4)  // out
	OP_JT   = Op(5)  // jt
	OP_JF   = Op(6)  // jf
	OP_LT   = Op(7)  // lt
	OP_EQ   = Op(8)  // eq
	OP_HALT = Op(99) // halt
)

// Mode is an operand addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // pos
	MODE_IMMEDIATE = Mode(1) // imm
)

// MODES is the number of mode digits carried by an instruction word.
const MODES = 3

// opParams is the (reads, writes) operand count of each operation.
var opParams = map[Op][2]int{
	OP_ADD:  {2, 1},
	OP_MUL:  {2, 1},
	OP_IN:   {0, 1},
	OP_OUT:  {1, 0},
	OP_JT:   {2, 0},
	OP_JF:   {2, 0},
	OP_LT:   {2, 1},
	OP_EQ:   {2, 1},
	OP_HALT: {0, 0},
}

// Valid returns true if the operation is defined.
func (op Op) Valid() (ok bool) {
	_, ok = opParams[op]
	return
}

// Params returns the number of read operands and write operands.
// Write operands always follow the read operands.
func (op Op) Params() (reads, writes int) {
	params := opParams[op]
	return params[0], params[1]
}

// Size returns the number of memory cells used by the instruction word and
// its operands.
func (op Op) Size() int {
	reads, writes := op.Params()
	return 1 + reads + writes
}

// Code is a raw instruction word.
type Code int64

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Op
	Modes [MODES]Mode
}

// MakeCode encodes an operation and its operand modes into an instruction
// word. Missing modes are position mode.
func MakeCode(op Op, modes ...Mode) Code {
	word := int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}

	return Code(word)
}

// Op returns the operation code digits of the instruction word, without
// validation.
func (code Code) Op() Op {
	return Op(code % 100)
}

// Decode decodes the instruction word into an operation and operand modes.
// All three mode digits are validated, whether or not the operation uses
// them. Digits above the third mode digit are ignored.
func (code Code) Decode() (inst Instruction, err error) {
	if code < 0 {
		err = ErrNegativeInstruction
		return
	}

	word := int64(code)
	digits := word / 100
	for n := range MODES {
		digit := digits % 10
		digits /= 10
		switch Mode(digit) {
		case MODE_POSITION, MODE_IMMEDIATE:
			inst.Modes[n] = Mode(digit)
		default:
			err = ErrUnknownMode(digit)
			return
		}
	}

	inst.Op = code.Op()
	if !inst.Op.Valid() {
		err = ErrUnknownOpcode(inst.Op)
		return
	}

	return
}

// Code re-encodes the instruction. Modes beyond the operation's arity are
// kept.
func (inst Instruction) Code() Code {
	return MakeCode(inst.Op, inst.Modes[:]...)
}

// String returns the mnemonic and the modes used by the operation.
func (inst Instruction) String() string {
	reads, writes := inst.Op.Params()
	words := []string{inst.Op.String()}
	for _, mode := range inst.Modes[:reads+writes] {
		words = append(words, mode.String())
	}

	return strings.Join(words, ".")
}

// Operand renders a raw operand in assembler syntax.
func (mode Mode) Operand(value int64) string {
	if mode == MODE_IMMEDIATE {
		return fmt.Sprintf("#%d", value)
	}

	return fmt.Sprintf("%d", value)
}
