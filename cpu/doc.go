// Package cpu implements the Intcode processor, its program parser, and an
// assembler for the Intcode instruction set.
//
// An Intcode program is a flat sequence of signed integers that serves as
// both code and data. Each instruction word encodes an operation code in its
// two low decimal digits and one addressing mode per operand in the digits
// above that. Operands are either position mode (the operand is an address)
// or immediate mode (the operand is the value).
//
// The processor (Cpu) owns a fixed size Memory, an instruction pointer, an
// input Channel, and the sequence of values the program has output. Input is
// cooperative: when the input channel is empty but still open the processor
// waits, leaving the instruction pointer on the input instruction so that the
// caller may supply a value and resume.
//
// The assembler provides a small assembly language for the instruction set,
// supporting labels, equates, raw data, and compile-time expression
// evaluation.
package cpu
