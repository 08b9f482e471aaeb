package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrNegativeInstruction    = errors.New(f("negative instruction"))
	ErrNoInputFound           = errors.New(f("input expected but was not found"))
	ErrUnexpectedEndOfIntcode = errors.New(f("unexpected end of intcode"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrDataMissing        = errors.New(f(".data without values"))
)

// ErrParseNumber is returned when a program or assembler token is not an
// integer. It carries the offending text.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrUnknownOpcode is returned when an instruction word decodes to an
// operation code with no defined operation.
type ErrUnknownOpcode int64

func (err ErrUnknownOpcode) Error() string {
	return f("unknown opcode %d", int64(err))
}

func (err ErrUnknownOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownOpcode)
	return
}

// ErrUnknownMode is returned when an instruction word carries a mode digit
// other than position or immediate.
type ErrUnknownMode int64

func (err ErrUnknownMode) Error() string {
	return f("unknown mode %d", int64(err))
}

func (err ErrUnknownMode) Is(target error) (ok bool) {
	_, ok = target.(ErrUnknownMode)
	return
}

// ErrFault records where in memory an execution error happened.
type ErrFault struct {
	Ip   int64
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	// Addresses and words are not locale grouped.
	ip := strconv.FormatInt(err.Ip, 10)
	code := strconv.FormatInt(int64(err.Code), 10)
	return f("ip %v code %v: %v", ip, code, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
