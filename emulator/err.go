package emulator

import (
	"errors"
	"strconv"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit reached"))
)

// ErrRuntime indicates the source location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %v %v", strconv.Itoa(err.LineNo), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrPatch indicates a patch that could not be applied.
type ErrPatch struct {
	Addr int64
	Err  error
}

func (err *ErrPatch) Error() string {
	return f("patch %v %v", strconv.FormatInt(err.Addr, 10), err.Err)
}

func (err *ErrPatch) Unwrap() error {
	return err.Err
}

// ErrPatchSyntax is returned for a patch that is not 'addr=value'.
type ErrPatchSyntax string

func (err ErrPatchSyntax) Error() string {
	return f("patch '%v' is not addr=value", string(err))
}
