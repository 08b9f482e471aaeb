package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/intcode/io"
)

// Channel is an input channel interface.
type Channel interface {
	// Await returns the next input value, if one is ready.
	Await() (value int64, ok bool)
	// Closed returns true if no further values will become ready.
	Closed() bool
}

// State is the execution state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_WAITING = State(1) // waiting
	STATE_HALTED  = State(2) // halted
	STATE_FAILED  = State(3) // failed
)

var _cpu_defines = map[string]string{
	"OP_ADD":         fmt.Sprintf("%d", OP_ADD),
	"OP_MUL":         fmt.Sprintf("%d", OP_MUL),
	"OP_IN":          fmt.Sprintf("%d", OP_IN),
	"OP_OUT":         fmt.Sprintf("%d", OP_OUT),
	"OP_JT":          fmt.Sprintf("%d", OP_JT),
	"OP_JF":          fmt.Sprintf("%d", OP_JF),
	"OP_LT":          fmt.Sprintf("%d", OP_LT),
	"OP_EQ":          fmt.Sprintf("%d", OP_EQ),
	"OP_HALT":        fmt.Sprintf("%d", OP_HALT),
	"MODE_POSITION":  fmt.Sprintf("%d", MODE_POSITION),
	"MODE_IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
}

// Cpu is the simulation context for an Intcode processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory  // Program memory, modified in place.
	Ip     int64   // Current instruction pointer.
	Input  Channel // Input channel. A nil channel never has input.
	Output []int64 // Values output since the last reset.
	State  State   // Execution state.
	Err    error   // Error that moved the CPU to STATE_FAILED.

	Ticks int // Instructions executed.
}

// NewCpu creates a new CPU running mem.
func NewCpu(mem Memory) (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(mem)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state to run mem from the start.
// The input channel is kept.
func (cpu *Cpu) Reset(mem Memory) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %d cells", len(mem))
	}

	cpu.Memory = mem
	cpu.Ip = 0
	cpu.Output = nil
	cpu.State = STATE_RUNNING
	cpu.Err = nil
	cpu.Ticks = 0
}

// FetchCode fetches the instruction word under the instruction pointer.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	value, err := cpu.Memory.Read(cpu.Ip)
	if err != nil {
		return
	}

	code = Code(value)
	return
}

// Tick executes a single instruction.
// A halted CPU does nothing. A failed CPU returns the error it failed with.
func (cpu *Cpu) Tick() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return
	case STATE_FAILED:
		err = cpu.Err
		return
	}

	code, err := cpu.FetchCode()
	if err == nil {
		var inst Instruction
		inst, err = code.Decode()
		if err == nil {
			err = cpu.Execute(inst)
		}
	}

	if err != nil {
		err = &ErrFault{Ip: cpu.Ip, Code: code, Err: err}
		cpu.State = STATE_FAILED
		cpu.Err = err
		if cpu.Verbose {
			log.Printf("cpu: %v", err)
		}
	}

	return
}

// Run ticks the CPU until it halts, waits for input, or fails.
func (cpu *Cpu) Run() (state State, err error) {
	if cpu.State == STATE_WAITING {
		cpu.State = STATE_RUNNING
	}

	for cpu.State == STATE_RUNNING {
		err = cpu.Tick()
		if err != nil {
			break
		}
	}

	if cpu.State == STATE_FAILED {
		err = cpu.Err
	}

	state = cpu.State
	return
}

// Execute executes a single decoded instruction at the instruction pointer.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	if cpu.Verbose {
		text, _ := Disassemble(cpu.Memory, cpu.Ip)
		log.Printf("%04d: %v", cpu.Ip, text)
	}

	ip := cpu.Ip
	next_ip := ip + int64(inst.Op.Size())

	var a, b int64
	reads, _ := inst.Op.Params()
	if reads > 0 {
		a, err = cpu.getValue(inst.Modes[0], ip+1)
		if err != nil {
			return
		}
	}
	if reads > 1 {
		b, err = cpu.getValue(inst.Modes[1], ip+2)
		if err != nil {
			return
		}
	}

	switch inst.Op {
	case OP_ADD:
		err = cpu.setValue(inst.Modes[2], ip+3, a+b)
	case OP_MUL:
		err = cpu.setValue(inst.Modes[2], ip+3, a*b)
	case OP_LT:
		err = cpu.setValue(inst.Modes[2], ip+3, boolValue(a < b))
	case OP_EQ:
		err = cpu.setValue(inst.Modes[2], ip+3, boolValue(a == b))
	case OP_IN:
		// Bounds check the target before consuming any input.
		var addr int64
		addr, err = cpu.target(inst.Modes[0], ip+1)
		if err == nil && !cpu.Memory.Valid(addr) {
			err = ErrUnexpectedEndOfIntcode
		}
		if err != nil {
			return
		}
		if cpu.Input == nil {
			err = ErrNoInputFound
			return
		}
		value, ok := cpu.Input.Await()
		if !ok {
			if cpu.Input.Closed() {
				err = ErrNoInputFound
				return
			}
			// Don't advance to next IP.
			cpu.State = STATE_WAITING
			if cpu.Verbose {
				log.Printf("cpu: waiting for input")
			}
			return
		}
		cpu.State = STATE_RUNNING
		err = cpu.Memory.Write(addr, value)
	case OP_OUT:
		cpu.Output = append(cpu.Output, a)
	case OP_JT:
		if a != 0 {
			next_ip = b
		}
	case OP_JF:
		if a == 0 {
			next_ip = b
		}
	case OP_HALT:
		cpu.State = STATE_HALTED
		next_ip = ip
	default:
		err = ErrUnknownOpcode(inst.Op)
	}

	if err != nil {
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks += 1

	return
}

// getValue resolves the operand at offset by its mode.
func (cpu *Cpu) getValue(mode Mode, offset int64) (value int64, err error) {
	addr, err := cpu.target(mode, offset)
	if err != nil {
		return
	}

	return cpu.Memory.Read(addr)
}

// setValue writes value to the operand at offset, by its mode.
// An immediate mode target is the operand cell itself.
func (cpu *Cpu) setValue(mode Mode, offset int64, value int64) (err error) {
	addr, err := cpu.target(mode, offset)
	if err != nil {
		return
	}

	return cpu.Memory.Write(addr, value)
}

// target returns the address an operand at offset refers to.
func (cpu *Cpu) target(mode Mode, offset int64) (addr int64, err error) {
	switch mode {
	case MODE_IMMEDIATE:
		if !cpu.Memory.Valid(offset) {
			err = ErrUnexpectedEndOfIntcode
			return
		}
		addr = offset
	case MODE_POSITION:
		addr, err = cpu.Memory.Read(offset)
	default:
		err = ErrUnknownMode(mode)
	}

	return
}

func boolValue(cond bool) int64 {
	if cond {
		return 1
	}
	return 0
}

// Run runs mem in place until it halts, with inputs queued for the input
// operation, and returns the values output. Once the inputs are used up, a
// further input operation fails with ErrNoInputFound.
func Run(mem Memory, inputs ...int64) (output []int64, err error) {
	queue := &io.Queue{Capacity: len(inputs)}
	queue.Rewind()
	for _, input := range inputs {
		err = queue.Send(input)
		if err != nil {
			return
		}
	}
	queue.Close()

	cpu := NewCpu(mem)
	cpu.Input = queue

	_, err = cpu.Run()
	output = cpu.Output

	return
}
