// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

const (
	QUEUE_CAPACITY = 16 // Input values buffered ahead of the CPU.
)

var _emulator_defines = map[string]string{
	"QUEUE_CAPACITY": fmt.Sprintf("%v", QUEUE_CAPACITY),
}

// Emulator state. CPU + program image + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the program image and listing.
	MaxTicks int          // If non-zero, Run fails after this many ticks.

	Queue io.Queue // Input queue read by the CPU.
	Tape  io.Tape  // Tape IO channel.

	patch  map[int64]int64
	output int // Count of CPU outputs already sent to the tape.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil),
		Program: &cpu.Program{},
	}

	emu.Queue.Capacity = QUEUE_CAPACITY
	emu.Cpu.Input = &emu.Queue

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Patch overrides the memory cell at addr with value on every Reset.
func (emu *Emulator) Patch(addr int64, value int64) {
	if emu.patch == nil {
		emu.patch = map[int64]int64{}
	}
	emu.patch[addr] = value
}

// Reset loads a fresh copy of the program image, applies patches, and
// readies the CPU and input queue.
func (emu *Emulator) Reset() (err error) {
	mem := emu.Program.Memory()
	for addr, value := range emu.patch {
		err = mem.Write(addr, value)
		if err != nil {
			err = &ErrPatch{Addr: addr, Err: err}
			return
		}
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(mem)
	emu.Queue.Rewind()
	emu.Tape.Rewind()
	emu.output = 0

	return
}

// LineNo returns the source line number of the current instruction, or 0 if
// unknown.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	if emu.Cpu.State == cpu.STATE_HALTED {
		done = true
		return
	}

	err = emu.Cpu.Tick()
	if err == nil && emu.Cpu.State == cpu.STATE_WAITING {
		err = emu.feed()
	}

	// Outputs made before a failure are still sent.
	flush_err := emu.flush()
	if err == nil {
		err = flush_err
	}

	done = emu.Cpu.State == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for ticks := 1; ; ticks++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
		if emu.MaxTicks > 0 && ticks >= emu.MaxTicks {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrTickLimit}
			return
		}
	}
}

// feed moves one value from the tape to the input queue, closing the queue
// at the end of the tape.
func (emu *Emulator) feed() (err error) {
	value, ok, err := emu.Tape.Receive()
	if err != nil {
		return
	}

	if !ok {
		if emu.Verbose {
			log.Printf("emulator: end of tape")
		}
		emu.Queue.Close()
		return
	}

	err = emu.Queue.Send(value)
	return
}

// flush sends new CPU outputs to the tape.
func (emu *Emulator) flush() (err error) {
	for emu.output < len(emu.Cpu.Output) {
		err = emu.Tape.Send(emu.Cpu.Output[emu.output])
		if err != nil {
			return
		}
		emu.output++
	}

	return
}
