// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
)

// patchList collects addr=value flags.
type patchList [][2]int64

func (pl *patchList) String() string {
	var words []string
	for _, patch := range *pl {
		words = append(words, fmt.Sprintf("%d=%d", patch[0], patch[1]))
	}
	return strings.Join(words, ",")
}

func (pl *patchList) Set(text string) (err error) {
	addr, value, ok := strings.Cut(text, "=")
	if !ok {
		err = emulator.ErrPatchSyntax(text)
		return
	}

	var patch [2]int64
	patch[0], err = strconv.ParseInt(addr, 0, 64)
	if err == nil {
		patch[1], err = strconv.ParseInt(value, 0, 64)
	}
	if err != nil {
		err = emulator.ErrPatchSyntax(text)
		return
	}

	*pl = append(*pl, patch)
	return
}

func main() {
	var compile string
	var program string
	var input string
	var output string
	var patches patchList
	var maxTicks int
	var dump bool
	var list bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".ic file to assemble")
	flag.StringVar(&program, "p", "", "comma separated program file to run")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.Var(&patches, "patch", "addr=value memory patch, may be repeated")
	flag.IntVar(&maxTicks, "t", 0, "Maximum ticks to run, 0 for no limit")
	flag.BoolVar(&dump, "m", false, "Print final memory")
	flag.BoolVar(&list, "l", false, "List the program, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(program) != 0 {
		log.Fatalf("%v: -c and -p are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = maxTicks

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for equ, value := range emu.Defines() {
			asm.Predefine(equ, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Load a program text.
	if len(program) != 0 {
		inf, err := os.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		defer inf.Close()

		mem, err := cpu.ParseReader(inf)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		emu.Program = cpu.NewProgram(mem)
	}

	for _, patch := range patches {
		emu.Patch(patch[0], patch[1])
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if list {
		for ip, text := range emu.Cpu.Memory.Listing() {
			fmt.Printf("%04d: %v\n", ip, text)
		}
		return
	}

	if input == "-" {
		emu.Tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		fmt.Println(emu.Cpu.Memory.String())
	}
}
