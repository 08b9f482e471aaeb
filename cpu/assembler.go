// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"IP":     "0",
}

// mnemonics maps assembler mnemonics to operations.
var mnemonics = func() map[string]Op {
	ops := make(map[string]Op, len(opParams))
	for op := range opParams {
		ops[op.String()] = op
	}
	return ops
}()

var (
	reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for Intcode programs.
//
// Each line is an optional 'label:', followed by either a mnemonic and its
// operands, '.data' and a list of values, or '.equ NAME VALUE'. Operands
// prefixed with '#' are immediate mode, others are position mode. Values may
// be numbers, equates, labels, or $(...) expressions evaluated at assembly
// time. Comments start with ';'.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int64  // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate, applied at
// the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// value resolves a word to a number, or to a label to link later.
func (asm *Assembler) value(word string) (value int64, link string, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if reLabel.MatchString(word) {
		err = nil
		link = word
	}

	return
}

// operand resolves an instruction operand, with its mode.
func (asm *Assembler) operand(word string) (mode Mode, value int64, link string, err error) {
	mode = MODE_POSITION
	if strings.HasPrefix(word, "#") {
		mode = MODE_IMMEDIATE
		word = word[1:]
	}

	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	value, link, err = asm.value(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	err = nil
	for label, ip := range asm.Label {
		pred[label] = starlark.MakeInt64(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words, handling labels and equates.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number and address.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
	asm.Equate["IP"] = fmt.Sprintf("%v", asm.currentIp())

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
	}

	return
}

// currentIp gets the address of the next word to be emitted.
func (asm *Assembler) currentIp() int64 {
	if len(asm.Lines) == 0 {
		return 0
	}

	last := asm.Lines[len(asm.Lines)-1]

	return last.Ip + int64(len(last.Codes))
}

// parseWords emits the memory words for a parsed line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	line := Line{
		LineNo: lineno,
		Ip:     asm.currentIp(),
		Words:  words,
	}

	link := func(word string) {
		if line.Links == nil {
			line.Links = map[int]string{}
		}
		line.Links[len(line.Codes)] = word
	}

	if words[0] == ".data" {
		if len(words) == 1 {
			err = ErrDataMissing
			return
		}
		for _, word := range words[1:] {
			value, label, err := asm.value(word)
			if err != nil {
				return err
			}
			if len(label) != 0 {
				link(label)
			}
			line.Codes = append(line.Codes, value)
		}
		asm.Lines = append(asm.Lines, line)
		return
	}

	op, ok := mnemonics[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) < op.Size()-1 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.Size()-1 {
		err = ErrOpcodeExtraArgs
		return
	}

	modes := make([]Mode, len(args))
	values := make([]int64, len(args))
	labels := make([]string, len(args))
	for n, arg := range args {
		modes[n], values[n], labels[n], err = asm.operand(arg)
		if err != nil {
			return
		}
	}

	line.Codes = append(line.Codes, int64(MakeCode(op, modes...)))
	for n := range args {
		if len(labels[n]) != 0 {
			link(labels[n])
		}
		line.Codes = append(line.Codes, values[n])
	}

	asm.Lines = append(asm.Lines, line)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int64, 16)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]

		for index, label := range op.Links {
			ip, ok := asm.Label[label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(label)
				return
			}
			op.Codes[index] = ip
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}
