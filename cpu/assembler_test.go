package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(program []string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Lines))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("0", asm.Equate["IP"])
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"add 9 10 3",
		"mul 3 #11 0 ; comment",
		"",
		"; comment only",
		"halt",
		".data 30, 40, 50",
	}

	prog, err := assemble(program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Line{
		{1, 0, []string{"add", "9", "10", "3"}, []int64{1, 9, 10, 3}, nil},
		{2, 4, []string{"mul", "3", "#11", "0"}, []int64{1002, 3, 11, 0}, nil},
		{5, 8, []string{"halt"}, []int64{99}, nil},
		{6, 9, []string{".data", "30", "40", "50"}, []int64{30, 40, 50}, nil},
	}

	assert.Equal(expected, prog.Lines)
	assert.Equal(Memory{1, 9, 10, 3, 1002, 3, 11, 0, 99, 30, 40, 50}, prog.Memory())
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"start: in value",
		"jt value #nonzero",
		"out #0",
		"jt #1 #done",
		"nonzero: out #1",
		"done:",
		"halt",
		"value: .data 0",
	}

	prog, err := assemble(program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	mem := prog.Memory()
	assert.Equal(Memory{
		3, 13,
		1005, 13, 10,
		104, 0,
		1105, 1, 12,
		104, 1,
		99,
		0,
	}, mem)

	for input, expected := range map[int64]int64{0: 0, 5: 1} {
		output, err := Run(prog.Memory(), input)
		assert.NoError(err)
		assert.Equal([]int64{expected}, output)
	}
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ CONST_10 0x10",
		"out #CONST_10",
		"out #$(CONST_10 + CONST_10)",
		".equ CONST_30 $(2 * CONST_10 + CONST_10)",
		"out #CONST_30",
		"out #$(LINENO * 8 + 0x10)",
		"here: out #$(IP)",
		"out #$(here)",
		"halt",
	}

	prog, err := assemble(program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	output, err := Run(prog.Memory())
	assert.NoError(err)
	assert.Equal([]int64{0x10, 0x20, 0x30, 0x40, 8, 8}, output)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("ANSWER", "42")
	asm.Predefine("ANSWER", "43")

	prog, err := asm.Parse(strings.NewReader("out #ANSWER\nhalt"))
	assert.NoError(err)

	output, err := Run(prog.Memory())
	assert.NoError(err)
	assert.Equal([]int64{43}, output)
}

func TestAssemblerImmediateDestination(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble([]string{"add #2 #3 #0", "halt"})
	assert.NoError(err)

	mem := prog.Memory()
	assert.Equal(Memory{11101, 2, 3, 0, 99}, mem)

	_, err = Run(mem)
	assert.NoError(err)
	assert.Equal(Memory{11101, 2, 3, 5, 99}, mem)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"opcode", []string{"halt", "jump 0"}, 2, ErrOpcodeInvalid},
		{"missing", []string{"add 1 2"}, 1, ErrOpcodeValueMissing},
		{"extra", []string{"out 1 2"}, 1, ErrOpcodeExtraArgs},
		{"immediate_empty", []string{"out #"}, 1, ErrOpcodeValueMissing},
		{"label_dup", []string{"a: halt", "a: halt"}, 2, ErrLabelDuplicate},
		{"label_invalid", []string{"1a: halt"}, 1, ErrLabelInvalid},
		{"label_missing", []string{"in #1", "jt #1 #nowhere", "halt"}, 2, ErrLabelMissing("nowhere")},
		{"equ_syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ_dup", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"equ_system", []string{".equ LINENO 1"}, 1, ErrEquateDuplicate},
		{"data", []string{".data"}, 1, ErrDataMissing},
		{"number", []string{"out #12abc"}, 1, ErrParseNumber("12abc")},
		{"expression", []string{"out #$('x')"}, 1, ErrParseExpression("'x'")},
	}

	for _, entry := range table {
		_, err := assemble(entry.program)
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}
}

func TestAssemblerExpressionError(t *testing.T) {
	assert := assert.New(t)

	_, err := assemble([]string{"out #$(1 +)"})
	assert.Error(err)

	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
}
