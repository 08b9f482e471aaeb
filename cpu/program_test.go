package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Ip: 0, Words: []string{"in", "7"}, Codes: []int64{3, 7}},
			{LineNo: 3, Ip: 2, Words: []string{"out", "7"}, Codes: []int64{4, 7}},
			{LineNo: 4, Ip: 4, Words: []string{"halt"}, Codes: []int64{99}},
		},
	}

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Line)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Line)
	assert.Equal(3, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(4, dbg.LineNo)

	dbg = prog.Debug(5)
	assert.Nil(dbg.Line)
	assert.Equal(0, dbg.Index)
}

func TestProgram_Memory(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 1, Ip: 0, Codes: []int64{104, 42}},
			{LineNo: 2, Ip: 2, Codes: []int64{99}},
		},
	}

	mem := prog.Memory()
	assert.Equal(Memory{104, 42, 99}, mem)

	// Each image is independent.
	mem[1] = 0
	assert.Equal(Memory{104, 42, 99}, prog.Memory())

	var ips []int64
	for ip := range prog.Codes() {
		ips = append(ips, ip)
	}
	assert.Equal([]int64{0, 1, 2}, ips)
}

func TestNewProgram(t *testing.T) {
	assert := assert.New(t)

	mem := Memory{1, 0, 0, 0, 99}
	prog := NewProgram(mem)
	mem[0] = 2

	assert.Equal(Memory{1, 0, 0, 0, 99}, prog.Memory())
	assert.Equal(0, prog.Debug(4).LineNo)

	assert.Empty(NewProgram(nil).Lines)
	assert.Empty(NewProgram(nil).Memory())
}
