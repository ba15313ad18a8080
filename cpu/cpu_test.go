package cpu

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/mipsim/memory"
)

// loadCpu assembles the program text at address 0 of a 1KiB memory.
func loadCpu(t *testing.T, program ...string) (cpu *Cpu, ram *memory.Ram) {
	ram = memory.NewRam(1024)
	for n, text := range program {
		code, _, err := Assemble(text)
		if err != nil {
			t.Fatal(err)
		}
		ram.Store(uint32(n*INSTRUCTION_WIDTH), uint32(code))
	}

	cpu = NewCpu(ram)
	err := cpu.Reset(0)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		rs   uint32 // $t1
		rt   uint32 // $t2
		rd   uint32 // $t0
	}){
		{"add", "ADD $t0 $t1 $t2", 5, 7, 12},
		{"add_neg", "ADD $t0 $t1 $t2", 0xfffffffb, 2, 0xfffffffd},
		{"addu_wrap", "ADDU $t0 $t1 $t2", 0x7fffffff, 1, 0x80000000},
		{"addu_carry", "ADDU $t0 $t1 $t2", 0xffffffff, 2, 1},
		{"sub", "SUB $t0 $t1 $t2", 5, 7, 0xfffffffe},
		{"subu_wrap", "SUBU $t0 $t1 $t2", 0x80000000, 1, 0x7fffffff},
		{"and", "AND $t0 $t1 $t2", 0xff00ff00, 0x0ff00ff0, 0x0f000f00},
		{"or", "OR $t0 $t1 $t2", 0xff00ff00, 0x0ff00ff0, 0xfff0fff0},
		{"sll", "SLL $t0 $t1 4", 0x80000001, 0, 0x00000010},
		{"srl", "SRL $t0 $t1 4", 0x80000001, 0, 0x08000000},
		{"sll_0", "SLL $t0 $t1 0", 0x12345678, 0, 0x12345678},
		{"addi", "ADDI $t0 $t1 -1", 0, 0, 0xffffffff},
		{"addiu_wrap", "ADDIU $t0 $t1 1", 0x7fffffff, 0, 0x80000000},
		{"addiu_neg", "ADDIU $t0 $t1 -2", 1, 0, 0xffffffff},
		{"andi", "ANDI $t0 $t1 0xffff", 0x12345678, 0, 0x5678},
		{"andi_neg", "ANDI $t0 $t1 -1", 0x12345678, 0, 0x5678},
		{"ori", "ORI $t0 $t1 0x8000", 0x12340001, 0, 0x12348001},
		{"ori_neg", "ORI $t0 $zero -1", 0, 0, 0x0000ffff},
		{"lui", "LUI $t0 0x1234", 0, 0, 0x12340000},
		{"lui_neg", "LUI $t0 -1", 0, 0, 0xffff0000},
	}

	for _, entry := range table {
		cpu, _ := loadCpu(t, entry.text)
		cpu.Register[9] = entry.rs
		cpu.Register[10] = entry.rt

		err := cpu.Step()
		assert.NoError(err, entry.name)
		assert.Equal(entry.rd, cpu.Register[8], "%v: %08x != %08x", entry.name, entry.rd, cpu.Register[8])
		assert.Equal(uint32(4), cpu.Pc, entry.name)
		assert.Equal(1, cpu.Ticks, entry.name)
	}
}

func TestOverflow(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		rs   uint32 // $t1
		rt   uint32 // $t2
	}){
		{"add", "ADD $t0 $t1 $t2", 0x7fffffff, 1},
		{"add_neg", "ADD $t0 $t1 $t2", 0x80000000, 0xffffffff},
		{"sub", "SUB $t0 $t1 $t2", 0x80000000, 1},
		{"sub_neg", "SUB $t0 $t1 $t2", 0x7fffffff, 0xffffffff},
		{"addi", "ADDI $t0 $t1 1", 0x7fffffff, 0},
		{"addi_neg", "ADDI $t0 $t1 -1", 0x80000000, 0},
	}

	for _, entry := range table {
		cpu, _ := loadCpu(t, entry.text)
		cpu.Register[8] = 0xdeadbeef
		cpu.Register[9] = entry.rs
		cpu.Register[10] = entry.rt

		err := cpu.Step()
		assert.True(errors.Is(err, ErrIntegerOverflow), "%v: %v", entry.name, err)

		var ec ErrCode
		if assert.True(errors.As(err, &ec), entry.name) {
			assert.Equal(uint32(0), ec.Pc, entry.name)
		}

		// No state changes on a failed instruction.
		assert.Equal(uint32(0xdeadbeef), cpu.Register[8], entry.name)
		assert.Equal(uint32(0), cpu.Pc, entry.name)
		assert.Equal(0, cpu.Ticks, entry.name)
	}
}

func TestMultiplyDivide(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		text string
		rs   uint32 // $t0
		rt   uint32 // $t1
		hi   uint32
		lo   uint32
	}){
		{"mult", "MULT $t0 $t1", 0x7fffffff, 2, 0, 0xfffffffe},
		{"multu", "MULTU $t0 $t1", 0x7fffffff, 2, 0, 0xfffffffe},
		{"mult_neg", "MULT $t0 $t1", 0xffffffff, 2, 0xffffffff, 0xfffffffe},
		{"multu_neg", "MULTU $t0 $t1", 0xffffffff, 2, 1, 0xfffffffe},
		{"mult_max", "MULT $t0 $t1", 0x7fffffff, 0x7fffffff, 0x3fffffff, 1},
		{"mult_min", "MULT $t0 $t1", 0x80000000, 0x80000000, 0x40000000, 0},
		{"multu_max", "MULTU $t0 $t1", 0xffffffff, 0xffffffff, 0xfffffffe, 1},
		{"div", "DIV $t0 $t1", 7, 2, 1, 3},
		{"div_neg", "DIV $t0 $t1", 0xfffffff9, 2, 0xffffffff, 0xfffffffd},
		{"div_min", "DIV $t0 $t1", 0x80000000, 0xffffffff, 0, 0x80000000},
		{"div_zero", "DIV $t0 $t1", 7, 0, 0, 0},
	}

	for _, entry := range table {
		cpu, _ := loadCpu(t, entry.text, "MFHI $t2", "MFLO $t3")
		cpu.Hi = 5
		cpu.Lo = 6
		cpu.Register[8] = entry.rs
		cpu.Register[9] = entry.rt

		err := cpu.Step()
		assert.NoError(err, entry.name)
		assert.Equal(entry.hi, cpu.Hi, "%v: hi %08x != %08x", entry.name, entry.hi, cpu.Hi)
		assert.Equal(entry.lo, cpu.Lo, "%v: lo %08x != %08x", entry.name, entry.lo, cpu.Lo)

		assert.NoError(cpu.Step(), entry.name)
		assert.NoError(cpu.Step(), entry.name)
		assert.Equal(entry.hi, cpu.Register[10], entry.name)
		assert.Equal(entry.lo, cpu.Register[11], entry.name)
		assert.Equal(uint32(12), cpu.Pc, entry.name)
	}
}

func TestLoadStore(t *testing.T) {
	assert := assert.New(t)

	cpu, ram := loadCpu(t,
		"ADDI $s0 $zero 512",
		"ADDI $t0 $zero 42",
		"SW $t0 8($s0)",
		"LW $t1 8($s0)",
		"SW $t1 -4($s0)",
		"LW $t2 ($s0)",
	)

	for range 6 {
		assert.NoError(cpu.Step())
	}

	assert.Equal(uint32(42), ram.Data[(512+8)/4])
	assert.Equal(uint32(42), ram.Data[(512-4)/4])
	assert.Equal(uint32(42), cpu.Register[9])
	assert.Equal(uint32(0), cpu.Register[10])
	assert.Equal(6, cpu.Ticks)
}

func TestLoadMiss(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		base    uint32
		address ErrAddress
	}){
		{"range", 0x10000, 0x10000},
		{"align", 0x102, 0x102},
		{"high", 0xfffffffc, 0xfffffffc},
	}

	for _, entry := range table {
		cpu, _ := loadCpu(t, "LW $t0 0($s0)")
		cpu.Register[16] = entry.base
		cpu.Register[8] = 0x1234

		err := cpu.Step()
		assert.True(errors.Is(err, ErrMemoryAccess), "%v: %v", entry.name, err)

		var ea ErrAddress
		if assert.True(errors.As(err, &ea), entry.name) {
			assert.Equal(entry.address, ea, entry.name)
		}
		assert.Contains(err.Error(), ErrAddress(entry.base).Error(), entry.name)

		assert.Equal(uint32(0x1234), cpu.Register[8], entry.name)
		assert.Equal(uint32(0), cpu.Pc, entry.name)
	}
}

func TestStoreDropped(t *testing.T) {
	assert := assert.New(t)

	cpu, ram := loadCpu(t, "SW $t0 4($s0)")
	cpu.Register[8] = 0xcafe
	cpu.Register[16] = 0x10000

	assert.NoError(cpu.Step())
	assert.Equal(uint32(4), cpu.Pc)
	for n, word := range ram.Data[1:] {
		assert.Equal(uint32(0), word, "%v", n)
	}
}

func TestJump(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := loadCpu(t, "J 64")
	for n := range cpu.Register {
		cpu.Register[n] = uint32(n)
	}
	before := cpu.Register

	err := cpu.Step()
	assert.NoError(err)
	assert.Equal(uint32(4), cpu.Pc)
	assert.Equal(before, cpu.Register)
	assert.Equal(1, cpu.Ticks)
}

func TestZeroRegister(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := loadCpu(t, "ADDI $zero $zero 5", "ADD $t0 $zero $zero")

	assert.NoError(cpu.Step())
	assert.NoError(cpu.Step())
	assert.Equal(uint32(5), cpu.Register[0])
	assert.Equal(uint32(10), cpu.Register[8])
}

func TestExecuteUnknown(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := loadCpu(t)
	cpu.Register[8] = 0x55

	for _, code := range []Code{0xffffffff, 0x0000003f, 0x10000000} {
		err := cpu.Execute(code)
		assert.True(errors.Is(err, ErrUnknownInstruction), code.String())

		var ec ErrCode
		if assert.True(errors.As(err, &ec), code.String()) {
			assert.Equal(code, ec.Code)
		}
	}

	assert.Equal(uint32(0x55), cpu.Register[8])
	assert.Equal(uint32(0), cpu.Pc)
	assert.Equal(0, cpu.Ticks)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := loadCpu(t, "ADDI $t0 $zero 1")
	cpu.Register[8] = 9
	cpu.Hi = 1
	cpu.Lo = 2
	cpu.Ticks = 3

	assert.True(errors.Is(cpu.Reset(2), ErrPcAlign))

	assert.NoError(cpu.Reset(4))
	assert.Equal(uint32(4), cpu.Pc)
	assert.Equal(uint32(0), cpu.Register[8])
	assert.Equal(uint32(0), cpu.Hi)
	assert.Equal(uint32(0), cpu.Lo)
	assert.Equal(0, cpu.Ticks)

	cpu.Pc = 2
	assert.True(errors.Is(cpu.Step(), ErrPcAlign))

	cpu.Pc = 1024
	assert.True(errors.Is(cpu.Step(), ErrPcEmpty))

	cpu.Memory = nil
	cpu.Pc = 0
	assert.True(errors.Is(cpu.Step(), ErrPcEmpty))
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := loadCpu(t,
		"ADDI $t0 $zero 6",
		"ADDI $t1 $zero 7",
		"MULT $t0 $t1",
		"MFLO $v0",
	)

	// Zero words are `sll $0 $0 0`, so the cpu runs until the pc
	// leaves memory.
	err := cpu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint32(42), cpu.Register[2])
	assert.Equal(uint32(1024), cpu.Pc)
	assert.Equal(256, cpu.Ticks)

	cpu, _ = loadCpu(t, "ADDI $t0 $zero 1", "ADD $t0 $t0 $t0", "ADD $t0 $t0 $t0")
	err = cpu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint32(4), cpu.Register[8])

	cpu, _ = loadCpu(t, "LUI $t0 0x7fff", "ADD $t0 $t0 $t0")
	err = cpu.Run(context.Background())
	assert.True(errors.Is(err, ErrIntegerOverflow))
	assert.Equal(uint32(4), cpu.Pc)
	assert.Equal(1, cpu.Ticks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cpu, _ = loadCpu(t)
	err = cpu.Run(ctx)
	assert.True(errors.Is(err, context.Canceled))
	assert.Equal(0, cpu.Ticks)
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := loadCpu(t)
	cpu.Pc = 0x1234
	cpu.Register[31] = 0xdeadbeef

	text := cpu.String()
	assert.Contains(text, "   pc: 0000_1234\n")
	assert.Contains(text, "  $ra: dead_beef\n")
	assert.Contains(text, "$zero: 0000_0000\n")
}
