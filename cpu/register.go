package cpu

import (
	"fmt"
	"strings"
)

// REGISTER_COUNT is the number of general-purpose registers.
const REGISTER_COUNT = 32

// Conventional register names, by register number.
var registerName = [REGISTER_COUNT]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// registerMap maps register names and aliases to register numbers.
var registerMap = makeRegisterMap()

func makeRegisterMap() map[string]uint32 {
	regs := make(map[string]uint32, 2*REGISTER_COUNT+1)
	for n, name := range registerName {
		regs[name] = uint32(n)
		regs[fmt.Sprintf("$%d", n)] = uint32(n)
	}
	regs["$s8"] = 30
	return regs
}

// LookupRegister returns the register number of a register name such
// as "$t0", "$31" or "$s8".
func LookupRegister(name string) (index uint32, ok bool) {
	index, ok = registerMap[strings.ToLower(name)]
	return
}

// RegisterName returns the conventional name of a register number.
func RegisterName(index uint32) string {
	if index >= REGISTER_COUNT {
		return fmt.Sprintf("$%d", index)
	}
	return registerName[index]
}
