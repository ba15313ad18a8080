package cpu

import (
	"log"

	"github.com/ezrec/mipsim/bitfield"
)

// semantic applies an instruction to the cpu state. It must not modify
// any state when it returns an error.
type semantic func(cpu *Cpu, fields Fields) error

// semantics is the dispatch table of the catalog, indexed by mnemonic.
var semantics = [...]semantic{
	MNEMONIC_SLL:   (*Cpu).execSll,
	MNEMONIC_SRL:   (*Cpu).execSrl,
	MNEMONIC_MFHI:  (*Cpu).execMfhi,
	MNEMONIC_MFLO:  (*Cpu).execMflo,
	MNEMONIC_MULT:  (*Cpu).execMult,
	MNEMONIC_MULTU: (*Cpu).execMultu,
	MNEMONIC_DIV:   (*Cpu).execDiv,
	MNEMONIC_ADD:   (*Cpu).execAdd,
	MNEMONIC_ADDU:  (*Cpu).execAddu,
	MNEMONIC_SUB:   (*Cpu).execSub,
	MNEMONIC_SUBU:  (*Cpu).execSubu,
	MNEMONIC_AND:   (*Cpu).execAnd,
	MNEMONIC_OR:    (*Cpu).execOr,
	MNEMONIC_J:     (*Cpu).execJ,
	MNEMONIC_ADDI:  (*Cpu).execAddi,
	MNEMONIC_ADDIU: (*Cpu).execAddiu,
	MNEMONIC_ANDI:  (*Cpu).execAndi,
	MNEMONIC_ORI:   (*Cpu).execOri,
	MNEMONIC_LUI:   (*Cpu).execLui,
	MNEMONIC_LW:    (*Cpu).execLw,
	MNEMONIC_SW:    (*Cpu).execSw,
}

// signed returns the two's-complement value of a register.
func (cpu *Cpu) signed(reg uint32) int64 {
	return int64(bitfield.ToSigned(cpu.Register[reg]))
}

// addSigned is the overflow-checked add shared by ADD, SUB and ADDI.
func (cpu *Cpu) addSigned(op Mnemonic, dst uint32, a, b int64) error {
	result := a + b
	if bitfield.DetectSignedOverflow(result) {
		return ErrOverflow{Mnemonic: op, A: a, B: b}
	}
	cpu.Register[dst] = bitfield.ToUnsigned(int32(result))
	return nil
}

func (cpu *Cpu) execSll(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Register[fields.Rt] << fields.Shamt
	return nil
}

func (cpu *Cpu) execSrl(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Register[fields.Rt] >> fields.Shamt
	return nil
}

func (cpu *Cpu) execMfhi(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Hi
	return nil
}

func (cpu *Cpu) execMflo(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Lo
	return nil
}

func (cpu *Cpu) execMult(fields Fields) error {
	product := uint64(cpu.signed(fields.Rs) * cpu.signed(fields.Rt))
	cpu.Hi = uint32(product >> 32)
	cpu.Lo = uint32(product)
	return nil
}

func (cpu *Cpu) execMultu(fields Fields) error {
	product := uint64(cpu.Register[fields.Rs]) * uint64(cpu.Register[fields.Rt])
	cpu.Hi = uint32(product >> 32)
	cpu.Lo = uint32(product)
	return nil
}

// execDiv leaves hi and lo zero on a zero divisor, rather than trapping.
func (cpu *Cpu) execDiv(fields Fields) error {
	a := bitfield.ToSigned(cpu.Register[fields.Rs])
	b := bitfield.ToSigned(cpu.Register[fields.Rt])
	if b == 0 {
		cpu.Hi = 0
		cpu.Lo = 0
		return nil
	}

	// MinInt32 / -1 wraps to MinInt32, remainder 0.
	cpu.Lo = bitfield.ToUnsigned(a / b)
	cpu.Hi = bitfield.ToUnsigned(a % b)
	return nil
}

func (cpu *Cpu) execAdd(fields Fields) error {
	return cpu.addSigned(MNEMONIC_ADD, fields.Rd, cpu.signed(fields.Rs), cpu.signed(fields.Rt))
}

func (cpu *Cpu) execAddu(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Register[fields.Rs] + cpu.Register[fields.Rt]
	return nil
}

func (cpu *Cpu) execSub(fields Fields) error {
	return cpu.addSigned(MNEMONIC_SUB, fields.Rd, cpu.signed(fields.Rs), -cpu.signed(fields.Rt))
}

func (cpu *Cpu) execSubu(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Register[fields.Rs] - cpu.Register[fields.Rt]
	return nil
}

func (cpu *Cpu) execAnd(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Register[fields.Rs] & cpu.Register[fields.Rt]
	return nil
}

func (cpu *Cpu) execOr(fields Fields) error {
	cpu.Register[fields.Rd] = cpu.Register[fields.Rs] | cpu.Register[fields.Rt]
	return nil
}

// execJ does not jump. Loading the target is not implemented, so the
// instruction only reports itself and falls through to the next one.
func (cpu *Cpu) execJ(fields Fields) error {
	log.Printf("cpu: %08x: j %d: %v", cpu.Pc, fields.Address<<2, ErrNotImplemented)
	return nil
}

func (cpu *Cpu) execAddi(fields Fields) error {
	return cpu.addSigned(MNEMONIC_ADDI, fields.Rt, cpu.signed(fields.Rs), int64(fields.Immediate))
}

func (cpu *Cpu) execAddiu(fields Fields) error {
	cpu.Register[fields.Rt] = cpu.Register[fields.Rs] + bitfield.ToUnsigned(fields.Immediate)
	return nil
}

func (cpu *Cpu) execAndi(fields Fields) error {
	cpu.Register[fields.Rt] = cpu.Register[fields.Rs] & bitfield.AsUnsigned(int64(fields.Immediate), 16)
	return nil
}

func (cpu *Cpu) execOri(fields Fields) error {
	cpu.Register[fields.Rt] = cpu.Register[fields.Rs] | bitfield.AsUnsigned(int64(fields.Immediate), 16)
	return nil
}

func (cpu *Cpu) execLui(fields Fields) error {
	cpu.Register[fields.Rt] = bitfield.AsUnsigned(int64(fields.Immediate), 16) << 16
	return nil
}

// effectiveAddress is the byte address of a load or store.
func (cpu *Cpu) effectiveAddress(fields Fields) uint32 {
	return cpu.Register[fields.Rs] + bitfield.ToUnsigned(fields.Immediate)
}

func (cpu *Cpu) execLw(fields Fields) error {
	address := cpu.effectiveAddress(fields)
	word, ok := cpu.Memory.Fetch(address)
	if !ok {
		return ErrAddress(address)
	}
	cpu.Register[fields.Rt] = word
	return nil
}

func (cpu *Cpu) execSw(fields Fields) error {
	cpu.Memory.Store(cpu.effectiveAddress(fields), cpu.Register[fields.Rt])
	return nil
}
