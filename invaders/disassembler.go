package invaders

import "fmt"

// instructionWidth returns how many bytes an instruction with the given
// mnemonic occupies, by the width of its operand (0, 1 or 2 extra bytes).
// Conditional/RST/fixed-register mnemonics share a width with their
// single-byte-operand or two-byte-operand siblings.
func instructionWidth(name string) int {
	switch name {
	case "MVI", "ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI", "IN", "OUT":
		return 2
	case "LXI", "SHLD", "LHLD", "STA", "LDA", "JMP", "Jcond", "CALL", "Ccond":
		return 3
	default:
		return 1
	}
}

// Disassemble formats the instruction at addr into a human-readable mnemonic
// line and returns the number of bytes it occupies. It is a pure formatter:
// reading through the CPU's attached Memory has no side effect on CPU state.
func (cpu *CPU) Disassemble(addr uint16) (string, int) {
	return disassembleAt(cpu.mem, addr)
}

func disassembleAt(mem *Memory, addr uint16) (string, int) {
	opcode := mem.Read(addr)
	entry := dispatchTable[opcode]
	width := instructionWidth(entry.name)

	switch width {
	case 2:
		imm := mem.Read(addr + 1)
		return fmt.Sprintf("%04X  %02X %02X     %s #$%02X", addr, opcode, imm, entry.name, imm), 2
	case 3:
		lo := mem.Read(addr + 1)
		hi := mem.Read(addr + 2)
		return fmt.Sprintf("%04X  %02X %02X %02X  %s $%02X%02X", addr, opcode, lo, hi, entry.name, hi, lo), 3
	default:
		return fmt.Sprintf("%04X  %02X        %s", addr, opcode, entry.name), 1
	}
}

// DisassembleRange disassembles every instruction from start to end
// (inclusive), returning the listing keyed by the instruction's address.
func DisassembleRange(mem *Memory, start, end uint16) map[uint16]string {
	listing := make(map[uint16]string)
	addr := uint32(start)
	for addr <= uint32(end) {
		line, width := disassembleAt(mem, uint16(addr))
		listing[uint16(addr)] = line
		addr += uint32(width)
	}
	return listing
}
