package invaders

// execJMP/execJcond fetch the two-byte address operand low-byte-first,
// advancing PC past it whether or not a conditional branch is taken.
func execJMP(cpu *CPU, _ uint8) {
	cpu.pc = cpu.fetch16()
}

func execJcond(cpu *CPU, opcode uint8) {
	addr := cpu.fetch16()
	if checkCond(cpu.flags, condField(opcode)) {
		cpu.pc = addr
	}
}

// execCALL/execCcond push the return address (PC after the three-byte
// instruction) and jump. The not-taken cost is already charged by the
// dispatch table; a taken conditional call charges 6 more T-states.
func execCALL(cpu *CPU, _ uint8) {
	addr := cpu.fetch16()
	cpu.push(cpu.pc)
	cpu.pc = addr
}

func execCcond(cpu *CPU, opcode uint8) {
	addr := cpu.fetch16()
	if checkCond(cpu.flags, condField(opcode)) {
		cpu.push(cpu.pc)
		cpu.pc = addr
		cpu.cycles -= 6
	}
}

func execRET(cpu *CPU, _ uint8) {
	cpu.pc = cpu.pop()
}

// execRcond charges 6 more T-states than the dispatch table's not-taken cost
// when the branch is taken.
func execRcond(cpu *CPU, opcode uint8) {
	if checkCond(cpu.flags, condField(opcode)) {
		cpu.pc = cpu.pop()
		cpu.cycles -= 6
	}
}

// execRST pushes PC (after this single-byte instruction) and jumps to n*8,
// with n extracted from bits 3-5 of the opcode.
func execRST(cpu *CPU, opcode uint8) {
	n := regField(opcode, 3)
	cpu.push(cpu.pc)
	cpu.pc = uint16(n) * 8
}

func execPCHL(cpu *CPU, _ uint8) { cpu.pc = cpu.hl() }
