package invaders

// aluAdd implements ADD/ADC/ADI/ACI: A := A + operand (+ carryIn), widened to
// 9 bits so Carry is simply bit 8 of the wide result. Auxiliary-carry is the
// carry out of bit 3 of the low-nibble sum, including the incoming carry.
func (cpu *CPU) aluAdd(operand, carryIn uint8) {
	a := cpu.a
	wide := uint16(a) + uint16(operand) + uint16(carryIn)
	nibble := (a & 0x0F) + (operand & 0x0F) + carryIn

	cpu.flags.C = wide > 0xFF
	cpu.flags.AC = nibble > 0x0F
	result := uint8(wide)
	cpu.flags.setZSP(result)
	cpu.a = result
}

// aluSub implements SUB/SBB/SUI/SBI/CMP/CPI: A := A - operand (- borrowIn).
// The 8080 reports Carry as an inverted-borrow output: set when the unsigned
// subtraction borrows. writeBack is false for CMP/CPI, which sets flags
// without touching A.
func (cpu *CPU) aluSub(operand, borrowIn uint8, writeBack bool) {
	a := cpu.a
	wide := uint16(a) - uint16(operand) - uint16(borrowIn)
	nibble := int16(a&0x0F) - int16(operand&0x0F) - int16(borrowIn)

	cpu.flags.C = uint16(a) < uint16(operand)+uint16(borrowIn)
	cpu.flags.AC = nibble < 0
	result := uint8(wide)
	cpu.flags.setZSP(result)
	if writeBack {
		cpu.a = result
	}
}

// aluOperand resolves the operand for a register-or-immediate ALU opcode:
// immOp is the single opcode value that takes an immediate byte (e.g. 0xC6
// for ADI), every other opcode in the family takes its low 3 bits as a
// register-file index.
func (cpu *CPU) aluOperand(opcode, immOp uint8) uint8 {
	if opcode == immOp {
		return cpu.fetch8()
	}
	return cpu.read8(regField(opcode, 0))
}

func execADD(cpu *CPU, opcode uint8) { cpu.aluAdd(cpu.aluOperand(opcode, 0xC6), 0) }

func execADC(cpu *CPU, opcode uint8) {
	carry := uint8(0)
	if cpu.flags.C {
		carry = 1
	}
	cpu.aluAdd(cpu.aluOperand(opcode, 0xCE), carry)
}

func execSUB(cpu *CPU, opcode uint8) { cpu.aluSub(cpu.aluOperand(opcode, 0xD6), 0, true) }

func execSBB(cpu *CPU, opcode uint8) {
	borrow := uint8(0)
	if cpu.flags.C {
		borrow = 1
	}
	cpu.aluSub(cpu.aluOperand(opcode, 0xDE), borrow, true)
}

func execCMP(cpu *CPU, opcode uint8) { cpu.aluSub(cpu.aluOperand(opcode, 0xFE), 0, false) }

// execINR/execDCR leave Carry untouched; AC follows the standard nibble rule
// (set when the low nibble rolls over 0xF<->0x0).
func execINR(cpu *CPU, opcode uint8) {
	r := regField(opcode, 3)
	v := cpu.read8(r)
	result := v + 1
	cpu.flags.AC = v&0x0F == 0x0F
	cpu.flags.setZSP(result)
	cpu.write8(r, result)
}

func execDCR(cpu *CPU, opcode uint8) {
	r := regField(opcode, 3)
	v := cpu.read8(r)
	result := v - 1
	cpu.flags.AC = v&0x0F == 0x00
	cpu.flags.setZSP(result)
	cpu.write8(r, result)
}

// execDAD adds a register pair into HL; Carry is bit 16 of the wide result,
// no other flag is affected.
func execDAD(cpu *CPU, opcode uint8) {
	rp := pairField(opcode)
	wide := uint32(cpu.hl()) + uint32(cpu.readPair(rp))
	cpu.flags.C = wide > 0xFFFF
	cpu.setHL(uint16(wide))
}

func execINX(cpu *CPU, opcode uint8) {
	rp := pairField(opcode)
	cpu.writePair(rp, cpu.readPair(rp)+1)
}

func execDCX(cpu *CPU, opcode uint8) {
	rp := pairField(opcode)
	cpu.writePair(rp, cpu.readPair(rp)-1)
}

// execDAA is the canonical Intel decimal-adjust: two correction steps on the
// low then high nibble. The first sets Auxiliary-carry from its nibble carry;
// the second may set Carry but never clears one already set.
func execDAA(cpu *CPU, _ uint8) {
	a := cpu.a
	carry := cpu.flags.C

	if a&0x0F > 9 || cpu.flags.AC {
		c1 := (a&0x0F)+0x06 > 0x0F
		a += 0x06
		cpu.flags.AC = c1
	}

	if a>>4 > 9 || carry {
		if uint16(a)+0x60 > 0xFF {
			carry = true
		}
		a += 0x60
	}

	cpu.flags.C = carry
	cpu.flags.setZSP(a)
	cpu.a = a
}
