package invaders

// execMOV copies one register-file slot to another; either may be M, which
// redirects through Memory at HL.
func execMOV(cpu *CPU, opcode uint8) {
	dst := regField(opcode, 3)
	src := regField(opcode, 0)
	cpu.write8(dst, cpu.read8(src))
}

func execMVI(cpu *CPU, opcode uint8) {
	r := regField(opcode, 3)
	cpu.write8(r, cpu.fetch8())
}

func execLXI(cpu *CPU, opcode uint8) {
	rp := pairField(opcode)
	cpu.writePair(rp, cpu.fetch16())
}

func execSTA(cpu *CPU, _ uint8) {
	addr := cpu.fetch16()
	cpu.mem.Write(addr, cpu.a)
}

func execLDA(cpu *CPU, _ uint8) {
	addr := cpu.fetch16()
	cpu.a = cpu.mem.Read(addr)
}

// execSHLD stores L at addr and H at addr+1.
func execSHLD(cpu *CPU, _ uint8) {
	addr := cpu.fetch16()
	cpu.mem.Write(addr, cpu.l)
	cpu.mem.Write(addr+1, cpu.h)
}

func execLHLD(cpu *CPU, _ uint8) {
	addr := cpu.fetch16()
	cpu.l = cpu.mem.Read(addr)
	cpu.h = cpu.mem.Read(addr + 1)
}

// execSTAX/execLDAX address through BC or DE only; pairField on these two
// opcodes (0x02, 0x12, 0x0A, 0x1A) never yields HL or SP.
func execSTAX(cpu *CPU, opcode uint8) {
	cpu.mem.Write(cpu.readPair(pairField(opcode)), cpu.a)
}

func execLDAX(cpu *CPU, opcode uint8) {
	cpu.a = cpu.mem.Read(cpu.readPair(pairField(opcode)))
}

func execXCHG(cpu *CPU, _ uint8) {
	cpu.h, cpu.d = cpu.d, cpu.h
	cpu.l, cpu.e = cpu.e, cpu.l
}

// execXTHL swaps HL with the two bytes at the top of the stack.
func execXTHL(cpu *CPU, _ uint8) {
	lo := cpu.mem.Read(cpu.sp)
	hi := cpu.mem.Read(cpu.sp + 1)
	cpu.mem.Write(cpu.sp, cpu.l)
	cpu.mem.Write(cpu.sp+1, cpu.h)
	cpu.l, cpu.h = lo, hi
}

func execSPHL(cpu *CPU, _ uint8) { cpu.sp = cpu.hl() }

// execPUSH pushes the pair (PUSH decrements SP by 2 and stores the LSB at the
// lower address). The PSW encoding (rp=3) pushes A as the high byte and the
// packed flag byte as the low byte.
func execPUSH(cpu *CPU, opcode uint8) {
	rp := pairField(opcode)
	if rp == pairPSW {
		cpu.push(uint16(cpu.a)<<8 | uint16(cpu.flags.Byte()))
		return
	}
	cpu.push(cpu.readPair(rp))
}

// execPOP pops the PSW encoding (rp=3) into the flag byte then A, forcing the
// fixed 1/0/0 bits regardless of what was popped; all other pairs pop
// straight into the register pair.
func execPOP(cpu *CPU, opcode uint8) {
	rp := pairField(opcode)
	v := cpu.pop()
	if rp == pairPSW {
		cpu.flags.SetByte(uint8(v))
		cpu.a = uint8(v >> 8)
		return
	}
	cpu.writePair(rp, v)
}
