package invaders

// execNOP covers the documented opcode 0x00 and the alternate NOP encodings
// (0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38); see decode.go's default table
// fill. The other alternates (0xCB, 0xD9, 0xDD, 0xED, 0xFD) alias JMP, RET
// and CALL instead.
func execNOP(_ *CPU, _ uint8) {}

// execHLT backs PC up by 1 so the same instruction re-executes, modeling a
// busy-wait until the next interrupt.
func execHLT(cpu *CPU, _ uint8) { cpu.pc-- }

func execDI(cpu *CPU, _ uint8) { cpu.ie = false }
func execEI(cpu *CPU, _ uint8) { cpu.ie = true }

func execIN(cpu *CPU, _ uint8) {
	port := cpu.fetch8()
	cpu.a = cpu.io.In(port)
}

func execOUT(cpu *CPU, _ uint8) {
	port := cpu.fetch8()
	cpu.io.Out(port, cpu.a)
}
