package invaders

import "log"

// Register file indices, fixed by the 8080's 3-bit register-field encoding.
// Index 6 (M) does not name a register; it redirects through Memory at HL.
const (
	regB = 0
	regC = 1
	regD = 2
	regE = 3
	regH = 4
	regL = 5
	regM = 6
	regA = 7
)

// Register-pair indices. BC/DE/HL are shared by both encodings; slot 3 is SP
// in most encodings and PSW (A + flags) in PUSH/POP.
const (
	pairBC  = 0
	pairDE  = 1
	pairHL  = 2
	pairSP  = 3
	pairPSW = 3
)

// CPU holds the 8080's architectural state: the seven 8-bit registers, stack
// pointer, program counter, interrupt-enable latch and the running cycle
// budget, plus the Memory and IOPorts it is wired to.
type CPU struct {
	b, c, d, e, h, l, a uint8
	flags               Flags

	sp, pc uint16

	ie     bool // interrupt-enable latch
	cycles int  // running cycle budget, decremented by each instruction

	mem *Memory
	io  *IOPorts

	// Logger, if non-nil, receives one line per retired instruction and per
	// interrupt dispatch. The core itself never logs by default so that
	// execute stays allocation-light; the reference host wires this up.
	Logger *log.Logger
}

// New returns a CPU wired to mem and io, with all registers, flags and the
// interrupt latch zeroed — the 8080's cold-reset state.
func New(mem *Memory, io *IOPorts) *CPU {
	return &CPU{mem: mem, io: io}
}

// Mem returns the CPU's attached memory, for tooling and video scanout.
func (cpu *CPU) Mem() *Memory { return cpu.mem }

// IO returns the CPU's attached IO ports.
func (cpu *CPU) IO() *IOPorts { return cpu.io }

// PC returns the current program counter.
func (cpu *CPU) PC() uint16 { return cpu.pc }

// SetPC overwrites the program counter. Used by hosts that need to start
// execution at a fixed address (e.g. CP/M-style diagnostic images at 0x100).
func (cpu *CPU) SetPC(pc uint16) { cpu.pc = pc }

// Flags returns a copy of the condition record.
func (cpu *CPU) Flags() Flags { return cpu.flags }

// IE reports whether the interrupt-enable latch is set.
func (cpu *CPU) IE() bool { return cpu.ie }

// SP returns the current stack pointer.
func (cpu *CPU) SP() uint16 { return cpu.sp }

// Register accessors, exported for tooling, tests and the debug overlay.
func (cpu *CPU) A() uint8 { return cpu.a }
func (cpu *CPU) B() uint8 { return cpu.b }
func (cpu *CPU) C() uint8 { return cpu.c }
func (cpu *CPU) D() uint8 { return cpu.d }
func (cpu *CPU) E() uint8 { return cpu.e }
func (cpu *CPU) H() uint8 { return cpu.h }
func (cpu *CPU) L() uint8 { return cpu.l }
func (cpu *CPU) BC() uint16 { return cpu.bc() }
func (cpu *CPU) DE() uint16 { return cpu.de() }
func (cpu *CPU) HL() uint16 { return cpu.hl() }

// State setters, used by tests to seed a scenario (spec §8) without exposing
// the whole register file as public fields.
func (cpu *CPU) SetA(v uint8)     { cpu.a = v }
func (cpu *CPU) SetB(v uint8)     { cpu.b = v }
func (cpu *CPU) SetC(v uint8)     { cpu.c = v }
func (cpu *CPU) SetD(v uint8)     { cpu.d = v }
func (cpu *CPU) SetE(v uint8)     { cpu.e = v }
func (cpu *CPU) SetH(v uint8)     { cpu.h = v }
func (cpu *CPU) SetL(v uint8)     { cpu.l = v }
func (cpu *CPU) SetBC(v uint16)   { cpu.setBC(v) }
func (cpu *CPU) SetDE(v uint16)   { cpu.setDE(v) }
func (cpu *CPU) SetHL(v uint16)   { cpu.setHL(v) }
func (cpu *CPU) SetSP(v uint16)   { cpu.sp = v }
func (cpu *CPU) SetFlags(f Flags) { cpu.flags = f }
func (cpu *CPU) SetIE(v bool)     { cpu.ie = v }

// read8/write8 access the indexed register file; index regM redirects
// through Memory at the current HL.
func (cpu *CPU) read8(idx uint8) uint8 {
	switch idx {
	case regB:
		return cpu.b
	case regC:
		return cpu.c
	case regD:
		return cpu.d
	case regE:
		return cpu.e
	case regH:
		return cpu.h
	case regL:
		return cpu.l
	case regM:
		return cpu.mem.Read(cpu.hl())
	default:
		return cpu.a
	}
}

func (cpu *CPU) write8(idx uint8, v uint8) {
	switch idx {
	case regB:
		cpu.b = v
	case regC:
		cpu.c = v
	case regD:
		cpu.d = v
	case regE:
		cpu.e = v
	case regH:
		cpu.h = v
	case regL:
		cpu.l = v
	case regM:
		cpu.mem.Write(cpu.hl(), v)
	default:
		cpu.a = v
	}
}

func (cpu *CPU) bc() uint16 { return uint16(cpu.b)<<8 | uint16(cpu.c) }
func (cpu *CPU) de() uint16 { return uint16(cpu.d)<<8 | uint16(cpu.e) }
func (cpu *CPU) hl() uint16 { return uint16(cpu.h)<<8 | uint16(cpu.l) }

func (cpu *CPU) setBC(v uint16) { cpu.b, cpu.c = uint8(v>>8), uint8(v) }
func (cpu *CPU) setDE(v uint16) { cpu.d, cpu.e = uint8(v>>8), uint8(v) }
func (cpu *CPU) setHL(v uint16) { cpu.h, cpu.l = uint8(v>>8), uint8(v) }

// readPair/writePair decode the 2-bit register-pair field used by most
// 16-bit-operand encodings (BC=0, DE=1, HL=2, SP=3).
func (cpu *CPU) readPair(idx uint8) uint16 {
	switch idx {
	case pairBC:
		return cpu.bc()
	case pairDE:
		return cpu.de()
	case pairHL:
		return cpu.hl()
	default:
		return cpu.sp
	}
}

func (cpu *CPU) writePair(idx uint8, v uint16) {
	switch idx {
	case pairBC:
		cpu.setBC(v)
	case pairDE:
		cpu.setDE(v)
	case pairHL:
		cpu.setHL(v)
	default:
		cpu.sp = v
	}
}

// fetch8/fetch16 read the operand bytes following an opcode and advance PC
// past them, whether or not the instruction ultimately branches.
func (cpu *CPU) fetch8() uint8 {
	b := cpu.mem.Read(cpu.pc)
	cpu.pc++
	return b
}

func (cpu *CPU) fetch16() uint16 {
	lo := cpu.fetch8()
	hi := cpu.fetch8()
	return uint16(hi)<<8 | uint16(lo)
}

// push/pop implement the downward-growing stack: PUSH stores the LSB at the
// lower address.
func (cpu *CPU) push(v uint16) {
	cpu.sp -= 2
	cpu.mem.Write(cpu.sp, uint8(v))
	cpu.mem.Write(cpu.sp+1, uint8(v>>8))
}

func (cpu *CPU) pop() uint16 {
	lo := cpu.mem.Read(cpu.sp)
	hi := cpu.mem.Read(cpu.sp + 1)
	cpu.sp += 2
	return uint16(hi)<<8 | uint16(lo)
}

// Execute runs instructions until the cycle budget is exhausted, fetching one
// opcode byte at PC, dispatching through the 256-entry table, and deducting
// each instruction's T-state cost from the budget. Returns the leftover
// budget (possibly negative, by at most 17) so the caller can fold it into
// the next slice.
func (cpu *CPU) Execute(numCycles int) int {
	cpu.cycles = numCycles

	for cpu.cycles > 0 {
		pc := cpu.pc
		opcode := cpu.fetch8()
		entry := dispatchTable[opcode]
		entry.exec(cpu, opcode)
		cpu.cycles -= entry.cycles

		if cpu.Logger != nil {
			cpu.Logger.Printf("%04X: %-4s A:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
				pc, entry.name, cpu.a, cpu.b, cpu.c, cpu.d, cpu.e, cpu.h, cpu.l, cpu.sp)
		}
	}

	return cpu.cycles
}

// Interrupt accepts an external RST-style interrupt number. If the
// interrupt-enable latch is clear, it is a no-op. Otherwise it pushes the
// current PC, clears the latch, and diverts control to vector n*8. Interrupts
// never consume from the cycle budget; the host calls this between slices.
func (cpu *CPU) Interrupt(n uint8) {
	if !cpu.ie {
		return
	}
	cpu.push(cpu.pc)
	cpu.ie = false
	cpu.pc = uint16(n) * 8

	if cpu.Logger != nil {
		cpu.Logger.Printf("INT %d -> PC=%04X", n, cpu.pc)
	}
}
