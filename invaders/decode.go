package invaders

// dispatchEntry is one slot of the flat 256-entry decode table: a mnemonic
// name for tracing/disassembly, the T-state cost charged by Execute, and the
// handler that performs the instruction's side effects. Register and
// register-pair fields are decoded from the raw opcode byte inside each
// handler (spec §4.9) rather than materialized as 256 distinct closures.
type dispatchEntry struct {
	name   string
	cycles int
	exec   func(cpu *CPU, opcode uint8)
}

// regField extracts a 3-bit register-file index from opcode at bit offset
// shift (0 for the source field of MOV and of the ADD-family opcodes, 3 for
// MOV's destination and the single-register field of INR/DCR/MVI).
func regField(opcode uint8, shift uint) uint8 {
	return (opcode >> shift) & 0x07
}

// pairField extracts the 2-bit register-pair field at bits 4-5.
func pairField(opcode uint8) uint8 {
	return (opcode >> 4) & 0x03
}

// condField extracts the 3-bit condition-code field at bits 3-5, used by
// Jcond/Ccond/Rcond.
func condField(opcode uint8) uint8 {
	return (opcode >> 3) & 0x07
}

// checkCond evaluates one of the eight 8080 condition codes against the
// current flags.
func checkCond(f Flags, cc uint8) bool {
	switch cc {
	case 0: // NZ
		return !f.Z
	case 1: // Z
		return f.Z
	case 2: // NC
		return !f.C
	case 3: // C
		return f.C
	case 4: // PO (odd, Parity=0)
		return !f.P
	case 5: // PE (even, Parity=1)
		return f.P
	case 6: // P (positive, Sign=0)
		return !f.S
	default: // M (minus, Sign=1)
		return f.S
	}
}

var dispatchTable [256]dispatchEntry

func init() {
	// Default every slot to NOP; this also covers the documented "alternate"
	// NOP encodings (0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38) listed in the
	// spec without any special-casing.
	for i := range dispatchTable {
		dispatchTable[i] = dispatchEntry{"NOP", 4, execNOP}
	}

	set := func(op uint8, name string, cycles int, fn func(cpu *CPU, opcode uint8)) {
		dispatchTable[op] = dispatchEntry{name, cycles, fn}
	}

	// 0x00 row and friends: per-register-pair instructions. Iterate the 4
	// register pairs and place each at its row offset (0x00, 0x10, 0x20, 0x30).
	for rp := uint8(0); rp < 4; rp++ {
		base := rp << 4
		set(base|0x01, "LXI", 10, execLXI)
		set(base|0x03, "INX", 5, execINX)
		set(base|0x09, "DAD", 10, execDAD)
		set(base|0x0B, "DCX", 5, execDCX)
		if rp != pairSP {
			set(base|0x02, "STAX", 7, execSTAX)
			set(base|0x0A, "LDAX", 7, execLDAX)
		}
	}

	// INR/DCR/MVI, one per register (including M), at their row offsets.
	for r := uint8(0); r < 8; r++ {
		base := r << 3
		cost := 5
		mviCost := 7
		if r == regM {
			cost = 10
			mviCost = 10
		}
		set(base|0x04, "INR", cost, execINR)
		set(base|0x05, "DCR", cost, execDCR)
		set(base|0x06, "MVI", mviCost, execMVI)
	}

	set(0x07, "RLC", 4, execRLC)
	set(0x0F, "RRC", 4, execRRC)
	set(0x17, "RAL", 4, execRAL)
	set(0x1F, "RAR", 4, execRAR)
	set(0x22, "SHLD", 16, execSHLD)
	set(0x2A, "LHLD", 16, execLHLD)
	set(0x27, "DAA", 4, execDAA)
	set(0x2F, "CMA", 4, execCMA)
	set(0x32, "STA", 13, execSTA)
	set(0x3A, "LDA", 13, execLDA)
	set(0x37, "STC", 4, execSTC)
	set(0x3F, "CMC", 4, execCMC)

	// 0x40-0x7F: MOV dst,src over every (dst,src) pair, 0x76 is HLT.
	for op := 0x40; op <= 0x7F; op++ {
		if op == 0x76 {
			set(0x76, "HLT", 7, execHLT)
			continue
		}
		dst := regField(uint8(op), 3)
		src := regField(uint8(op), 0)
		cost := 5
		if dst == regM || src == regM {
			cost = 7
		}
		set(uint8(op), "MOV", cost, execMOV)
	}

	// 0x80-0xBF: ALU-over-register families, 8 opcodes each.
	aluFamilies := []struct {
		base uint8
		name string
		fn   func(cpu *CPU, opcode uint8)
	}{
		{0x80, "ADD", execADD}, {0x88, "ADC", execADC},
		{0x90, "SUB", execSUB}, {0x98, "SBB", execSBB},
		{0xA0, "ANA", execANA}, {0xA8, "XRA", execXRA},
		{0xB0, "ORA", execORA}, {0xB8, "CMP", execCMP},
	}
	for _, fam := range aluFamilies {
		for r := uint8(0); r < 8; r++ {
			cost := 4
			if r == regM {
				cost = 7
			}
			set(fam.base+r, fam.name, cost, fam.fn)
		}
	}

	// Immediate ALU opcodes.
	set(0xC6, "ADI", 7, execADD)
	set(0xCE, "ACI", 7, execADC)
	set(0xD6, "SUI", 7, execSUB)
	set(0xDE, "SBI", 7, execSBB)
	set(0xE6, "ANI", 7, execANA)
	set(0xEE, "XRI", 7, execXRA)
	set(0xF6, "ORI", 7, execORA)
	set(0xFE, "CPI", 7, execCMP)

	// PUSH/POP over BC, DE, HL, PSW.
	for rp := uint8(0); rp < 4; rp++ {
		base := 0xC0 | (rp << 4)
		set(base|0x01, "POP", 10, execPOP)
		set(base|0x05, "PUSH", 11, execPUSH)
	}

	// Conditional returns/jumps/calls, one per condition code; entry.cycles
	// is the not-taken cost, the handler itself deducts the extra cycles on
	// the taken path.
	for cc := uint8(0); cc < 8; cc++ {
		base := cc << 3
		set(base|0xC0, "Rcond", 5, execRcond)
		set(base|0xC2, "Jcond", 10, execJcond)
		set(base|0xC4, "Ccond", 11, execCcond)
	}

	// RST n, one per 3-bit vector.
	for n := uint8(0); n < 8; n++ {
		set(0xC7|(n<<3), "RST", 11, execRST)
	}

	set(0xC3, "JMP", 10, execJMP)
	set(0xCB, "JMP", 10, execJMP) // alternate encoding, real silicon aliases JMP
	set(0xC9, "RET", 10, execRET)
	set(0xD9, "RET", 10, execRET) // alternate encoding, aliases RET
	set(0xCD, "CALL", 17, execCALL)
	set(0xDD, "CALL", 17, execCALL) // alternate encoding, aliases CALL
	set(0xED, "CALL", 17, execCALL) // alternate encoding, aliases CALL
	set(0xFD, "CALL", 17, execCALL) // alternate encoding, aliases CALL

	set(0xE3, "XTHL", 18, execXTHL)
	set(0xEB, "XCHG", 5, execXCHG)
	set(0xE9, "PCHL", 5, execPCHL)
	set(0xF9, "SPHL", 5, execSPHL)
	set(0xF3, "DI", 4, execDI)
	set(0xFB, "EI", 4, execEI)
	set(0xDB, "IN", 10, execIN)
	set(0xD3, "OUT", 10, execOUT)
}
