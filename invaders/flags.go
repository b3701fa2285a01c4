package invaders

// Condition flag bit positions within the PSW's low byte, fixed by the 8080
// silicon's PSW layout. Bits 1, 3 and 5 are not real flags: they are wired to
// constant 1, 0, 0 and must read back that way no matter what POP PSW pops.
const (
	FlagC  uint8 = 1 << 0 // Carry
	flagB1 uint8 = 1 << 1 // always 1
	FlagP  uint8 = 1 << 2 // Parity (even)
	flagB3 uint8 = 1 << 3 // always 0
	FlagAC uint8 = 1 << 4 // Auxiliary Carry
	flagB5 uint8 = 1 << 5 // always 0
	FlagZ  uint8 = 1 << 6 // Zero
	FlagS  uint8 = 1 << 7 // Sign
)

// Flags is the 8080's five-bit condition record, kept as a structured record
// rather than a raw byte per spec's recommendation: any PUSH/POP must still
// serialize to and from the exact PSW byte layout.
type Flags struct {
	S, Z, AC, P, C bool
}

// Byte packs the flag record into PSW low-byte form, forcing the fixed bits.
func (f Flags) Byte() uint8 {
	var b uint8
	b |= flagB1
	if f.C {
		b |= FlagC
	}
	if f.P {
		b |= FlagP
	}
	if f.AC {
		b |= FlagAC
	}
	if f.Z {
		b |= FlagZ
	}
	if f.S {
		b |= FlagS
	}
	return b
}

// SetByte unpacks a PSW low byte into the flag record. The fixed bits in b are
// ignored entirely; the invariant (1/0/0 at bits 1/3/5) is restored on the
// next call to Byte, never stored.
func (f *Flags) SetByte(b uint8) {
	f.C = b&FlagC != 0
	f.P = b&FlagP != 0
	f.AC = b&FlagAC != 0
	f.Z = b&FlagZ != 0
	f.S = b&FlagS != 0
}

// setZSP sets Zero, Sign and Parity from a result byte. Carry and
// Auxiliary-carry are left untouched; callers set those themselves since they
// depend on the operation, not just the result.
func (f *Flags) setZSP(result uint8) {
	f.Z = result == 0
	f.S = result&0x80 != 0
	f.P = parity(result)
}

// parity reports whether byte has an even number of set bits, per the 8080's
// convention (0 is even-parity).
func parity(b uint8) bool {
	b ^= b >> 4
	b ^= b >> 2
	b ^= b >> 1
	return b&1 == 0
}
