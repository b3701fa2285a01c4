package invaders

import "github.com/pkg/errors"

// Sentinel error kinds (spec §7). Routine 8080 runtime behavior — arithmetic
// overflow, memory wrap, undefined stack pops — is never an error; it is
// in-band modular arithmetic.
var (
	// ErrInvalidRomSize: a ROM image plus its load offset exceeds the 64 KiB
	// address space. Fatal to the host.
	ErrInvalidRomSize = errors.New("invalid rom size")

	// ErrUnimplementedInstruction: an opcode byte with no dispatch entry.
	// Unreachable given all 256 bytes are defined (alternates alias NOP or a
	// documented JMP/RET/CALL), so Execute never returns it.
	ErrUnimplementedInstruction = errors.New("unimplemented instruction")
)
