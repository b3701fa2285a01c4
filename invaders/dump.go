package invaders

import "github.com/davecgh/go-spew/spew"

// State is a point-in-time snapshot of the architectural registers, flags,
// stack pointer, program counter and interrupt latch, generalized from the
// teacher's ad hoc Fprintf-per-field debug printout into a reusable type that
// both the debug overlay and test failures can dump.
type State struct {
	A, B, C, D, E, H, L uint8
	SP, PC              uint16
	Flags               Flags
	IE                  bool
	Cycles              int
}

// Snapshot captures the CPU's current State.
func (cpu *CPU) Snapshot() State {
	return State{
		A: cpu.a, B: cpu.b, C: cpu.c, D: cpu.d, E: cpu.e, H: cpu.h, L: cpu.l,
		SP: cpu.sp, PC: cpu.pc,
		Flags:  cpu.flags,
		IE:     cpu.ie,
		Cycles: cpu.cycles,
	}
}

// DumpState renders a full State snapshot for test failure output and the
// debug overlay, the same way the teacher's tests compared individual fields
// one at a time but with a single readable dump instead.
func DumpState(s State) string {
	return spew.Sdump(s)
}
