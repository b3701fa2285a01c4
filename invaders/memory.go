package invaders

import "github.com/pkg/errors"

// MemSize is the 8080's full 16-bit address space.
const MemSize = 0x10000

// Memory is a flat 64 KiB byte array addressed by 16-bit value. Reads and
// writes always succeed and have no side effects beyond updating the byte;
// I/O is routed through IOPorts, never through this interface.
type Memory struct {
	bytes [MemSize]byte
}

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) uint8 {
	return m.bytes[addr]
}

// Write stores data at addr.
func (m *Memory) Write(addr uint16, data uint8) {
	m.bytes[addr] = data
}

// LoadImage copies image into memory starting at offset. It fails without
// mutating memory if the image does not fit in the address space.
func (m *Memory) LoadImage(image []byte, offset int) error {
	if offset < 0 || offset+len(image) > MemSize {
		return errors.Wrapf(ErrInvalidRomSize, "offset %#x + %d bytes exceeds %#x", offset, len(image), MemSize)
	}
	copy(m.bytes[offset:], image)
	return nil
}

// Framebuffer returns the 7 KiB video RAM region starting at 0x2400, for the
// renderer's scanout contract (spec §6). It is a read-only view; mutating the
// returned slice does not affect Memory.
func (m *Memory) Framebuffer() []byte {
	const base = 0x2400
	const size = 0x1C00 // 7 KiB
	buf := make([]byte, size)
	copy(buf, m.bytes[base:base+size])
	return buf
}
