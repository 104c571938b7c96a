package vm

import (
	"fmt"
	"io"
)

// MemorySize is the number of addressable 16-bit cells.
const MemorySize = 1 << 16

// The two memory-mapped keyboard registers.
const (
	// KBSR is the keyboard status register. Reading it samples the
	// host input (see Memory.Read) and reports, in its high bit,
	// whether a byte was made available in KBDR.
	KBSR uint16 = 0xFE00

	// KBDR is the keyboard data register. Holds the last byte sampled
	// through a KBSR read, zero-extended to 16 bits.
	KBDR uint16 = 0xFE02
)

// Memory is the flat 65,536-cell address space. Its read path is
// parameterised over a host-input stream so that a KBSR read can sample
// it; this keeps the fetch loop synchronous and lets tests substitute a
// scripted reader in place of the real console.
type Memory struct {
	cells [MemorySize]uint16
	in    io.Reader
}

// NewMemory constructs a zeroed memory bank that samples in for its
// keyboard probe.
func NewMemory(in io.Reader) *Memory {
	return &Memory{in: in}
}

// AddressFromInt converts an arbitrary-width integer offset into a
// 16-bit address, failing with ErrInvalidIndex if it cannot be
// represented in 0..65535. This is the integer-width bridge spec.md §4.1
// calls out: Memory.Read/Write themselves take a uint16 and can never
// fail on address range, so only an address computed in a wider integer
// type needs this check. The image loader keeps its cursor as a uint16
// that wraps on its own and does not call it.
func AddressFromInt(i int) (uint16, error) {
	if i < 0 || i > 0xFFFF {
		return 0, fmt.Errorf("%w: address %d out of range", ErrInvalidIndex, i)
	}
	return uint16(i), nil
}

// Write stores value at addr verbatim.
func (m *Memory) Write(addr uint16, value uint16) error {
	m.cells[addr] = value
	return nil
}

// Read returns the cell at addr. If addr is KBSR, it first performs the
// input probe: it attempts to read exactly one byte from the host input
// stream. On success it sets KBSR to 0x8000 and KBDR to the byte read,
// zero-extended. On failure it returns ErrSTDINRead and the current
// fetch iteration must abort.
//
// This is the unconditional-read variant spec.md §4.1/§9 mandates: a
// blocking read is acceptable provided the host terminal delivers a
// single keystroke immediately in non-canonical mode. A non-blocking,
// polling variant (set KBSR to 0 when nothing is ready) is permitted but
// not implemented here.
func (m *Memory) Read(addr uint16) (uint16, error) {
	if addr == KBSR {
		if err := m.probeInput(); err != nil {
			return 0, err
		}
	}
	return m.cells[addr], nil
}

func (m *Memory) probeInput() error {
	var b [1]byte
	if _, err := io.ReadFull(m.in, b[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrSTDINRead, err)
	}
	m.cells[KBSR] = 0x8000
	m.cells[KBDR] = uint16(b[0])
	return nil
}
