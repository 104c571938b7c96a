package vm

import "fmt"

// Opcode is the closed set of decodable instruction opcodes. Modeled on
// the teacher's opcode block (pkg/vm/vm.go's OpcodeHALT..OpcodeRSR
// iota group), but closed over LC-3's sixteen-entry table: a match (Go
// switch) over Opcode is a compile-time-reviewable site for adding or
// removing an opcode, and the two illegal nibbles are representable
// only as a decode failure, never as an Opcode value.
type Opcode uint16

// The fourteen decodable opcodes (thirteen instructions plus TRAP). Values match the LC-3 opcode nibble
// exactly so OpcodeFromNibble is a direct, checked cast.
const (
	OpBR  Opcode = 0x0
	OpADD Opcode = 0x1
	OpLD  Opcode = 0x2
	OpST  Opcode = 0x3
	OpJSR Opcode = 0x4
	OpAND Opcode = 0x5
	OpLDR Opcode = 0x6
	OpSTR Opcode = 0x7
	// 0x8 (RTI) is illegal and intentionally has no Opcode constant.
	OpNOT Opcode = 0x9
	OpLDI Opcode = 0xA
	OpSTI Opcode = 0xB
	OpJMP Opcode = 0xC
	// 0xD is reserved and illegal.
	OpLEA  Opcode = 0xE
	OpTRAP Opcode = 0xF
)

// OpcodeFromNibble decodes the opcode nibble (bits 15..12) of an
// instruction word. Fails with ErrConversion for the two illegal
// nibbles, 0x8 (RTI) and 0xD (reserved).
func OpcodeFromNibble(nibble uint16) (Opcode, error) {
	switch nibble {
	case 0x8, 0xD:
		return 0, fmt.Errorf("%w: illegal opcode nibble %#x", ErrConversion, nibble)
	case uint16(OpBR), uint16(OpADD), uint16(OpLD), uint16(OpST), uint16(OpJSR),
		uint16(OpAND), uint16(OpLDR), uint16(OpSTR), uint16(OpNOT), uint16(OpLDI),
		uint16(OpSTI), uint16(OpJMP), uint16(OpLEA), uint16(OpTRAP):
		return Opcode(nibble), nil
	default:
		return 0, fmt.Errorf("%w: opcode nibble %#x out of range", ErrConversion, nibble)
	}
}

// The following decode instr into its raw bit fields. Names follow
// spec.md §4.4's field notation so a reader can match a line of code
// back to a row of the instruction-semantics table directly.

func decodeOpcodeNibble(instr uint16) uint16 { return instr >> 12 }

func decodeDR(instr uint16) uint16    { return (instr >> 9) & 0b111 }
func decodeSR1(instr uint16) uint16   { return (instr >> 6) & 0b111 }
func decodeSR2(instr uint16) uint16   { return instr & 0b111 }
func decodeBaseR(instr uint16) uint16 { return (instr >> 6) & 0b111 }
func decodeSR(instr uint16) uint16    { return (instr >> 9) & 0b111 }

func decodeImmFlag(instr uint16) bool  { return (instr>>5)&1 == 1 }
func decodeLongFlag(instr uint16) bool { return (instr>>11)&1 == 1 }

func decodeImm5(instr uint16) (uint16, error) { return SignExtend(instr&0b1_1111, 5) }

func decodeOffset6(instr uint16) (uint16, error) {
	return SignExtend(instr&0b11_1111, 6)
}
func decodePCOffset9(instr uint16) (uint16, error) {
	return SignExtend(instr&0b1_1111_1111, 9)
}
func decodePCOffset11(instr uint16) (uint16, error) {
	return SignExtend(instr&0b111_1111_1111, 11)
}

func decodeNZP(instr uint16) uint16      { return (instr >> 9) & 0b111 }
func decodeTrapVect8(instr uint16) uint16 { return instr & 0b1111_1111 }
