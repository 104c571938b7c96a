package vm

import (
	"fmt"
	"io"
)

// TrapCode is the closed set of trap vectors this VM understands.
// Mirrors original_source/src/trap_routines.rs's TrapCode enum.
type TrapCode uint16

const (
	TrapGETC  TrapCode = 0x20
	TrapOUT   TrapCode = 0x21
	TrapPUTS  TrapCode = 0x22
	TrapIN    TrapCode = 0x23
	TrapPUTSP TrapCode = 0x24
	TrapHALT  TrapCode = 0x25
)

// execTRAP implements the TRAP opcode: R7 <- PC, then dispatch to one
// of the six service routines keyed by trapvect8. Any other trap code
// fails with ErrConversion.
func (vm *VM) execTRAP(instr uint16) error {
	vm.Regs.Set(R7, vm.Regs.Get(PC))
	switch TrapCode(decodeTrapVect8(instr)) {
	case TrapGETC:
		return vm.trapGETC()
	case TrapOUT:
		return vm.trapOUT()
	case TrapPUTS:
		return vm.trapPUTS()
	case TrapIN:
		return vm.trapIN()
	case TrapPUTSP:
		return vm.trapPUTSP()
	case TrapHALT:
		return vm.trapHALT()
	default:
		return fmt.Errorf("%w: trap vector %#x", ErrConversion, decodeTrapVect8(instr))
	}
}

// readByte reads a single byte from host input, the way the original's
// getchar helper does, surfacing ErrSTDINRead on failure.
func (vm *VM) readByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(vm.in, b[:]); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrSTDINRead, err)
	}
	return b[0], nil
}

// writeBytes writes p to host output, looping until every byte is
// delivered or a failure occurs (spec.md §5: tolerate partial writes).
func (vm *VM) writeBytes(p []byte) error {
	for len(p) > 0 {
		n, err := vm.out.Write(p)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrSTDOUTWrite, err)
		}
		p = p[n:]
	}
	return nil
}

func (vm *VM) trapGETC() error {
	c, err := vm.readByte()
	if err != nil {
		return err
	}
	vm.Regs.Set(R0, uint16(c))
	UpdateFlags(R0, vm.Regs)
	return nil
}

func (vm *VM) trapOUT() error {
	c := byte(vm.Regs.Get(R0))
	return vm.writeBytes([]byte{c})
}

func (vm *VM) trapIN() error {
	if err := vm.writeBytes([]byte("Enter a character: ")); err != nil {
		return err
	}
	c, err := vm.readByte()
	if err != nil {
		return err
	}
	if err := vm.writeBytes([]byte{c}); err != nil {
		return err
	}
	vm.Regs.Set(R0, uint16(c))
	UpdateFlags(R0, vm.Regs)
	return vm.Flush()
}

// trapPUTS writes the low byte of each word starting at mem[R0],
// advancing with 16-bit wrap, stopping at the first zero word.
func (vm *VM) trapPUTS() error {
	addr := vm.Regs.Get(R0)
	for {
		word, err := vm.Mem.Read(addr)
		if err != nil {
			return err
		}
		if word == 0 {
			break
		}
		if err := vm.writeBytes([]byte{byte(word)}); err != nil {
			return err
		}
		addr++
	}
	return vm.Flush()
}

// trapPUTSP writes each word packed two characters to a word: the low
// byte first, then the high byte if it is nonzero, stopping at the
// first zero word.
func (vm *VM) trapPUTSP() error {
	addr := vm.Regs.Get(R0)
	for {
		word, err := vm.Mem.Read(addr)
		if err != nil {
			return err
		}
		if word == 0 {
			break
		}
		low := byte(word & 0xFF)
		if err := vm.writeBytes([]byte{low}); err != nil {
			return err
		}
		high := byte(word >> 8)
		if high != 0 {
			if err := vm.writeBytes([]byte{high}); err != nil {
				return err
			}
		}
		addr++
	}
	return vm.Flush()
}

func (vm *VM) trapHALT() error {
	if err := vm.writeBytes([]byte("HALT\n")); err != nil {
		return err
	}
	if err := vm.Flush(); err != nil {
		return err
	}
	vm.Running = false
	return nil
}
