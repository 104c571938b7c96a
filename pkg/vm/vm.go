package vm

import (
	"bufio"
	"fmt"
	"io"
)

// VM is a single LC-3 virtual machine instance. Like the teacher's VM
// struct, it owns its memory and register file directly (no shared,
// process-wide state) and is not goroutine safe: a single goroutine
// must drive Run/Step.
type VM struct {
	Regs    *RegisterFile
	Mem     *Memory
	Running bool

	in  io.Reader
	out *bufio.Writer
}

// New constructs a VM wired to the given host input/output streams. PC
// is seeded to 0x3000 and COND to Z, per spec.md's lifecycle invariant;
// all other cells start zeroed.
func New(in io.Reader, out io.Writer) *VM {
	regs := &RegisterFile{}
	regs.Reset()
	return &VM{
		Regs:    regs,
		Mem:     NewMemory(in),
		Running: true,
		in:      in,
		out:     bufio.NewWriter(out),
	}
}

// Snapshot is a point-in-time copy of the register file, used by tests
// to compare machine state without reaching into VM internals.
type Snapshot struct {
	GPR  [8]uint16
	PC   uint16
	Cond uint16
}

// Snapshot captures the current register file.
func (vm *VM) Snapshot() Snapshot {
	var s Snapshot
	for i := range s.GPR {
		s.GPR[i] = vm.Regs.Get(Register(i))
	}
	s.PC = vm.Regs.Get(PC)
	s.Cond = vm.Regs.Get(COND)
	return s
}

func (vm *VM) String() string {
	return fmt.Sprintf("{PC:%#04x COND:%#03b GPR:%+v}", vm.Regs.Get(PC), vm.Regs.Get(COND), vm.Snapshot().GPR)
}

// Fetch reads the instruction at PC and advances PC by one (16-bit
// wrap), per spec.md §4.7: read at PC, then increment. Every opcode
// body that needs "PC" therefore already sees the address of the
// instruction after the one being executed.
func (vm *VM) Fetch() (uint16, error) {
	addr := vm.Regs.Get(PC)
	vm.Regs.Set(PC, addr+1)
	instr, err := vm.Mem.Read(addr)
	if err != nil {
		return 0, err
	}
	return instr, nil
}

// Step fetches and executes a single instruction.
func (vm *VM) Step() error {
	instr, err := vm.Fetch()
	if err != nil {
		return err
	}
	return vm.Execute(instr)
}

// Run drives the fetch/decode/dispatch loop until the running flag
// clears (via HALT) or an instruction fails. Any failure is propagated
// to the caller without being recovered inside the loop, matching
// spec.md §7's propagation policy.
func (vm *VM) Run() error {
	for vm.Running {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered host output. The dispatch loop's caller
// should call this on every exit path, successful or not, since a
// failure can occur between a TRAP writing bytes and its own flush.
func (vm *VM) Flush() error {
	if err := vm.out.Flush(); err != nil {
		return fmt.Errorf("%w: %s", ErrSTDOUTFlush, err)
	}
	return nil
}
