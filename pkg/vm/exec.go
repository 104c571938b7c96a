package vm

import "fmt"

// Execute decodes and runs a single instruction word. This is the
// direct generalization of the teacher's VM.Execute switch
// (pkg/vm/vm.go in bassosimone-risc32) from RiSC-32's eleven opcodes to
// LC-3's thirteen plus TRAP. All additions wrap at 16 bits, matching
// Go's unsigned-integer overflow semantics for uint16, so no explicit
// masking is needed beyond the field-width masks already applied by the
// decode* helpers.
func (vm *VM) Execute(instr uint16) error {
	opcode, err := OpcodeFromNibble(decodeOpcodeNibble(instr))
	if err != nil {
		return err
	}
	switch opcode {
	case OpADD:
		return vm.execAddAnd(instr, true)
	case OpAND:
		return vm.execAddAnd(instr, false)
	case OpNOT:
		return vm.execNot(instr)
	case OpBR:
		return vm.execBR(instr)
	case OpJMP:
		return vm.execJMP(instr)
	case OpJSR:
		return vm.execJSR(instr)
	case OpLD:
		return vm.execLD(instr)
	case OpLDI:
		return vm.execLDI(instr)
	case OpLDR:
		return vm.execLDR(instr)
	case OpLEA:
		return vm.execLEA(instr)
	case OpST:
		return vm.execST(instr)
	case OpSTI:
		return vm.execSTI(instr)
	case OpSTR:
		return vm.execSTR(instr)
	case OpTRAP:
		return vm.execTRAP(instr)
	default:
		return fmt.Errorf("%w: unreachable opcode %#x", ErrConversion, opcode)
	}
}

// execAddAnd implements both ADD and AND: they share the exact same
// operand shape (DR, SR1, and either imm5 or SR2), differing only in
// the combining operator.
func (vm *VM) execAddAnd(instr uint16, isAdd bool) error {
	dr, err := RegisterFromCode(decodeDR(instr))
	if err != nil {
		return err
	}
	sr1, err := RegisterFromCode(decodeSR1(instr))
	if err != nil {
		return err
	}
	var rhs uint16
	if decodeImmFlag(instr) {
		imm5, err := decodeImm5(instr)
		if err != nil {
			return err
		}
		rhs = imm5
	} else {
		sr2, err := RegisterFromCode(decodeSR2(instr))
		if err != nil {
			return err
		}
		rhs = vm.Regs.Get(sr2)
	}
	var result uint16
	if isAdd {
		result = vm.Regs.Get(sr1) + rhs
	} else {
		result = vm.Regs.Get(sr1) & rhs
	}
	vm.Regs.Set(dr, result)
	UpdateFlags(dr, vm.Regs)
	return nil
}

func (vm *VM) execNot(instr uint16) error {
	dr, err := RegisterFromCode(decodeDR(instr))
	if err != nil {
		return err
	}
	sr1, err := RegisterFromCode(decodeSR1(instr))
	if err != nil {
		return err
	}
	vm.Regs.Set(dr, ^vm.Regs.Get(sr1))
	UpdateFlags(dr, vm.Regs)
	return nil
}

func (vm *VM) execBR(instr uint16) error {
	nzp := decodeNZP(instr)
	offset, err := decodePCOffset9(instr)
	if err != nil {
		return err
	}
	if nzp&vm.Regs.Get(COND) != 0 {
		vm.Regs.Set(PC, vm.Regs.Get(PC)+offset)
	}
	return nil
}

func (vm *VM) execJMP(instr uint16) error {
	baseR, err := RegisterFromCode(decodeBaseR(instr))
	if err != nil {
		return err
	}
	vm.Regs.Set(PC, vm.Regs.Get(baseR))
	return nil
}

func (vm *VM) execJSR(instr uint16) error {
	pc := vm.Regs.Get(PC)
	vm.Regs.Set(R7, pc)
	if decodeLongFlag(instr) {
		offset, err := decodePCOffset11(instr)
		if err != nil {
			return err
		}
		vm.Regs.Set(PC, pc+offset)
		return nil
	}
	baseR, err := RegisterFromCode(decodeBaseR(instr))
	if err != nil {
		return err
	}
	vm.Regs.Set(PC, vm.Regs.Get(baseR))
	return nil
}

func (vm *VM) execLD(instr uint16) error {
	dr, err := RegisterFromCode(decodeDR(instr))
	if err != nil {
		return err
	}
	offset, err := decodePCOffset9(instr)
	if err != nil {
		return err
	}
	value, err := vm.Mem.Read(vm.Regs.Get(PC) + offset)
	if err != nil {
		return err
	}
	vm.Regs.Set(dr, value)
	UpdateFlags(dr, vm.Regs)
	return nil
}

func (vm *VM) execLDI(instr uint16) error {
	dr, err := RegisterFromCode(decodeDR(instr))
	if err != nil {
		return err
	}
	offset, err := decodePCOffset9(instr)
	if err != nil {
		return err
	}
	indirect, err := vm.Mem.Read(vm.Regs.Get(PC) + offset)
	if err != nil {
		return err
	}
	value, err := vm.Mem.Read(indirect)
	if err != nil {
		return err
	}
	vm.Regs.Set(dr, value)
	UpdateFlags(dr, vm.Regs)
	return nil
}

func (vm *VM) execLDR(instr uint16) error {
	dr, err := RegisterFromCode(decodeDR(instr))
	if err != nil {
		return err
	}
	baseR, err := RegisterFromCode(decodeBaseR(instr))
	if err != nil {
		return err
	}
	offset, err := decodeOffset6(instr)
	if err != nil {
		return err
	}
	value, err := vm.Mem.Read(vm.Regs.Get(baseR) + offset)
	if err != nil {
		return err
	}
	vm.Regs.Set(dr, value)
	UpdateFlags(dr, vm.Regs)
	return nil
}

func (vm *VM) execLEA(instr uint16) error {
	dr, err := RegisterFromCode(decodeDR(instr))
	if err != nil {
		return err
	}
	offset, err := decodePCOffset9(instr)
	if err != nil {
		return err
	}
	vm.Regs.Set(dr, vm.Regs.Get(PC)+offset)
	UpdateFlags(dr, vm.Regs)
	return nil
}

func (vm *VM) execST(instr uint16) error {
	sr, err := RegisterFromCode(decodeSR(instr))
	if err != nil {
		return err
	}
	offset, err := decodePCOffset9(instr)
	if err != nil {
		return err
	}
	return vm.Mem.Write(vm.Regs.Get(PC)+offset, vm.Regs.Get(sr))
}

func (vm *VM) execSTI(instr uint16) error {
	sr, err := RegisterFromCode(decodeSR(instr))
	if err != nil {
		return err
	}
	offset, err := decodePCOffset9(instr)
	if err != nil {
		return err
	}
	indirect, err := vm.Mem.Read(vm.Regs.Get(PC) + offset)
	if err != nil {
		return err
	}
	return vm.Mem.Write(indirect, vm.Regs.Get(sr))
}

func (vm *VM) execSTR(instr uint16) error {
	sr, err := RegisterFromCode(decodeSR(instr))
	if err != nil {
		return err
	}
	baseR, err := RegisterFromCode(decodeBaseR(instr))
	if err != nil {
		return err
	}
	offset, err := decodeOffset6(instr)
	if err != nil {
		return err
	}
	return vm.Mem.Write(vm.Regs.Get(baseR)+offset, vm.Regs.Get(sr))
}
