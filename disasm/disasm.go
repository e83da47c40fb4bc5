// Package disasm turns decoded instructions back into human-readable
// mnemonic lines for the debugger and trace log. It is diagnostic
// only — nothing here participates in dispatch.
package disasm

import (
	"fmt"

	"github.com/go-uvm/uvm/vm"
)

// Line formats one decoded instruction at address ip as a disassembly
// line, e.g. "00000003: LC     r1, #0x41" or "00000007: HALT".
func Line(ip uint32, inst vm.Instruction) string {
	return fmt.Sprintf("%08X: %s", ip, Operands(inst))
}

// Operands formats the mnemonic and operand list of inst without the
// address prefix.
func Operands(inst vm.Instruction) string {
	mnemonic := inst.Op.String()

	switch inst.Op {
	case vm.OpHalt:
		return mnemonic

	case vm.OpLoadConstant:
		return fmt.Sprintf("%-6s r%d, #0x%X", mnemonic, inst.A, inst.Imm)

	case vm.OpConditionalMove, vm.OpAdd, vm.OpMultiply, vm.OpDivide, vm.OpNotAnd:
		return fmt.Sprintf("%-6s r%d, r%d, r%d", mnemonic, inst.A, inst.B, inst.C)

	case vm.OpArrayIndex:
		return fmt.Sprintf("%-6s r%d, [r%d, r%d]", mnemonic, inst.A, inst.B, inst.C)

	case vm.OpArrayAmend:
		return fmt.Sprintf("%-6s [r%d, r%d], r%d", mnemonic, inst.A, inst.B, inst.C)

	case vm.OpAllocate:
		return fmt.Sprintf("%-6s r%d, r%d", mnemonic, inst.B, inst.C)

	case vm.OpAbandon, vm.OpOutput, vm.OpInput:
		return fmt.Sprintf("%-6s r%d", mnemonic, inst.C)

	case vm.OpLoadProgram:
		return fmt.Sprintf("%-6s r%d, r%d", mnemonic, inst.B, inst.C)

	default:
		return mnemonic
	}
}

// Dump disassembles every word of program in order, one Line per
// instruction. It never faults: an illegal opcode is rendered as a
// literal word dump rather than stopping the scan, since a static dump
// runs before any Engine exists and has no fault-reporting ip context.
func Dump(program []uint32) []string {
	lines := make([]string, len(program))
	for i, word := range program {
		ip := uint32(i)
		inst, fault := vm.Decode(ip, word)
		if fault != nil {
			lines[i] = fmt.Sprintf("%08X: .WORD  0x%08X", ip, word)
			continue
		}
		lines[i] = Line(ip, inst)
	}
	return lines
}
