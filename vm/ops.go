package vm

// execute dispatches a single decoded instruction. ip is the address
// the instruction was fetched from, used only for fault diagnostics —
// the instruction pointer itself has already been advanced by the
// caller before execute runs: every opcode body that doesn't touch ip
// leaves the advanced value alone, and Load-Program always sets ip
// even in its jump-only case.
func (e *Engine) execute(ip uint32, inst Instruction) *Fault {
	r := &e.Regs.R

	switch inst.Op {
	case OpConditionalMove:
		if r[inst.C] != 0 {
			r[inst.A] = r[inst.B]
		}
		return nil

	case OpArrayIndex:
		word, fault := e.Store.Load(ip, r[inst.B], r[inst.C])
		if fault != nil {
			return fault
		}
		r[inst.A] = word
		return nil

	case OpArrayAmend:
		segment, offset, value := r[inst.A], r[inst.B], r[inst.C]
		if fault := e.Store.StoreWord(ip, segment, offset, value); fault != nil {
			return fault
		}
		e.LastWrite = WriteRecord{Segment: segment, Offset: offset, Value: value, Valid: true}
		return nil

	case OpAdd:
		r[inst.A] = r[inst.B] + r[inst.C]
		return nil

	case OpMultiply:
		r[inst.A] = r[inst.B] * r[inst.C]
		return nil

	case OpDivide:
		if r[inst.C] == 0 {
			return newFault(FaultDivideByZero, ip, "division by zero")
		}
		r[inst.A] = r[inst.B] / r[inst.C]
		return nil

	case OpNotAnd:
		r[inst.A] = ^(r[inst.B] & r[inst.C])
		return nil

	case OpHalt:
		e.State = StateHalted
		return nil

	case OpAllocate:
		r[inst.B] = e.Store.Allocate(r[inst.C])
		return nil

	case OpAbandon:
		return e.Store.Abandon(ip, r[inst.C])

	case OpOutput:
		return e.output(ip, r[inst.C])

	case OpInput:
		return e.input(ip, inst)

	case OpLoadProgram:
		return e.loadProgram(ip, inst)

	case OpLoadConstant:
		r[inst.A] = inst.Imm
		return nil

	default:
		return newFault(FaultIllegalInstruction, ip, "unreachable opcode")
	}
}

func (e *Engine) output(ip uint32, value uint32) *Fault {
	if value > 0xFF {
		return newFault(FaultOutputOutOfRange, ip, "output value exceeds a byte")
	}
	if err := e.Out.WriteByte(byte(value)); err != nil {
		return wrapFault(FaultHostIOError, ip, "write failed", err)
	}
	return nil
}

// inputEOF is the sentinel Input stores on end-of-stream: all bits set.
const inputEOF uint32 = 0xFFFFFFFF

func (e *Engine) input(ip uint32, inst Instruction) *Fault {
	b, ok, err := e.In.ReadByte()
	if err != nil {
		return wrapFault(FaultHostIOError, ip, "read failed", err)
	}
	if !ok {
		e.Regs.R[inst.C] = inputEOF
		return nil
	}
	e.Regs.R[inst.C] = uint32(b)
	return nil
}

// loadProgram implements Load-Program. When R[B] is 0,
// this is the machine's sole control-flow instruction: ip is set with
// no memory change, and — critically — no allocation occurs, which is
// what the "segment-zero identity after self-jump" testable property
// depends on. Otherwise the source segment is duplicated
// (never moved) so it remains live and independently mutable under its
// own identifier after becoming the new segment 0.
func (e *Engine) loadProgram(ip uint32, inst Instruction) *Fault {
	source := e.Regs.R[inst.B]
	if source != segmentZero {
		words, fault := e.Store.Duplicate(ip, source)
		if fault != nil {
			return fault
		}
		e.Store.InstallProgram(words)
	}
	e.Regs.IP = e.Regs.R[inst.C]
	return nil
}
