package vm

// TraceEntry is one diagnostic record of a committed instruction's
// effects. Tracing is diagnostic only: no field here is
// part of the machine's compatibility contract, and an Engine with a
// nil Tracer behaves identically to one with tracing disabled.
type TraceEntry struct {
	Cycle       uint64
	IP          uint32 // ip at fetch time, before increment
	Instruction Instruction
	RegsBefore  [numRegisters]uint32
	RegsAfter   [numRegisters]uint32
}

// Tracer receives one TraceEntry per committed instruction, in program
// order. Implementations must not retain the slice-backed fields of
// TraceEntry beyond the call (none are pointers, so this is moot today,
// but keeps the contract explicit for future fields).
type Tracer interface {
	Trace(TraceEntry)
}

// TracerFunc adapts a plain function to the Tracer interface.
type TracerFunc func(TraceEntry)

func (f TracerFunc) Trace(e TraceEntry) { f(e) }
