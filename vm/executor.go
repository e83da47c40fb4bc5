package vm

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-uvm/uvm/ioadapter"
)

// State is one of the Execution Engine's three states:
// Running is the only non-terminal state.
type State int

const (
	StateRunning State = iota
	StateHalted
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateHalted:
		return "Halted"
	case StateFaulted:
		return "Faulted"
	default:
		return "Unknown"
	}
}

// ErrCycleLimitExceeded is returned by Run/Step when a configured,
// non-zero MaxCycles is reached. It is a host-side execution policy,
// not a guest-observable fault, so it is a plain error rather than a
// *Fault and never flips Engine.State to StateFaulted — the engine
// simply stops where it is.
var ErrCycleLimitExceeded = errors.New("cycle limit exceeded")

// Engine holds the complete VM state tuple: the register
// file, the memory store, and (via In/Out) the host I/O adapter. It
// implements the fetch-decode-dispatch loop.
type Engine struct {
	Regs  Registers
	Store *Store
	In    ioadapter.Reader
	Out   ioadapter.Writer

	// Tracer, if set, is invoked once per committed instruction.
	Tracer Tracer

	// MaxCycles bounds execution as a host policy; 0 means unlimited.
	MaxCycles uint64
	Cycles    uint64

	State State
	Err   error // set once State leaves StateRunning

	// LastWrite records the most recent Array-Amend, for the debugger's
	// watchpoints. It is overwritten every Step and Valid is false for
	// any instruction that isn't an Array-Amend.
	LastWrite WriteRecord
}

// WriteRecord describes one Array-Amend write, used only for debugger
// watchpoints — it plays no role in dispatch.
type WriteRecord struct {
	Segment, Offset, Value uint32
	Valid                  bool
}

// NewEngine constructs an Engine with program installed as segment 0
// and ip at zero, ready to run.
func NewEngine(program []uint32, in ioadapter.Reader, out ioadapter.Writer) *Engine {
	store := NewStore()
	store.InstallProgram(program)
	return &Engine{
		Store: store,
		In:    in,
		Out:   out,
		State: StateRunning,
	}
}

// Run executes instructions until the machine halts, faults, the
// configured MaxCycles is reached, or ctx is cancelled. ctx is checked
// at the fetch cooperative-cancellation point, between
// instructions — never mid-instruction.
func (e *Engine) Run(ctx context.Context) error {
	for e.State == StateRunning {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	return e.Err
}

// Step fetches, decodes, and executes exactly one instruction. Every
// invariant is checked before the fetch; a violation transitions the
// Engine to StateFaulted and returns the fault.
func (e *Engine) Step() error {
	if e.State != StateRunning {
		return fmt.Errorf("engine is not running (state=%s)", e.State)
	}

	if e.MaxCycles > 0 && e.Cycles >= e.MaxCycles {
		return ErrCycleLimitExceeded
	}

	ip := e.Regs.IP
	if ip >= e.Store.ProgramLength() {
		return e.fault(newFault(FaultInstructionPointerOutOfBounds, ip, "ip past end of segment 0"))
	}
	word := e.Store.ProgramWord(ip)
	e.Regs.IP = ip + 1

	inst, decodeFault := Decode(ip, word)
	if decodeFault != nil {
		return e.fault(decodeFault)
	}

	var before [numRegisters]uint32
	if e.Tracer != nil {
		before = e.Regs.Snapshot()
	}
	e.LastWrite = WriteRecord{}

	if fault := e.execute(ip, inst); fault != nil {
		return e.fault(fault)
	}
	e.Cycles++

	if e.Tracer != nil {
		e.Tracer.Trace(TraceEntry{
			Cycle:       e.Cycles,
			IP:          ip,
			Instruction: inst,
			RegsBefore:  before,
			RegsAfter:   e.Regs.Snapshot(),
		})
	}

	return nil
}

func (e *Engine) fault(f *Fault) error {
	e.State = StateFaulted
	e.Err = f
	return f
}
