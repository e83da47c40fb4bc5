// Package debugger wraps a vm.Engine with breakpoints, watchpoints,
// and (via tui.go) an interactive tview/tcell text UI. It never
// reaches into the Engine's state machine — the Engine has exactly
// three states (Running, Halted, Faulted) with no other transitions,
// so "stopped at a breakpoint" is a Debugger-level concept,
// implemented by simply not calling Step again.
package debugger

import (
	"context"

	"github.com/go-uvm/uvm/vm"
)

// StopReason explains why Continue returned control to the caller.
type StopReason int

const (
	StopHalted StopReason = iota
	StopFault
	StopBreakpoint
	StopWatchpoint
	StopCancelled
)

func (r StopReason) String() string {
	switch r {
	case StopHalted:
		return "halted"
	case StopFault:
		return "fault"
	case StopBreakpoint:
		return "breakpoint"
	case StopWatchpoint:
		return "watchpoint"
	case StopCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Debugger coordinates stepping, breakpoints, watchpoints, and command
// history around a single vm.Engine.
type Debugger struct {
	Engine      *vm.Engine
	Breakpoints *Breakpoints
	Watchpoints *Watchpoints
	History     *History
}

// New wraps engine with fresh, empty breakpoint/watchpoint sets and a
// command history of the given capacity.
func New(engine *vm.Engine, historyCapacity int) *Debugger {
	return &Debugger{
		Engine:      engine,
		Breakpoints: NewBreakpoints(),
		Watchpoints: NewWatchpoints(),
		History:     NewHistory(historyCapacity),
	}
}

// Step executes exactly one instruction and reports any watchpoint it
// hit alongside the underlying error, if any.
func (d *Debugger) Step() (hitWatchpoint bool, err error) {
	if err := d.Engine.Step(); err != nil {
		return false, err
	}
	lw := d.Engine.LastWrite
	if lw.Valid && d.Watchpoints.Match(lw.Segment, lw.Offset) {
		return true, nil
	}
	return false, nil
}

// Continue runs the engine until it halts, faults, ctx is cancelled, or
// an armed breakpoint/watchpoint is hit. The instruction at the
// breakpoint address has NOT executed yet when Continue returns with
// StopBreakpoint — calling Continue or Step again resumes from it.
func (d *Debugger) Continue(ctx context.Context) (StopReason, error) {
	first := true
	for {
		if d.Engine.State != vm.StateRunning {
			if d.Engine.State == vm.StateHalted {
				return StopHalted, nil
			}
			return StopFault, d.Engine.Err
		}

		if !first && d.Breakpoints.Has(d.Engine.Regs.IP) {
			d.Breakpoints.Hit(d.Engine.Regs.IP)
			return StopBreakpoint, nil
		}
		first = false

		if err := ctx.Err(); err != nil {
			return StopCancelled, err
		}

		hit, err := d.Step()
		if err != nil {
			if _, ok := vm.AsFault(err); ok {
				return StopFault, err
			}
			return StopCancelled, err
		}
		if hit {
			return StopWatchpoint, nil
		}
	}
}
