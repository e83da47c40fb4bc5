package debugger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/go-uvm/uvm/disasm"
	"github.com/go-uvm/uvm/ioadapter"
	"github.com/go-uvm/uvm/vm"
)

// TUI is the interactive text UI for the debugger: a register panel,
// a disassembly panel centered on ip, a segments panel (segment 0's
// length and the armed watchpoints; other live segments are not
// listed), an output panel, and a command input line.
type TUI struct {
	Debugger *Debugger

	App      *tview.Application
	Layout   *tview.Flex
	Registers *tview.TextView
	Disasm   *tview.TextView
	Segments *tview.TextView
	Output   *tview.TextView
	Command  *tview.InputField

	program []uint32
}

// NewTUI builds a TUI around d. program is the boot image; it is kept
// on the TUI but not read by the disassembly panel, which disassembles
// the Engine's current segment 0 (Load-Program may replace it) by
// re-reading it from the store on each refresh.
func NewTUI(d *Debugger, program []uint32) *TUI {
	t := &TUI{
		Debugger: d,
		App:      tview.NewApplication(),
		program:  program,
	}
	t.buildViews()
	t.buildLayout()

	// tview owns the terminal once App.Run starts, so program output
	// can't go to os.Stdout and stdin can't be read alongside the
	// command line's keystrokes. Input always reads as end-of-stream
	// under the TUI; this is the same stdio adapter, just pointed at a
	// panel instead of the real terminal.
	stdio := ioadapter.NewStdioWith(strings.NewReader(""), t.Output)
	d.Engine.In = stdio
	d.Engine.Out = stdio

	t.refresh()
	return t
}

func (t *TUI) buildViews() {
	t.Registers = tview.NewTextView().SetDynamicColors(true)
	t.Registers.SetBorder(true).SetTitle(" Registers ")

	t.Disasm = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.Disasm.SetBorder(true).SetTitle(" Disassembly ")

	t.Segments = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.Segments.SetBorder(true).SetTitle(" Segments ")

	t.Output = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.Output.SetBorder(true).SetTitle(" Output ")

	t.Command = tview.NewInputField().SetLabel("(uvm) ")
	t.Command.SetBorder(true).SetTitle(" Command ")
	t.Command.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.Disasm, 0, 3, false).
		AddItem(t.Output, 0, 2, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.Registers, 0, 1, false).
		AddItem(t.Segments, 0, 2, false)

	top := tview.NewFlex().
		AddItem(left, 0, 2, false).
		AddItem(right, 0, 1, false)

	t.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, false).
		AddItem(t.Command, 3, 0, true)
}

// Run starts the TUI event loop. It blocks until the user quits.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.Layout, true).SetFocus(t.Command).Run()
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := strings.TrimSpace(t.Command.GetText())
	t.Command.SetText("")
	if line == "" {
		return
	}
	t.Debugger.History.Add(line)
	t.runCommand(line)
	t.refresh()
}

func (t *TUI) runCommand(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "step", "s":
		t.printf("[yellow]%s[-]\n", stepResult(t.Debugger))

	case "continue", "c":
		reason, err := t.Debugger.Continue(context.Background())
		t.printf("[yellow]stopped: %s%s[-]\n", reason, errSuffix(err))

	case "break", "b":
		if ip, ok := parseAddr(args); ok {
			t.Debugger.Breakpoints.Set(ip)
			t.printf("breakpoint set at 0x%08X\n", ip)
		}

	case "watch", "w":
		if len(args) == 2 {
			seg, ok1 := parseUint(args[0])
			off, ok2 := parseUint(args[1])
			if ok1 && ok2 {
				t.Debugger.Watchpoints.Set(seg, off)
				t.printf("watchpoint set at segment %d offset %d\n", seg, off)
			}
		}

	case "quit", "q":
		t.App.Stop()

	default:
		t.printf("[red]unknown command: %s[-]\n", cmd)
	}
}

func stepResult(d *Debugger) string {
	hit, err := d.Step()
	switch {
	case err != nil:
		return err.Error()
	case hit:
		return "watchpoint hit"
	default:
		return "stepped"
	}
}

func errSuffix(err error) string {
	if err == nil {
		return ""
	}
	return ": " + err.Error()
}

func parseAddr(args []string) (uint32, bool) {
	if len(args) != 1 {
		return 0, false
	}
	return parseUint(args[0])
}

func parseUint(s string) (uint32, bool) {
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		v, err = strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, false
		}
	}
	return uint32(v), true
}

func (t *TUI) printf(format string, args ...any) {
	fmt.Fprintf(t.Output, format, args...)
}

func (t *TUI) refresh() {
	t.refreshRegisters()
	t.refreshDisasm()
	t.refreshSegments()
}

func (t *TUI) refreshRegisters() {
	var b strings.Builder
	for i, v := range t.Debugger.Engine.Regs.R {
		fmt.Fprintf(&b, "r%d = 0x%08X\n", i, v)
	}
	fmt.Fprintf(&b, "ip = 0x%08X\n", t.Debugger.Engine.Regs.IP)
	fmt.Fprintf(&b, "state = %s\n", t.Debugger.Engine.State)
	t.Registers.SetText(b.String())
}

func (t *TUI) refreshDisasm() {
	ip := t.Debugger.Engine.Regs.IP
	length := t.Debugger.Engine.Store.ProgramLength()

	var b strings.Builder
	const window = 10
	start := uint32(0)
	if ip > window {
		start = ip - window
	}
	end := start + 2*window
	if end > length {
		end = length
	}
	for addr := start; addr < end; addr++ {
		word := t.Debugger.Engine.Store.ProgramWord(addr)
		inst, fault := vm.Decode(addr, word)
		marker := "  "
		if addr == ip {
			marker = "->"
		}
		if t.Debugger.Breakpoints.Has(addr) {
			marker = "B>"
		}
		if fault != nil {
			fmt.Fprintf(&b, "%s %s\n", marker, fmt.Sprintf("%08X: .WORD 0x%08X", addr, word))
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", marker, disasm.Line(addr, inst))
	}
	t.Disasm.SetText(b.String())
}

func (t *TUI) refreshSegments() {
	var b strings.Builder
	fmt.Fprintf(&b, "segment 0: %d words (program)\n", t.Debugger.Engine.Store.ProgramLength())
	for wp, count := range t.Debugger.Watchpoints.List() {
		fmt.Fprintf(&b, "watch seg=%d off=%d hits=%d\n", wp.Segment, wp.Offset, count)
	}
	t.Segments.SetText(b.String())
}
