// Command uvm loads a Universal Machine program image and runs it to
// completion. The vm package owns the machine semantics; this file
// only parses flags, wires the host collaborators together, and picks
// an exit code.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-uvm/uvm/config"
	"github.com/go-uvm/uvm/debugger"
	"github.com/go-uvm/uvm/disasm"
	"github.com/go-uvm/uvm/image"
	"github.com/go-uvm/uvm/ioadapter"
	"github.com/go-uvm/uvm/vm"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("uvm", flag.ContinueOnError)
	var (
		showVersion = fs.Bool("version", false, "Show version information")
		debugMode   = fs.Bool("debug", false, "Enable per-instruction tracing to stderr")
		tuiMode     = fs.Bool("tui", false, "Launch the interactive TUI debugger")
		dumpMode    = fs.Bool("dump", false, "Disassemble the boot image and exit without executing it")
		maxCycles   = fs.Uint64("max-cycles", 0, "Maximum cycles before stopping (0 = unlimited)")
		configPath  = fs.String("config", "", "Path to a TOML config file (default: platform config dir)")
	)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Printf("uvm %s\n", Version)
		return 0
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: uvm [flags] <image-path>")
		fs.PrintDefaults()
		return 2
	}
	imagePath := fs.Arg(0)

	if _, err := os.Stat(imagePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	program, err := image.Load(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *dumpMode {
		for _, line := range disasm.Dump(program) {
			fmt.Println(line)
		}
		return 0
	}

	stdio := ioadapter.NewStdio()
	engine := vm.NewEngine(program, stdio, stdio)
	if *maxCycles > 0 {
		engine.MaxCycles = *maxCycles
	} else {
		engine.MaxCycles = cfg.Execution.MaxCycles
	}

	if *debugMode || config.DebugEnabled(os.Getenv) {
		engine.Tracer = vm.TracerFunc(func(e vm.TraceEntry) {
			fmt.Fprintf(os.Stderr, "[%6d] %s\n", e.Cycle, traceLine(e, cfg))
		})
	}

	if *tuiMode {
		return runTUI(engine, program)
	}

	return runHeadless(engine)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func traceLine(e vm.TraceEntry, cfg *config.Config) string {
	line := disasm.Line(e.IP, e.Instruction)
	if !cfg.Trace.IncludeRegisters {
		return line
	}
	var regs strings.Builder
	for i, v := range e.RegsAfter {
		if i > 0 {
			regs.WriteByte(' ')
		}
		fmt.Fprintf(&regs, "r%d=%08X", i, v)
	}
	return line + "  " + regs.String()
}

// runHeadless runs the engine to completion, with Ctrl-C/SIGTERM wired
// as the host cancellation point.
func runHeadless(engine *vm.Engine) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Run(ctx); err != nil {
		if fault, ok := vm.AsFault(err); ok {
			fmt.Fprintf(os.Stderr, "Fault: %v\n", fault)
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(engine *vm.Engine, program []uint32) int {
	d := debugger.New(engine, 1000)
	t := debugger.NewTUI(d, program)
	if err := t.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
