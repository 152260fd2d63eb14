// Command ember is Ember's thin CLI collaborator: a REPL when given no
// file, or a one-shot script runner otherwise, plus debug flags for
// bytecode dumping and GC instrumentation.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ember-lang/ember/internal/compiler"
	"github.com/ember-lang/ember/internal/config"
	"github.com/ember-lang/ember/internal/disasm"
	"github.com/ember-lang/ember/internal/gc"
	"github.com/ember-lang/ember/internal/vm"
)

// Exit codes follow the sysexits convention: ok, usage error, compile
// error, runtime error, I/O error.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ember", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "disassemble compiled bytecode before running")
	gcStress := fs.Bool("gc-stress", false, "force a GC cycle before every allocation")
	gcLog := fs.Bool("gc-log", false, "log before/after byte counts on every collection")
	configPath := fs.String("config", "", "path to a YAML runtime config file")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
		cfg = loaded
	}

	heap := gc.NewWithConfig(cfg.GCInitialThreshold, cfg.GCGrowthFactor)
	heap.SetStressGC(*gcStress)

	machine := vm.NewWithConfig(heap, cfg.StackFramesMax)
	if *gcLog {
		heap.SetCollectLogger(func(before, after, next int) {
			fmt.Fprintf(os.Stderr, "[gc %s] %d -> %d bytes, next at %d\n", machine.RunID, before, after, next)
		})
	}

	switch fs.NArg() {
	case 0:
		runREPL(machine, heap, *dump)
		return exitOK
	case 1:
		return runFile(machine, heap, fs.Arg(0), *dump)
	default:
		fmt.Fprintln(os.Stderr, "Usage: ember [flags] [script]")
		return exitUsage
	}
}

func runFile(machine *vm.VM, heap *gc.Heap, path string, dump bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}

	if dump {
		dumpSource(heap, string(source), path)
	}

	switch machine.Interpret(string(source)) {
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

func runREPL(machine *vm.VM, heap *gc.Heap, dump bool) {
	prompt := "> "
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		prompt = "\033[36m> \033[0m"
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		if dump {
			dumpSource(heap, line, "repl")
		}
		machine.Interpret(line)
	}
}

func dumpSource(heap *gc.Heap, source, name string) {
	fn, ok := compiler.Compile(source, heap)
	if !ok {
		return
	}
	fmt.Fprint(os.Stderr, disasm.Disassemble(fn.Chunk, name))
}
