// Command lc3vm loads one or more LC-3 program images and runs them to
// completion. It wires together the three collaborators spec.md §1
// calls out as external to the core: argument intake (via Cobra, see
// DESIGN.md), the terminal controller (pkg/term), and the host
// input/output byte streams the TRAP dispatcher reads and writes.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/DiegoCivi/virtual-machine-LC3/pkg/term"
	"github.com/DiegoCivi/virtual-machine-LC3/pkg/vm"
	"github.com/DiegoCivi/virtual-machine-LC3/pkg/vmlog"
)

func main() {
	var trace bool

	root := &cobra.Command{
		Use:   "lc3vm [image...]",
		Short: "Run LC-3 program images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, trace)
		},
		SilenceUsage: true,
	}
	root.Flags().BoolVarP(&trace, "trace", "v", false, "echo each fetched instruction to stderr")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(images []string, trace bool) error {
	logger := vmlog.New(os.Stderr, slog.LevelInfo)

	readers := make([]*os.File, 0, len(images))
	defer func() {
		for _, f := range readers {
			f.Close()
		}
	}()
	for _, path := range images {
		f, err := os.Open(path)
		if err != nil {
			logger.Error("failed to load image", "path", path, "error", err)
			return err
		}
		readers = append(readers, f)
	}

	machine := vm.New(os.Stdin, os.Stdout)
	for i, f := range readers {
		if err := vm.LoadImage(f, machine.Mem); err != nil {
			logger.Error("failed to load image", "path", images[i], "error", err)
			return err
		}
	}

	controller := term.NewController(int(os.Stdin.Fd()))
	if err := controller.Setup(); err != nil {
		logger.Error("failed to set up terminal", "error", err)
		return err
	}

	// A host interrupt must still restore the console before the
	// process exits; the core itself is not required to unwind from a
	// blocking read (spec.md §5).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
			machine.Flush()
			controller.Restore()
			os.Exit(1)
		case <-ctx.Done():
		}
	}()
	defer cancel()
	defer controller.Restore()
	defer machine.Flush()

	if trace {
		return runTraced(machine, logger)
	}
	if err := machine.Run(); err != nil {
		logger.Error("execution failed", "error", err)
		return err
	}
	return nil
}

func runTraced(machine *vm.VM, logger *slog.Logger) error {
	for machine.Running {
		instr, err := machine.Fetch()
		if err != nil {
			logger.Error("fetch failed", "error", err)
			return err
		}
		logger.Info("fetched", "pc", machine.Regs.Get(vm.PC)-1, "instr", instr)
		if err := machine.Execute(instr); err != nil {
			logger.Error("execute failed", "error", err)
			return err
		}
	}
	return nil
}
