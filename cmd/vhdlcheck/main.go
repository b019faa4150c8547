package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vhdlcheck/internal/version"
)

// errHasErrors makes the process exit 1 without printing anything more;
// the diagnostics themselves are the message.
var errHasErrors = errors.New("diagnostics contain errors")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vhdlcheck",
		Short:         "VHDL homograph checker",
		Long:          `vhdlcheck reports declarations that reuse a name already declared in the same VHDL declarative region`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			setTraceCleanup(cleanup)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			runTraceCleanup()
		},
	}

	// Global flags
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring tracer")
	root.PersistentFlags().Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	// PersistentPostRun is skipped when RunE fails.
	runTraceCleanup()
	if err == nil {
		return
	}
	if !errors.Is(err, errHasErrors) {
		fmt.Fprintf(os.Stderr, "vhdlcheck: %v\n", err)
	}
	os.Exit(1)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the output stream.
func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return out != nil && isTerminal(out), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
}
