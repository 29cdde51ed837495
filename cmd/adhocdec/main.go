// Command adhocdec reconstructs pseudo-source files from Adhoc disassembly
// listings, or from compiled scripts through the external disassembler.
//
//	adhocdec [flags] <input> [outputRoot]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/adhocdec/api"
	"github.com/sarchlab/adhocdec/config"
	"github.com/sarchlab/adhocdec/core"
	"github.com/sarchlab/adhocdec/disasm"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	report := flag.Bool("report", false, "print a reconstruction report")
	manifest := flag.Bool("manifest", false, "write manifest.yaml under the output root")
	trace := flag.Bool("trace", false, "log every instruction at trace level")
	logLevel := flag.String("log-level", "", "log level (trace, debug, info, warn, error)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] <input> [outputRoot]\nflags must come before the input\n",
			os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	input, outputRoot, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		atexit.Exit(2)
	}

	c := config.Default()
	if *configPath != "" {
		c, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			atexit.Exit(1)
		}
	}

	if outputRoot != "" {
		c.OutputRoot = outputRoot
	}

	c.Report = c.Report || *report
	c.Manifest = c.Manifest || *manifest

	if *trace {
		c.Log.Level = "trace"
	}

	if *logLevel != "" {
		c.Log.Level = *logLevel
	}

	if err := c.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	logger, closer, err := config.NewLogger(c.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	atexit.Register(func() { closer.Close() })
	slog.SetDefault(logger)

	driver := api.NewDriverBuilder().
		WithConfig(c).
		WithLogger(logger).
		WithTrace(*trace).
		Build("Driver")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	atexit.Register(stop)

	outcome, err := driver.Decompile(ctx, input)
	if err != nil {
		exitWithError(err)
	}

	if outcome.Report != nil {
		outcome.Report.WriteReport(os.Stdout)
	}

	atexit.Exit(0)
}

// parseArgs splits the positional arguments. The flag package stops at the
// first positional, so a trailing flag would be taken as the output root.
func parseArgs(args []string) (input, outputRoot string, err error) {
	switch len(args) {
	case 1:
		input = args[0]
	case 2:
		input, outputRoot = args[0], args[1]
	default:
		return "", "", fmt.Errorf("expected <input> [outputRoot], got %d arguments", len(args))
	}

	if strings.HasPrefix(outputRoot, "-") {
		return "", "", fmt.Errorf("output root %q looks like a flag; flags must come before the input", outputRoot)
	}

	return input, outputRoot, nil
}

func exitWithError(err error) {
	var fatal *core.FatalError

	switch {
	case errors.As(err, &fatal):
		core.PrintFatal(os.Stderr, fatal)
		fmt.Fprintln(os.Stderr, fatal)
	case errors.Is(err, disasm.ErrExecutableNotFound):
		fmt.Fprintf(os.Stderr,
			"==> When providing a compiled script, the disassembler must be on the PATH or in the working directory (%v)\n",
			err)
	default:
		fmt.Fprintln(os.Stderr, err)
	}

	atexit.Exit(1)
}
