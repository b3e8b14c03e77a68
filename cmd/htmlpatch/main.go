package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS before sizing the worker set
	setMaxProcs(hasVerboseFlag(os.Args[1:]), env.Stderr)

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches the command in args[1] and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error

	switch cmd {
	case "patch":
		flags, positional, parseErr := parsePatchFlags(rest)
		if parseErr != nil {
			return flagErrorCode(parseErr, env)
		}
		err = runPatch(ctx, positional, flags, env)
	case "check":
		flags, positional, parseErr := parseCheckFlags(rest)
		if parseErr != nil {
			return flagErrorCode(parseErr, env)
		}
		err = runCheck(ctx, positional, flags, env)
	case "init":
		flags, positional, parseErr := parseInitFlags(rest)
		if parseErr != nil {
			return flagErrorCode(parseErr, env)
		}
		err = runInit(positional, flags, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "htmlpatch %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
		fmt.Fprintln(env.Stderr, "error:", err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
	}
	return exitCodeFor(err)
}

// flagErrorCode reports a flag parse error. --help is not an error.
func flagErrorCode(err error, env *Environment) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error:", err)
	return ExitUsage
}

// notifyContext returns a context that is canceled when a shutdown signal
// is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

// setMaxProcs sets GOMAXPROCS from the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// hasVerboseFlag reports whether args request verbose output.
// Flags are scanned before parsing so automaxprocs can log early.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
