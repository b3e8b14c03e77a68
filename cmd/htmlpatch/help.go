package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlpatch <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  patch      Add social metadata and ARIA attributes to pages")
	fmt.Fprintln(w, "  check      Report which pages lack metadata or ARIA attributes")
	fmt.Fprintln(w, "  init       Write a starter config from the pages of a site")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'htmlpatch help <command>' for details on a specific command.")
}

// printTargetUsage prints the flags shared by patch and check.
func printTargetUsage(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (env: HTMLPATCH_CONFIG)")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root directory (env: HTMLPATCH_ROOT)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error (env: HTMLPATCH_LOG_LEVEL)")
	fmt.Fprintln(w, "      --log-file <path>     Also log to a rotating file (env: HTMLPATCH_LOG_FILE)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-page detail and debug logs")
}

// printPatchUsage prints usage for the patch command.
func printPatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlpatch patch [pages...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Open Graph and Twitter metadata and ARIA attributes to the pages")
	fmt.Fprintln(w, "listed in the config. Pages that already carry them are left untouched.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  pages    Page files from the config (default: all)")
	fmt.Fprintln(w)
	printTargetUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Patching:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto, env: HTMLPATCH_WORKERS)")
	fmt.Fprintln(w, "  -n, --dry-run             Report changes without writing")
	fmt.Fprintln(w, "      --site-name <s>       og:site_name (env: HTMLPATCH_SITE_NAME)")
	fmt.Fprintln(w, "      --site-handle <s>     twitter:site (env: HTMLPATCH_SITE_HANDLE)")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlpatch check [pages...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report which pages lack metadata tags or ARIA attributes.")
	fmt.Fprintln(w, "Regions a page does not contain are not reported as missing.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  pages    Page files from the config (default: all)")
	fmt.Fprintln(w)
	printTargetUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Audit:")
	fmt.Fprintln(w, "      --strict              Exit with code 4 when anything is missing")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: htmlpatch init [root] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Scan a site for .html files and write a config listing each page")
	fmt.Fprintln(w, "with its <title> and meta description.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -r, --root <dir>          Site root to scan (default: .)")
	fmt.Fprintln(w, "  -o, --output <path>       Config file to write (default: htmlpatch.yaml)")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing config file")
	fmt.Fprintln(w, "      --site-name <s>       og:site_name")
	fmt.Fprintln(w, "      --site-handle <s>     twitter:site")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "patch":
		printPatchUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: htmlpatch version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: htmlpatch help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
