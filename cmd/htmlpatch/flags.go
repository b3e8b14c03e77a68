package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// targetFlags select the site and diagnostics for commands that read pages.
type targetFlags struct {
	root     string
	logLevel string
	logFile  string
}

// siteFlags override the site-wide metadata values.
type siteFlags struct {
	name   string
	handle string
}

// patchFlags holds all flags for the patch command.
type patchFlags struct {
	common  commonFlags
	target  targetFlags
	site    siteFlags
	workers int
	dryRun  bool
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common commonFlags
	target targetFlags
	strict bool
}

// initFlags holds all flags for the init command.
type initFlags struct {
	quiet  bool
	site   siteFlags
	root   string
	output string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page detail and debug logs")
}

// addTargetFlags adds site root and logging flags to a FlagSet.
func addTargetFlags(fs *flag.FlagSet, f *targetFlags) {
	fs.StringVarP(&f.root, "root", "r", "", "site root directory")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", "", "also write logs to a rotating file")
}

// addSiteFlags adds site metadata flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.name, "site-name", "", "og:site_name value")
	fs.StringVar(&f.handle, "site-handle", "", "twitter:site value, e.g. @ClawCypher")
}

// parsePatchFlags parses patch command flags and returns positional args.
func parsePatchFlags(args []string) (*patchFlags, []string, error) {
	fs := flag.NewFlagSet("patch", flag.ContinueOnError)
	f := &patchFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "report changes without writing")

	addCommonFlags(fs, &f.common)
	addTargetFlags(fs, &f.target)
	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printPatchUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	f := &checkFlags{}

	fs.BoolVar(&f.strict, "strict", false, "exit with code 4 when any attribute is missing")

	addCommonFlags(fs, &f.common)
	addTargetFlags(fs, &f.target)

	fs.Usage = func() { printCheckUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	f := &initFlags{}

	fs.StringVarP(&f.root, "root", "r", ".", "site root directory to scan")
	fs.StringVarP(&f.output, "output", "o", defaultInitOutput, "config file to write")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing config file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")

	addSiteFlags(fs, &f.site)

	fs.Usage = func() { printInitUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
