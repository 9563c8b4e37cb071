// Package main provides the entry point for the memcached-stats CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorewood/devtools/internal/config"
	"github.com/gorewood/devtools/internal/logging"
	"github.com/gorewood/devtools/internal/memcache"
	"github.com/gorewood/devtools/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// notRunningMessage is printed when the server returns no stats.
const notRunningMessage = "Did not get stats from Memcached server. It's probably not running."

// isJSONMode reads the --json flag.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	return flag != nil && flag.Value.String() == "true"
}

func useColor(cmd *cobra.Command) bool {
	flag, _ := cmd.Flags().GetString("color")
	mode, _ := output.ParseColorMode(flag)
	return output.ResolveColorMode(mode, cmd.OutOrStdout())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// statsOptions holds the flag values for one run.
type statsOptions struct {
	addr    string
	stat    string
	timeout time.Duration
	all     bool
	verbose bool
}

// newRootCmd creates the memcached-stats command.
func newRootCmd() *cobra.Command {
	var opts statsOptions
	cmd := &cobra.Command{
		Use:   "memcached-stats",
		Short: "Print a counter from a local memcached server",
		Long: `memcached-stats - ask a memcached server for its stats and print one counter.

With no flags it connects to 127.0.0.1:11211 and prints total_items.
If the server returns no stats the command says so and exits 1.

Examples:
  memcached-stats
  memcached-stats --stat curr_connections
  memcached-stats --all
  memcached-stats --addr cache.internal:11211 --json

The address can also come from MEMCACHED_ADDR or memcached_addr in the
global config.yaml.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return preRun(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", config.DefaultMemcachedAddr, "Server address (host:port)")
	cmd.Flags().StringVar(&opts.stat, "stat", "total_items", "Stat to print")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", memcache.DefaultTimeout, "Connect and read timeout")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Print every stat, sorted by name")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log connection details to stderr")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().String("color", string(output.ColorAuto), output.ColorFlagUsage)

	lipgloss.SetHasDarkBackground(true)
	return cmd
}

// preRun loads env files, warning about unreadable ones, and rejects an
// unknown --color value.
func preRun(cmd *cobra.Command, opts statsOptions) error {
	if _, errs := config.LoadEnvFiles(); len(errs) > 0 {
		log := logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: opts.verbose, JSON: isJSONMode(cmd)})
		for _, err := range errs {
			log.WithError(err).Warn("skipping env file")
		}
	}

	flag, _ := cmd.Flags().GetString("color")
	if _, err := output.ParseColorMode(flag); err != nil {
		output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr()).Error(err)
		return err
	}
	return nil
}

// runStats fetches one snapshot and prints the requested stat or all of them.
func runStats(cmd *cobra.Command, opts statsOptions) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
	log := logging.New(cmd.ErrOrStderr(), logging.Options{Verbose: opts.verbose, JSON: isJSONMode(cmd)})

	addr, err := resolveAddr(cmd, opts.addr)
	if err != nil {
		printer.Error(err)
		return err
	}

	stats, err := memcache.NewClient(addr, opts.timeout, log).Stats(cmd.Context())
	if err != nil {
		return reportNoStats(printer, log, err)
	}

	if opts.all {
		return printAll(printer, stats)
	}

	value, ok := stats.Get(opts.stat)
	if !ok {
		err := output.NewUserError(fmt.Sprintf("stat %q not reported by server", opts.stat))
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		result := map[string]any{
			"addr":  addr,
			"stat":  opts.stat,
			"value": value,
		}
		if n, err := stats.Uint(opts.stat); err == nil {
			result["count"] = n
		}
		return printer.Success(result)
	}
	printer.Println(memcache.Label(opts.stat))
	printer.Println(value)
	return nil
}

// resolveAddr applies the global config file and MEMCACHED_ADDR unless --addr was given.
func resolveAddr(cmd *cobra.Command, flagAddr string) (string, error) {
	if cmd.Flags().Changed("addr") {
		return flagAddr, nil
	}
	cfg, _, err := config.Resolve("")
	if err != nil {
		return "", err
	}
	return cfg.MemcachedAddr, nil
}

func reportNoStats(printer *output.Printer, log logrus.FieldLogger, err error) error {
	log.WithError(err).Debug("stats request failed")

	exitErr := &output.ExitError{Code: output.ExitFailure, Message: notRunningMessage, Cause: err}
	if !errors.Is(err, memcache.ErrNoStats) {
		exitErr.Message = err.Error()
	}

	if printer.IsJSON() {
		printer.Error(exitErr)
	} else {
		printer.Println(exitErr.Message)
	}
	return exitErr
}

func printAll(printer *output.Printer, stats memcache.Stats) error {
	if printer.IsJSON() {
		return printer.WriteJSON(stats)
	}
	rows := make([][]string, 0, len(stats))
	for _, name := range stats.Names() {
		rows = append(rows, []string{name, stats[name]})
	}
	printer.Table([]string{"STAT", "VALUE"}, rows)
	return nil
}
