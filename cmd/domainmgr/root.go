package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"domainmgr/internal/cli"
	"domainmgr/internal/config"
	"domainmgr/internal/registrar"
	"domainmgr/internal/registrar/godaddy"
)

type rootConfig struct {
	Version string

	// Global flags.
	VersionFlag bool
	Format      string
	Timeout     time.Duration
	Sandbox     bool
	Quiet       bool
	Verbose     bool

	// Derived runtime state.
	client    registrar.Client
	outFormat outputFormat
	log       *slog.Logger
}

func newRootCmd(ver string) *cobra.Command {
	cfg := &rootConfig{Version: ver}

	root := &cobra.Command{
		Use:           "domainmgr",
		Short:         "Check availability, search and register domain names",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: run the interactive session.
			flow := cli.New(cfg.client, os.Stdin, os.Stdout, cfg.log)
			if err := flow.Run(cmd.Context()); err != nil {
				return &cliError{Code: 1, Err: err, Cmd: cmd}
			}
			return nil
		},
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SetFlagErrorFunc(usageErr)

	pf := root.PersistentFlags()
	pf.BoolVar(&cfg.VersionFlag, "version", false, "Print version and exit")
	pf.StringVar(&cfg.Format, "format", "auto", "Output format for one-shot commands: auto|table|plain|json")
	pf.DurationVar(&cfg.Timeout, "timeout", 0, "Per-request timeout (default from GODADDY_TIMEOUT or 30s)")
	pf.BoolVar(&cfg.Sandbox, "sandbox", false, "Use the registrar's OTE (sandbox) endpoint")
	pf.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress non-essential stderr output")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose stderr output (diagnostics)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfg.VersionFlag {
			fmt.Fprintf(os.Stdout, "domainmgr %s (%s/%s)\n", cfg.Version, runtime.GOOS, runtime.GOARCH)
			return errExit0
		}

		formatStr := strings.ToLower(strings.TrimSpace(cfg.Format))
		switch formatStr {
		case "", "auto", "table", "plain", "json":
		default:
			return usageErr(cmd, fmt.Errorf("unknown format %q (use auto|table|plain|json)", cfg.Format))
		}
		cfg.outFormat = resolveFormat(formatStr, os.Stdout)

		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		if cfg.Quiet {
			level = slog.LevelWarn
		}
		cfg.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		env, err := config.Load()
		if err != nil {
			return &cliError{Code: 1, Err: err, Cmd: cmd}
		}
		if cfg.Sandbox && env.BaseURL == godaddy.DefaultBaseURL {
			env.BaseURL = godaddy.OTEBaseURL
		}
		timeout := env.Timeout
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}

		client, err := godaddy.NewClient(godaddy.Options{
			APIKey:    env.APIKey,
			APISecret: env.APISecret,
			BaseURL:   env.BaseURL,
			Timeout:   timeout,
		})
		if err != nil {
			return &cliError{Code: 1, Err: err, Cmd: cmd}
		}
		cfg.client = client
		cfg.log.Debug("registrar client ready", "provider", client.Name(), "base_url", env.BaseURL)

		return nil
	}

	root.AddCommand(newCheckCmd(cfg))
	root.AddCommand(newSearchCmd(cfg))

	return root
}
