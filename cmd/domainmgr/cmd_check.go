package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"domainmgr/internal/domain"
	"domainmgr/internal/registrar"
)

// checkRow is one line of `check` output: the availability answer plus the
// error, if any, that stopped it.
type checkRow struct {
	registrar.AvailabilityResult
	Error string `json:"error,omitempty"`
}

func newCheckCmd(cfg *rootConfig) *cobra.Command {
	var availableOnly bool

	cmd := &cobra.Command{
		Use:   "check [domain...]",
		Short: "Check availability for explicit domains (args and/or stdin)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readDomainsFromArgsAndStdin(args, os.Stdin)
			if err != nil {
				return &cliError{Code: 1, Err: fmt.Errorf("failed to read domains: %w", err), Cmd: cmd}
			}
			if len(inputs) == 0 {
				return &cliError{Code: 2, ShowUsage: true, Cmd: cmd}
			}

			// One blocking call per domain, in input order.
			rows := make([]checkRow, 0, len(inputs))
			failed := false
			for _, input := range inputs {
				name, err := domain.Normalize(input)
				if err != nil {
					rows = append(rows, checkRow{
						AvailabilityResult: registrar.AvailabilityResult{Domain: input},
						Error:              err.Error(),
					})
					failed = true
					continue
				}

				res, err := cfg.client.CheckAvailability(cmd.Context(), name)
				if err != nil {
					rows = append(rows, checkRow{
						AvailabilityResult: registrar.AvailabilityResult{Domain: name},
						Error:              err.Error(),
					})
					failed = true
					continue
				}
				rows = append(rows, checkRow{AvailabilityResult: res})
			}

			if availableOnly {
				filtered := rows[:0]
				for _, r := range rows {
					if r.Available && r.Error == "" {
						filtered = append(filtered, r)
					}
				}
				rows = filtered
			}

			if err := writeChecks(os.Stdout, cfg.outFormat, rows); err != nil {
				return &cliError{Code: 1, Err: fmt.Errorf("failed to write output: %w", err), Cmd: cmd}
			}
			if failed {
				return &cliError{Code: 1}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().BoolVar(&availableOnly, "available-only", false, "Only output available domains")

	return cmd
}
