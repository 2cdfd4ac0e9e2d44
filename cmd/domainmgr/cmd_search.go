package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSearchCmd(cfg *rootConfig) *cobra.Command {
	var tldsStr string

	cmd := &cobra.Command{
		Use:   "search <keyword...>",
		Short: "Search the registrar for domains matching a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.TrimSpace(strings.Join(args, " "))
			if keyword == "" {
				return &cliError{Code: 2, ShowUsage: true, Cmd: cmd}
			}

			tlds := splitCommaList(tldsStr)
			cfg.log.Debug("searching", "keyword", keyword, "tlds", tlds)

			results, err := cfg.client.Search(cmd.Context(), keyword, tlds)
			if err != nil {
				return &cliError{Code: 1, Err: err, Cmd: cmd}
			}

			if err := writeSuggestions(os.Stdout, cfg.outFormat, results); err != nil {
				return &cliError{Code: 1, Err: fmt.Errorf("failed to write output: %w", err), Cmd: cmd}
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(usageErr)
	cmd.Flags().StringVar(&tldsStr, "tlds", "", "Comma-separated TLDs to restrict results to (empty = all)")

	return cmd
}
