package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"domainmgr/internal/domain"
	"domainmgr/internal/registrar"
)

type outputFormat int

const (
	formatTable outputFormat = iota
	formatPlain
	formatJSON
)

func resolveFormat(flagVal string, stdout *os.File) outputFormat {
	switch strings.ToLower(strings.TrimSpace(flagVal)) {
	case "table":
		return formatTable
	case "plain":
		return formatPlain
	case "json":
		return formatJSON
	}

	if term.IsTerminal(int(stdout.Fd())) {
		return formatTable
	}
	return formatPlain
}

func writeChecks(w io.Writer, format outputFormat, rows []checkRow) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(rows)
	case formatPlain:
		for _, r := range rows {
			// Stable, line-oriented output for piping.
			status := "taken"
			if r.Available {
				status = "available"
			}
			if r.Error != "" {
				status = "error"
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Domain, status, priceColumn(r.Price, r.Currency)); err != nil {
				return err
			}
		}
		return nil
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "DOMAIN\tAVAILABLE\tPRICE\tDETAIL")
		for _, r := range rows {
			avail := "no"
			if r.Available {
				avail = "yes"
			}
			if r.Error != "" {
				avail = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Domain, avail, priceColumn(r.Price, r.Currency), r.Error)
		}
		return tw.Flush()
	}
}

func writeSuggestions(w io.Writer, format outputFormat, results []registrar.Suggestion) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(results)
	case formatPlain:
		for _, s := range results {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", s.Domain, priceColumn(s.Price, "")); err != nil {
				return err
			}
		}
		return nil
	default:
		tw := domain.NewTabWriter(w)
		fmt.Fprintln(tw, "DOMAIN\tPRICE")
		for _, s := range results {
			fmt.Fprintf(tw, "%s\t%s\n", s.Domain, priceColumn(s.Price, ""))
		}
		return tw.Flush()
	}
}

func priceColumn(price float64, currency string) string {
	if price <= 0 {
		return ""
	}
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%.2f %s", price, currency)
}
