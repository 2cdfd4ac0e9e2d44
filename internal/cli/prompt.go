package cli

import (
	"fmt"
	"strconv"
	"strings"

	"domainmgr/internal/domain"
)

// readLine prints the prompt and returns the next input line. io.EOF from
// the reader propagates so callers can wind the session down cleanly.
func (f *Flow) readLine(prompt string) (string, error) {
	fmt.Fprint(f.out, prompt)
	line, err := f.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptInt re-asks until the answer is an integer in [lo, hi].
func (f *Flow) promptInt(prompt string, lo, hi int) (int, error) {
	for {
		line, err := f.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(f.out, "Please enter a number.")
			continue
		}
		if n < lo || n > hi {
			fmt.Fprintf(f.out, "Please enter a number between %d and %d.\n", lo, hi)
			continue
		}
		return n, nil
	}
}

// promptYesNo re-asks until the answer is y/n; an empty answer picks def.
func (f *Flow) promptYesNo(prompt string, def bool) (bool, error) {
	for {
		line, err := f.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(f.out, "Please answer y or n.")
	}
}

// promptPick reads a 1-based selection out of n items. It returns -1 when
// the user backs out (or answers nothing).
func (f *Flow) promptPick(prompt string, n int) (int, error) {
	for {
		line, err := f.readLine(prompt)
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "back") {
			return -1, nil
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > n {
			fmt.Fprintf(f.out, "Please enter a number between 1 and %d, or 'back'.\n", n)
			continue
		}
		return idx - 1, nil
	}
}

// promptDomain re-asks until the input normalizes to a valid domain name.
// It returns "" when the user backs out.
func (f *Flow) promptDomain(prompt string) (string, error) {
	for {
		line, err := f.readLine(prompt)
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.EqualFold(line, "back") {
			return "", nil
		}
		name, err := domain.Normalize(line)
		if err != nil {
			fmt.Fprintf(f.out, "Invalid domain name: %v\n", err)
			continue
		}
		return name, nil
	}
}
