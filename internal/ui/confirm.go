package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ErrSelectionCancelled is returned when the user quits a selection prompt
var ErrSelectionCancelled = errors.New("selection cancelled")

// lineReader reuses an existing bufio.Reader so consecutive prompts on the
// same input do not lose buffered lines
func lineReader(input io.Reader) *bufio.Reader {
	if br, ok := input.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(input)
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as-is; io.EOF only when nothing was read.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks the user for a yes/no confirmation
// Default is no (returns false on empty input)
func Confirm(message string, input io.Reader, output io.Writer) (bool, error) {
	return ConfirmWithDefault(message, false, input, output)
}

// ConfirmWithDefault asks the user for a yes/no confirmation with a specified default
func ConfirmWithDefault(message string, defaultYes bool, input io.Reader, output io.Writer) (bool, error) {
	reader := lineReader(input)

	var prompt string
	if defaultYes {
		prompt = fmt.Sprintf("%s [Y/n]: ", message)
	} else {
		prompt = fmt.Sprintf("%s [y/N]: ", message)
	}

	for {
		if _, err := fmt.Fprint(output, prompt); err != nil {
			return false, err
		}

		line, err := readLine(reader)
		if err != nil {
			return false, err
		}

		switch strings.TrimSpace(strings.ToLower(line)) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			if _, err := fmt.Fprintln(output, "Please enter 'y' or 'n'"); err != nil {
				return false, err
			}
		}
	}
}

// SelectOption lists options numbered from 1 and returns the zero-based
// index the user picked. Empty input picks defaultIndex, which is clamped
// to 0 when out of range. Entering "q" returns ErrSelectionCancelled.
func SelectOption(message string, options []string, defaultIndex int, input io.Reader, output io.Writer) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("no options to select from")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)

	if _, err := bold.Fprintf(output, "\n%s\n", message); err != nil {
		return -1, err
	}
	for i, option := range options {
		marker := " "
		if i == defaultIndex {
			marker = "*"
		}
		if _, err := cyan.Fprintf(output, "%s %d) ", marker, i+1); err != nil {
			return -1, err
		}
		if _, err := fmt.Fprintln(output, option); err != nil {
			return -1, err
		}
	}

	reader := lineReader(input)
	prompt := fmt.Sprintf("Select [1-%d, q to quit] (default %d): ", len(options), defaultIndex+1)

	for {
		if _, err := dim.Fprint(output, prompt); err != nil {
			return -1, err
		}

		line, err := readLine(reader)
		if err != nil {
			return -1, err
		}

		answer := strings.TrimSpace(strings.ToLower(line))
		switch answer {
		case "":
			return defaultIndex, nil
		case "q", "quit":
			return -1, ErrSelectionCancelled
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		if _, err := fmt.Fprintf(output, "Please enter a number between 1 and %d\n", len(options)); err != nil {
			return -1, err
		}
	}
}

// ShowCandidates prints generated candidates as a numbered list
func ShowCandidates(candidates []string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintln(output, "\n📝 Suggested Commit Messages:"); err != nil {
		return err
	}
	for i, c := range candidates {
		if _, err := cyan.Fprintf(output, "  %d) ", i+1); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(output, c); err != nil {
			return err
		}
	}
	return nil
}

// ShowCommitMessage displays a formatted commit message
func ShowCommitMessage(message string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintln(output, "\n📝 Commit Message:"); err != nil {
		return err
	}
	if _, err := cyan.Fprintln(output, strings.Repeat("─", 40)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(output, message); err != nil {
		return err
	}
	_, err := cyan.Fprintln(output, strings.Repeat("─", 40))
	return err
}
