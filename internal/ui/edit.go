package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	// ErrEmptyInput is returned when the user clears the message entirely
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupted is returned when the user interrupts input with Ctrl+C
	ErrInterrupted = errors.New("input interrupted")
)

// EditPrompt lets the user adjust a single-line message before it is used
type EditPrompt struct {
	Prompt string // Shown above the input line
	Hint   string // Dimmed help text (optional)
}

// Show displays the prompt with initial pre-filled and returns the edited
// text. On a terminal the line is editable in place; otherwise one line is
// read from input and an empty line keeps initial.
func (p *EditPrompt) Show(ctx context.Context, initial string, input io.Reader, output io.Writer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInterrupted
	}

	if err := p.displayPrompt(output); err != nil {
		return "", err
	}

	var (
		result string
		err    error
	)
	if input == os.Stdin && output == os.Stdout {
		result, err = p.readWithReadline(ctx, initial)
	} else {
		result, err = p.readLine(initial, input, output)
	}
	if err != nil {
		return "", err
	}

	result = strings.TrimSpace(result)
	if result == "" {
		return "", ErrEmptyInput
	}
	return result, nil
}

func (p *EditPrompt) displayPrompt(output io.Writer) error {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	if _, err := bold.Fprintf(output, "\n✏️  %s\n", p.Prompt); err != nil {
		return err
	}
	if p.Hint != "" {
		if _, err := dim.Fprintf(output, "   %s\n", p.Hint); err != nil {
			return err
		}
	}
	return nil
}

// readLine is the non-terminal path used for pipes and tests
func (p *EditPrompt) readLine(initial string, input io.Reader, output io.Writer) (string, error) {
	if _, err := fmt.Fprintf(output, "[%s]\n> ", initial); err != nil {
		return "", err
	}

	line, err := readLine(lineReader(input))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return initial, nil
	}
	return line, nil
}

// readWithReadline pre-fills the line so it can be edited with arrow keys
func (p *EditPrompt) readWithReadline(ctx context.Context, initial string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return p.readLine(initial, os.Stdin, os.Stdout)
	}
	defer rl.Close()

	line, err := rl.ReadlineWithDefault(initial)
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		return "", err
	}
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}
	return line, nil
}
