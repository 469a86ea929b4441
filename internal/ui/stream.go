package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds timing and token usage for one generation run
type ExecutionStats struct {
	StartTime  time.Time
	EndTime    time.Time
	Provider   string
	Model      string
	Candidates int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// StreamPrinterOption is a functional option for StreamPrinter
type StreamPrinterOption func(*StreamPrinter)

// WithColor enables or disables color output
func WithColor(enabled bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.colorEnabled = enabled
	}
}

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.verbose = verbose
	}
}

// StreamPrinter writes pipeline progress to the terminal
type StreamPrinter struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewStreamPrinter creates a new StreamPrinter
func NewStreamPrinter(writer io.Writer, opts ...StreamPrinterOption) *StreamPrinter {
	p := &StreamPrinter{
		writer:       writer,
		colorEnabled: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *StreamPrinter) printf(c *color.Color, format string, args ...interface{}) error {
	if p.colorEnabled {
		_, err := c.Fprintf(p.writer, format, args...)
		return err
	}
	_, err := fmt.Fprintf(p.writer, format, args...)
	return err
}

// PrintStep prints a step in the process
func (p *StreamPrinter) PrintStep(step int, message string) error {
	return p.printf(color.New(color.FgBlue), "📋 Step %d: %s\n", step, message)
}

// PrintProgress prints a progress message
func (p *StreamPrinter) PrintProgress(message string) error {
	return p.printf(color.New(color.FgYellow), "⏳ %s\n", message)
}

// PrintInfo prints an info message
func (p *StreamPrinter) PrintInfo(message string) error {
	return p.printf(color.New(color.FgCyan), "ℹ️  %s\n", message)
}

// PrintDetail prints a dimmed line, only in verbose mode
func (p *StreamPrinter) PrintDetail(message string) error {
	if !p.verbose {
		return nil
	}
	return p.printf(color.New(color.FgHiBlack), "   %s\n", message)
}

// PrintSuccess prints a success message
func (p *StreamPrinter) PrintSuccess(message string) error {
	return p.printf(color.New(color.FgGreen), "✅ %s\n", message)
}

// PrintWarning prints a warning message
func (p *StreamPrinter) PrintWarning(message string) error {
	return p.printf(color.New(color.FgYellow), "⚠️  %s\n", message)
}

// PrintError prints an error message
func (p *StreamPrinter) PrintError(message string) error {
	return p.printf(color.New(color.FgRed), "❌ Error: %s\n", message)
}

// PrintHint prints a remediation hint below an error
func (p *StreamPrinter) PrintHint(message string) error {
	return p.printf(color.New(color.FgHiBlack), "💡 %s\n", message)
}

// PrintStats prints execution statistics
func (p *StreamPrinter) PrintStats(stats *ExecutionStats) error {
	if stats == nil {
		return nil
	}

	return p.printf(color.New(color.FgHiBlack), "\n📊 Stats: %d candidates from %s/%s | Time: %s\n",
		stats.Candidates, stats.Provider, stats.Model, formatDuration(stats.Duration()))
}

// Newline prints a newline
func (p *StreamPrinter) Newline() error {
	_, err := fmt.Fprintln(p.writer)
	return err
}

// formatDuration formats a duration in a human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
