package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/git"
	"github.com/huimingz/commitbuddy/internal/history"
	"github.com/huimingz/commitbuddy/internal/log"
	"github.com/huimingz/commitbuddy/internal/publish"
	"github.com/huimingz/commitbuddy/internal/ui"
)

var (
	useCopy        bool
	useMessageFile string
	useAutoYes     bool
	clearYes       bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently used commit messages",
	Long: `Manage the list of recently accepted commit messages (newest first,
at most 20).

Available subcommands:
  list  - List recent messages (default)
  use   - Reuse a message by its number
  clear - Forget all recent messages`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent commit messages",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyUseCmd = &cobra.Command{
	Use:   "use <number>",
	Short: "Reuse a recent commit message",
	Long: `Commit the staged changes with a message from the history.

Examples:
  commitbuddy history use 1
  commitbuddy history use 3 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUseEntry(cmd, args[0], (*history.Store).History)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recent commit messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirmClear("recent commit messages", clearYes, bufio.NewReader(os.Stdin), cmd.OutOrStdout())
		if err != nil || !ok {
			return err
		}
		return withStore(func(store *history.Store) error {
			if err := store.ClearHistory(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
			return nil
		})
	},
}

func init() {
	addUseFlags(historyUseCmd)
	historyClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Clear without asking for confirmation")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyUseCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func addUseFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&useCopy, "copy", false, "Copy the message to the clipboard instead of committing")
	cmd.Flags().StringVar(&useMessageFile, "message-file", "", "Write the message into this file")
	cmd.Flags().BoolVarP(&useAutoYes, "yes", "y", false, "Commit without asking for confirmation")
	cmd.MarkFlagsMutuallyExclusive("copy", "message-file")
}

// withStore opens the configured history store for the duration of fn
func withStore(fn func(*history.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	return withStore(func(store *history.Store) error {
		entries, err := store.History()
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		return printEntries(cmd.OutOrStdout(), entries, "No commit messages in history yet.")
	})
}

// printEntries renders numbered entries as a table
func printEntries(w io.Writer, entries []history.Entry, emptyMessage string) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, emptyMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tWHEN\tMODEL\tMESSAGE")
	for i, e := range entries {
		model := "-"
		if e.Provider != "" {
			model = e.Provider
			if e.Model != "" {
				model += "/" + e.Model
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, e.Timestamp.Local().Format("2006-01-02 15:04"), model, e.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d message(s)\n", len(entries))
	return err
}

// parseEntryNumber turns a 1-based argument into an index into n entries
func parseEntryNumber(arg string, n int) (int, error) {
	num, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", arg)
	}
	if n == 0 {
		return 0, fmt.Errorf("nothing stored yet")
	}
	if num < 1 || num > n {
		return 0, fmt.Errorf("number out of range: %d (expected 1-%d)", num, n)
	}
	return num - 1, nil
}

// runUseEntry publishes a stored message picked by number
func runUseEntry(cmd *cobra.Command, arg string, list func(*history.Store) ([]history.Entry, error)) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	entries, err := list(store)
	store.Close()
	if err != nil {
		return err
	}

	index, err := parseEntryNumber(arg, len(entries))
	if err != nil {
		return err
	}
	entry := entries[index]

	ctx, interrupt := NewInterruptHandler(cmd.Context(), os.Stderr)
	defer interrupt.Stop()

	printer := ui.NewStreamPrinter(os.Stdout, ui.WithVerbose(log.IsDebugMode()))
	_ = ui.ShowCommitMessage(entry.Message, os.Stdout)

	var inserter publish.Inserter
	switch {
	case useCopy:
	case useMessageFile != "":
		inserter = &publish.FileInserter{Path: useMessageFile}
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		inserter = &publish.CommitInserter{Git: git.NewExecutor(cwd)}
		if !useAutoYes {
			confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, bufio.NewReader(os.Stdin), os.Stdout)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Commit cancelled.")
				return nil
			}
		}
	}

	return publishEntry(ctx, cfg, printer, inserter, history.Entry{
		Message:  entry.Message,
		Provider: entry.Provider,
		Model:    entry.Model,
	}, false)
}
