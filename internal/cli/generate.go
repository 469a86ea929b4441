package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/agent"
	"github.com/huimingz/commitbuddy/internal/config"
	"github.com/huimingz/commitbuddy/internal/git"
	"github.com/huimingz/commitbuddy/internal/history"
	"github.com/huimingz/commitbuddy/internal/llm"
	"github.com/huimingz/commitbuddy/internal/log"
	"github.com/huimingz/commitbuddy/internal/publish"
	"github.com/huimingz/commitbuddy/internal/ui"
	"github.com/huimingz/commitbuddy/pkg/lang"
)

var (
	genContext     string
	genLanguage    string
	genStyle       string
	genTemperature float64
	genAutoYes     bool
	genPrintOnly   bool
	genCopy        bool
	genMessageFile string
	genFavorite    bool
	genEdit        bool
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"commit", "gen"},
	Short:   "Suggest commit messages for the staged changes",
	Long: `Generate commit message suggestions from your staged changes.

This command will:
1. Read the staged diff (git diff --cached)
2. Classify the changed files (language, ecosystem, tests, config, docs)
3. Ask the configured LLM for three Conventional Commit messages
4. Let you pick one, then commit with it (or copy it to the clipboard)

Examples:
  commitbuddy generate
  commitbuddy commit -c "Part of the auth rewrite"
  commitbuddy generate --style enterprise --language ja
  commitbuddy generate -p ollama -m qwen2.5:14b
  commitbuddy generate --print
  commitbuddy generate --yes --message-file .git/COMMIT_EDITMSG`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genContext, "context", "c", "", "Additional context to help the model")
	generateCmd.Flags().StringVarP(&genLanguage, "language", "l", "", fmt.Sprintf("Output language (%s)", supportedLanguages()))
	generateCmd.Flags().StringVarP(&genStyle, "style", "s", "", "Professionalism: simple, standard, professional, enterprise")
	generateCmd.Flags().Float64VarP(&genTemperature, "temperature", "t", 0, "Sampling temperature 0.0-2.0 (overrides config)")
	generateCmd.Flags().BoolVarP(&genAutoYes, "yes", "y", false, "Use the first suggestion without prompting")
	generateCmd.Flags().BoolVar(&genPrintOnly, "print", false, "Only print the suggestions, one per line")
	generateCmd.Flags().BoolVar(&genCopy, "copy", false, "Copy the chosen message to the clipboard instead of committing")
	generateCmd.Flags().StringVar(&genMessageFile, "message-file", "", "Write the chosen message into this file (prepare-commit-msg hook)")
	generateCmd.Flags().BoolVar(&genFavorite, "favorite", false, "Also save the chosen message to favorites")
	generateCmd.Flags().BoolVarP(&genEdit, "edit", "e", false, "Edit the chosen message before using it")
	generateCmd.MarkFlagsMutuallyExclusive("copy", "message-file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, interrupt := NewInterruptHandler(cmd.Context(), os.Stderr)
	defer interrupt.Stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = genTemperature
	}
	if genStyle != "" {
		cfg.Professionalism = genStyle
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	apiKey, source := cfg.ResolveAPIKey(newKeyStore())
	debugKeySource(cfg.Provider, source, apiKey)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	gitExec := git.NewExecutor(cwd)

	// keep stdout clean for --print
	var progressOut io.Writer = os.Stdout
	if genPrintOnly {
		progressOut = os.Stderr
	}
	printer := ui.NewStreamPrinter(progressOut, ui.WithVerbose(log.IsDebugMode()))

	commitAgent, err := agent.NewCommitAgent(agent.CommitAgentOptions{
		GitExecutor:    gitExec,
		Dispatcher:     llm.NewDispatcher(nil),
		ProviderConfig: cfg.ProviderConfig(apiKey),
		Printer:        printer,
		Debug:          debugMode,
	})
	if err != nil {
		return fmt.Errorf("failed to create commit agent: %w", err)
	}

	resp, err := commitAgent.GenerateCandidates(ctx, agent.CommitRequest{
		Style:    cfg.Style(),
		Language: cfg.GetLanguage(genLanguage),
		Context:  genContext,
	})
	if err != nil {
		return reportError(printer, err, cfg.Provider)
	}

	if resp.NothingStaged {
		_ = printer.PrintWarning("No staged changes found.")
		_ = printer.PrintHint("Stage changes first: git add <file> or git add -A")
		return nil
	}

	if genPrintOnly {
		for _, c := range resp.Candidates {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	}

	_ = printer.Newline()
	input := bufio.NewReader(os.Stdin)
	message, err := chooseCandidate(ctx, resp.Candidates, input)
	if errors.Is(err, ui.ErrSelectionCancelled) || errors.Is(err, ui.ErrInterrupted) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	_ = ui.ShowCommitMessage(message, os.Stdout)
	_ = printer.PrintStats(resp.Stats)

	var inserter publish.Inserter
	switch {
	case genCopy:
	case genMessageFile != "":
		inserter = &publish.FileInserter{Path: genMessageFile}
	default:
		inserter = &publish.CommitInserter{Git: gitExec}
		if !genAutoYes {
			confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, input, os.Stdout)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Commit cancelled.")
				return nil
			}
		}
	}

	entry := history.Entry{Message: message, Provider: resp.Provider, Model: resp.Model}
	return publishEntry(ctx, cfg, printer, inserter, entry, genFavorite)
}

// chooseCandidate picks the message to publish according to the flags
func chooseCandidate(ctx context.Context, candidates []string, input io.Reader) (string, error) {
	var index int
	switch {
	case genAutoYes:
		_ = ui.ShowCandidates(candidates, os.Stdout)
		index = 0
	case isInteractive():
		var err error
		index, err = ui.PickOption("Choose a commit message:", candidates, 0, os.Stdin, os.Stdout)
		if err != nil {
			return "", err
		}
	default:
		var err error
		index, err = ui.SelectOption("Choose a commit message:", candidates, 0, input, os.Stdout)
		if err != nil {
			return "", err
		}
	}

	message := candidates[index]
	if !genEdit {
		return message, nil
	}

	editor := &ui.EditPrompt{
		Prompt: "Edit the commit message:",
		Hint:   "Press Enter to keep it as is.",
	}
	if isInteractive() {
		return editor.Show(ctx, message, os.Stdin, os.Stdout)
	}
	return editor.Show(ctx, message, input, os.Stdout)
}

// reportError prints the failure with a remediation hint and returns it
func reportError(printer *ui.StreamPrinter, err error, provider string) error {
	_ = printer.PrintError(err.Error())
	if hint := remediationHint(err, provider); hint != "" {
		_ = printer.PrintHint(hint)
	}
	return &reportedError{err: err}
}

// publishEntry publishes the message and records it in the history store.
// History failures are reported but do not fail the command.
func publishEntry(ctx context.Context, cfg *config.Config, printer *ui.StreamPrinter, inserter publish.Inserter, entry history.Entry, favorite bool) error {
	outcome, err := publish.NewPublisher(inserter).Publish(ctx, entry.Message)
	switch outcome {
	case publish.OutcomeInserted:
		_ = printer.PrintSuccess(fmt.Sprintf("Message used via %s", inserter.Name()))
	case publish.OutcomeCopiedToClipboard:
		_ = printer.PrintSuccess("Message copied to clipboard")
	default:
		return reportError(printer, fmt.Errorf("failed to publish message: %w", err), "")
	}

	store, err := openHistory(cfg)
	if err != nil {
		log.Warn("history not saved: %v", err)
		return nil
	}
	defer store.Close()

	if err := store.Append(entry); err != nil {
		log.Warn("history not saved: %v", err)
	}
	if favorite {
		added, err := store.AddFavorite(entry)
		switch {
		case err != nil:
			log.Warn("favorite not saved: %v", err)
		case added:
			_ = printer.PrintInfo("Saved to favorites")
		default:
			_ = printer.PrintInfo("Already in favorites")
		}
	}
	return nil
}

func supportedLanguages() string {
	names := make([]string, 0, len(lang.Supported()))
	for _, l := range lang.Supported() {
		names = append(names, l.String())
	}
	return strings.Join(names, ", ")
}
