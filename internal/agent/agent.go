package agent

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huimingz/commitbuddy/internal/classify"
	"github.com/huimingz/commitbuddy/internal/git"
	"github.com/huimingz/commitbuddy/internal/llm"
	"github.com/huimingz/commitbuddy/internal/log"
	"github.com/huimingz/commitbuddy/internal/prompt"
	"github.com/huimingz/commitbuddy/internal/ui"
	"github.com/huimingz/commitbuddy/pkg/lang"
)

// CommitRequest represents a request to generate commit message candidates
type CommitRequest struct {
	Style    prompt.Style  // Professionalism level (default: standard)
	Language lang.Language // Output language (optional)
	Context  string        // User-provided context (optional)
}

// CommitResponse holds the outcome of one generation run
type CommitResponse struct {
	Candidates    []string               // At most MaxCandidates messages, in model order
	ChangeContext classify.ChangeContext // What the classifier saw
	Prompt        string                 // The rendered prompt
	Provider      string
	Model         string

	// NothingStaged is set, with no candidates, when the index is empty.
	// It is a signal for the caller, not an error.
	NothingStaged bool

	Stats *ui.ExecutionStats
}

// CommitAgentOptions contains configuration for CommitAgent
type CommitAgentOptions struct {
	GitExecutor    git.Executor       // Git executor for reading staged changes
	Dispatcher     *llm.Dispatcher    // Routes the prompt to the provider (default: built-in providers)
	ProviderConfig llm.ProviderConfig // Provider, model, temperature and credential
	Printer        *ui.StreamPrinter  // Stream printer for output (optional)
	Output         io.Writer          // Output writer (used if Printer is nil)
	Debug          bool               // Enable debug mode
}

// Validate validates the options and sets defaults
func (o *CommitAgentOptions) Validate() error {
	if o.GitExecutor == nil {
		return fmt.Errorf("git executor is required")
	}
	if o.Dispatcher == nil {
		o.Dispatcher = llm.NewDispatcher(nil)
	}
	if o.ProviderConfig.Model == "" {
		o.ProviderConfig.Model = llm.DefaultModel(o.ProviderConfig.Provider)
	}
	return nil
}

// getPrinter returns the printer or creates a default one
func (o *CommitAgentOptions) getPrinter() *ui.StreamPrinter {
	if o.Printer != nil {
		return o.Printer
	}
	if o.Output != nil {
		return ui.NewStreamPrinter(o.Output, ui.WithVerbose(o.Debug))
	}
	return nil
}

// CommitAgent runs the suggestion pipeline: staged diff, classification,
// prompt, one provider call, parsing
type CommitAgent struct {
	opts CommitAgentOptions
}

// NewCommitAgent creates a new CommitAgent instance
func NewCommitAgent(opts CommitAgentOptions) (*CommitAgent, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &CommitAgent{
		opts: opts,
	}, nil
}

// GenerateCandidates produces commit message candidates for the staged changes
func (a *CommitAgent) GenerateCandidates(ctx context.Context, req CommitRequest) (*CommitResponse, error) {
	printer := a.opts.getPrinter()
	start := time.Now()

	printStep := func(step int, msg string) {
		if printer != nil {
			_ = printer.PrintStep(step, msg)
		}
		log.Debug("Step %d: %s", step, msg)
	}

	printProgress := func(msg string) {
		if printer != nil {
			_ = printer.PrintProgress(msg)
		}
		log.Debug("%s", msg)
	}

	printSuccess := func(msg string) {
		if printer != nil {
			_ = printer.PrintSuccess(msg)
		}
	}

	printInfo := func(msg string) {
		if printer != nil {
			_ = printer.PrintInfo(msg)
		}
	}

	printDetail := func(msg string) {
		if printer != nil {
			_ = printer.PrintDetail(msg)
		}
	}

	cfg := a.opts.ProviderConfig

	printStep(1, "Reading staged changes...")
	diff, err := a.opts.GitExecutor.StagedDiff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged changes: %w", err)
	}
	if diff == "" {
		log.Debug("Nothing staged, skipping generation")
		return &CommitResponse{NothingStaged: true, Provider: cfg.Provider, Model: cfg.Model}, nil
	}
	printSuccess(fmt.Sprintf("Staged diff retrieved (%d bytes)", len(diff)))

	printStep(2, "Classifying changes...")
	changeCtx := classify.FromLister(ctx, a.opts.GitExecutor)
	if changeCtx.Language != classify.UnknownLanguage {
		printDetail(fmt.Sprintf("Language: %s", changeCtx.Language))
	}
	if len(changeCtx.ChangeTypes) > 0 {
		printDetail(fmt.Sprintf("Change types: %s", strings.Join(changeCtx.ChangeTypes, ", ")))
	}
	if changeCtx.Scope != "" {
		printDetail(fmt.Sprintf("Scope: %s", changeCtx.Scope))
	}

	style := req.Style
	if style == "" {
		style = prompt.DefaultStyle
	}

	printStep(3, "Building prompt...")
	rendered, err := prompt.Build(prompt.Input{
		Diff:        diff,
		Context:     changeCtx,
		Style:       style,
		Language:    req.Language,
		UserContext: req.Context,
	})
	if err != nil {
		return nil, err
	}
	printInfo(fmt.Sprintf("Style: %s", style))
	if req.Language != "" {
		printInfo(fmt.Sprintf("Language: %s", req.Language.DisplayName()))
	}
	if req.Context != "" {
		printInfo(fmt.Sprintf("Context: %s", req.Context))
	}
	log.Debug("Prompt built (%d bytes)", len(rendered))

	printStep(4, "Generating commit messages...")
	printProgress(fmt.Sprintf("Waiting for %s/%s...", cfg.Provider, cfg.Model))
	raw, err := a.opts.Dispatcher.Dispatch(ctx, cfg, rendered)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	log.Debug("Raw response: %s", raw)

	candidates, err := ParseCandidates(raw)
	if err != nil {
		return nil, err
	}
	printSuccess(fmt.Sprintf("%d commit message option(s) generated", len(candidates)))

	return &CommitResponse{
		Candidates:    candidates,
		ChangeContext: changeCtx,
		Prompt:        rendered,
		Provider:      cfg.Provider,
		Model:         cfg.Model,
		Stats: &ui.ExecutionStats{
			StartTime:  start,
			EndTime:    time.Now(),
			Provider:   cfg.Provider,
			Model:      cfg.Model,
			Candidates: len(candidates),
		},
	}, nil
}
