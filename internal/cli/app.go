package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/huimingz/commitbuddy/internal/config"
	"github.com/huimingz/commitbuddy/internal/git"
	"github.com/huimingz/commitbuddy/internal/history"
	"github.com/huimingz/commitbuddy/internal/llm"
	"github.com/huimingz/commitbuddy/internal/log"
	"github.com/huimingz/commitbuddy/internal/secret"
	"github.com/huimingz/commitbuddy/internal/ui"
)

// newKeyStore is swapped in tests
var newKeyStore = func() secret.Store {
	return secret.NewKeyringStore()
}

// loadConfig loads the config file and applies the global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.SwitchProvider(providerName)
	if modelName != "" {
		cfg.Model = modelName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.DebugDump()
	return cfg, nil
}

// openHistory opens the history store configured in cfg
func openHistory(cfg *config.Config) (*history.Store, error) {
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil, err
	}
	return history.Open(path)
}

// isInteractive reports whether both stdin and stdout are terminals
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// remediationHint suggests a fix for the failures users can act on
func remediationHint(err error, provider string) string {
	switch {
	case errors.Is(err, llm.ErrMissingCredential):
		hint := fmt.Sprintf("Run 'commitbuddy key set %s' to store an API key", provider)
		if name := config.CredentialEnvVar(provider); name != "" {
			hint += fmt.Sprintf(", or export %s", name)
		}
		return hint
	case errors.Is(err, llm.ErrUnauthorized):
		return fmt.Sprintf("The %s API key was rejected. Replace it with 'commitbuddy key set %s'", provider, provider)
	case errors.Is(err, llm.ErrQuotaExceeded):
		return fmt.Sprintf("%s usage limit reached. Check your plan or try another provider with --provider", provider)
	case errors.Is(err, git.ErrNotARepository):
		return "Run commitbuddy inside a git repository"
	}
	return ""
}

// reportedError marks an error the command already printed with its hint
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// confirmClear asks before a destructive clear unless skip is set
func confirmClear(what string, skip bool, input io.Reader, output io.Writer) (bool, error) {
	if skip {
		return true, nil
	}
	ok, err := ui.Confirm(fmt.Sprintf("Clear all %s?", what), input, output)
	if err != nil {
		return false, err
	}
	if !ok {
		log.Info("Nothing cleared.")
	}
	return ok, nil
}

func debugKeySource(provider string, source config.CredentialSource, key string) {
	log.Debug("API key for %s: %s (source: %s)", provider, log.MaskSecret(key), source)
}
