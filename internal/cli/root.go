package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/log"
)

var (
	// Global flags
	debugMode    bool
	configFile   string
	modelName    string
	providerName string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "commitbuddy",
	Short: "AI-suggested commit messages for your staged changes",
	Long: `CommitBuddy reads your staged changes, asks an LLM for three commit
message suggestions and commits (or copies) the one you pick.

Supported providers: openai, deepseek, gemini, grok, ollama.

Use "commitbuddy [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	reportFailure(err)
	return err
}

// reportFailure prints errors that no command has shown to the user yet
func reportFailure(err error) {
	var shown *reportedError
	if err == nil || errors.As(err, &shown) {
		return
	}
	log.Error("%v", err)
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./.commitbuddy.yaml, then ~/.commitbuddy.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "LLM model to use (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&providerName, "provider", "p", "", "LLM provider to use (overrides config)")
}
