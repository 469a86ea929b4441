package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/config"
)

const defaultConfigTemplate = `# CommitBuddy Configuration File
# Every key can also be set from the environment, e.g. COMMITBUDDY_PROVIDER=ollama

# LLM provider: openai, deepseek, gemini, grok, ollama
provider: openai

# Model name (optional, each provider has a default)
# model: gpt-4o-mini

# Sampling temperature, 0.0 - 2.0
temperature: 0.7

# Commit message style: simple, standard, professional, enterprise
professionalism: standard

# Output language (en, zh, zh-tw, ja, ko)
language: en

# Custom endpoint (optional), e.g. a proxy or a remote Ollama
# api_endpoint: http://localhost:11434

# API keys are best stored in the OS keyring:
#   commitbuddy key set openai
# An environment variable such as ${OPENAI_API_KEY} also works here.
# api_key: ${OPENAI_API_KEY}

# History and favorites database
# history_file: ~/.commitbuddy/history.db
`

var (
	initForce bool
	initLocal bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize CommitBuddy configuration",
	Long: `Create a default configuration file (~/.commitbuddy.yaml).

With --local the file is created in the current directory instead, where it
takes precedence over the one in your home directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := initConfigPath(initLocal)
		if err != nil {
			return err
		}

		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}

		if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ Configuration file created: %s\n", configPath)
		fmt.Fprintln(out, "\nNext steps:")
		fmt.Fprintln(out, "  1. Pick a provider and model in the config file")
		fmt.Fprintln(out, "  2. Store your API key: commitbuddy key set <provider>")
		fmt.Fprintln(out, "  3. Stage some changes and run 'commitbuddy commit'")
		return nil
	},
}

func initConfigPath(local bool) (string, error) {
	if local {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return filepath.Join(cwd, config.FileName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, config.FileName), nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	initCmd.Flags().BoolVar(&initLocal, "local", false, "Create the file in the current directory")
	rootCmd.AddCommand(initCmd)
}
