package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/huimingz/commitbuddy/internal/config"
	"github.com/huimingz/commitbuddy/internal/log"
	"github.com/huimingz/commitbuddy/internal/secret"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage provider API keys in the OS keychain",
	Long: `Store, remove and inspect provider API keys in the OS keychain
(macOS Keychain, Windows Credential Manager or the Linux Secret Service).

Keys in the keychain take precedence over environment variables and the
api_key setting in the config file.

Examples:
  commitbuddy key set openai
  echo "$KEY" | commitbuddy key set deepseek
  commitbuddy key status
  commitbuddy key delete grok`,
}

var keySetCmd = &cobra.Command{
	Use:   "set <provider>",
	Short: "Store the API key for a provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := checkProvider(args[0])
		if err != nil {
			return err
		}

		apiKey, err := readAPIKey(provider, os.Stdin, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if err := newKeyStore().Set(provider, apiKey); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ API key for %s stored (%s)\n", provider, log.MaskSecret(apiKey))
		return nil
	},
}

var keyDeleteCmd = &cobra.Command{
	Use:     "delete <provider>",
	Aliases: []string{"rm"},
	Short:   "Remove the stored API key for a provider",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := checkProvider(args[0])
		if err != nil {
			return err
		}
		if err := newKeyStore().Delete(provider); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ API key for %s removed\n", provider)
		return nil
	},
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have a key and where it comes from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if ks, ok := newKeyStore().(*secret.KeyringStore); ok && !ks.Available() {
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠️  OS keychain not available, only environment and config keys are used")
		}
		return printKeyStatus(cmd.OutOrStdout(), cfg, newKeyStore())
	},
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyDeleteCmd)
	keyCmd.AddCommand(keyStatusCmd)
	rootCmd.AddCommand(keyCmd)
}

// checkProvider normalizes a provider argument and rejects unknown names
func checkProvider(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range config.SupportedProviders() {
		if p == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("unsupported provider: %s (supported: %s)", name, strings.Join(config.SupportedProviders(), ", "))
}

// readAPIKey reads the key without echo on a terminal, otherwise from the first input line
func readAPIKey(provider string, input *os.File, prompt io.Writer) (string, error) {
	if term.IsTerminal(int(input.Fd())) {
		fmt.Fprintf(prompt, "Enter API key for %s: ", provider)
		raw, err := term.ReadPassword(int(input.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return readKeyLine(input)
}

func readKeyLine(input io.Reader) (string, error) {
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// printKeyStatus reports the credential source for each provider that needs one
func printKeyStatus(w io.Writer, cfg *config.Config, keys secret.Store) error {
	for _, name := range config.SupportedProviders() {
		envVar := config.CredentialEnvVar(name)
		if envVar == "" {
			fmt.Fprintf(w, "%-10s not required\n", name)
			continue
		}
		probe := *cfg
		probe.SwitchProvider(name)
		key, source := probe.ResolveAPIKey(keys)
		if source == config.SourceNone {
			fmt.Fprintf(w, "%-10s missing (set with 'commitbuddy key set %s' or %s)\n", name, name, envVar)
			continue
		}
		fmt.Fprintf(w, "%-10s %s via %s\n", name, log.MaskSecret(key), source)
	}
	return nil
}
