package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/config"
	"github.com/huimingz/commitbuddy/internal/llm"
	"github.com/huimingz/commitbuddy/internal/secret"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported LLM providers",
	Long: `List the supported LLM providers with their default model and
whether an API key is available for them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printProviders(cmd.OutOrStdout(), cfg, newKeyStore())
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

// printProviders lists every registered provider, marking the active one
func printProviders(w io.Writer, cfg *config.Config, keys secret.Store) error {
	factory := llm.NewProviderFactory()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(w, "Supported Providers:")
	fmt.Fprintln(w)

	for _, name := range factory.Names() {
		provider, err := factory.Create(llm.ProviderConfig{Provider: name})
		if err != nil {
			return err
		}

		if name == cfg.Provider {
			green.Fprintf(w, "  ✓ %s (active)\n", name)
		} else {
			fmt.Fprintf(w, "    %s\n", name)
		}

		model := llm.DefaultModel(name)
		if name == cfg.Provider {
			model = cfg.ModelName()
		}
		cyan.Fprintf(w, "      Model:    %s\n", model)

		if !provider.RequiresCredential() {
			cyan.Fprintln(w, "      API key:  not required")
		} else {
			probe := *cfg
			probe.SwitchProvider(name)
			_, source := probe.ResolveAPIKey(keys)
			if source == config.SourceNone {
				cyan.Fprintln(w, "      API key:  missing")
			} else {
				cyan.Fprintf(w, "      API key:  set (%s)\n", source)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}
