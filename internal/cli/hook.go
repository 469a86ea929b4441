package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/git"
)

const (
	hookName   = "prepare-commit-msg"
	hookMarker = "# managed by commitbuddy"
)

// the hook only fills in messages for a plain `git commit`; -m, merges,
// squashes and amends pass a source in $2 and are left alone
const hookScript = `#!/bin/sh
` + hookMarker + `
if [ -z "$2" ]; then
  commitbuddy generate --yes --message-file "$1" < /dev/null || true
fi
`

var hookForce bool

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the prepare-commit-msg git hook",
	Long: `Install or remove a prepare-commit-msg hook that pre-fills the commit
message editor with the first suggestion whenever you run 'git commit'
without -m.`,
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the hook in the current repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := hookPath(cmd.Context())
		if err != nil {
			return err
		}
		if err := installHook(path, hookForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Hook installed: %s\n", path)
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the hook from the current repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := hookPath(cmd.Context())
		if err != nil {
			return err
		}
		if err := uninstallHook(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Hook removed: %s\n", path)
		return nil
	},
}

func init() {
	hookInstallCmd.Flags().BoolVarP(&hookForce, "force", "f", false, "Overwrite an existing hook not managed by commitbuddy")

	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
	rootCmd.AddCommand(hookCmd)
}

func hookPath(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	gitDir, err := git.NewExecutor(cwd).GitDir(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks", hookName), nil
}

func isManagedHook(path string) (exists bool, managed bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to read hook: %w", err)
	}
	return true, strings.Contains(string(data), hookMarker), nil
}

func installHook(path string, force bool) error {
	exists, managed, err := isManagedHook(path)
	if err != nil {
		return err
	}
	if exists && !managed && !force {
		return fmt.Errorf("a %s hook already exists: %s\nUse --force to overwrite", hookName, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create hooks directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(hookScript), 0o755); err != nil {
		return fmt.Errorf("failed to write hook: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(path, 0o755)
}

func uninstallHook(path string) error {
	exists, managed, err := isManagedHook(path)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no %s hook installed", hookName)
	}
	if !managed {
		return fmt.Errorf("%s is not managed by commitbuddy, leaving it in place", path)
	}
	return os.Remove(path)
}
