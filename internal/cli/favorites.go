package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huimingz/commitbuddy/internal/history"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite commit messages",
	Long: `Manage saved favorite commit messages.

Available subcommands:
  list   - List favorites (default)
  add    - Save a message (or a history entry with --from-history)
  remove - Remove a favorite by number
  use    - Commit with a favorite
  clear  - Remove all favorites`,
	Args: cobra.NoArgs,
	RunE: runFavoritesList,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite commit messages",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesList,
}

var favFromHistory int

var favoritesAddCmd = &cobra.Command{
	Use:   "add [message]",
	Short: "Save a commit message as a favorite",
	Long: `Save a commit message as a favorite.

Examples:
  commitbuddy favorites add "chore(deps): bump dependencies"
  commitbuddy favorites add --from-history 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *history.Store) error {
			entry, err := favoriteEntry(store, args, favFromHistory)
			if err != nil {
				return err
			}
			added, err := store.AddFavorite(entry)
			if err != nil {
				return fmt.Errorf("failed to save favorite: %w", err)
			}
			if added {
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved to favorites")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Already in favorites")
			}
			return nil
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <number>",
	Aliases: []string{"rm"},
	Short:   "Remove a favorite by its number",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(store *history.Store) error {
			favorites, err := store.Favorites()
			if err != nil {
				return err
			}
			index, err := parseEntryNumber(args[0], len(favorites))
			if err != nil {
				return err
			}
			if _, err := store.RemoveFavorite(favorites[index].Message); err != nil {
				return fmt.Errorf("failed to remove favorite: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed: %s\n", favorites[index].Message)
			return nil
		})
	},
}

var favoritesUseCmd = &cobra.Command{
	Use:   "use <number>",
	Short: "Commit with a favorite message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUseEntry(cmd, args[0], (*history.Store).Favorites)
	},
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirmClear("favorites", clearYes, bufio.NewReader(os.Stdin), cmd.OutOrStdout())
		if err != nil || !ok {
			return err
		}
		return withStore(func(store *history.Store) error {
			if err := store.ClearFavorites(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Favorites cleared")
			return nil
		})
	},
}

func init() {
	favoritesAddCmd.Flags().IntVar(&favFromHistory, "from-history", 0, "Save the history entry with this number")
	addUseFlags(favoritesUseCmd)
	favoritesClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Clear without asking for confirmation")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesUseCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)
	rootCmd.AddCommand(favoritesCmd)
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	return withStore(func(store *history.Store) error {
		favorites, err := store.Favorites()
		if err != nil {
			return fmt.Errorf("failed to read favorites: %w", err)
		}
		return printEntries(cmd.OutOrStdout(), favorites, "No favorites yet. Add one with 'commitbuddy favorites add'.")
	})
}

// favoriteEntry builds the entry to save from either the argument or a history number
func favoriteEntry(store *history.Store, args []string, fromHistory int) (history.Entry, error) {
	switch {
	case fromHistory > 0 && len(args) > 0:
		return history.Entry{}, fmt.Errorf("pass either a message or --from-history, not both")
	case fromHistory > 0:
		entries, err := store.History()
		if err != nil {
			return history.Entry{}, err
		}
		index, err := parseEntryNumber(fmt.Sprint(fromHistory), len(entries))
		if err != nil {
			return history.Entry{}, err
		}
		return entries[index], nil
	case len(args) == 1 && strings.TrimSpace(args[0]) != "":
		return history.Entry{Message: args[0]}, nil
	}
	return history.Entry{}, fmt.Errorf("a message is required")
}
