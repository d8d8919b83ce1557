package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bft-labs/bookshelf/internal/catalog"
	"github.com/bft-labs/bookshelf/internal/domain"
	"github.com/bft-labs/bookshelf/internal/output"
	"github.com/bft-labs/bookshelf/internal/ports"
	"github.com/bft-labs/bookshelf/internal/shell"
	"github.com/bft-labs/bookshelf/internal/watch"
)

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu (default)",
		Args:  cobra.NoArgs,
		RunE:  a.runShell,
	}
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	return shell.New(a.catalog, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger).Run(cmd.Context())
}

func newAddCmd(a *app) *cobra.Command {
	var title, author, year string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.catalog.AddBook(cmd.Context(), title, author, year)
			if err != nil {
				return err
			}
			return a.print(cmd, []domain.Book{b})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "book title")
	cmd.Flags().StringVar(&author, "author", "", "book author")
	cmd.Flags().StringVar(&year, "year", "", "publication year")
	for _, name := range []string{"title", "author", "year"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a book by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := a.catalog.RemoveBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%w: id %d", errNotFound, id)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Book with ID %d removed.\n", id)
			return err
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var criteria catalog.Criteria
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find books matching any of the given fields",
		Long: `Find books whose title, author or year equals the given value, ignoring case.
A book matches when any one of the given fields matches.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if criteria.IsZero() {
				return fmt.Errorf("%w: give at least one of --title, --author, --year", domain.ErrInvalidInput)
			}
			return a.print(cmd, a.catalog.Search(criteria))
		},
	}
	cmd.Flags().StringVar(&criteria.Title, "title", "", "exact title")
	cmd.Flags().StringVar(&criteria.Author, "author", "", "exact author")
	cmd.Flags().StringVar(&criteria.Year, "year", "", "publication year")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all books",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.print(cmd, a.catalog.List())
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "status <id> <available|checked_out>",
		Short:     "Change the status of a book",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{domain.StatusAvailable.String(), domain.StatusCheckedOut.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			b, found, err := a.catalog.UpdateStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%w: id %d", errNotFound, id)
			}
			return a.print(cmd, []domain.Book{b})
		},
	}
}

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the catalog every time the library file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			formatter := output.NewFormatter(output.DetectFormat(a.cfg.Output))

			w := watch.New(a.cfg.StorePath, func(c watch.Change) {
				if c.LoadErr != nil {
					_, _ = fmt.Fprintf(out, "%s: library file unreadable: %v\n", c.At.Format(time.RFC3339), c.LoadErr)
					return
				}
				_, _ = fmt.Fprintf(out, "%s: %d books\n", c.At.Format(time.RFC3339), len(c.Books))
				if err := formatter.Format(out, c.Books); err != nil {
					a.logger.Error("print catalog", ports.Err(err))
				}
			},
				watch.WithLogger(a.logger),
				watch.WithDebounce(debounce),
			)
			return w.Run(cmd.Context())
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading after a change")
	return cmd
}

func (a *app) print(cmd *cobra.Command, books []domain.Book) error {
	return output.NewFormatter(output.DetectFormat(a.cfg.Output)).Format(cmd.OutOrStdout(), books)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: ID must be a number, got %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}
