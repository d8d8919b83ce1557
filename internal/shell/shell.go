// Package shell implements the interactive menu of the bookshelf command.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	logAdapter "github.com/bft-labs/bookshelf/internal/adapters/log"
	"github.com/bft-labs/bookshelf/internal/catalog"
	"github.com/bft-labs/bookshelf/internal/domain"
	"github.com/bft-labs/bookshelf/internal/ports"
)

// errQuit stops the loop when input ends in the middle of an action.
var errQuit = errors.New("shell: input closed")

// Shell reads menu choices line by line and applies them to a catalog.
type Shell struct {
	cat    *catalog.Catalog
	in     *bufio.Scanner
	out    io.Writer
	logger ports.Logger
}

// New creates a Shell reading from in and writing prompts and results to out.
func New(cat *catalog.Catalog, in io.Reader, out io.Writer, logger ports.Logger) *Shell {
	if logger == nil {
		logger = logAdapter.NewNoopLogger()
	}
	return &Shell{
		cat:    cat,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run shows the menu until the user exits, input ends or ctx is canceled.
// Failed actions are reported to the user and do not stop the loop.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.cat.LoadError(); err != nil {
		s.printf("Warning: could not read the library file (%v). It will be overwritten on the next save.\n", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, ok := s.prompt("Choose an action: ")
		if !ok {
			break
		}

		var err error
		switch choice {
		case "1":
			err = s.add(ctx)
		case "2":
			err = s.remove(ctx)
		case "3":
			err = s.search()
		case "4":
			s.list()
		case "5":
			err = s.updateStatus(ctx)
		case "6":
			s.println("Exiting.")
			return nil
		default:
			s.println("Invalid choice. Try again.")
		}
		if errors.Is(err, errQuit) {
			break
		}
	}

	s.println("Exiting.")
	return nil
}

func (s *Shell) printMenu() {
	s.println("")
	s.println("Menu:")
	s.println("1. Add a book")
	s.println("2. Remove a book")
	s.println("3. Search books")
	s.println("4. List all books")
	s.println("5. Change book status")
	s.println("6. Exit")
}

func (s *Shell) add(ctx context.Context) error {
	title, ok := s.prompt("Title: ")
	if !ok {
		return errQuit
	}
	author, ok := s.prompt("Author: ")
	if !ok {
		return errQuit
	}

	var year string
	for {
		year, ok = s.prompt("Year: ")
		if !ok {
			return errQuit
		}
		err := s.cat.ValidateYear(year)
		if err == nil {
			break
		}
		s.println(err)
	}

	b, err := s.cat.AddBook(ctx, title, author, year)
	switch {
	case errors.Is(err, domain.ErrPersistence):
		s.printf("Book %q added, but the library could not be saved: %v\n", b.Title, err)
	case err != nil:
		s.println(err)
	default:
		s.printf("Book %q added with ID %d.\n", b.Title, b.ID)
	}
	return nil
}

func (s *Shell) remove(ctx context.Context) error {
	id, ok, err := s.promptID("Book ID to remove: ")
	if err != nil || !ok {
		return err
	}

	removed, err := s.cat.RemoveBook(ctx, id)
	switch {
	case !removed:
		s.printf("Book with ID %d not found.\n", id)
	case err != nil:
		s.printf("Book with ID %d removed, but the library could not be saved: %v\n", id, err)
	default:
		s.printf("Book with ID %d removed.\n", id)
	}
	return nil
}

func (s *Shell) search() error {
	s.println("Enter search criteria (leave blank to skip):")
	var criteria catalog.Criteria
	var ok bool
	if criteria.Title, ok = s.prompt("Title: "); !ok {
		return errQuit
	}
	if criteria.Author, ok = s.prompt("Author: "); !ok {
		return errQuit
	}
	if criteria.Year, ok = s.prompt("Year: "); !ok {
		return errQuit
	}

	found := s.cat.Search(criteria)
	if len(found) == 0 {
		s.println("No books found.")
		return nil
	}
	s.println("Found books:")
	for _, b := range found {
		s.println(b)
	}
	return nil
}

func (s *Shell) list() {
	books := s.cat.List()
	if len(books) == 0 {
		s.println("The library is empty.")
		return
	}
	s.println("All books:")
	for _, b := range books {
		s.println(b)
	}
}

func (s *Shell) updateStatus(ctx context.Context) error {
	id, ok, err := s.promptID("Book ID: ")
	if err != nil || !ok {
		return err
	}

	statuses := domain.Statuses()
	s.println("")
	s.println("Choose the new status:")
	for i, st := range statuses {
		s.printf("%d. %s\n", i+1, statusLabel(st))
	}
	choice, ok := s.prompt("Status number: ")
	if !ok {
		return errQuit
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(statuses) {
		s.println("Invalid status choice. Try again.")
		return nil
	}

	b, found, err := s.cat.UpdateStatus(ctx, id, statuses[n-1].String())
	switch {
	case !found && err == nil:
		s.printf("Book with ID %d not found.\n", id)
	case errors.Is(err, domain.ErrPersistence):
		s.printf("Status of %q updated to %s, but the library could not be saved: %v\n", b.Title, b.Status, err)
	case err != nil:
		s.println(err)
	default:
		s.printf("Status of %q (ID %d) updated to %s.\n", b.Title, b.ID, b.Status)
	}
	return nil
}

// promptID reads a book id. A non-numeric answer is reported and yields ok == false.
func (s *Shell) promptID(label string) (int, bool, error) {
	text, ok := s.prompt(label)
	if !ok {
		return 0, false, errQuit
	}
	id, err := strconv.Atoi(text)
	if err != nil {
		s.logger.Debug("non-numeric id", ports.String("input", text))
		s.println("ID must be a number.")
		return 0, false, nil
	}
	return id, true, nil
}

// prompt prints label and returns the next trimmed input line.
func (s *Shell) prompt(label string) (string, bool) {
	s.printf("%s", label)
	if !s.in.Scan() {
		s.println("")
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) println(a any) {
	_, _ = fmt.Fprintln(s.out, a)
}

func (s *Shell) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func statusLabel(st domain.Status) string {
	if st == domain.StatusCheckedOut {
		return "Checked out"
	}
	return "Available"
}
