package catalog

import (
	"strconv"

	"golang.org/x/text/cases"

	"github.com/bft-labs/bookshelf/internal/domain"
)

// Criteria selects books by field. An empty field is not used.
type Criteria struct {
	Title  string
	Author string
	Year   string
}

// IsZero reports whether no field is set.
func (c Criteria) IsZero() bool {
	return c.Title == "" && c.Author == "" && c.Year == ""
}

// Search returns the books matching ANY of the set criteria, in catalog order.
//
// A field matches when it equals the criterion under Unicode case folding; the
// year is compared as decimal text. Criteria{Title: "Dune", Author: "Herbert"}
// therefore returns books titled Dune as well as books by Herbert. Zero
// criteria match nothing.
func (c *Catalog) Search(criteria Criteria) []domain.Book {
	if criteria.IsZero() {
		return nil
	}

	fold := cases.Fold()
	equal := func(field, want string) bool {
		return want != "" && fold.String(field) == fold.String(want)
	}

	var found []domain.Book
	for _, b := range c.books {
		if equal(b.Title, criteria.Title) ||
			equal(b.Author, criteria.Author) ||
			equal(strconv.Itoa(b.Year), criteria.Year) {
			found = append(found, b)
		}
	}
	return found
}
