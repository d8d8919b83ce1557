package domain

import (
	"fmt"
	"strings"
)

// Book represents a single catalog record.
// Books are created, mutated and removed only by the catalog that owns them.
type Book struct {
	// ID is assigned by the catalog and is unique within it
	ID int `json:"id" yaml:"id"`

	// Title is the book title (non-empty)
	Title string `json:"title" yaml:"title"`

	// Author is the book author (non-empty)
	Author string `json:"author" yaml:"author"`

	// Year is the publication year, checked against the calendar only at creation
	Year int `json:"year" yaml:"year"`

	// Status is the availability state
	Status Status `json:"status" yaml:"status"`
}

// NewBook creates an available Book after checking the text fields.
// The year is taken as already validated.
func NewBook(id int, title, author string, year int) (Book, error) {
	if strings.TrimSpace(title) == "" {
		return Book{}, NewValidationError("title", "must not be empty")
	}
	if strings.TrimSpace(author) == "" {
		return Book{}, NewValidationError("author", "must not be empty")
	}
	return Book{
		ID:     id,
		Title:  title,
		Author: author,
		Year:   year,
		Status: StatusAvailable,
	}, nil
}

// String returns a one-line summary for display.
func (b Book) String() string {
	return fmt.Sprintf("ID: %d, Title: %s, Author: %s, Year: %d, Status: %s",
		b.ID, b.Title, b.Author, b.Year, b.Status)
}
