// Package domain contains the core entities and value objects for bookshelf.
//
// This package is the innermost layer of the application. It has no
// dependencies on infrastructure concerns (file system, encoding, logging)
// and contains only the catalog's business rules.
//
// # Entities
//
//   - [Book]: a single catalog record (id, title, author, year, status)
//   - [Status]: the two-valued availability state of a Book
//   - [Document]: the key/value form a Book is persisted as
//
// # Errors
//
// Every failure the catalog can report has a sentinel (for errors.Is) and a
// typed error carrying details (for errors.As). See errors.go.
package domain
