// Package output renders books for the command line.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/bft-labs/bookshelf/internal/domain"
)

// Format is an output format name.
type Format string

const (
	// FormatTable renders an aligned text table.
	FormatTable Format = "table"
	// FormatJSON renders an indented JSON array.
	FormatJSON Format = "json"
	// FormatYAML renders a YAML sequence.
	FormatYAML Format = "yaml"
)

var json = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// Formatter writes books to w.
type Formatter interface {
	Format(w io.Writer, books []domain.Book) error
}

// NewFormatter returns the formatter for format. Unknown formats fall back to a table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs a JSON array.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := json.MarshalIndent(books, "", f.Indent)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// YAMLFormatter outputs a YAML sequence.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	data, err := yaml.MarshalWithOptions(books,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// TableFormatter outputs one row per book.
type TableFormatter struct{}

// Headers are the table column names.
var Headers = []string{"ID", "Title", "Author", "Year", "Status"}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, books []domain.Book) error {
	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{
		PerColumn: []tw.Align{tw.AlignRight, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft},
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	headers := make([]any, len(Headers))
	for i, h := range Headers {
		headers[i] = h
	}
	table.Header(headers...)

	for _, row := range Rows(books) {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// Rows converts books to table cells in Headers order.
func Rows(books []domain.Book) [][]string {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			strconv.Itoa(b.ID),
			b.Title,
			b.Author,
			strconv.Itoa(b.Year),
			b.Status.String(),
		})
	}
	return rows
}

// DetectFormat returns explicit when set, a table on a terminal, and JSON otherwise.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts s to a Format. The empty string is accepted and means auto-detect.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml", s)
	}
}
