package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/bookshelf/internal/domain"
)

var fixture = []domain.Book{
	{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965, Status: domain.StatusAvailable},
	{ID: 2, Title: "Война и мир", Author: "Лев Толстой", Year: 1869, Status: domain.StatusCheckedOut},
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, fixture))

	var got []domain.Book
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, fixture, got)
	assert.Contains(t, buf.String(), "Война и мир", "non-ASCII must not be escaped")
	assert.Contains(t, buf.String(), `"status": "checked_out"`)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, fixture))

	var got []domain.Book
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, fixture, got)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, fixture))

	out := buf.String()
	for _, want := range []string{"TITLE", "Dune", "Frank Herbert", "1965", "checked_out", "Лев Толстой"} {
		assert.Contains(t, strings.ToUpper(out), strings.ToUpper(want))
	}
}

func TestRows(t *testing.T) {
	rows := Rows(fixture)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Dune", "Frank Herbert", "1965", "available"}, rows[0])
	assert.Len(t, rows[1], len(Headers))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Explicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}
