package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/bookshelf/internal/domain"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"BOOKSHELF_STORE", "BOOKSHELF_OUTPUT", "BOOKSHELF_LOG_LEVEL",
		"BOOKSHELF_LOG_FORMAT", "BOOKSHELF_QUARANTINE_CORRUPT",
	} {
		t.Setenv(k, "")
	}
}

// execute runs one bookshelf invocation against the library at store.
func execute(t *testing.T, store, stdin string, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)

	var out, logs bytes.Buffer
	a := &app{in: strings.NewReader(stdin), out: &out, logOut: &logs}
	root := newRootCmd(a)
	root.SetArgs(append([]string{
		"--config", filepath.Join(filepath.Dir(store), "absent.toml"),
		"--store", store,
		"--output", "json",
	}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decode(t *testing.T, s string) []domain.Book {
	t.Helper()
	var books []domain.Book
	require.NoError(t, json.Unmarshal([]byte(s), &books))
	return books
}

func TestCLI_AddListStatusRemove(t *testing.T) {
	store := filepath.Join(t.TempDir(), "library.json")

	out, err := execute(t, store, "", "add", "--title", "Dune", "--author", "Frank Herbert", "--year", "1965")
	require.NoError(t, err)
	added := decode(t, out)
	require.Len(t, added, 1)
	assert.Equal(t, 1, added[0].ID)

	_, err = execute(t, store, "", "add", "--title", "Emma", "--author", "Jane Austen", "--year", "1815")
	require.NoError(t, err)

	out, err = execute(t, store, "", "list")
	require.NoError(t, err)
	assert.Len(t, decode(t, out), 2)

	out, err = execute(t, store, "", "status", "2", "checked_out")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedOut, decode(t, out)[0].Status)

	out, err = execute(t, store, "", "search", "--author", "JANE AUSTEN")
	require.NoError(t, err)
	found := decode(t, out)
	require.Len(t, found, 1)
	assert.Equal(t, "Emma", found[0].Title)

	out, err = execute(t, store, "", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Book with ID 1 removed.")

	out, err = execute(t, store, "", "list")
	require.NoError(t, err)
	assert.Len(t, decode(t, out), 1)
}

func TestCLI_Errors(t *testing.T) {
	store := filepath.Join(t.TempDir(), "library.json")

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"invalid year", []string{"add", "--title", "X", "--author", "Y", "--year", "3000"}, domain.ErrInvalidYear},
		{"non numeric id", []string{"remove", "abc"}, domain.ErrInvalidInput},
		{"unknown id", []string{"remove", "42"}, errNotFound},
		{"invalid status", []string{"status", "1", "lost"}, domain.ErrInvalidStatus},
		{"search without criteria", []string{"search"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, store, "", tt.args...)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestCLI_ShellIsDefault(t *testing.T) {
	store := filepath.Join(t.TempDir(), "library.json")

	out, err := execute(t, store, "1\nDune\nFrank Herbert\n1965\n6\n")
	require.NoError(t, err)
	assert.Contains(t, out, `Book "Dune" added with ID 1.`)

	_, err = os.Stat(store)
	assert.NoError(t, err)
}

func TestCLI_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	fileStore := filepath.Join(dir, "from-file.json")
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store = \""+filepath.ToSlash(fileStore)+"\"\n"), 0o644))

	var out bytes.Buffer
	a := &app{in: strings.NewReader(""), out: &out, logOut: &bytes.Buffer{}}
	root := newRootCmd(a)
	root.SetArgs([]string{"--config", cfgPath, "--output", "json", "add", "--title", "Emma", "--author", "Jane Austen", "--year", "1815"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Equal(t, fileStore, a.cfg.StorePath)
	_, err := os.Stat(fileStore)
	assert.NoError(t, err)
}
