package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/bookshelf/internal/domain"
)

func TestStoreFile_LoadMissing(t *testing.T) {
	s := NewStoreFile(filepath.Join(t.TempDir(), "library.json"))

	docs, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestStoreFile_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultStoreFile, NewStoreFile("").Path())
}

func TestStoreFile_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "library.json")
	s := NewStoreFile(path)

	books := []domain.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert", Year: 1965, Status: domain.StatusAvailable},
		{ID: 4, Title: "Война и мир", Author: "Лев Толстой", Year: 1869, Status: domain.StatusCheckedOut},
		{ID: 2, Title: "Tom & Jerry <3", Author: "Hanna", Year: 1940, Status: domain.StatusAvailable},
	}
	docs := make([]domain.Document, len(books))
	for i, b := range books {
		docs[i] = b.Document()
	}

	require.NoError(t, s.Save(ctx, docs))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Война и мир", "non-ASCII text must be written unescaped")
	assert.Contains(t, string(raw), "Tom & Jerry <3")
	assert.Contains(t, string(raw), "\n    {")

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(books))
	for i, doc := range loaded {
		b, err := domain.BookFromDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, books[i], b)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreFile_SaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	s := NewStoreFile(path)

	require.NoError(t, s.Save(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))

	docs, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStoreFile_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"not json", "this is not json"},
		{"truncated", `[{"id": 1, "title": "Dune"`},
		{"object instead of array", `{"id": 1}`},
		{"null", "null"},
		{"array of numbers", "[1, 2, 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "library.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewStoreFile(path).Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrCorruptStore), "got %v", err)

			var ce *domain.CorruptStoreError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, path, ce.Path)
		})
	}
}

func TestStoreFile_LoadKeepsIntegersExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	content := `[{"id": 9007199254740993, "title": "T", "author": "A", "year": 2001, "status": "available"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	docs, err := NewStoreFile(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)

	b, err := domain.BookFromDocument(docs[0])
	require.NoError(t, err)
	assert.Equal(t, 9007199254740993, b.ID)
}

func TestStoreFile_SaveInvalidUTF8KeepsPreviousFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	s := NewStoreFile(path)

	good := domain.Book{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, Status: domain.StatusAvailable}
	require.NoError(t, s.Save(ctx, []domain.Document{good.Document()}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	bad := domain.Book{ID: 2, Title: "bad \xff\xfe", Author: "X", Year: 2000, Status: domain.StatusAvailable}
	err = s.Save(ctx, []domain.Document{good.Document(), bad.Document()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPersistence))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStoreFile_SaveCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStoreFile(filepath.Join(t.TempDir(), "library.json")).Save(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStoreFile_SaveUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// A regular file where a directory is expected makes MkdirAll fail.
	err := NewStoreFile(filepath.Join(blocker, "library.json")).Save(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestStoreFile_Quarantine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	s := NewStoreFile(path)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	dst, err := s.Quarantine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path+".corrupt-1700000000", dst)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	moved, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(moved))
}
