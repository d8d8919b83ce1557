package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	"github.com/bft-labs/bookshelf/internal/domain"
)

// DefaultStoreFile is the store file name used when none is configured.
const DefaultStoreFile = "library.json"

// Non-ASCII text is written as-is; numbers decode as json.Number so integer
// fields survive without float rounding.
var json = jsoniter.Config{
	EscapeHTML:  false,
	SortMapKeys: true,
	UseNumber:   true,
}.Froze()

var errNotArray = errors.New("expected a JSON array of records")

// StoreFile implements ports.Store and ports.Quarantiner using a JSON file.
type StoreFile struct {
	path string
	now  func() time.Time
}

// NewStoreFile creates a StoreFile backed by the file at path.
// The file does not need to exist.
func NewStoreFile(path string) *StoreFile {
	if path == "" {
		path = DefaultStoreFile
	}
	return &StoreFile{path: path, now: time.Now}
}

// Load reads every record from disk.
// Returns nil and nil error if the store file does not exist.
func (s *StoreFile) Load(ctx context.Context) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.NewCorruptStoreError(s.path, errNotArray)
	}

	var raw []map[string]any
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, domain.NewCorruptStoreError(s.path, err)
	}

	docs := make([]domain.Document, len(raw))
	for i, r := range raw {
		docs[i] = domain.Document(r)
	}
	return docs, nil
}

// Save replaces the store file with docs.
// Uses atomic write (write to temp file, then rename) so a failure leaves the
// previous file untouched.
func (s *StoreFile) Save(ctx context.Context, docs []domain.Document) error {
	if err := ctx.Err(); err != nil {
		return domain.NewPersistenceError(s.path, err)
	}

	for i, doc := range docs {
		if err := checkEncodable(doc); err != nil {
			return domain.NewPersistenceError(s.path, fmt.Errorf("record #%d: %w", i, err))
		}
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	data, err := json.MarshalIndent(docs, "", "    ")
	if err != nil {
		return domain.NewPersistenceError(s.path, err)
	}
	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return domain.NewPersistenceError(s.path, err)
	}
	return nil
}

func (s *StoreFile) writeAtomic(data []byte) (err error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmp.Name(), s.path)
}

// Quarantine renames the store file to <path>.corrupt-<unix seconds> and
// returns the new path.
func (s *StoreFile) Quarantine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst := s.path + ".corrupt-" + strconv.FormatInt(s.now().Unix(), 10)
	if err := os.Rename(s.path, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Path returns the full path to the store file.
func (s *StoreFile) Path() string {
	return s.path
}

// checkEncodable rejects text the UTF-8 store cannot represent.
func checkEncodable(doc domain.Document) error {
	for k, v := range doc {
		if str, ok := v.(string); ok && !utf8.ValidString(str) {
			return fmt.Errorf("field %q is not valid UTF-8 text", k)
		}
	}
	return nil
}
