package domain

import (
	"fmt"
	"math"
)

// Document keys. A stored record has exactly these keys.
const (
	KeyID     = "id"
	KeyTitle  = "title"
	KeyAuthor = "author"
	KeyYear   = "year"
	KeyStatus = "status"
)

// Document is the key/value form of a Book used by stores.
type Document map[string]any

// Document converts b into its stored form.
func (b Book) Document() Document {
	return Document{
		KeyID:     b.ID,
		KeyTitle:  b.Title,
		KeyAuthor: b.Author,
		KeyYear:   b.Year,
		KeyStatus: string(b.Status),
	}
}

// BookFromDocument rebuilds a Book from its stored form.
// It only checks presence and basic types; a year outside the calendar range
// is trusted as it was valid when the record was created.
func BookFromDocument(doc Document) (Book, error) {
	id, err := intField(doc, KeyID)
	if err != nil {
		return Book{}, err
	}
	title, err := stringField(doc, KeyTitle)
	if err != nil {
		return Book{}, err
	}
	author, err := stringField(doc, KeyAuthor)
	if err != nil {
		return Book{}, err
	}
	year, err := intField(doc, KeyYear)
	if err != nil {
		return Book{}, err
	}
	status, err := stringField(doc, KeyStatus)
	if err != nil {
		return Book{}, err
	}
	if !Status(status).Valid() {
		return Book{}, NewMalformedRecordError(KeyStatus, fmt.Sprintf("has unknown value %q", status))
	}

	return Book{
		ID:     id,
		Title:  title,
		Author: author,
		Year:   year,
		Status: Status(status),
	}, nil
}

// int64er is satisfied by json.Number and the equivalent types of other JSON codecs.
type int64er interface {
	Int64() (int64, error)
}

func intField(doc Document, key string) (int, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0, NewMalformedRecordError(key, "is missing")
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, NewMalformedRecordError(key, fmt.Sprintf("is not an integer: %v", n))
		}
		return int(n), nil
	case int64er:
		i, err := n.Int64()
		if err != nil {
			return 0, NewMalformedRecordError(key, fmt.Sprintf("is not an integer: %v", n))
		}
		return int(i), nil
	default:
		return 0, NewMalformedRecordError(key, fmt.Sprintf("must be an integer, got %T", v))
	}
}

func stringField(doc Document, key string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", NewMalformedRecordError(key, "is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", NewMalformedRecordError(key, fmt.Sprintf("must be text, got %T", v))
	}
	return s, nil
}
