package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FieldValue is a document field value as returned by the search engine.
// It is either a single string or an ordered sequence of strings
// (multi-valued fields such as subtitle or author).
type FieldValue struct {
	values []string
	multi  bool
}

// Single creates a scalar field value.
func Single(s string) FieldValue {
	return FieldValue{values: []string{s}}
}

// Multi creates a multi-valued field value. Order is preserved.
func Multi(values ...string) FieldValue {
	cp := make([]string, len(values))
	copy(cp, values)
	return FieldValue{values: cp, multi: true}
}

// IsMulti returns true if the value is a sequence of strings.
func (v FieldValue) IsMulti() bool {
	return v.multi
}

// Values returns a copy of all string values.
func (v FieldValue) Values() []string {
	cp := make([]string, len(v.values))
	copy(cp, v.values)
	return cp
}

// First returns the first value, or an empty string.
func (v FieldValue) First() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Map applies fn to every value and returns a new FieldValue of the same shape.
func (v FieldValue) Map(fn func(string) string) FieldValue {
	out := FieldValue{values: make([]string, len(v.values)), multi: v.multi}
	for i, s := range v.values {
		out.values[i] = fn(s)
	}
	return out
}

// String returns the value, joining sequences with "; ".
func (v FieldValue) String() string {
	return strings.Join(v.values, "; ")
}

// MarshalJSON encodes the value in its original shape.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.multi {
		return json.Marshal(v.Values())
	}
	return json.Marshal(v.First())
}

// UnmarshalJSON accepts a string, a number, a boolean or an array of those.
// Non-string scalars keep their JSON text form.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("decode field array: %w", err)
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			s, err := scalarString(item)
			if err != nil {
				return err
			}
			values = append(values, s)
		}
		*v = FieldValue{values: values, multi: true}
		return nil
	}

	s, err := scalarString(data)
	if err != nil {
		return err
	}
	*v = Single(s)
	return nil
}

func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return "", nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decode field string: %w", err)
		}
		return s, nil
	case raw[0] == '{' || raw[0] == '[':
		return "", fmt.Errorf("%w: nested field value %s", ErrInvalidInput, raw)
	default:
		return string(raw), nil
	}
}

// RawDocument is an untyped search hit: field name to value.
type RawDocument map[string]FieldValue

// Get returns the first value of a field, or an empty string.
func (d RawDocument) Get(field string) string {
	return d[field].First()
}

// GetAll returns all values of a field.
func (d RawDocument) GetAll(field string) []string {
	v, ok := d[field]
	if !ok {
		return nil
	}
	return v.Values()
}

// ID returns the document identifier.
func (d RawDocument) ID() string {
	return d.Get("id")
}

// Clone returns a shallow copy; FieldValues are immutable.
func (d RawDocument) Clone() RawDocument {
	out := make(RawDocument, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Document is a typed search hit. The concrete type is selected by the
// corpus tag when the raw document is ingested.
type Document interface {
	// DocumentID is the search engine identifier of the document.
	DocumentID() string

	// Source is the corpus the document belongs to.
	Source() SourceKind

	// ImageDocumentID is the identifier the image server knows the
	// document's pages under.
	ImageDocumentID() string

	// DisplayTitle is the (possibly highlighted) title for display.
	DisplayTitle() string
}

// BookDocument is a digitised book from the Google Books corpus.
type BookDocument struct {
	ID        string   `json:"id"`
	Title     []string `json:"title"`
	Author    []string `json:"author,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Date      string   `json:"date,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// DocumentID implements Document.
func (b *BookDocument) DocumentID() string { return b.ID }

// Source implements Document.
func (b *BookDocument) Source() SourceKind { return SourceGoogleBooks }

// ImageDocumentID implements Document. Book pages are addressed by volume id.
func (b *BookDocument) ImageDocumentID() string { return b.ID }

// DisplayTitle implements Document.
func (b *BookDocument) DisplayTitle() string {
	return firstOr(b.Title, b.ID)
}

// PublishedYear returns the year part of the publication date.
func (b *BookDocument) PublishedYear() string {
	year, _, _ := strings.Cut(b.Date, "-")
	return year
}

// NewspaperDocument is an article from the L'Union newspaper corpus.
type NewspaperDocument struct {
	ID            string   `json:"id"`
	IssueID       string   `json:"issue_id"`
	Title         []string `json:"title"`
	Subtitle      []string `json:"subtitle,omitempty"`
	Author        []string `json:"author,omitempty"`
	NewspaperPart string   `json:"newspaper_part,omitempty"`
	Date          string   `json:"date,omitempty"`
	Language      string   `json:"language,omitempty"`
}

// DocumentID implements Document.
func (n *NewspaperDocument) DocumentID() string { return n.ID }

// Source implements Document.
func (n *NewspaperDocument) Source() SourceKind { return SourceLUnion }

// ImageDocumentID implements Document. Newspaper pages belong to the issue,
// not to the article.
func (n *NewspaperDocument) ImageDocumentID() string { return n.IssueID }

// DisplayTitle implements Document.
func (n *NewspaperDocument) DisplayTitle() string {
	return firstOr(n.Title, n.ID)
}

// NewDocument ingests a raw document into its typed variant.
// The variant is chosen by the "source" field.
func NewDocument(raw RawDocument) (Document, error) {
	if raw.ID() == "" {
		return nil, fmt.Errorf("%w: document without id", ErrInvalidInput)
	}

	kind, err := ParseSourceKind(raw.Get("source"))
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", raw.ID(), err)
	}

	switch kind {
	case SourceGoogleBooks:
		return &BookDocument{
			ID:        raw.ID(),
			Title:     raw.GetAll("title"),
			Author:    raw.GetAll("author"),
			Publisher: raw.Get("publisher"),
			Date:      raw.Get("date"),
			Language:  raw.Get("language"),
		}, nil
	case SourceLUnion:
		issueID := raw.Get("issue_id")
		if issueID == "" {
			return nil, fmt.Errorf("%w: newspaper document %s without issue_id", ErrInvalidInput, raw.ID())
		}
		return &NewspaperDocument{
			ID:            raw.ID(),
			IssueID:       issueID,
			Title:         raw.GetAll("title"),
			Subtitle:      raw.GetAll("subtitle"),
			Author:        raw.GetAll("author"),
			NewspaperPart: raw.Get("newspaper_part"),
			Date:          raw.Get("date"),
			Language:      raw.Get("language"),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return fallback
}
