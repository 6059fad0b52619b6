// Package invidx is the inverted-index storage abstraction named in
// spec.md §9: "Specify the storage layer as an interface offering:
// open_writer(dir, analyzer) → Writer, Writer.add(doc),
// Writer.commit/force_merge/close, open_reader(dir) → Reader,
// Reader.term_query(field, value, limit) → [Document]. Any inverted-index
// library with exact-term queries satisfies this."
//
// The loading index (C3), the final search index (C5), and the vernacular
// sub-index (C6) are all instances of this abstraction, opened with
// different analyzers and field policies.
package invidx

// Analyzer selects how indexed fields are tokenized and compared.
type Analyzer int

const (
	// KeywordAnalyzer does exact-match, case-sensitive, untokenized
	// comparison — used for the loading index and the vernacular
	// sub-index (spec.md §4.3, §4.6).
	KeywordAnalyzer Analyzer = iota

	// LowerKeywordAnalyzer does exact-match, case-insensitive,
	// untokenized comparison — used for the final search index
	// (spec.md §4.5).
	LowerKeywordAnalyzer
)

// FieldSpec declares one field's storage policy for a document mapping.
type FieldSpec struct {
	Name    string
	Indexed bool // searchable as an exact term
	Stored  bool // retrievable in query results
}

// Document is a generic indexed record: an identifying key plus a bag of
// named field values. Field values are strings or integers; the concrete
// stores in pkg/loadindex, pkg/searchindex, and pkg/vernacular convert
// their domain documents to and from this shape.
type Document struct {
	ID     string
	Fields map[string]any
}

// Str returns the named field as a string, or "" if absent. Bleve (and
// most inverted-index libraries) round-trip stored text fields as
// strings, so this is a plain type assertion.
func (d Document) Str(name string) string {
	v, ok := d.Fields[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int returns the named field as an int, or 0 if absent. Stored numeric
// fields commonly round-trip through an inverted-index library's result
// decoding as float64 (JSON-shaped) rather than the original int, so Int
// accepts either representation.
func (d Document) Int(name string) int {
	switch v := d.Fields[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Writer accepts documents into an index under construction. A Writer
// writes to exactly one directory and is not safe for concurrent use
// (spec.md §5: the indexer is single-threaded and batch).
type Writer interface {
	// Add indexes one document. Errors are per-row: callers should log
	// and skip rather than abort the whole build (spec.md §4.3, §7).
	Add(doc Document) error

	// Commit flushes any buffered documents, making them durable.
	Commit() error

	// ForceMerge finishes the index after Commit. Must be called after
	// Commit and before Close. The bleve store's ForceMerge only flushes
	// buffered documents; it does not collapse the index to a single
	// segment.
	ForceMerge() error

	// Close releases the writer's resources. The index is not
	// considered visible to readers until after Close returns nil
	// (spec.md §3: "The writer is closed before the index is made
	// visible").
	Close() error
}

// Reader executes term queries against a committed index.
type Reader interface {
	// TermQuery returns up to limit documents whose field exactly
	// equals value (post-analysis), skipping the first offset matches.
	// A limit of 0 or less returns at most 25,000 documents; the
	// pagination loop in pkg/hierarchy pages past that bound.
	TermQuery(field, value string, limit, offset int) ([]Document, error)

	Close() error
}

// Store opens writers and readers against on-disk inverted-index
// directories. Any library offering exact-term queries over a field
// mapping satisfies this — here, bleve.
type Store interface {
	OpenWriter(dir string, analyzer Analyzer, fields []FieldSpec) (Writer, error)
	OpenReader(dir string) (Reader, error)
}
