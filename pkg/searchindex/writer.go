// Package searchindex implements C5, the final search index writer: it
// wraps the destination inverted index with a lower-case keyword analyzer
// and offers the two document-emission operations the hierarchy walker
// (C4) and the synonym phase call (spec.md §4.5).
package searchindex

import (
	"fmt"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
)

// Fields is the search-index document field policy. Both accepted and
// synonym documents share one index, so every field either type might set
// is declared; unset fields are simply absent from a given document.
// Every field is stored (full record retrieval, spec.md §4.5); id, lsid,
// and accepted_id are additionally indexed so lookups by identifier work
// at query time, reflecting the query-time access patterns spec.md §9
// describes for resolving a synonym's accepted classification.
var Fields = []invidx.FieldSpec{
	{Name: "canonical_name", Indexed: true, Stored: true},
	{Name: "id", Indexed: true, Stored: true},
	{Name: "lsid", Indexed: true, Stored: true},
	{Name: "author", Indexed: false, Stored: true},
	{Name: "rank", Indexed: false, Stored: true},
	{Name: "rank_id", Indexed: false, Stored: true},
	{Name: "left", Indexed: false, Stored: true},
	{Name: "right", Indexed: false, Stored: true},
	{Name: "classification", Indexed: false, Stored: true},
	{Name: "scientific_name", Indexed: true, Stored: true},
	{Name: "authorship", Indexed: false, Stored: true},
	{Name: "accepted_lsid", Indexed: false, Stored: true},
	{Name: "accepted_id", Indexed: true, Stored: true},
	{Name: "status", Indexed: false, Stored: true},
	{Name: "is_synonym", Indexed: true, Stored: true},
}

// Writer emits accepted and synonym documents into the final search
// index, opened with the lower-case keyword analyzer (spec.md §4.5).
type Writer struct {
	w invidx.Writer
}

// Open opens a Writer over dir.
func Open(store invidx.Store, dir string) (*Writer, error) {
	w, err := store.OpenWriter(dir, invidx.LowerKeywordAnalyzer, Fields)
	if err != nil {
		return nil, openError(dir, err)
	}
	return &Writer{w: w}, nil
}

// EmitAccepted indexes one accepted concept with its assigned interval
// and inherited classification (spec.md §4.5). Classification slots are
// flattened to a pipe-delimited "rank:name:lsid" string per slot, joined
// by "|", since the inverted-index field model stores scalars.
func (w *Writer) EmitAccepted(doc concept.AcceptedDocument) error {
	id := doc.ID
	if id == "" {
		id = doc.LSID
	}
	if err := w.w.Add(invidx.Document{
		ID: id,
		Fields: map[string]any{
			"canonical_name": doc.CanonicalName,
			"id":             doc.ID,
			"lsid":           doc.LSID,
			"author":         doc.Author,
			"rank":           doc.RankString,
			"rank_id":        int(doc.RankID),
			"left":           doc.Left,
			"right":          doc.Right,
			"classification": encodeClassification(doc.Classification),
			"is_synonym":     "F",
		},
	}); err != nil {
		return writeError(id, err)
	}
	return nil
}

// EmitSynonym indexes one synonym concept unenriched: no interval, no
// classification. Consumers resolve classification by following
// accepted_id at query time (spec.md §4.5).
func (w *Writer) EmitSynonym(doc concept.SynonymDocument) error {
	id := doc.ID
	if id == "" {
		id = doc.LSID
	}
	if err := w.w.Add(invidx.Document{
		ID: "syn:" + id,
		Fields: map[string]any{
			"scientific_name": doc.ScientificName,
			"authorship":      doc.Authorship,
			"id":              doc.ID,
			"lsid":            doc.LSID,
			"accepted_lsid":   doc.AcceptedLSID,
			"accepted_id":     doc.AcceptedID,
			"status":          doc.Status,
			"is_synonym":      "T",
		},
	}); err != nil {
		return writeError(id, err)
	}
	return nil
}

// Commit flushes, calls ForceMerge (see invidx.Writer.ForceMerge for what
// that does with the bleve store), and closes the writer. The index is not visible to readers until Close returns nil
// (spec.md §4.5: "the writer is closed before the index is made
// visible").
func (w *Writer) Commit() error {
	if err := w.w.Commit(); err != nil {
		return commitError(err)
	}
	if err := w.w.ForceMerge(); err != nil {
		return commitError(err)
	}
	return w.w.Close()
}

// encodeClassification renders a Classification as a stable,
// round-trippable scalar so the inverted-index field model (which stores
// scalars, not nested structures) can carry it. Each populated slot
// becomes "rankID:name:lsid", joined by "|"; empty slots are omitted.
func encodeClassification(c concept.Classification) string {
	var out string
	for i, slot := range c {
		if slot.Name == "" && slot.LSID == "" {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += fmt.Sprintf("%d:%s:%s", slotRankID(i), slot.Name, slot.LSID)
	}
	return out
}

// slotRankID maps a Classification array index back to its rank.ID, the
// inverse of the slot ordering pkg/concept.Classification fixes.
func slotRankID(i int) int {
	return (i + 1) * 1000
}
