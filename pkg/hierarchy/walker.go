// Package hierarchy implements C4, the nested-set hierarchy walker — the
// heart of the system (spec.md §4.4). It walks the loading index
// depth-first from every root, assigning (left, right) interval bounds
// and propagating a classification tuple down the tree by value, then
// emits one enriched document per accepted concept to a destination
// writer.
package hierarchy

import (
	"log/slog"

	"github.com/gnames/taxindexer/pkg/canon"
	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
	"github.com/gnames/taxindexer/pkg/rank"
)

// DefaultPageSize bounds a single term-query page. The source system used
// this as a flat, unpaginated limit (spec.md §4.4's open question); this
// walker instead paginates past it so no child is silently dropped.
const DefaultPageSize = 25000

// Destination receives one enriched document per accepted concept. The
// search index writer (pkg/searchindex) satisfies this.
type Destination interface {
	EmitAccepted(doc concept.AcceptedDocument) error
}

// Walker reads the committed loading index and walks it.
type Walker struct {
	reader   invidx.Reader
	canon    canon.Canonicalizer
	log      *slog.Logger
	pageSize int
	visited  map[string]struct{}
}

// New creates a Walker over reader, using canonicalizer to compute the
// canonical name stored in each classification slot and in the emitted
// document itself.
func New(reader invidx.Reader, canonicalizer canon.Canonicalizer, log *slog.Logger) *Walker {
	return &Walker{
		reader:   reader,
		canon:    canonicalizer,
		log:      log,
		pageSize: DefaultPageSize,
	}
}

// Walk finds every root (root = T), then visits each in index order,
// running a single monotonically increasing right counter across all
// roots (spec.md §4.4 step 2-3).
func (w *Walker) Walk(dest Destination) error {
	roots, err := w.paginatedQuery("root", "T")
	if err != nil {
		return rootQueryError(err)
	}
	w.visited = make(map[string]struct{}, len(roots))

	right := 0
	for _, r := range roots {
		left := right + 1
		right, err = w.visit(r, 1, left, concept.Classification{}, dest)
		if err != nil {
			return err
		}
	}
	return nil
}

// visit implements spec.md §4.4's recursive walk. It returns doc's own
// right bound, the highest number used by doc and its whole subtree, after
// they have been assigned intervals and emitted.
func (w *Walker) visit(doc invidx.Document, depth, left int, parentClass concept.Classification, dest Destination) (int, error) {
	id := doc.Str("id")
	key := id
	if key == "" {
		key = doc.Str("lsid")
	}
	if _, seen := w.visited[key]; seen {
		w.log.Error("cycle detected while walking hierarchy, skipping subtree", "id", key, "depth", depth)
		return left, nil
	}
	w.visited[key] = struct{}{}

	name := doc.Str("name")
	lsid := doc.Str("lsid")
	rankID := rank.ID(doc.Int("rank_id"))
	canonicalName := w.canon.Canonical(name)

	childClass := parentClass
	if rank.IsSlot(rankID) {
		childClass = parentClass.WithSlot(rankID, canonicalName, lsid)
	}

	children, err := w.queryChildren(doc)
	if err != nil {
		return left, childQueryError(id, err)
	}

	right := left
	for _, child := range children {
		right, err = w.visit(child, depth+1, right+1, childClass, dest)
		if err != nil {
			return right, err
		}
	}
	right++

	out := concept.AcceptedDocument{
		CanonicalName:  canonicalName,
		ID:             id,
		LSID:           lsid,
		Author:         doc.Str("author"),
		RankString:     doc.Str("rank"),
		RankID:         rankID,
		Left:           left,
		Right:          right,
		Classification: childClass,
	}
	if err := dest.EmitAccepted(out); err != nil {
		return right, emitError(id, err)
	}
	return right, nil
}

// queryChildren looks up children by parent_id = doc.id, falling back to
// parent_id = doc.lsid when the first query returns zero hits — the
// fallback spec.md §4.4 requires for archives that link children by LSID
// rather than row ID.
func (w *Walker) queryChildren(doc invidx.Document) ([]invidx.Document, error) {
	id := doc.Str("id")
	children, err := w.paginatedQuery("parent_id", id)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		lsid := doc.Str("lsid")
		if lsid != "" && lsid != id {
			children, err = w.paginatedQuery("parent_id", lsid)
			if err != nil {
				return nil, err
			}
		}
	}
	return children, nil
}

// paginatedQuery repeats TermQuery past w.pageSize so no result set is
// silently truncated at the page boundary (spec.md §4.4's child-query
// page-size open question).
func (w *Walker) paginatedQuery(field, value string) ([]invidx.Document, error) {
	var all []invidx.Document
	offset := 0
	for {
		page, err := w.reader.TermQuery(field, value, w.pageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < w.pageSize {
			break
		}
		offset += w.pageSize
	}
	return all, nil
}
