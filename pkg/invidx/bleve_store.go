// bleve-backed implementation of the Store/Writer/Reader interfaces.
//
// Grounded on terminology/bleve.go's newBleveIndex (open-or-create via
// bleve.OpenUsing/bleve.NewUsing, scorch segment store, per-field
// TextFieldMapping with explicit Store/IncludeInAll/Analyzer control) and
// the stubbed db/bleve_service.go that version replaced.
package invidx

import (
	"fmt"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/index/scorch"
)

const lowerKeywordAnalyzerName = "keyword_lower"

// batchSize bounds how many documents a Writer buffers before flushing to
// the underlying bleve batch, mirroring the batch-then-commit style of
// terminology/service.go's buildSearchIndices.
const batchSize = 2000

type bleveStore struct{}

// NewBleveStore returns the default Store implementation.
func NewBleveStore() Store { return bleveStore{} }

func (bleveStore) OpenWriter(dir string, analyzer Analyzer, fields []FieldSpec) (Writer, error) {
	mapping, err := buildIndexMapping(analyzer, fields)
	if err != nil {
		return nil, err
	}
	idx, err := bleve.NewUsing(dir, mapping, scorch.Name, scorch.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("open bleve writer at %s: %w", dir, err)
	}
	return &bleveWriter{index: idx, batch: idx.NewBatch()}, nil
}

func (bleveStore) OpenReader(dir string) (Reader, error) {
	cfg := map[string]any{"read_only": true}
	idx, err := bleve.OpenUsing(dir, cfg)
	if err != nil {
		return nil, fmt.Errorf("open bleve reader at %s: %w", dir, err)
	}
	return &bleveReader{index: idx}, nil
}

// buildIndexMapping constructs a single-document-type mapping where every
// field in fields is mapped individually, store/index policy per FieldSpec
// (spec.md §4.3's field policy: identifiers indexed, descriptive fields
// stored-only, rank fields both).
func buildIndexMapping(analyzer Analyzer, fields []FieldSpec) (*bleve.IndexMapping, error) {
	analyzerName, err := analyzerName(analyzer)
	if err != nil {
		return nil, err
	}

	indexMapping := bleve.NewIndexMapping()
	if analyzer == LowerKeywordAnalyzer {
		err := indexMapping.AddCustomAnalyzer(lowerKeywordAnalyzerName, map[string]any{
			"type":          "custom",
			"tokenizer":     single.Name,
			"token_filters": []string{lowercase.Name},
		})
		if err != nil {
			return nil, fmt.Errorf("register lower-case keyword analyzer: %w", err)
		}
	}

	documentMapping := bleve.NewDocumentMapping()
	for _, f := range fields {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = analyzerName
		fm.Store = f.Stored
		fm.Index = f.Indexed
		fm.IncludeInAll = false
		fm.IncludeTermVectors = false
		// A text mapping ignores numeric values (rank_id, left, right,
		// count), so each field also gets a numeric mapping under the same
		// name; only the one matching the value's type applies.
		nm := bleve.NewNumericFieldMapping()
		nm.Store = f.Stored
		nm.Index = f.Indexed
		nm.IncludeInAll = false
		documentMapping.AddFieldMappingsAt(f.Name, fm, nm)
	}
	indexMapping.AddDocumentMapping("doc", documentMapping)
	indexMapping.DefaultType = "doc"
	return indexMapping, nil
}

func analyzerName(a Analyzer) (string, error) {
	switch a {
	case KeywordAnalyzer:
		return keyword.Name, nil
	case LowerKeywordAnalyzer:
		return lowerKeywordAnalyzerName, nil
	default:
		return "", fmt.Errorf("unknown analyzer %d", a)
	}
}

type bleveWriter struct {
	index   bleve.Index
	batch   *bleve.Batch
	pending int
}

func (w *bleveWriter) Add(doc Document) error {
	if err := w.batch.Index(doc.ID, doc.Fields); err != nil {
		return fmt.Errorf("index document %s: %w", doc.ID, err)
	}
	w.pending++
	if w.pending >= batchSize {
		return w.flush()
	}
	return nil
}

func (w *bleveWriter) flush() error {
	if w.pending == 0 {
		return nil
	}
	if err := w.index.Batch(w.batch); err != nil {
		return fmt.Errorf("flush batch: %w", err)
	}
	w.batch = w.index.NewBatch()
	w.pending = 0
	return nil
}

func (w *bleveWriter) Commit() error {
	return w.flush()
}

// ForceMerge flushes any remaining batch so every document is queryable.
// It does not merge segments: this bleve version's scorch segment store
// merges segments on its own background schedule and exposes no public
// "merge now" call through the bleve.Index interface, so the index is not
// guaranteed to end up as a single segment.
func (w *bleveWriter) ForceMerge() error {
	return w.flush()
}

func (w *bleveWriter) Close() error {
	if err := w.flush(); err != nil {
		return err
	}
	return w.index.Close()
}

type bleveReader struct {
	index bleve.Index
}

func (r *bleveReader) TermQuery(field, value string, limit, offset int) ([]Document, error) {
	q := bleve.NewTermQuery(value)
	q.SetField(field)
	req := bleve.NewSearchRequest(q)
	req.Fields = []string{"*"}
	if limit > 0 {
		req.Size = limit
	} else {
		req.Size = 25000
	}
	req.From = offset

	result, err := r.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("term query %s=%s: %w", field, value, err)
	}

	docs := make([]Document, 0, len(result.Hits))
	for _, hit := range result.Hits {
		docs = append(docs, Document{ID: hit.ID, Fields: hit.Fields})
	}
	return docs, nil
}

func (r *bleveReader) Close() error {
	return r.index.Close()
}
