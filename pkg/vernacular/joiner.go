// Package vernacular implements C6, the vernacular joiner: it matches
// each vernacular-name row against the loading index and, on a hit,
// emits a document into a separate sub-index under the target directory
// (spec.md §4.6).
package vernacular

import (
	"fmt"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
)

// Fields is the vernacular sub-index's field policy: every field
// retrievable, vernacular_name and scientific_name indexed for
// case-sensitive exact lookup (spec.md §4.6: "a separate keyword analyzer
// (case-sensitive) is used, reflecting that vernacular matching at query
// time is string-equality").
var Fields = []invidx.FieldSpec{
	{Name: "vernacular_name", Indexed: true, Stored: true},
	{Name: "scientific_name", Indexed: true, Stored: true},
	{Name: "lsid", Indexed: true, Stored: true},
}

// Join streams rows, looks each up in the loading index by LookupKey
// (lsid, falling back to taxon_id), and emits a vernacular document for
// every hit into a new sub-index at dir. Unmatched rows are counted and
// discarded, not an error (spec.md §4.6).
//
// Matched and discarded counts are returned so the driver (C7) can report
// them; no count threshold makes the join itself fail.
func Join(rows <-chan concept.VernacularRow, loadingIndex invidx.Reader, store invidx.Store, dir string, log *slog.Logger) (matched, discarded uint64, err error) {
	w, err := store.OpenWriter(dir, invidx.KeywordAnalyzer, Fields)
	if err != nil {
		return 0, 0, openError(dir, err)
	}

	bar := pb.New64(0)
	bar.Set("prefix", "Vernacular join: ")
	bar.Set(pb.CleanOnFinish, true)
	bar.Start()
	defer bar.Finish()

	for row := range rows {
		bar.Increment()
		key := row.LookupKey()
		if key == "" {
			discarded++
			continue
		}
		hits, qerr := loadingIndex.TermQuery("lsid", key, 1, 0)
		if qerr != nil {
			w.Close()
			return matched, discarded, queryError(key, qerr)
		}
		if len(hits) == 0 {
			hits, qerr = loadingIndex.TermQuery("id", key, 1, 0)
			if qerr != nil {
				w.Close()
				return matched, discarded, queryError(key, qerr)
			}
		}
		if len(hits) == 0 {
			discarded++
			continue
		}

		doc := concept.VernacularDocument{
			VernacularName: row.VernacularName,
			ScientificName: row.ScientificName,
			LSID:           key,
		}
		// One taxon may carry several vernacular names, so the sub-index
		// key combines the taxon key with the name rather than reusing
		// key alone.
		docID := fmt.Sprintf("%s:%s", key, doc.VernacularName)
		if err := w.Add(invidx.Document{
			ID: docID,
			Fields: map[string]any{
				"vernacular_name": doc.VernacularName,
				"scientific_name": doc.ScientificName,
				"lsid":            doc.LSID,
			},
		}); err != nil {
			discarded++
			log.Warn("skipping vernacular row that failed to index", "lsid", key, "error", err)
			continue
		}
		matched++
	}

	log.Info("vernacular join complete", "matched", humanize.Comma(int64(matched)), "discarded", humanize.Comma(int64(discarded)))

	if err := w.Commit(); err != nil {
		w.Close()
		return matched, discarded, commitError(err)
	}
	if err := w.ForceMerge(); err != nil {
		w.Close()
		return matched, discarded, commitError(err)
	}
	return matched, discarded, w.Close()
}
