// Package loadindex implements C3, the loading index builder: it consumes
// the concept stream from pkg/dwca and materializes every row as a
// searchable document in a temporary inverted index, exact-match only
// (spec.md §4.3). pkg/hierarchy then walks that index by term query.
package loadindex

import (
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
	"github.com/gnames/taxindexer/pkg/rank"
)

// Fields is the loading-index document's field policy (spec.md §4.3):
// identifiers indexed as exact terms, descriptive fields stored-only,
// rank fields both.
var Fields = []invidx.FieldSpec{
	{Name: "id", Indexed: true, Stored: true},
	{Name: "lsid", Indexed: true, Stored: true},
	{Name: "parent_id", Indexed: true, Stored: true},
	{Name: "accepted_id", Indexed: true, Stored: true},
	{Name: "name", Indexed: false, Stored: true},
	{Name: "author", Indexed: false, Stored: true},
	{Name: "genus", Indexed: false, Stored: true},
	{Name: "specific", Indexed: false, Stored: true},
	{Name: "infraspecific", Indexed: false, Stored: true},
	{Name: "rank", Indexed: true, Stored: true},
	{Name: "rank_id", Indexed: true, Stored: true},
	{Name: "is_synonym", Indexed: true, Stored: true},
	{Name: "root", Indexed: true, Stored: true},
}

// boolTerm renders a boolean as the T/F term spec.md §3 specifies for
// is_synonym and root.
func boolTerm(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// Build consumes concepts and writes one loading-index document per
// concept into dir, using the keyword (exact-match) analyzer, then
// commits, force-merges, and closes the writer (spec.md §4.3). A failure
// to open the writer (unwritable target) fails the whole run; per-row
// failures are logged and skipped.
func Build(concepts <-chan concept.Concept, store invidx.Store, dir string, log *slog.Logger) error {
	w, err := store.OpenWriter(dir, invidx.KeywordAnalyzer, Fields)
	if err != nil {
		return openError(dir, err)
	}

	// Total row count isn't known ahead of a streamed DwCA, so the bar
	// tracks a running count rather than a percentage, the same
	// prefix/CleanOnFinish style gnames-gndb's populate phases use.
	bar := pb.New64(0)
	bar.Set("prefix", "Loading index: ")
	bar.Set(pb.CleanOnFinish, true)
	bar.Start()

	var written, skipped uint64
	for c := range concepts {
		doc, ok := toDocument(c)
		if !ok {
			skipped++
			log.Warn("skipping concept with no identifier", "scientific_name", c.ScientificName)
			continue
		}
		if err := w.Add(doc); err != nil {
			skipped++
			log.Warn("skipping concept that failed to index", "id", c.ID, "lsid", c.LSID, "error", err)
			continue
		}
		written++
		bar.Increment()
	}
	bar.Finish()

	log.Info("loading index build complete", "written", humanize.Comma(int64(written)), "skipped", humanize.Comma(int64(skipped)))

	if err := w.Commit(); err != nil {
		w.Close()
		return commitError(err)
	}
	if err := w.ForceMerge(); err != nil {
		w.Close()
		return forceMergeError(err)
	}
	return w.Close()
}

func toDocument(c concept.Concept) (invidx.Document, bool) {
	id := c.ID
	if id == "" {
		id = c.LSID
	}
	if id == "" {
		return invidx.Document{}, false
	}

	rankID := rank.FromString(c.RankString)
	fields := map[string]any{
		"id":            c.ID,
		"lsid":          c.LSID,
		"parent_id":     c.ParentID,
		"accepted_id":   c.AcceptedID,
		"name":          c.ScientificName,
		"author":        c.Authorship,
		"genus":         c.Genus,
		"specific":      c.SpecificEpithet,
		"infraspecific": c.InfraspecificEpithet,
		"rank":          c.RankString,
		"rank_id":       int(rankID),
		"is_synonym":    boolTerm(!c.IsAccepted()),
	}
	if c.IsRoot() {
		fields["root"] = "T"
	}

	return invidx.Document{ID: id, Fields: fields}, true
}
