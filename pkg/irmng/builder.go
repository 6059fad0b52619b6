// Package irmng builds the optional homonym sub-index from an IRMNG DwCA
// archive (spec.md §6: "consumed by a homonym sub-index builder that
// writes into <target>/irmng. Algorithm out of scope."). This
// implementation groups IRMNG concepts by canonical name and records
// every name shared by more than one concept as a homonym entry — the
// simplest faithful reading of "homonym" the spec's glossary supports,
// since the algorithm itself is explicitly unspecified.
package irmng

import (
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gnames/taxindexer/pkg/canon"
	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
)

// Fields is the homonym sub-index's field policy: canonical_name indexed
// for exact lookup, ids and count retrievable only.
var Fields = []invidx.FieldSpec{
	{Name: "canonical_name", Indexed: true, Stored: true},
	{Name: "ids", Indexed: false, Stored: true},
	{Name: "count", Indexed: false, Stored: true},
}

// Build consumes concepts (already streamed from an IRMNG DwCA by
// pkg/dwca) and writes one document per canonical name shared by two or
// more concepts into dir.
func Build(concepts <-chan concept.Concept, canonicalizer canon.Canonicalizer, store invidx.Store, dir string, log *slog.Logger) error {
	groups := make(map[string][]string)
	var read uint64
	for c := range concepts {
		name := canonicalizer.Canonical(c.ScientificName)
		if name == "" {
			continue
		}
		groups[name] = append(groups[name], c.StableID())
		read++
	}
	log.Info("irmng source read complete", "concepts", humanize.Comma(int64(read)))

	w, err := store.OpenWriter(dir, invidx.KeywordAnalyzer, Fields)
	if err != nil {
		return openError(dir, err)
	}

	var homonyms int
	for name, ids := range groups {
		if len(ids) < 2 {
			continue
		}
		if err := w.Add(invidx.Document{
			ID: name,
			Fields: map[string]any{
				"canonical_name": name,
				"ids":            strings.Join(ids, ","),
				"count":          len(ids),
			},
		}); err != nil {
			log.Warn("skipping homonym group that failed to index", "name", name, "error", err)
			continue
		}
		homonyms++
	}
	log.Info("irmng homonym index complete", "homonym_names", homonyms)

	if err := w.Commit(); err != nil {
		w.Close()
		return commitError(err)
	}
	if err := w.ForceMerge(); err != nil {
		w.Close()
		return commitError(err)
	}
	return w.Close()
}
