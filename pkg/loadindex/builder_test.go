package loadindex_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
	"github.com/gnames/taxindexer/pkg/loadindex"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 100}))
}

func TestBuildWritesOneDocumentPerConcept(t *testing.T) {
	dir := t.TempDir()
	store := invidx.NewBleveStore()

	concepts := make(chan concept.Concept, 3)
	concepts <- concept.Concept{ID: "k1", LSID: "K1", ScientificName: "Animalia", RankString: "kingdom"}
	concepts <- concept.Concept{ID: "g1", LSID: "G1", ParentID: "k1", ScientificName: "Felis", RankString: "genus"}
	concepts <- concept.Concept{ID: "s2", LSID: "S2", AcceptedID: "S1", ScientificName: "Felis silvestris catus"}
	close(concepts)

	require.NoError(t, loadindex.Build(concepts, store, dir, discardLogger()))

	reader, err := store.OpenReader(dir)
	require.NoError(t, err)
	defer reader.Close()

	roots, err := reader.TermQuery("root", "T", 10, 0)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "k1", roots[0].Str("id"))

	synonyms, err := reader.TermQuery("is_synonym", "T", 10, 0)
	require.NoError(t, err)
	require.Len(t, synonyms, 1)
	assert.Equal(t, "s2", synonyms[0].Str("id"))

	children, err := reader.TermQuery("parent_id", "k1", 10, 0)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "g1", children[0].Str("id"))
	assert.Equal(t, 6000, children[0].Int("rank_id"))
}

func TestBuildSkipsConceptsWithNoIdentifier(t *testing.T) {
	dir := t.TempDir()
	store := invidx.NewBleveStore()

	concepts := make(chan concept.Concept, 1)
	concepts <- concept.Concept{ScientificName: "No identifiers at all"}
	close(concepts)

	require.NoError(t, loadindex.Build(concepts, store, dir, discardLogger()))

	reader, err := store.OpenReader(dir)
	require.NoError(t, err)
	defer reader.Close()

	hits, err := reader.TermQuery("name", "No identifiers at all", 10, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 0, "name is stored-only, not indexed")

	accepted, err := reader.TermQuery("is_synonym", "F", 10, 0)
	require.NoError(t, err)
	assert.Len(t, accepted, 0, "the concept with no identifier is not written")
}
