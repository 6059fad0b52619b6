package vernacular_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
	"github.com/gnames/taxindexer/pkg/loadindex"
	"github.com/gnames/taxindexer/pkg/vernacular"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 100}))
}

// S6 — vernacular join: one matching row, one row against an unknown
// lsid; exactly one document lands in the sub-index.
func TestJoinMatchesOnlyKnownTaxa(t *testing.T) {
	store := invidx.NewBleveStore()
	loadDir := t.TempDir()

	concepts := make(chan concept.Concept, 1)
	concepts <- concept.Concept{ID: "s1", LSID: "S1", ScientificName: "Felis catus", RankString: "species"}
	close(concepts)
	require.NoError(t, loadindex.Build(concepts, store, loadDir, discardLogger()))

	loadReader, err := store.OpenReader(loadDir)
	require.NoError(t, err)
	defer loadReader.Close()

	rows := make(chan concept.VernacularRow, 2)
	rows <- concept.VernacularRow{TaxonLSID: "S1", ScientificName: "Felis catus", VernacularName: "domestic cat"}
	rows <- concept.VernacularRow{TaxonLSID: "UNKNOWN", ScientificName: "Ghost", VernacularName: "nothing"}
	close(rows)

	subDir := t.TempDir()
	matched, discarded, err := vernacular.Join(rows, loadReader, store, subDir, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), matched)
	assert.Equal(t, uint64(1), discarded)

	subReader, err := store.OpenReader(subDir)
	require.NoError(t, err)
	defer subReader.Close()

	hits, err := subReader.TermQuery("lsid", "S1", 10, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "domestic cat", hits[0].Str("vernacular_name"))
}
