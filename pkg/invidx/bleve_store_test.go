package invidx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnames/taxindexer/pkg/invidx"
)

func TestBleveStoreKeywordExactMatch(t *testing.T) {
	dir := t.TempDir()
	store := invidx.NewBleveStore()

	fields := []invidx.FieldSpec{
		{Name: "id", Indexed: true, Stored: true},
		{Name: "name", Indexed: false, Stored: true},
	}
	w, err := store.OpenWriter(dir, invidx.KeywordAnalyzer, fields)
	require.NoError(t, err)

	require.NoError(t, w.Add(invidx.Document{ID: "k1", Fields: map[string]any{"id": "k1", "name": "Animalia"}}))
	require.NoError(t, w.Add(invidx.Document{ID: "k2", Fields: map[string]any{"id": "k2", "name": "Plantae"}}))
	require.NoError(t, w.Commit())
	require.NoError(t, w.ForceMerge())
	require.NoError(t, w.Close())

	reader, err := store.OpenReader(dir)
	require.NoError(t, err)
	defer reader.Close()

	hits, err := reader.TermQuery("id", "k1", 10, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Animalia", hits[0].Str("name"))

	hits, err = reader.TermQuery("id", "Animalia", 10, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 0, "keyword analyzer is case-sensitive and exact-match only")

	hits, err = reader.TermQuery("id", "k3", 10, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 0)
}

func TestBleveStoreLowerKeywordIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	store := invidx.NewBleveStore()

	fields := []invidx.FieldSpec{
		{Name: "canonical_name", Indexed: true, Stored: true},
	}
	w, err := store.OpenWriter(dir, invidx.LowerKeywordAnalyzer, fields)
	require.NoError(t, err)
	require.NoError(t, w.Add(invidx.Document{ID: "s1", Fields: map[string]any{"canonical_name": "Felis catus"}}))
	require.NoError(t, w.Commit())
	require.NoError(t, w.ForceMerge())
	require.NoError(t, w.Close())

	reader, err := store.OpenReader(dir)
	require.NoError(t, err)
	defer reader.Close()

	hits, err := reader.TermQuery("canonical_name", "felis catus", 10, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "s1", hits[0].ID)
}

func TestDocumentIntAcceptsFloat64(t *testing.T) {
	doc := invidx.Document{Fields: map[string]any{"rank_id": float64(6000), "as_int": 7000}}
	assert.Equal(t, 6000, doc.Int("rank_id"))
	assert.Equal(t, 7000, doc.Int("as_int"))
	assert.Equal(t, 0, doc.Int("missing"))
}
