package searchindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/invidx"
	"github.com/gnames/taxindexer/pkg/rank"
	"github.com/gnames/taxindexer/pkg/searchindex"
)

func TestEmitAcceptedAndSynonymAreQueryableCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	store := invidx.NewBleveStore()

	w, err := searchindex.Open(store, dir)
	require.NoError(t, err)

	var classification concept.Classification
	classification = classification.WithSlot(rank.Kingdom, "Animalia", "K1")
	classification = classification.WithSlot(rank.Species, "Felis catus", "S1")

	require.NoError(t, w.EmitAccepted(concept.AcceptedDocument{
		CanonicalName:  "Felis catus",
		ID:             "s1",
		LSID:           "S1",
		Author:         "Linnaeus, 1758",
		RankString:     "species",
		RankID:         rank.Species,
		Left:           3,
		Right:          4,
		Classification: classification,
	}))
	require.NoError(t, w.EmitSynonym(concept.SynonymDocument{
		ScientificName: "Felis silvestris catus",
		ID:             "s2",
		LSID:           "S2",
		AcceptedID:     "S1",
		AcceptedLSID:   "S1",
		Status:         "synonym",
	}))
	require.NoError(t, w.Commit())

	store2 := invidx.NewBleveStore()
	reader, err := store2.OpenReader(dir)
	require.NoError(t, err)
	defer reader.Close()

	hits, err := reader.TermQuery("canonical_name", "felis catus", 10, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "s1", hits[0].Str("id"))
	assert.Equal(t, 3, hits[0].Int("left"))
	assert.Equal(t, 4, hits[0].Int("right"))

	synHits, err := reader.TermQuery("scientific_name", "felis silvestris catus", 10, 0)
	require.NoError(t, err)
	require.Len(t, synHits, 1)
	assert.Equal(t, "S1", synHits[0].Str("accepted_lsid"))
}
