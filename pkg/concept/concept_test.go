package concept_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/rank"
)

func TestConceptAcceptedAndRoot(t *testing.T) {
	accepted := concept.Concept{ID: "k1", LSID: "K1"}
	assert.True(t, accepted.IsAccepted())
	assert.True(t, accepted.IsRoot())

	selfReferential := concept.Concept{ID: "k1", LSID: "K1", AcceptedID: "k1"}
	assert.True(t, selfReferential.IsAccepted())

	synonym := concept.Concept{ID: "s2", LSID: "S2", AcceptedID: "S1"}
	assert.False(t, synonym.IsAccepted())
	assert.False(t, synonym.IsRoot())

	nonRoot := concept.Concept{ID: "g1", LSID: "G1", ParentID: "k1"}
	assert.True(t, nonRoot.IsAccepted())
	assert.False(t, nonRoot.IsRoot())
}

func TestConceptStableID(t *testing.T) {
	withLSID := concept.Concept{ID: "row1", LSID: "LSID1"}
	assert.Equal(t, "LSID1", withLSID.StableID())

	withoutLSID := concept.Concept{ID: "row1"}
	assert.Equal(t, "row1", withoutLSID.StableID())
}

func TestClassificationWithSlot(t *testing.T) {
	var c concept.Classification
	c = c.WithSlot(rank.Kingdom, "Animalia", "K1")
	slot, ok := c.At(rank.Kingdom)
	assert.True(t, ok)
	assert.Equal(t, "Animalia", slot.Name)
	assert.Equal(t, "K1", slot.LSID)

	emptySlot, validSlot := c.At(rank.Species)
	assert.True(t, validSlot)
	assert.Equal(t, concept.RankSlot{}, emptySlot)

	unrankedResult := c.WithSlot(rank.Unranked, "Ignored", "X")
	assert.Equal(t, c, unrankedResult)

	_, ok = c.At(rank.ID(9999))
	assert.False(t, ok)
}

func TestVernacularRowLookupKey(t *testing.T) {
	withLSID := concept.VernacularRow{TaxonID: "t1", TaxonLSID: "L1"}
	assert.Equal(t, "L1", withLSID.LookupKey())

	withoutLSID := concept.VernacularRow{TaxonID: "t1"}
	assert.Equal(t, "t1", withoutLSID.LookupKey())
}
