package canon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gnames/taxindexer/pkg/canon"
)

func TestCanonicalIsIdempotent(t *testing.T) {
	c := canon.New(1)
	defer c.Close()

	names := []string{
		"Felis catus",
		"Felis silvestris catus Schreber, 1775",
		"not a real scientific name at all",
		"",
	}
	for _, name := range names {
		once := c.Canonical(name)
		twice := c.Canonical(once)
		assert.Equal(t, once, twice, "canonical(canonical(%q)) should equal canonical(%q)", name, name)
	}
}

func TestCanonicalUnparsableReturnsInputUnchanged(t *testing.T) {
	c := canon.New(1)
	defer c.Close()

	input := "###not-a-name###"
	assert.Equal(t, input, c.Canonical(input))
}
