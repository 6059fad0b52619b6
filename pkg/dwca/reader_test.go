package dwca_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnames/taxindexer/pkg/dwca"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 100}))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConceptsReadsCoreFileAndSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	header := "id\ttaxonID\tparentNameUsageID\tacceptedNameUsageID\tscientificName\tscientificNameAuthorship\tgenus\tspecificEpithet\tinfraspecificEpithet\ttaxonRank\ttaxonomicStatus\n"
	rows := "k1\tK1\t\t\tAnimalia\t\tAnimalia\t\t\tkingdom\taccepted\n" +
		"g1\tG1\tk1\t\tFelis\tLinnaeus, 1758\tFelis\t\t\tgenus\taccepted\n" +
		"this row has too few columns\n" +
		"s1\tS1\tg1\t\tFelis catus\tLinnaeus, 1758\tFelis\tcatus\t\tspecies\taccepted\n"
	writeFile(t, dir, "taxon.txt", header+rows)

	src := dwca.New(dir, discardLogger())
	concepts, err := src.Concepts()
	require.NoError(t, err)

	var got []string
	for c := range concepts {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"k1", "g1", "s1"}, got)
}

func TestConceptsErrorsWhenNoCoreFileFound(t *testing.T) {
	dir := t.TempDir()
	src := dwca.New(dir, discardLogger())
	_, err := src.Concepts()
	assert.Error(t, err)
}

func TestVernacularsParsesEscapedTabDelimitedRows(t *testing.T) {
	dir := t.TempDir()
	content := "t1\tL1\tFelis catus\tdomestic cat\ten\tUS\n" +
		"t2\tL2\tCanis lupus\t\"husky\\tnickname\"\ten\tUS\n" +
		"too\tfew\tcolumns\n"
	path := writeFile(t, dir, "vernacular.txt", content)

	src := dwca.New(dir, discardLogger())
	rows, err := src.Vernaculars(path)
	require.NoError(t, err)

	var got []string
	for r := range rows {
		got = append(got, r.VernacularName)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "domestic cat", got[0])
	assert.Equal(t, "husky\tnickname", got[1])
}

func TestVernacularsErrorsWhenFileMissing(t *testing.T) {
	src := dwca.New(t.TempDir(), discardLogger())
	_, err := src.Vernaculars(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
