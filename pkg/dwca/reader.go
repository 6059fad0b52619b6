// Package dwca streams Concept rows from a Darwin Core Archive core file
// and vernacular-name rows from a tab-delimited CSV (C1, spec.md §4.1, §6).
//
// The archive-format mechanics (zip layout, meta.xml term-to-column
// resolution) are treated as an external capability per spec.md §1; this
// reader works against an already-unpacked DwCA directory and locates its
// core file by Darwin Core term names in the header row, the same
// header-validated, tab-delimited reading style rf2/import.go uses for RF2
// distribution files.
package dwca

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/taxindexer/pkg/concept"
)

// coreColumns are the Darwin Core terms C1 reads from the core file,
// spec.md §6. Terms may appear bare ("scientificName") or fully qualified
// ("http://rs.tdwg.org/dwc/terms/scientificName") in the header.
var coreColumns = []string{
	"id",
	"taxonID",
	"parentNameUsageID",
	"acceptedNameUsageID",
	"scientificName",
	"scientificNameAuthorship",
	"genus",
	"specificEpithet",
	"infraspecificEpithet",
	"taxonRank",
	"taxonomicStatus",
}

// Source streams concepts and vernacular rows from a DwCA directory.
type Source struct {
	dir string
	log *slog.Logger
}

// New creates a Source rooted at dir, the unpacked DwCA directory.
func New(dir string, log *slog.Logger) *Source {
	return &Source{dir: dir, log: log}
}

// Concepts streams every Concept row from the archive's core file. The
// core file itself must be found and opened successfully or Concepts
// returns an error immediately (spec.md §4.3: "if the target temporary
// directory cannot be written, the builder fails the whole run" — by the
// same logic, an unreadable source archive is configuration-fatal).
// Individual malformed rows (wrong column count) are logged and skipped.
func (s *Source) Concepts() (<-chan concept.Concept, error) {
	path, err := findCoreFile(s.dir)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open DwCA core file %s: %w", path, err)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	if !scanner.Scan() {
		f.Close()
		return nil, fmt.Errorf("DwCA core file %s has no header row", path)
	}
	header := splitEscaped(scanner.Text())
	idx, err := columnIndex(scanner.Text(), coreColumns)
	if err != nil {
		f.Close()
		return nil, err
	}
	width := len(header)

	out := make(chan concept.Concept)
	go func() {
		defer f.Close()
		defer close(out)
		lineNum := 1
		for scanner.Scan() {
			lineNum++
			row := splitEscaped(scanner.Text())
			if len(row) != width {
				s.log.Warn("skipping malformed DwCA row", "file", path, "line", lineNum, "columns", len(row), "expected", width)
				continue
			}
			c, ok := rowToConcept(row, idx)
			if !ok {
				s.log.Warn("skipping malformed DwCA row", "file", path, "line", lineNum)
				continue
			}
			out <- c
		}
		if err := scanner.Err(); err != nil {
			s.log.Error("error reading DwCA core file", "file", path, "error", err)
		}
	}()
	return out, nil
}

// Vernaculars streams every row of the tab-delimited vernacular CSV at
// path: six columns (taxonID, taxonLsid, scientificName, vernacularName,
// languageCode, countryCode), quote char `"`, escape `\`, zero header rows
// (spec.md §6). Malformed rows (wrong column count) are logged and
// skipped, not fatal.
func (s *Source) Vernaculars(path string) (<-chan concept.VernacularRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vernacular file %s: %w", path, err)
	}

	out := make(chan concept.VernacularRow)
	go func() {
		defer f.Close()
		defer close(out)
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			row := splitEscaped(scanner.Text())
			if len(row) != 6 {
				s.log.Warn("skipping malformed vernacular row", "file", path, "line", lineNum, "columns", len(row))
				continue
			}
			out <- concept.VernacularRow{
				TaxonID:        row[0],
				TaxonLSID:      row[1],
				ScientificName: row[2],
				VernacularName: row[3],
				LanguageCode:   row[4],
				CountryCode:    row[5],
			}
		}
		if err := scanner.Err(); err != nil {
			s.log.Error("error reading vernacular file", "file", path, "error", err)
		}
	}()
	return out, nil
}

// findCoreFile locates the DwCA core data file within dir. Real DwCA
// archives point to it via meta.xml; absent a meta.xml parser in this
// pack, this looks for a .txt, .csv or .tsv file whose name contains
// "taxon", falling back to the first such file of any name.
func findCoreFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read DwCA directory %s: %w", dir, err)
	}

	var fallback string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".txt") && !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".tsv") {
			continue
		}
		if strings.Contains(lower, "taxon") {
			return filepath.Join(dir, name), nil
		}
		if fallback == "" {
			fallback = filepath.Join(dir, name)
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("no core data file found in DwCA directory %s", dir)
	}
	return fallback, nil
}

// columnIndex maps each wanted Darwin Core term to its position in the
// header row, matching either the bare term name or a fully-qualified
// term URI ending in that name.
func columnIndex(header string, wanted []string) (map[string]int, error) {
	cols := splitEscaped(header)
	idx := make(map[string]int, len(wanted))
	for _, w := range wanted {
		for i, c := range cols {
			name := c
			if slash := strings.LastIndex(name, "/"); slash >= 0 {
				name = name[slash+1:]
			}
			if strings.EqualFold(name, w) {
				idx[w] = i
				break
			}
		}
	}
	if _, ok := idx["scientificName"]; !ok {
		return nil, fmt.Errorf("DwCA core header missing required column scientificName")
	}
	return idx, nil
}

func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func rowToConcept(row []string, idx map[string]int) (concept.Concept, bool) {
	if len(row) == 0 {
		return concept.Concept{}, false
	}
	return concept.Concept{
		ID:                   field(row, idx, "id"),
		LSID:                 field(row, idx, "taxonID"),
		ParentID:             field(row, idx, "parentNameUsageID"),
		AcceptedID:           field(row, idx, "acceptedNameUsageID"),
		ScientificName:       field(row, idx, "scientificName"),
		Authorship:           field(row, idx, "scientificNameAuthorship"),
		Genus:                field(row, idx, "genus"),
		SpecificEpithet:      field(row, idx, "specificEpithet"),
		InfraspecificEpithet: field(row, idx, "infraspecificEpithet"),
		RankString:           field(row, idx, "taxonRank"),
		TaxonomicStatus:      field(row, idx, "taxonomicStatus"),
	}, true
}

// splitEscaped splits a tab-delimited line honoring a `"` quote character
// and `\` escape sequences (spec.md §6), which encoding/csv cannot express
// on its own (it only doubles quotes, it has no configurable escape rune).
func splitEscaped(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			i++
			cur.WriteRune(runes[i])
		case r == '"':
			inQuotes = !inQuotes
		case r == '\t' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}
