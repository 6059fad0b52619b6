// Package driver implements C7: it parses phase configuration, orders the
// components, and carries the configuration-fatal/row-level/index-writer
// error policy from spec.md §7. Grounded on goterm.go's main()-level phase
// gating (*doImport/*precompute/*runserver flags, each wrapping a call)
// generalized to taxindexer's load/search/all phases.
package driver

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/taxindexer/pkg/canon"
	"github.com/gnames/taxindexer/pkg/concept"
	"github.com/gnames/taxindexer/pkg/dwca"
	"github.com/gnames/taxindexer/pkg/hierarchy"
	"github.com/gnames/taxindexer/pkg/invidx"
	"github.com/gnames/taxindexer/pkg/irmng"
	"github.com/gnames/taxindexer/pkg/loadindex"
	"github.com/gnames/taxindexer/pkg/searchindex"
	"github.com/gnames/taxindexer/pkg/vernacular"
)

// mainIndexDir and vernacularIndexDir name the two permanent sub-indexes
// under the target directory (irmngIndexDir is a third, optional one),
// spec.md §6.
const (
	mainIndexDir       = "cb"
	vernacularIndexDir = "vernacular"
	irmngIndexDir      = "irmng"
)

// Config is the driver's explicit configuration value, replacing the
// source's process-wide DI container (spec.md §9: "package these as an
// explicitly constructed context value passed into the driver").
type Config struct {
	DwCADir        string
	IRMNGDir       string
	VernacularPath string
	TargetDir      string
	TmpDir         string

	DoAll    bool
	DoLoad   bool
	DoSearch bool

	TestSearchName string

	Log *slog.Logger
}

// phases resolves which of the load/search phases run, applying the
// default-to-all rule of spec.md §4.7.
func (c Config) phases() (load, search bool) {
	if !c.DoAll && !c.DoLoad && !c.DoSearch {
		return true, true
	}
	return c.DoAll || c.DoLoad, c.DoAll || c.DoSearch
}

// Run executes the configured phases in order. It returns the first
// configuration-fatal or index-writer-fatal error encountered; row-level
// errors are handled internally by the components (logged and skipped).
func Run(cfg Config) error {
	if cfg.TestSearchName != "" {
		return runTestSearch(cfg)
	}

	loadPhase, searchPhase := cfg.phases()
	if !loadPhase && !searchPhase {
		return nil
	}

	if err := requireDwCA(cfg.DwCADir); err != nil {
		return err
	}

	canonicalizer := canon.New(0)
	defer canonicalizer.Close()
	store := invidx.NewBleveStore()

	if loadPhase {
		if err := runLoad(cfg, store); err != nil {
			return err
		}
	}

	if searchPhase {
		if !loadPhase {
			if err := requireExistingLoadIndex(cfg.TmpDir); err != nil {
				return err
			}
		}
		if err := runSearch(cfg, store, canonicalizer); err != nil {
			return err
		}

		if cfg.VernacularPath != "" {
			if err := runVernacular(cfg, store); err != nil {
				return err
			}
		}
		if cfg.IRMNGDir != "" {
			if err := runIRMNG(cfg, store, canonicalizer); err != nil {
				return err
			}
		}
	}

	return nil
}

func requireDwCA(dir string) error {
	if dir == "" {
		return missingDwCAError(dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return missingDwCAError(dir)
	}
	return nil
}

func requireExistingLoadIndex(dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return missingLoadIndexError(dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return missingLoadIndexError(dir)
	}
	return nil
}

func runLoad(cfg Config, store invidx.Store) error {
	if err := os.MkdirAll(cfg.TmpDir, 0o755); err != nil {
		return targetUnwritableError(cfg.TmpDir, err)
	}
	src := dwca.New(cfg.DwCADir, cfg.Log)
	concepts, err := src.Concepts()
	if err != nil {
		return err
	}
	return loadindex.Build(concepts, store, cfg.TmpDir, cfg.Log)
}

func runSearch(cfg Config, store invidx.Store, canonicalizer canon.Canonicalizer) error {
	if err := backupTarget(cfg.TargetDir, cfg.Log); err != nil {
		return err
	}
	dir := filepath.Join(cfg.TargetDir, mainIndexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return targetUnwritableError(dir, err)
	}

	loadReader, err := store.OpenReader(cfg.TmpDir)
	if err != nil {
		return missingLoadIndexError(cfg.TmpDir)
	}
	defer loadReader.Close()

	w, err := searchindex.Open(store, dir)
	if err != nil {
		return err
	}

	walker := hierarchy.New(loadReader, canonicalizer, cfg.Log)
	if err := walker.Walk(w); err != nil {
		return err
	}

	if err := emitSynonyms(cfg, w, loadReader); err != nil {
		return err
	}

	return w.Commit()
}

// emitSynonyms re-streams concepts() (spec.md §4.5's synonym phase) and
// emits a synonym document for every concept whose accepted_id is
// non-empty and differs from both its own id and lsid. The accepted
// concept's lsid is resolved from the loading index (falling back to the
// raw accepted_id if the accepted concept cannot be found), since a DwCA's
// acceptedNameUsageID may itself be either a row id or an lsid.
func emitSynonyms(cfg Config, w *searchindex.Writer, loadReader invidx.Reader) error {
	src := dwca.New(cfg.DwCADir, cfg.Log)
	concepts, err := src.Concepts()
	if err != nil {
		return err
	}
	for c := range concepts {
		if c.AcceptedID == "" || c.AcceptedID == c.ID || c.AcceptedID == c.LSID {
			continue
		}
		doc := concept.SynonymDocument{
			ScientificName: c.ScientificName,
			Authorship:     c.Authorship,
			ID:             c.ID,
			LSID:           c.LSID,
			AcceptedID:     c.AcceptedID,
			AcceptedLSID:   resolveAcceptedLSID(loadReader, c.AcceptedID),
			Status:         c.TaxonomicStatus,
		}
		if err := w.EmitSynonym(doc); err != nil {
			cfg.Log.Warn("skipping synonym that failed to index", "id", c.ID, "error", err)
		}
	}
	return nil
}

// resolveAcceptedLSID looks up acceptedID in the loading index to recover
// the accepted concept's lsid. If acceptedID is itself already an lsid
// (the concept is found by lsid directly) or no match is found, acceptedID
// is returned unchanged.
func resolveAcceptedLSID(loadReader invidx.Reader, acceptedID string) string {
	if acceptedID == "" {
		return ""
	}
	if hits, err := loadReader.TermQuery("lsid", acceptedID, 1, 0); err == nil && len(hits) > 0 {
		return acceptedID
	}
	if hits, err := loadReader.TermQuery("id", acceptedID, 1, 0); err == nil && len(hits) > 0 {
		if lsid := hits[0].Str("lsid"); lsid != "" {
			return lsid
		}
	}
	return acceptedID
}

func backupTarget(dir string, log *slog.Logger) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return backupError(dir, err)
	}
	if !info.IsDir() {
		return backupError(dir, fmt.Errorf("%s exists and is not a directory", dir))
	}
	backupPath := dir + "_" + time.Now().Format("2006-01-02_15-04-05")
	if err := os.Rename(dir, backupPath); err != nil {
		return backupError(dir, err)
	}
	log.Info("backed up existing target directory", "from", dir, "to", backupPath)
	return os.MkdirAll(dir, 0o755)
}

func runVernacular(cfg Config, store invidx.Store) error {
	src := dwca.New(cfg.DwCADir, cfg.Log)
	rows, err := src.Vernaculars(cfg.VernacularPath)
	if err != nil {
		return err
	}
	loadReader, err := store.OpenReader(cfg.TmpDir)
	if err != nil {
		return missingLoadIndexError(cfg.TmpDir)
	}
	defer loadReader.Close()

	dir := filepath.Join(cfg.TargetDir, vernacularIndexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return targetUnwritableError(dir, err)
	}
	_, _, err = vernacular.Join(rows, loadReader, store, dir, cfg.Log)
	return err
}

func runIRMNG(cfg Config, store invidx.Store, canonicalizer canon.Canonicalizer) error {
	src := dwca.New(cfg.IRMNGDir, cfg.Log)
	concepts, err := src.Concepts()
	if err != nil {
		return err
	}
	dir := filepath.Join(cfg.TargetDir, irmngIndexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return targetUnwritableError(dir, err)
	}
	return irmng.Build(concepts, canonicalizer, store, dir, cfg.Log)
}

func runTestSearch(cfg Config) error {
	store := invidx.NewBleveStore()
	dir := filepath.Join(cfg.TargetDir, mainIndexDir)
	reader, err := store.OpenReader(dir)
	if err != nil {
		return fmt.Errorf("open search index at %s: %w", dir, err)
	}
	defer reader.Close()

	hits, err := reader.TermQuery("canonical_name", strings.ToLower(cfg.TestSearchName), 20, 0)
	if err != nil {
		return fmt.Errorf("query %q: %w", cfg.TestSearchName, err)
	}
	if len(hits) == 0 {
		fmt.Printf("no results for %q\n", cfg.TestSearchName)
		return nil
	}
	for _, h := range hits {
		fmt.Printf("%s\t%s\t%s\tinterval(%d,%d)\trank=%s\n",
			h.Str("canonical_name"), h.Str("id"), h.Str("lsid"),
			h.Int("left"), h.Int("right"), h.Str("rank"))
	}
	return nil
}
