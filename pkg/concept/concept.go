// Package concept defines the taxonomic data model shared by every stage of
// the pipeline: the raw Concept row, the inherited Classification tuple, and
// the documents written into the loading, search, and vernacular indexes
// (spec.md §3).
package concept

import "github.com/gnames/taxindexer/pkg/rank"

// Concept is one row from the DwCA core file.
type Concept struct {
	ID                   string
	LSID                 string
	ParentID             string
	AcceptedID           string
	ScientificName       string
	Authorship           string
	Genus                string
	SpecificEpithet      string
	InfraspecificEpithet string
	RankString           string
	TaxonomicStatus      string
}

// StableID returns the LSID if present, falling back to the row ID — the
// substitution rule spec.md §3 specifies for blank LSIDs.
func (c Concept) StableID() string {
	if c.LSID != "" {
		return c.LSID
	}
	return c.ID
}

// IsAccepted reports whether c is an accepted concept: AcceptedID is blank,
// or equals its own ID or LSID (spec.md §3).
func (c Concept) IsAccepted() bool {
	return c.AcceptedID == "" || c.AcceptedID == c.ID || c.AcceptedID == c.LSID
}

// IsRoot reports whether c is an accepted concept with no parent.
func (c Concept) IsRoot() bool {
	return c.IsAccepted() && c.ParentID == ""
}

// RankSlot pairs a canonical name and LSID for one of the seven major ranks.
type RankSlot struct {
	Name string
	LSID string
}

// Classification is the ordered tuple of seven (name, lsid) pairs, one per
// major rank, inherited down the hierarchy and overwritten at each
// concept's own rank (spec.md §3).
type Classification [7]RankSlot

// slotIndex returns the position of id within rank.Slots, or -1.
func slotIndex(id rank.ID) int {
	for i, s := range rank.Slots {
		if s == id {
			return i
		}
	}
	return -1
}

// WithSlot returns a copy of c with the slot for rankID overwritten by name
// and lsid. If rankID is not one of the seven classification slots, c is
// returned unchanged.
func (c Classification) WithSlot(rankID rank.ID, name, lsid string) Classification {
	i := slotIndex(rankID)
	if i < 0 {
		return c
	}
	out := c
	out[i] = RankSlot{Name: name, LSID: lsid}
	return out
}

// At returns the (name, lsid) pair stored for rankID, and whether rankID is
// a valid classification slot.
func (c Classification) At(rankID rank.ID) (RankSlot, bool) {
	i := slotIndex(rankID)
	if i < 0 {
		return RankSlot{}, false
	}
	return c[i], true
}

// LoadingDocument is the document shape written by the loading index
// builder (C3) — one per concept, spec.md §3.
type LoadingDocument struct {
	ID            string
	LSID          string
	ParentID      string
	AcceptedID    string
	Name          string
	Author        string
	Genus         string
	Specific      string
	Infraspecific string
	RankString    string
	RankID        rank.ID
	IsSynonym     bool
	Root          bool
}

// AcceptedDocument is emitted by the search index writer (C5) for every
// accepted concept reachable from a root.
type AcceptedDocument struct {
	CanonicalName  string
	ID             string
	LSID           string
	Author         string
	RankString     string
	RankID         rank.ID
	Left           int
	Right          int
	Classification Classification
}

// SynonymDocument is emitted by the search index writer (C5) for every
// synonym concept.
type SynonymDocument struct {
	ScientificName string
	Authorship     string
	ID             string
	LSID           string
	AcceptedLSID   string
	AcceptedID     string
	Status         string
}

// VernacularDocument is emitted by the vernacular joiner (C6) for every
// vernacular row whose taxon is present in the loading index.
type VernacularDocument struct {
	VernacularName string
	ScientificName string
	LSID           string
}

// VernacularRow is one row read from the vernacular CSV (spec.md §6).
type VernacularRow struct {
	TaxonID        string
	TaxonLSID      string
	ScientificName string
	VernacularName string
	LanguageCode   string
	CountryCode    string
}

// LookupKey returns the LSID to look up in the loading index, falling back
// to TaxonID if LSID is blank (spec.md §4.6).
func (v VernacularRow) LookupKey() string {
	if v.TaxonLSID != "" {
		return v.TaxonLSID
	}
	return v.TaxonID
}
