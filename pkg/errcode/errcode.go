// Package errcode enumerates the error codes attached to gn.Error values
// raised throughout taxindexer.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Source reader errors (C1)
	DwCAOpenError
	DwCARowError
	VernacularOpenError

	// Loading index errors (C3)
	LoadIndexOpenError
	LoadIndexWriteError
	LoadIndexCommitError

	// Hierarchy walker errors (C4)
	HierarchyRootQueryError
	HierarchyChildQueryError
	HierarchyEmitError

	// Search index errors (C5)
	SearchIndexOpenError
	SearchIndexWriteError
	SearchIndexCommitError

	// Vernacular joiner errors (C6)
	VernacularIndexOpenError
	VernacularQueryError
	VernacularIndexCommitError

	// IRMNG homonym index errors (optional homonym sub-index)
	IrmngIndexOpenError
	IrmngIndexCommitError

	// Driver / configuration errors (C7)
	ConfigMissingDwCAError
	ConfigTargetUnwritableError
	ConfigMissingLoadIndexError
	ConfigBackupError
)
