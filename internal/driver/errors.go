package driver

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/gnames/taxindexer/pkg/errcode"
)

func missingDwCAError(dir string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigMissingDwCAError,
		Msg:  "DwCA source directory %s is required and must exist",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: no dwca flag or directory not found", fn),
	}
}

func targetUnwritableError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigTargetUnwritableError,
		Msg:  "Cannot prepare target directory %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func missingLoadIndexError(dir string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigMissingLoadIndexError,
		Msg:  "search phase requires an existing loading index at %s; run -load first",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: loading index directory not found", fn),
	}
}

func backupError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ConfigBackupError,
		Msg:  "Cannot back up existing target directory %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
