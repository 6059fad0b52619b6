package searchindex

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/gnames/taxindexer/pkg/errcode"
)

func openError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SearchIndexOpenError,
		Msg:  "cannot open search index writer at %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func writeError(id string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SearchIndexWriteError,
		Msg:  "cannot index search document %s",
		Vars: []any{id},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func commitError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SearchIndexCommitError,
		Msg:  "cannot commit search index",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
