package loadindex

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
		Code: errcode.LoadIndexOpenError,
		Msg:  "cannot open loading index writer at %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func commitError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadIndexCommitError,
		Msg:  "cannot commit loading index",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func forceMergeError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadIndexWriteError,
		Msg:  "cannot force-merge loading index",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
