package irmng

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
		Code: errcode.IrmngIndexOpenError,
		Msg:  "cannot open irmng homonym index writer at %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func commitError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.IrmngIndexCommitError,
		Msg:  "cannot commit irmng homonym index",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
