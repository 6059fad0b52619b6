package vernacular

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
		Code: errcode.VernacularIndexOpenError,
		Msg:  "cannot open vernacular sub-index writer at %s",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func queryError(key string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.VernacularQueryError,
		Msg:  "cannot look up vernacular key %s in loading index",
		Vars: []any{key},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func commitError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.VernacularIndexCommitError,
		Msg:  "cannot commit vernacular sub-index",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
