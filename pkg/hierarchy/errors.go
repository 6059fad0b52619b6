package hierarchy

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/gnames/taxindexer/pkg/errcode"
)

func rootQueryError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HierarchyRootQueryError,
		Msg:  "cannot query roots in loading index",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func childQueryError(parentID string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HierarchyChildQueryError,
		Msg:  "cannot query children of %s in loading index",
		Vars: []any{parentID},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}

func emitError(id string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HierarchyEmitError,
		Msg:  "cannot emit accepted document %s",
		Vars: []any{id},
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
