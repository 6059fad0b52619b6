// Package canon wraps gnparser in a pool of reusable parser instances and
// exposes the single canonicalization operation the rest of the pipeline
// needs (spec.md §4.2). This is a pure package — parsing is computation,
// not I/O.
package canon

import (
	"runtime"

	"github.com/gnames/gnparser"
)

// Canonicalizer parses a scientific name string and returns its canonical
// form. If the underlying parser does not judge the input a parsable
// scientific name, or panics while trying, the input is returned unchanged.
type Canonicalizer interface {
	Canonical(name string) string

	// Close releases the pool's parser instances.
	Close()
}

type pool struct {
	ch chan gnparser.GNparser
}

// New creates a pool of jobsNum parser instances. If jobsNum is 0, it
// defaults to runtime.NumCPU(), mirroring gnparserpool.NewPool.
func New(jobsNum int) Canonicalizer {
	if jobsNum == 0 {
		jobsNum = runtime.NumCPU()
	}
	cfg := gnparser.NewConfig()
	ch := gnparser.NewPool(cfg, jobsNum)
	return &pool{ch: ch}
}

// Canonical implements Canonicalizer.Canonical. It is safe for concurrent
// use: it borrows a parser from the pool, parses, and returns the parser to
// the pool before returning. Any parser panic is recovered and the input
// name is returned verbatim (spec.md §4.2: "any parser exception is
// swallowed and the input returned unchanged").
func (p *pool) Canonical(name string) (result string) {
	result = name
	parser := <-p.ch
	defer func() {
		if r := recover(); r != nil {
			result = name
		}
		p.ch <- parser
	}()

	parsed := parser.ParseName(name)
	if parsed.Parsed && parsed.Canonical != nil && parsed.Canonical.Simple != "" {
		result = parsed.Canonical.Simple
	}
	return result
}

// Close shuts down the parser pool and releases its resources.
func (p *pool) Close() {
	if p.ch == nil {
		return
	}
	close(p.ch)
	for range p.ch {
	}
}
