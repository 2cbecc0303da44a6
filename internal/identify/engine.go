// Package identify implements the declarative magic-byte file
// identification engine: rule programs tested in registration order
// against a size-bounded prefix of a file, gated by whether that prefix
// looks like text or binary.
package identify

import (
	"errors"
	"io"
	"sync"

	"github.com/arbordale/biblio/internal/filetype"
	"github.com/arbordale/biblio/internal/registry"
	"github.com/arbordale/biblio/internal/text"
)

// ErrReadFailed wraps an underlying I/O error encountered while sniffing
// a stream.
var ErrReadFailed = errors.New("identify: read failed")

type candidate struct {
	ft       filetype.FileType
	program  *Program
	textOK   bool
	binaryOK bool
}

// Engine is an explicit, constructible identification engine, holding
// its own registry rather than relying on package-level state. A single
// Engine can be shared safely for concurrent identification once its
// builtin/extra tables are populated; registration is not goroutine-safe
// and should happen during setup only.
type Engine struct {
	reg           *registry.Registry[filetype.FileType, candidate]
	maxBufferSize int
}

// NewEngine returns an empty Engine.
func NewEngine() *Engine {
	return &Engine{reg: registry.New[filetype.FileType, candidate]()}
}

// AddIdentifier registers program under ft. text/binary gate whether the
// program is tried against a text-classified or binary-classified
// buffer; builtin selects which registry tier the program lands in.
func (e *Engine) AddIdentifier(ft filetype.FileType, program *Program, textOK, binaryOK, builtin bool) {
	e.reg.Add(ft, candidate{ft: ft, program: program, textOK: textOK, binaryOK: binaryOK}, builtin, false)
	if program.maxSize > e.maxBufferSize {
		e.maxBufferSize = program.maxSize
	}
}

// IdentifyBytes returns the first registered file type whose program
// matches data (a buffer already read from the start of a file), trying
// every extra-tier candidate before any builtin-tier candidate, in
// registration order within each tier. ok is false if nothing matched.
func (e *Engine) IdentifyBytes(data []byte) (ft filetype.FileType, ok bool) {
	isText := text.IsText(data)
	for _, pair := range e.reg.Iterate() {
		c := pair.Value
		if isText && !c.textOK {
			continue
		}
		if !isText && !c.binaryOK {
			continue
		}
		if c.program.test(data) {
			return c.ft, true
		}
	}
	return filetype.FileType{}, false
}

// IdentifyStream reads up to the engine's required buffer size from r
// and identifies it.
func (e *Engine) IdentifyStream(r io.Reader) (filetype.FileType, bool, error) {
	buf := make([]byte, e.maxBufferSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return filetype.FileType{}, false, errors.Join(ErrReadFailed, err)
	}
	ft, ok := e.IdentifyBytes(buf[:n])
	return ft, ok, nil
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a package-level Engine pre-populated with every
// builtin identification program, building it once on first use.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine()
		registerBuiltins(defaultEngine)
	})
	return defaultEngine
}
