// Package biblio is the top-level facade wiring file identification,
// format readers, and metadata processors together. It exists mainly
// to break the cyclic import that would otherwise arise between
// internal/identify (which only knows about filetype.FileType) and the
// format-specific parser packages (which need to look a FileType back
// up to find their reader) — every registration lives here, at the one
// point in the dependency graph above both.
package biblio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/arbordale/biblio/internal/ebookmeta"
	"github.com/arbordale/biblio/internal/ereader"
	"github.com/arbordale/biblio/internal/epub"
	"github.com/arbordale/biblio/internal/filetype"
	"github.com/arbordale/biblio/internal/identify"
	"github.com/arbordale/biblio/internal/mobi"
	"github.com/arbordale/biblio/internal/opf"
	"github.com/arbordale/biblio/internal/palmdoc"
	"github.com/arbordale/biblio/internal/pdb"
	"github.com/arbordale/biblio/internal/plucker"
	"github.com/arbordale/biblio/internal/process"
	"github.com/arbordale/biblio/internal/registry"
	"github.com/arbordale/biblio/internal/ztxt"
)

// ErrUnknownFileType means IdentifyFile could not classify the file.
var ErrUnknownFileType = errors.New("biblio: unrecognized file type")

// ErrUnsupportedOperation means a ParserEntry has no implementation
// for the operation requested (this module never implements Write).
var ErrUnsupportedOperation = errors.New("biblio: unsupported operation for this file type")

// ErrMismatchedMetadata means a RawMetadata handed to a ProcessFunc is
// missing the raw header its FileType requires. ReadMetadata never
// produces such a value; this guards ProcessFunc against a
// hand-constructed RawMetadata (the struct's fields are exported) that
// doesn't actually match its declared FileType.
var ErrMismatchedMetadata = errors.New("biblio: raw metadata does not match its declared file type")

// RawMetadata is the union of every format-specific raw header a
// reader can produce for one file. Palm-family readers set PDB plus, when
// record 0 could be decoded, the one format header matching FileType;
// EPUB and bare-OPF readers set only OPF.
type RawMetadata struct {
	FileType filetype.FileType

	PDB     *pdb.Header
	MOBI    *mobi.Header
	OPF     *opf.Package
	PalmDOC *palmdoc.Header
	EReader *ereader.Header
	Plucker *plucker.Header
	ZTXT    *ztxt.Header
}

// ReadFunc decodes a file's raw headers given its path.
type ReadFunc func(path string) (*RawMetadata, error)

// ProcessFunc normalizes a RawMetadata into ebookmeta.Metadata.
type ProcessFunc func(raw *RawMetadata) (ebookmeta.Metadata, error)

// WriteFunc writes metadata back to a file. No format in this module
// implements one; Core.WriteMetadata always returns
// ErrUnsupportedOperation.
type WriteFunc func(path string, meta ebookmeta.Metadata) error

// ParserEntry bundles the operations available for one FileType.
type ParserEntry struct {
	FileType filetype.FileType
	Read     ReadFunc
	Process  ProcessFunc
	Write    WriteFunc
}

// Core is the facade through which callers identify files and read
// their metadata, wired from an identify.Engine plus a registry of
// ParserEntry values keyed by filetype.FileType.
type Core struct {
	engine  *identify.Engine
	parsers *registry.Registry[filetype.FileType, ParserEntry]
}

// New builds an empty Core. Use Default for the populated, process-wide
// singleton.
func New() *Core {
	return &Core{
		engine:  identify.NewEngine(),
		parsers: registry.New[filetype.FileType, ParserEntry](),
	}
}

// RegisterParser adds (or, if override is true, replaces) the
// ParserEntry for a FileType.
func (c *Core) RegisterParser(entry ParserEntry, override bool) {
	c.parsers.Add(entry.FileType, entry, true, override)
}

var defaultCore *Core
var defaultOnce sync.Once

// Default returns the process-wide Core with every builtin identifier
// and parser registered.
func Default() *Core {
	defaultOnce.Do(func() {
		defaultCore = New()
		defaultCore.engine = identify.Default()
		registerBuiltinParsers(defaultCore)
	})
	return defaultCore
}

// IdentifyFile classifies the file at path by its leading bytes.
func (c *Core) IdentifyFile(path string) (filetype.FileType, error) {
	f, err := os.Open(path)
	if err != nil {
		return filetype.FileType{}, fmt.Errorf("biblio: opening %s: %w", path, err)
	}
	defer f.Close()

	ft, ok, err := c.engine.IdentifyStream(f)
	if err != nil {
		return filetype.FileType{}, err
	}
	if !ok {
		return filetype.FileType{}, ErrUnknownFileType
	}
	return ft, nil
}

func (c *Core) findParser(ft filetype.FileType) (ParserEntry, error) {
	entry, ok := c.parsers.Find(ft)
	if !ok {
		return ParserEntry{}, fmt.Errorf("%w: %s", ErrUnsupportedOperation, ft.Type)
	}
	return entry, nil
}

// ReadMetadata identifies path, then decodes its raw format-specific
// headers without normalizing them.
func (c *Core) ReadMetadata(path string) (*RawMetadata, error) {
	ft, err := c.IdentifyFile(path)
	if err != nil {
		return nil, err
	}
	entry, err := c.findParser(ft)
	if err != nil {
		return nil, err
	}
	if entry.Read == nil {
		return nil, fmt.Errorf("%w: no reader for %s", ErrUnsupportedOperation, ft.Type)
	}
	return entry.Read(path)
}

// ReadProcessedMetadata identifies path, decodes its raw headers, and
// normalizes them into ebookmeta.Metadata.
func (c *Core) ReadProcessedMetadata(path string) (ebookmeta.Metadata, error) {
	raw, err := c.ReadMetadata(path)
	if err != nil {
		return ebookmeta.Metadata{}, err
	}
	entry, err := c.findParser(raw.FileType)
	if err != nil {
		return ebookmeta.Metadata{}, err
	}
	if entry.Process == nil {
		return ebookmeta.Metadata{}, fmt.Errorf("%w: no processor for %s", ErrUnsupportedOperation, raw.FileType.Type)
	}
	return entry.Process(raw)
}

// WriteMetadata is unimplemented: this module only reads. It is kept
// as an external-interface entry point so callers that expect a
// read/write pair get an explicit, typed refusal instead of a missing
// method.
func (c *Core) WriteMetadata(path string, meta ebookmeta.Metadata) error {
	ft, err := c.IdentifyFile(path)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: writing %s", ErrUnsupportedOperation, ft.Type)
}

func registerBuiltinParsers(c *Core) {
	c.RegisterParser(ParserEntry{
		FileType: filetype.MOBI,
		Read:     readMOBI,
		Process:  processMOBI,
	}, false)

	for _, ft := range []filetype.FileType{filetype.EPUB2, filetype.EPUB3} {
		ft := ft
		c.RegisterParser(ParserEntry{
			FileType: ft,
			Read:     readEPUB,
			Process:  func(raw *RawMetadata) (ebookmeta.Metadata, error) { return processOPF(ft, raw) },
		}, false)
	}

	c.RegisterParser(ParserEntry{
		FileType: filetype.PDBPalmDOC,
		Read:     readPalmDOC,
		Process:  processPDBFamily,
	}, false)
	c.RegisterParser(ParserEntry{
		FileType: filetype.PDBEReader,
		Read:     readEReader,
		Process:  processPDBFamily,
	}, false)
	c.RegisterParser(ParserEntry{
		FileType: filetype.PDBPlucker,
		Read:     readPlucker,
		Process:  processPDBFamily,
	}, false)
	c.RegisterParser(ParserEntry{
		FileType: filetype.PDBGutenpalm,
		Read:     readZTXT,
		Process:  processPDBFamily,
	}, false)
	c.RegisterParser(ParserEntry{
		FileType: filetype.OPF2,
		Read:     ReadBareOPF,
		Process:  func(raw *RawMetadata) (ebookmeta.Metadata, error) { return processOPF(filetype.OPF2, raw) },
	}, false)
}

// readPDBRecord0 opens path, decodes its PDB header, and returns both
// the header and record 0's raw bytes. ok is false (with a nil error)
// when the file has no record 0 to decode a format-specific header
// from — callers return the bare PDB header in that case, the same
// degraded-but-identified result readMOBI falls back to.
func readPDBRecord0(path string) (hdr *pdb.Header, record0 []byte, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, false, fmt.Errorf("biblio: reading %s: %w", path, err)
	}
	hdr, err = pdb.ReadHeader(data)
	if err != nil {
		return nil, nil, false, fmt.Errorf("biblio: reading PDB header of %s: %w", path, err)
	}
	if len(hdr.Records) < 1 {
		return hdr, nil, false, nil
	}
	record0, err = hdr.RecordData(data, 0)
	if err != nil {
		return nil, nil, false, fmt.Errorf("biblio: reading record 0 of %s: %w", path, err)
	}
	return hdr, record0, true, nil
}

func readPalmDOC(path string) (*RawMetadata, error) {
	hdr, record0, ok, err := readPDBRecord0(path)
	if err != nil {
		return nil, err
	}
	raw := &RawMetadata{FileType: filetype.PDBPalmDOC, PDB: hdr}
	if !ok {
		return raw, nil
	}
	if raw.PalmDOC, err = palmdoc.ReadHeader(record0); err != nil {
		return nil, fmt.Errorf("biblio: reading PalmDOC header of %s: %w", path, err)
	}
	return raw, nil
}

func readEReader(path string) (*RawMetadata, error) {
	hdr, record0, ok, err := readPDBRecord0(path)
	if err != nil {
		return nil, err
	}
	raw := &RawMetadata{FileType: filetype.PDBEReader, PDB: hdr}
	if !ok {
		return raw, nil
	}
	if raw.EReader, err = ereader.ReadHeader(record0); err != nil {
		return nil, fmt.Errorf("biblio: reading eReader header of %s: %w", path, err)
	}
	return raw, nil
}

func readPlucker(path string) (*RawMetadata, error) {
	hdr, record0, ok, err := readPDBRecord0(path)
	if err != nil {
		return nil, err
	}
	raw := &RawMetadata{FileType: filetype.PDBPlucker, PDB: hdr}
	if !ok {
		return raw, nil
	}
	if raw.Plucker, err = plucker.ReadHeader(record0); err != nil {
		return nil, fmt.Errorf("biblio: reading Plucker header of %s: %w", path, err)
	}
	return raw, nil
}

func readZTXT(path string) (*RawMetadata, error) {
	hdr, record0, ok, err := readPDBRecord0(path)
	if err != nil {
		return nil, err
	}
	raw := &RawMetadata{FileType: filetype.PDBGutenpalm, PDB: hdr}
	if !ok {
		return raw, nil
	}
	if raw.ZTXT, err = ztxt.ReadHeader(record0); err != nil {
		return nil, fmt.Errorf("biblio: reading zTXT header of %s: %w", path, err)
	}
	return raw, nil
}

// processPDBFamily normalizes any of the PalmDOC/eReader/Plucker/zTXT
// record-0 formats into Metadata. None of these carry bibliographic
// fields beyond the PDB database name itself; the format-specific
// header (already decoded into RawMetadata) only describes the body's
// record layout, which is out of scope for metadata extraction.
func processPDBFamily(raw *RawMetadata) (ebookmeta.Metadata, error) {
	if raw.PDB == nil {
		return ebookmeta.Metadata{}, fmt.Errorf("%w: no PDB header for %s", ErrMismatchedMetadata, raw.FileType.Type)
	}
	m := ebookmeta.NewMetadata(raw.FileType)
	m.Title = pdb.SanitizeName(raw.PDB.Name)
	return m, nil
}

func readMOBI(path string) (*RawMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("biblio: reading %s: %w", path, err)
	}
	hdr, err := pdb.ReadHeader(data)
	if err != nil {
		return nil, fmt.Errorf("biblio: reading PDB header of %s: %w", path, err)
	}
	raw := &RawMetadata{FileType: filetype.MOBI, PDB: hdr}

	if len(hdr.Records) < 2 {
		return raw, nil
	}
	record0, err := hdr.RecordData(data, 0)
	if err != nil {
		return nil, fmt.Errorf("biblio: reading record 0 of %s: %w", path, err)
	}
	mobiHdr, err := mobi.ReadHeader(record0)
	if err != nil {
		return nil, fmt.Errorf("biblio: reading MOBI header of %s: %w", path, err)
	}
	raw.MOBI = mobiHdr
	return raw, nil
}

func processMOBI(raw *RawMetadata) (ebookmeta.Metadata, error) {
	if raw.PDB == nil {
		return ebookmeta.Metadata{}, fmt.Errorf("%w: no PDB header for %s", ErrMismatchedMetadata, raw.FileType.Type)
	}
	if raw.MOBI == nil {
		m := ebookmeta.NewMetadata(filetype.MOBI)
		m.Title = pdb.SanitizeName(raw.PDB.Name)
		return m, nil
	}
	return process.MOBIMetadata(raw.PDB, raw.MOBI), nil
}

func readEPUB(path string) (*RawMetadata, error) {
	r, err := epub.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	opfBytes, err := r.ReadFile(r.OPFPath())
	if err != nil {
		return nil, fmt.Errorf("biblio: reading OPF from %s: %w", path, err)
	}
	pkg, err := opf.Parse(bytes.NewReader(opfBytes))
	if err != nil {
		return nil, fmt.Errorf("biblio: parsing OPF from %s: %w", path, err)
	}
	ft := filetype.EPUB2
	if strings.HasPrefix(pkg.Version, "3") {
		ft = filetype.EPUB3
	}
	return &RawMetadata{FileType: ft, OPF: pkg}, nil
}

func processOPF(ft filetype.FileType, raw *RawMetadata) (ebookmeta.Metadata, error) {
	if raw.OPF == nil {
		return ebookmeta.Metadata{}, fmt.Errorf("%w: no OPF data for %s", ErrMismatchedMetadata, ft.Type)
	}
	return process.OPFMetadata(ft, raw.OPF), nil
}

// ReadBareOPF decodes a standalone .opf file (not inside an EPUB
// container) into RawMetadata, for the OPF2 builtin FileType.
func ReadBareOPF(path string) (*RawMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("biblio: opening %s: %w", path, err)
	}
	defer f.Close()
	pkg, err := opf.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("biblio: parsing %s: %w", path, err)
	}
	return &RawMetadata{FileType: filetype.OPF2, OPF: pkg}, nil
}
