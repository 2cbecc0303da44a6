// Package palmdoc decodes the 16-byte PalmDOC record-0 header found at
// the start of PalmDOC, and PalmDOC-derived (MOBI), ebooks.
package palmdoc

import "github.com/arbordale/biblio/internal/bread"

// Compression identifies the record-0 compression scheme.
type Compression uint16

const (
	CompressionNone     Compression = 1
	CompressionPalmDOC  Compression = 2
	CompressionHuffCDIC Compression = 17480
)

// Header is the decoded PalmDOC record-0 header.
type Header struct {
	Compression   Compression
	TextLength    uint32
	RecordCount   uint16
	RecordSize    uint16
	CurrentPos    uint32 // high 16 bits record, low 16 bits offset, for PalmDOC encryption-free readers
}

// ReadHeader decodes a 16-byte PalmDOC header from record0.
func ReadHeader(record0 []byte) (*Header, error) {
	c := bread.NewCursor(record0)
	h := &Header{}
	var err error
	var v uint16
	if v, err = c.ReadU16(); err != nil {
		return nil, err
	}
	h.Compression = Compression(v)
	c.Skip(2) // unused, always zero
	if h.TextLength, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.RecordCount, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.RecordSize, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.CurrentPos, err = c.ReadU32(); err != nil {
		return nil, err
	}
	return h, nil
}
