// Package mobi decodes the MOBI record-0 header and its EXTH metadata
// extension block.
package mobi

import (
	"errors"
	"fmt"

	"github.com/arbordale/biblio/internal/bread"
)

// ErrMalformedEXTHRecord is returned when an EXTH record declares a
// length shorter than the 8-byte type+length prefix it must contain.
// The original parser trusted the declared length unconditionally; this
// implementation treats a record.length < 8 as fatal to the EXTH parse
// rather than deriving a negative data-slice length.
var ErrMalformedEXTHRecord = errors.New("mobi: EXTH record length < 8")

// Header is the decoded MOBI record-0 header. It embeds the leading
// PalmDOC-style fields alongside the MOBI-specific ones; a file whose
// record-0 is exactly 16 bytes has only those leading fields populated
// and every MOBI-specific field left zero (a shorter record 0 is an
// error from ReadHeader).
type Header struct {
	// PalmDOC-compatible prefix.
	Compression uint16
	TextLength  uint32
	RecordCount uint16
	RecordSize  uint16
	Encryption  uint16

	// Present only if record 0 is longer than 16 bytes.
	HasMobiFields          bool
	Identifier             string
	HeaderLength           uint32
	MobiType               uint32
	TextEncoding           uint32
	UniqueID               uint32
	FileVersion            uint32
	OrthographicIndex      uint32
	InflectionIndex        uint32
	IndexNames             uint32
	IndexKeys              uint32
	ExtraIndex             [6]uint32
	FirstNonBookRecord     uint32
	FullNameOffset         uint32
	FullNameLength         uint32
	Locale                 uint32
	DictInputLanguage      uint32
	DictOutputLanguage     uint32
	MinVersion             uint32
	FirstImageRecord       uint32
	HuffmanRecord          uint32
	HuffmanRecordCount     uint32
	HuffmanTableRecord     uint32
	HuffmanTableLength     uint32
	EXTHFlags              uint32

	// Present only if record 0 is at least 0xb4 bytes long.
	HasDRM   bool
	DRMOffset uint32
	DRMCount  uint32
	DRMSize   uint32
	DRMFlags  uint32

	ExtraFlags uint16

	FullName string // extracted from the fullname offset/length, if in range

	EXTH *EXTHHeader // nil unless EXTHFlags & 0x40
}

// ReadHeader decodes a MOBI record-0 buffer, populating h as far as
// record0's length allows. It returns an error only when record0 is too
// short to hold the fixed PalmDOC-compatible prefix every MOBI and
// PalmDOC record 0 shares; whether record0 is plausibly a MOBI header
// at all (rather than plain PalmDOC) is the caller's decision, made
// from h.HasMobiFields.
func ReadHeader(record0 []byte) (*Header, error) {
	if len(record0) < 16 {
		return nil, fmt.Errorf("mobi: record 0 shorter than 16 bytes (%d)", len(record0))
	}
	c := bread.NewCursor(record0)
	h := &Header{}
	var err error
	if h.Compression, err = c.ReadU16(); err != nil {
		return nil, err
	}
	c.Skip(2) // unused
	if h.TextLength, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.RecordCount, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.RecordSize, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.Encryption, err = c.ReadU16(); err != nil {
		return nil, err
	}
	c.Skip(2) // unknown

	// Some ancient MOBI files carry no more metadata than the 16-byte
	// PalmDOC-compatible prefix.
	if len(record0) <= 16 {
		return h, nil
	}

	c.Seek(0x10)
	if h.Identifier, err = c.ReadFixedString(4); err != nil {
		return nil, err
	}
	u32 := func(dst *uint32) {
		if err != nil {
			return
		}
		*dst, err = c.ReadU32()
	}
	u32(&h.HeaderLength)
	u32(&h.MobiType)
	u32(&h.TextEncoding)
	u32(&h.UniqueID)
	u32(&h.FileVersion)
	u32(&h.OrthographicIndex)
	u32(&h.InflectionIndex)
	u32(&h.IndexNames)
	u32(&h.IndexKeys)
	for i := range h.ExtraIndex {
		u32(&h.ExtraIndex[i])
	}
	u32(&h.FirstNonBookRecord)
	u32(&h.FullNameOffset)
	u32(&h.FullNameLength)
	u32(&h.Locale)
	u32(&h.DictInputLanguage)
	u32(&h.DictOutputLanguage)
	u32(&h.MinVersion)
	u32(&h.FirstImageRecord)
	u32(&h.HuffmanRecord)
	u32(&h.HuffmanRecordCount)
	u32(&h.HuffmanTableRecord)
	u32(&h.HuffmanTableLength)
	u32(&h.EXTHFlags)
	if err != nil {
		return nil, err
	}
	h.HasMobiFields = true

	if len(record0) >= 0xb4 {
		c.Seek(0xa4)
		u32(&h.DRMOffset)
		u32(&h.DRMCount)
		u32(&h.DRMSize)
		u32(&h.DRMFlags)
		if err != nil {
			return nil, err
		}
		h.HasDRM = true
	}

	if h.HeaderLength >= 0xe4 && h.HeaderLength <= 0xf8 && len(record0) >= 0xf4 {
		c.Seek(0xf2)
		if h.ExtraFlags, err = c.ReadU16(); err != nil {
			return nil, err
		}
	}

	// int arithmetic here, not uint32: FullNameOffset+FullNameLength can
	// overflow uint32 on an adversarial record 0 and wrap back under
	// len(record0), which would pass a naive bounds check and then
	// slice the wrong bytes (or panic on offset > end).
	if start := int(h.FullNameOffset); start <= len(record0) {
		end := start + int(h.FullNameLength)
		if end > len(record0) {
			end = len(record0)
		}
		h.FullName = string(record0[start:end])
	}

	if h.EXTHFlags&0x40 != 0 {
		exthStart := 16 + int(h.HeaderLength)
		if exthStart < len(record0) {
			exth, err := readEXTH(record0[exthStart:])
			if err != nil {
				return nil, err
			}
			h.EXTH = exth
		}
	}

	return h, nil
}
