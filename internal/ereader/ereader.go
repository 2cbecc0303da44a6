// Package ereader decodes the record-0 header of an eReader (PNRdPPrs)
// ebook's Palm Database.
package ereader

import (
	"errors"
	"fmt"

	"github.com/arbordale/biblio/internal/bread"
)

// ErrUnsupportedHeaderSize is returned when record 0 is not one of the
// three known eReader header sizes (132, 116, 202 bytes).
var ErrUnsupportedHeaderSize = errors.New("ereader: unsupported header record size")

// Header132 is the older, fully-understood eReader header layout.
type Header132 struct {
	Compression           uint16
	Encoding              uint16
	NumberSmallPages      uint16
	NumberLargePages      uint16
	NonTextRecords        uint16
	NumberChapters        uint16
	NumberSmallIndex      uint16
	NumberLargeIndex      uint16
	NumberImages          uint16
	NumberLinks           uint16
	MetadataAvailable     uint16
	NumberFootnotes       uint16
	NumberSidebars        uint16
	ChapterIndexRecords   uint16
	Magic2560             uint16
	SmallPageIndexRecord  uint16
	LargePageIndexRecord  uint16
	ImageDataRecord       uint16
	LinksRecord           uint16
	MetadataRecord        uint16
	FootnoteRecord        uint16
	SidebarRecord         uint16
	LastDataRecord        uint16
}

// Header202 is the newer, largely-undocumented eReader header layout.
// Only the fields known from the original implementation are exposed.
type Header202 struct {
	Version        uint16
	NonTextRecords uint16
}

// Header is the decoded eReader record-0 header: exactly one of Long or
// Short is populated, depending on the record size.
type Header struct {
	Long  *Header132
	Short *Header202
}

// ReadHeader decodes an eReader record-0 header from raw, dispatching on
// its length.
func ReadHeader(raw []byte) (*Header, error) {
	switch len(raw) {
	case 132:
		h, err := readHeader132(raw)
		if err != nil {
			return nil, err
		}
		return &Header{Long: h}, nil
	case 116, 202:
		h, err := readHeader202(raw)
		if err != nil {
			return nil, err
		}
		return &Header{Short: h}, nil
	default:
		return nil, fmt.Errorf("%w: %d bytes", ErrUnsupportedHeaderSize, len(raw))
	}
}

func readHeader132(raw []byte) (*Header132, error) {
	c := bread.NewCursor(raw[:54])
	h := &Header132{}
	var err error
	readU16 := func() uint16 {
		if err != nil {
			return 0
		}
		var v uint16
		v, err = c.ReadU16()
		return v
	}
	readU32skip := func() {
		if err != nil {
			return
		}
		_, err = c.ReadU32()
	}

	h.Compression = readU16()
	readU32skip() // unknown1
	h.Encoding = readU16()
	h.NumberSmallPages = readU16()
	h.NumberLargePages = readU16()
	h.NonTextRecords = readU16()
	h.NumberChapters = readU16()
	h.NumberSmallIndex = readU16()
	h.NumberLargeIndex = readU16()
	h.NumberImages = readU16()
	h.NumberLinks = readU16()
	h.MetadataAvailable = readU16()
	readU16() // unknown2
	h.NumberFootnotes = readU16()
	h.NumberSidebars = readU16()
	h.ChapterIndexRecords = readU16()
	h.Magic2560 = readU16()
	h.SmallPageIndexRecord = readU16()
	h.LargePageIndexRecord = readU16()
	h.ImageDataRecord = readU16()
	h.LinksRecord = readU16()
	h.MetadataRecord = readU16()
	readU16() // unknown3
	h.FootnoteRecord = readU16()
	h.SidebarRecord = readU16()
	h.LastDataRecord = readU16()
	if err != nil {
		return nil, err
	}
	return h, nil
}

func readHeader202(raw []byte) (*Header202, error) {
	c := bread.NewCursor(raw[:10])
	h := &Header202{}
	var err error
	if h.Version, err = c.ReadU16(); err != nil {
		return nil, err
	}
	c.Skip(6) // unknown
	if h.NonTextRecords, err = c.ReadU16(); err != nil {
		return nil, err
	}
	return h, nil
}
