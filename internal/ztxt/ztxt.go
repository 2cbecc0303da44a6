// Package ztxt decodes the record-0 header of a zTXT (Gutenpalm) ebook's
// Palm Database.
package ztxt

import "github.com/arbordale/biblio/internal/bread"

// Header is the decoded zTXT record-0 header.
type Header struct {
	Version           uint16
	RecordCount       uint16
	DataSize          uint32
	RecordSize        uint16
	NumberBookmarks   uint16
	BookmarkRecord    uint16
	NumberAnnotations uint16
	AnnotationRecord  uint16
	Flags             uint8
	CRC32             uint32
}

// ReadHeader decodes a 24-byte zTXT record-0 header from raw.
func ReadHeader(raw []byte) (*Header, error) {
	c := bread.NewCursor(raw[:24])
	h := &Header{}
	var err error
	if h.Version, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.RecordCount, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.DataSize, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.RecordSize, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.NumberBookmarks, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.BookmarkRecord, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.NumberAnnotations, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.AnnotationRecord, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.Flags, err = c.ReadU8(); err != nil {
		return nil, err
	}
	c.Skip(1) // reserved
	if h.CRC32, err = c.ReadU32(); err != nil {
		return nil, err
	}
	return h, nil
}
