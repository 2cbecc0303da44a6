// Package plucker decodes the record-0 header of a Plucker (DataPlkr)
// ebook's Palm Database.
package plucker

import "github.com/arbordale/biblio/internal/bread"

// Header is the decoded Plucker record-0 header.
type Header struct {
	UID         uint16
	Compression uint16
	NumRecords  uint16

	// Reserved maps a record id to its name field; HomeHTML is the id of
	// the record whose name is 0 (the document's home page), or -1 if
	// none was found.
	Reserved map[uint16]uint16
	HomeHTML int
}

// ReadHeader decodes a Plucker record-0 header from raw.
func ReadHeader(raw []byte) (*Header, error) {
	c := bread.NewCursor(raw)
	h := &Header{HomeHTML: -1, Reserved: make(map[uint16]uint16)}
	var err error
	if h.UID, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.Compression, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.NumRecords, err = c.ReadU16(); err != nil {
		return nil, err
	}
	for i := uint16(0); i < h.NumRecords; i++ {
		name, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		id, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		h.Reserved[id] = name
		if name == 0 {
			h.HomeHTML = int(id)
		}
	}
	return h, nil
}
