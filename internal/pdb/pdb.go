// Package pdb reads the 78-byte Palm Database header and its record
// offset/length table, the container format shared by MOBI, PalmDOC,
// eReader, Plucker, and zTXT ebooks.
package pdb

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/arbordale/biblio/internal/bread"
)

// HeaderSize is the fixed size of the PDB header, in bytes.
const HeaderSize = 78

// palmEpochOffset is the number of seconds between the Palm epoch
// (1904-01-01 UTC) and the Unix epoch (1970-01-01 UTC).
const palmEpochOffset = 2082844800

var (
	// ErrTooShort is returned when the buffer is smaller than HeaderSize.
	ErrTooShort = errors.New("pdb: buffer shorter than header size")
	// ErrRecordsNotMonotonic is returned when a record's offset does not
	// strictly exceed its predecessor's. The original parser never
	// asserted this; this implementation does, rather than silently
	// deriving a negative or zero record length.
	ErrRecordsNotMonotonic = errors.New("pdb: record offsets are not strictly increasing")
)

// Record describes one entry in the record table: its byte offset and
// length within the file, derived from consecutive offsets (the last
// record's length reaches to the end of the file).
type Record struct {
	Offset uint32
	Length uint32
}

// Header is the decoded 78-byte PDB header plus its derived record table.
type Header struct {
	Name               string
	Attributes         uint16
	Version            uint16
	CreationDate       uint32
	ModificationDate   uint32
	LastBackupDate     uint32
	ModificationNumber uint32
	AppInfoOffset      uint32
	SortInfoOffset     uint32
	Type               string
	Creator            string
	UniqueIDSeed       uint32
	NextRecordListID   uint32
	NumRecords         uint16

	Records []Record
}

// ReadHeader decodes the PDB header and record table from data, which
// must be the full file contents (record lengths are derived relative
// to len(data)).
func ReadHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrTooShort
	}
	c := bread.NewCursor(data)

	h := &Header{}
	var err error
	if h.Name, err = c.ReadFixedString(32); err != nil {
		return nil, err
	}
	if h.Attributes, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.Version, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.CreationDate, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.ModificationDate, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.LastBackupDate, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.ModificationNumber, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.AppInfoOffset, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.SortInfoOffset, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.Type, err = c.ReadFixedString(4); err != nil {
		return nil, err
	}
	if h.Creator, err = c.ReadFixedString(4); err != nil {
		return nil, err
	}
	if h.UniqueIDSeed, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.NextRecordListID, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.NumRecords, err = c.ReadU16(); err != nil {
		return nil, err
	}

	offsets := make([]uint32, h.NumRecords)
	for i := range offsets {
		off, err := c.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("pdb: reading record entry %d: %w", i, err)
		}
		// Each record entry is 8 bytes (offset + attributes + uniqueID);
		// skip the trailing 4 bytes this implementation doesn't expose.
		c.Skip(4)
		offsets[i] = off
	}

	records := make([]Record, len(offsets))
	for i, off := range offsets {
		if i > 0 && off <= offsets[i-1] {
			return nil, ErrRecordsNotMonotonic
		}
		var length uint32
		if i == len(offsets)-1 {
			length = uint32(len(data)) - off
		} else {
			length = offsets[i+1] - off
		}
		records[i] = Record{Offset: off, Length: length}
	}
	h.Records = records

	return h, nil
}

// RecordData returns the raw bytes of record i.
func (h *Header) RecordData(data []byte, i int) ([]byte, error) {
	if i < 0 || i >= len(h.Records) {
		return nil, fmt.Errorf("pdb: record index %d out of range", i)
	}
	r := h.Records[i]
	end := r.Offset + r.Length
	if int(end) > len(data) {
		return nil, fmt.Errorf("pdb: record %d extends past end of file", i)
	}
	return data[r.Offset:end], nil
}

// DecodeTimestamp applies the PDB timestamp convention: if the high bit
// of raw is set, it is an unsigned count of seconds since 1904-01-01
// UTC; otherwise it is a signed count of seconds since 1970-01-01 UTC.
func DecodeTimestamp(raw uint32) time.Time {
	if raw&0x80000000 != 0 {
		secs := int64(raw) - palmEpochOffset
		return time.Unix(secs, 0).UTC()
	}
	return time.Unix(int64(int32(raw)), 0).UTC()
}

var nameSanitizer = regexp.MustCompile(`[^-A-Za-z0-9'";:,. ]+`)

// SanitizeName replaces every run of characters outside the PDB-safe
// name alphabet with a single underscore. Used both for the raw PDB
// database name and, in the MOBI processor, as the title fallback when
// no EXTH/fullname title is present.
func SanitizeName(name string) string {
	return nameSanitizer.ReplaceAllString(name, "_")
}
