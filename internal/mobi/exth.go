package mobi

import (
	"fmt"

	"github.com/arbordale/biblio/internal/bread"
)

// EXTHRecord is one decoded (type, data) pair from an EXTH header.
type EXTHRecord struct {
	Type uint32
	Data []byte
}

// EXTHHeader is the decoded EXTH metadata extension block.
type EXTHHeader struct {
	HeaderLength uint32
	Records      []EXTHRecord
}

// Known EXTH record types consumed by this module's metadata processor.
const (
	EXTHAuthor       = 100
	EXTHPublisher    = 101
	EXTHDescription  = 103
	EXTHISBN         = 104
	EXTHSubject      = 105
	EXTHPublishDate  = 106
	EXTHRights       = 109
	EXTHUpdatedTitle = 503
)

// readEXTH decodes an EXTH header starting at raw[0] ("EXTH" + header
// length + record count + records + padding).
func readEXTH(raw []byte) (*EXTHHeader, error) {
	if len(raw) < 12 {
		return nil, fmt.Errorf("mobi: EXTH header shorter than 12 bytes")
	}
	c := bread.NewCursor(raw)
	ident, err := c.ReadFixedString(4)
	if err != nil {
		return nil, err
	}
	if ident != "EXTH" {
		return nil, fmt.Errorf("mobi: expected EXTH identifier, got %q", ident)
	}
	h := &EXTHHeader{}
	if h.HeaderLength, err = c.ReadU32(); err != nil {
		return nil, err
	}
	recordCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}

	for i := uint32(0); i < recordCount; i++ {
		recType, err := c.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("mobi: reading EXTH record %d type: %w", i, err)
		}
		recLength, err := c.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("mobi: reading EXTH record %d length: %w", i, err)
		}
		if recLength < 8 {
			return nil, fmt.Errorf("%w: record %d declares length %d", ErrMalformedEXTHRecord, i, recLength)
		}
		data, err := c.ReadBytes(int(recLength - 8))
		if err != nil {
			return nil, fmt.Errorf("mobi: reading EXTH record %d data: %w", i, err)
		}
		h.Records = append(h.Records, EXTHRecord{Type: recType, Data: data})
	}

	return h, nil
}

// Find returns the data of the first record of the given type, if present.
func (h *EXTHHeader) Find(recordType uint32) ([]byte, bool) {
	if h == nil {
		return nil, false
	}
	for _, r := range h.Records {
		if r.Type == recordType {
			return r.Data, true
		}
	}
	return nil, false
}

// FindAll returns the data of every record of the given type, in order.
func (h *EXTHHeader) FindAll(recordType uint32) [][]byte {
	if h == nil {
		return nil
	}
	var out [][]byte
	for _, r := range h.Records {
		if r.Type == recordType {
			out = append(out, r.Data)
		}
	}
	return out
}
