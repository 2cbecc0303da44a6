// Package bread provides a big-endian cursor reader over an in-memory
// byte slice, used by every binary format parser in this module in
// place of a pack-descriptor string.
package bread

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortRead is returned when a read would run past the end of the buffer.
var ErrShortRead = errors.New("bread: short read")

// Cursor reads big-endian fields from a byte slice, tracking position.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a Cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// Seek moves the cursor to an absolute offset. It does not validate
// the offset against the buffer length; a subsequent read will fail.
func (c *Cursor) Seek(offset int) {
	c.pos = offset
}

// Skip advances the cursor by n bytes (n may be negative).
func (c *Cursor) Skip(n int) {
	c.pos += n
}

func (c *Cursor) need(n int) error {
	if c.pos < 0 || n < 0 || c.pos+n > len(c.buf) {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortRead, n, c.pos, len(c.buf))
	}
	return nil
}

// ReadU8 reads one byte and advances the cursor.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadU16 reads a big-endian uint16 and advances the cursor.
func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadU32 reads a big-endian uint32 and advances the cursor.
func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadBytes reads n raw bytes and advances the cursor. The returned
// slice aliases the underlying buffer.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	v := c.buf[c.pos : c.pos+n]
	c.pos += n
	return v, nil
}

// ReadFixedString reads n bytes and trims trailing NUL bytes, returning
// a string. Used for fixed-width name fields (PDB database name, MOBI
// type/creator tags).
func (c *Cursor) ReadFixedString(n int) (string, error) {
	raw, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	return string(raw[:end]), nil
}

// PeekBytes returns n bytes at the current position without advancing.
func (c *Cursor) PeekBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	return c.buf[c.pos : c.pos+n], nil
}
