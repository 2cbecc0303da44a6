package identify

import (
	"encoding/binary"
	"regexp"
)

// Program is an ordered sequence of rules evaluated against a sniffed
// prefix of a file, cursor-threaded the way the original pack-string
// identifier tuples were: each rule after the first resolves its Offset
// against the cursor position the previous rule left behind.
type Program struct {
	rules   []rule
	minSize int
	maxSize int
}

// Builder assembles a Program with a fluent interface, mirroring the
// original identifier() builder class.
type Builder struct {
	rules []rule
	err   error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// String adds a literal byte-string match at offset.
func (b *Builder) String(offset Offset, value []byte) *Builder {
	b.rules = append(b.rules, rule{offset: offset, kind: kindString, pattern: value})
	return b
}

// StructU8 adds a single big-endian uint8 field test at offset.
func (b *Builder) StructU8(offset Offset, want uint8) *Builder {
	return b.String(offset, []byte{want})
}

// StructU16 adds a single big-endian uint16 field test at offset.
func (b *Builder) StructU16(offset Offset, want uint16) *Builder {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, want)
	return b.String(offset, buf)
}

// StructU32 adds a single big-endian uint32 field test at offset.
func (b *Builder) StructU32(offset Offset, want uint32) *Builder {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, want)
	return b.String(offset, buf)
}

// StructBytes adds a raw fixed-width byte-pattern test at offset,
// standing in for a struct-unpack comparison against a byte-string
// field (e.g. a 4-character tag).
func (b *Builder) StructBytes(offset Offset, want []byte) *Builder {
	b.rules = append(b.rules, rule{offset: offset, kind: kindStruct, pattern: want})
	return b
}

// Search adds a bounded literal-byte search within the next searchSize
// bytes starting at offset.
func (b *Builder) Search(offset Offset, searchSize int, value []byte) *Builder {
	b.rules = append(b.rules, rule{offset: offset, kind: kindSearch, searchSize: searchSize, searchVal: value})
	return b
}

// Regex adds a bounded regular-expression search within the next
// searchSize bytes starting at offset.
func (b *Builder) Regex(offset Offset, searchSize int, pattern string) *Builder {
	re, err := regexp.Compile(pattern)
	if err != nil {
		b.err = err
		return b
	}
	b.rules = append(b.rules, rule{offset: offset, kind: kindRegex, searchSize: searchSize, regex: re})
	return b
}

// Func adds a caller-supplied predicate rule at offset.
func (b *Builder) Func(offset Offset, fn FuncTest) *Builder {
	if fn == nil {
		b.err = ErrInvalidRuleProgram
		return b
	}
	b.rules = append(b.rules, rule{offset: offset, kind: kindFunc, fn: fn})
	return b
}

// Make finalizes the Builder into a Program, computing its min/max
// buffer-size requirements up front.
func (b *Builder) Make() (*Program, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rules) == 0 {
		return nil, ErrInvalidRuleProgram
	}
	minSize, maxSize := 4096, 0
	cursor := 0
	for _, r := range b.rules {
		mn, mx, newCursor, err := r.size(cursor)
		if err != nil {
			return nil, err
		}
		if mn < minSize {
			minSize = mn
		}
		if mx > maxSize {
			maxSize = mx
		}
		cursor = newCursor
	}
	return &Program{rules: b.rules, minSize: minSize, maxSize: maxSize}, nil
}

// MustMake is Make, panicking on error. Reserved for builtin table
// construction where a bad Program is a programmer error, not runtime
// data.
func (b *Builder) MustMake() *Program {
	p, err := b.Make()
	if err != nil {
		panic(err)
	}
	return p
}

// test runs every rule in order against data, threading the cursor.
func (p *Program) test(data []byte) bool {
	if len(data) < p.minSize {
		return false
	}
	cursor := 0
	for _, r := range p.rules {
		ok, newCursor, err := r.test(data, cursor)
		if err != nil || !ok {
			return false
		}
		cursor = newCursor
	}
	return true
}
