package identify

import (
	"bytes"
	"errors"
	"regexp"
)

// ErrInvalidOffset is returned when a rule's offset resolves to a
// negative byte position.
var ErrInvalidOffset = errors.New("identify: invalid offset")

// ErrInvalidRuleProgram is returned by Builder.Make when a rule was
// constructed with inconsistent parameters (e.g. a Func rule with a nil
// function).
var ErrInvalidRuleProgram = errors.New("identify: invalid rule program")

type ruleKind int

const (
	kindString ruleKind = iota
	kindStruct
	kindSearch
	kindRegex
	kindFunc
)

// FuncTest is a caller-supplied predicate for the Func rule variant. It
// receives the bytes from the rule's resolved offset to the end of the
// sniffed buffer and returns whether the test passed and the cursor
// position (relative to the start of that slice) to resume from.
type FuncTest func(tail []byte) (ok bool, newCursor int)

// rule is one step of a Program: a tagged union over the five variants
// the original magic-identifier DSL supports (string, struct, search,
// regex, func), each carrying only the fields it needs.
type rule struct {
	offset Offset
	kind   ruleKind

	pattern []byte // kindString, kindStruct: exact bytes to match

	searchSize int            // kindSearch, kindRegex: window width to search within
	searchVal  []byte         // kindSearch: literal bytes to find
	regex      *regexp.Regexp // kindRegex: pattern to search for

	fn FuncTest // kindFunc
}

// size returns the minimum and maximum extent (in bytes, from the start
// of the buffer) this rule could touch, given the cursor position left
// by the previous rule, along with the cursor position after a
// successful match.
func (r rule) size(cursor int) (minSize, maxSize, newCursor int, err error) {
	off, err := r.offset.resolve(cursor)
	if err != nil {
		return 0, 0, 0, err
	}
	switch r.kind {
	case kindString, kindStruct:
		end := off + len(r.pattern)
		return end, end, end, nil
	case kindSearch, kindRegex:
		end := off + r.searchSize
		return off, end, off, nil
	case kindFunc:
		// A Func rule's extent is unknowable without running it; callers
		// must ensure the static identifiers it's paired with already
		// cover the buffer size this rule will need.
		return off, off, off, nil
	default:
		return 0, 0, 0, ErrInvalidRuleProgram
	}
}

// test evaluates the rule against data (the full sniffed buffer), given
// the cursor left by the previous rule. It returns whether the rule
// matched and the cursor to carry into the next rule.
func (r rule) test(data []byte, cursor int) (bool, int, error) {
	off, err := r.offset.resolve(cursor)
	if err != nil {
		return false, 0, err
	}
	switch r.kind {
	case kindString, kindStruct:
		end := off + len(r.pattern)
		if end > len(data) {
			return false, 0, nil
		}
		if !bytes.Equal(data[off:end], r.pattern) {
			return false, 0, nil
		}
		return true, end, nil

	case kindSearch:
		end := off + r.searchSize
		if end > len(data) {
			end = len(data)
		}
		if off > end {
			return false, 0, nil
		}
		idx := bytes.Index(data[off:end], r.searchVal)
		if idx < 0 {
			return false, 0, nil
		}
		return true, off + idx + len(r.searchVal), nil

	case kindRegex:
		end := off + r.searchSize
		if end > len(data) {
			end = len(data)
		}
		if off > end {
			return false, 0, nil
		}
		loc := r.regex.FindIndex(data[off:end])
		if loc == nil {
			return false, 0, nil
		}
		return true, off + loc[1], nil

	case kindFunc:
		if off > len(data) {
			return false, 0, nil
		}
		ok, newCursor := r.fn(data[off:])
		if !ok {
			return false, 0, nil
		}
		return true, off + newCursor, nil

	default:
		return false, 0, ErrInvalidRuleProgram
	}
}
