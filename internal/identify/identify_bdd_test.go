package identify_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/arbordale/biblio/internal/dateparse"
	"github.com/arbordale/biblio/internal/filetype"
	"github.com/arbordale/biblio/internal/identify"
	"github.com/arbordale/biblio/internal/langtag"
	"github.com/arbordale/biblio/internal/mobi"
	"github.com/arbordale/biblio/internal/process"
)

func TestIdentifyFeatures(t *testing.T) {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	featuresDir := filepath.Join(dir, "testdata", "features")

	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featuresDir},
			TestingT: t,
			Strict:   true,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned from godog, failed to run feature tests")
	}
}

// bddState holds per-scenario fixtures and results.
type bddState struct {
	buf        []byte
	record0    []byte
	identified filetype.FileType
	matched    bool

	exth       *mobi.EXTHHeader
	authors    []string
	publishStr string

	packedCode uint32
	tagResult  string
}

func parseEscaped(s string) []byte {
	unquoted, err := strconv.Unquote(`"` + s + `"`)
	if err != nil {
		return []byte(s)
	}
	return []byte(unquoted)
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &bddState{}

	ctx.Step(`^a buffer whose first four bytes are "([^"]*)" and whose bytes at offset (\d+) are "([^"]*)"$`,
		func(prefix string, offset int, tail string) error {
			s.buf = make([]byte, 4096)
			copy(s.buf, parseEscaped(prefix))
			copy(s.buf[offset:], parseEscaped(tail))
			return nil
		})

	ctx.Step(`^a buffer whose bytes (\d+) through (\d+) are "([^"]*)"$`, func(from, to int, value string) error {
		if s.buf == nil {
			s.buf = make([]byte, 4096)
		}
		copy(s.buf[from:], []byte(value))
		return nil
	})

	ctx.Step(`^record 0 of that buffer begins with the bytes "([^"]*)"$`, func(hexStr string) error {
		hexStr = strings.ReplaceAll(hexStr, " ", "")
		raw := make([]byte, len(hexStr)/2)
		for i := range raw {
			b, err := strconv.ParseUint(hexStr[2*i:2*i+2], 16, 8)
			if err != nil {
				return fmt.Errorf("bad hex byte %q: %w", hexStr[2*i:2*i+2], err)
			}
			raw[i] = byte(b)
		}
		s.record0 = raw
		return nil
	})

	ctx.Step(`^a buffer containing only "([^"]*)" preceded by whitespace$`, func(value string) error {
		s.buf = bytes.Repeat([]byte(" "), 4096)
		copy(s.buf[6:], []byte(value))
		return nil
	})

	ctx.Step(`^a buffer starting with "([^"]*)" and containing "([^"]*)" within the first (\d+) bytes$`,
		func(prefix, needle string, within int) error {
			s.buf = bytes.Repeat([]byte(" "), 4096)
			needleBytes := parseEscaped(needle)
			copy(s.buf, []byte(prefix))
			pos := within - len(needleBytes) - 1
			if pos < len(prefix) {
				pos = len(prefix)
			}
			copy(s.buf[pos:], needleBytes)
			return nil
		})

	ctx.Step(`^an EXTH block with type (\d+) and data "([^"]*)"$`, func(recType int, data string) error {
		hdr, err := mobi.ReadHeader(buildRecord0WithEXTH(uint32(recType), data))
		if err != nil {
			return fmt.Errorf("building synthetic record 0: %w", err)
		}
		s.exth = hdr.EXTH
		return nil
	})

	ctx.Step(`^converting the language tag "([^"]*)" to a Mobipocket locale code$`, func(tag string) error {
		s.packedCode = langtag.IANAToMobi(tag)
		return nil
	})

	ctx.Step(`^converting the Mobipocket locale code "([^"]*)" to a language tag$`, func(codeStr string) error {
		codeStr = strings.TrimPrefix(codeStr, "0x")
		code, err := strconv.ParseUint(codeStr, 16, 32)
		if err != nil {
			return fmt.Errorf("bad locale code %q: %w", codeStr, err)
		}
		tag, ok := langtag.MobiToIANA(uint32(code))
		if !ok {
			return fmt.Errorf("no language tag for locale code %s", codeStr)
		}
		s.tagResult = tag
		return nil
	})

	ctx.Step(`^the buffer is identified$`, func() error {
		e := identify.Default()
		ft, ok := e.IdentifyBytes(s.buf)
		s.identified, s.matched = ft, ok
		return nil
	})

	ctx.Step(`^the EXTH block is decoded$`, func() error {
		if v, ok := s.exth.Find(mobi.EXTHAuthor); ok {
			s.authors = process.SplitAuthors(string(v))
		}
		if v, ok := s.exth.Find(mobi.EXTHPublishDate); ok {
			s.publishStr = string(v)
		}
		return nil
	})

	ctx.Step(`^the identified type is "([^"]*)"$`, func(want string) error {
		if !s.matched {
			return fmt.Errorf("expected a match for type %q, got none", want)
		}
		if s.identified.Type != want {
			return fmt.Errorf("identified type = %q, want %q", s.identified.Type, want)
		}
		return nil
	})

	ctx.Step(`^decoding record 0 yields compression (\d+), text length (\d+), record count (\d+), record size (\d+), encryption (\d+)$`,
		func(compression, textLength, recordCount, recordSize, encryption int) error {
			hdr, err := mobi.ReadHeader(s.record0)
			if err != nil {
				return fmt.Errorf("mobi.ReadHeader: %w", err)
			}
			if int(hdr.Compression) != compression {
				return fmt.Errorf("Compression = %d, want %d", hdr.Compression, compression)
			}
			if int(hdr.TextLength) != textLength {
				return fmt.Errorf("TextLength = %d, want %d", hdr.TextLength, textLength)
			}
			if int(hdr.RecordCount) != recordCount {
				return fmt.Errorf("RecordCount = %d, want %d", hdr.RecordCount, recordCount)
			}
			if int(hdr.RecordSize) != recordSize {
				return fmt.Errorf("RecordSize = %d, want %d", hdr.RecordSize, recordSize)
			}
			if int(hdr.Encryption) != encryption {
				return fmt.Errorf("Encryption = %d, want %d", hdr.Encryption, encryption)
			}
			return nil
		})

	ctx.Step(`^the author list is "([^"]*)"$`, func(want string) error {
		got := strings.Join(s.authors, ", ")
		if got != want {
			return fmt.Errorf("author list = %q, want %q", got, want)
		}
		return nil
	})

	ctx.Step(`^the publish date is "([^"]*)"$`, func(want string) error {
		got := dateparse.Parse(s.publishStr)
		if !dateparse.IsDefined(got) {
			return fmt.Errorf("publish date failed to parse %q", s.publishStr)
		}
		wantDate := dateparse.Parse(want)
		if !got.Equal(wantDate) {
			return fmt.Errorf("publish date = %v, want %v", got, wantDate)
		}
		return nil
	})

	ctx.Step(`^the packed locale code is "([^"]*)"$`, func(want string) error {
		want = strings.TrimPrefix(want, "0x")
		wantVal, err := strconv.ParseUint(want, 16, 32)
		if err != nil {
			return fmt.Errorf("bad expected locale code %q: %w", want, err)
		}
		if uint64(s.packedCode) != wantVal {
			return fmt.Errorf("packed locale code = %#x, want %#x", s.packedCode, wantVal)
		}
		return nil
	})

	ctx.Step(`^the language tag is "([^"]*)"$`, func(want string) error {
		if s.tagResult != want {
			return fmt.Errorf("language tag = %q, want %q", s.tagResult, want)
		}
		return nil
	})
}

func putU32(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

// buildRecord0WithEXTH builds a minimal MOBI record 0 carrying a single
// EXTH record of the given type, the same shape as a real MOBI header
// but stripped to only what mobi.ReadHeader needs to reach the EXTH
// block.
func buildRecord0WithEXTH(recType uint32, data string) []byte {
	headerLength := uint32(0xC8)
	recLen := uint32(8 + len(data))
	unpadded := 12 + int(recLen)
	pad := (4 - unpadded%4) % 4
	exthTotal := unpadded + pad

	exth := make([]byte, exthTotal)
	copy(exth[0:4], "EXTH")
	putU32(exth[4:8], uint32(exthTotal))
	putU32(exth[8:12], 1)
	putU32(exth[12:16], recType)
	putU32(exth[16:20], recLen)
	copy(exth[20:20+len(data)], data)

	headerEnd := 16 + headerLength
	fullname := "Synthetic"
	raw := make([]byte, int(headerEnd)+len(exth)+len(fullname)+2)

	raw[0], raw[1] = 0, 2 // compression = PalmDOC
	copy(raw[0x10:0x14], "MOBI")
	putU32(raw[0x14:0x18], headerLength)
	putU32(raw[0x80:0x84], 0x40) // exth_flags bit 6 set

	copy(raw[headerEnd:], exth)

	fullnameOffset := headerEnd + uint32(len(exth))
	putU32(raw[0x54:0x58], fullnameOffset)
	putU32(raw[0x58:0x5C], uint32(len(fullname)))
	copy(raw[fullnameOffset:], fullname)

	return raw
}
