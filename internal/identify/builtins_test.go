package identify

import (
	"bytes"
	"testing"

	"github.com/arbordale/biblio/internal/filetype"
)

func padTo(data []byte, size int) []byte {
	if len(data) >= size {
		return data
	}
	out := make([]byte, size)
	copy(out, data)
	return out
}

// padTextTo pads with spaces, not NUL bytes, so the result still
// classifies as text under text.IsText.
func padTextTo(data []byte, size int) []byte {
	if len(data) >= size {
		return data
	}
	out := bytes.Repeat([]byte(" "), size)
	copy(out, data)
	return out
}

func TestDefaultIdentifiesMOBI(t *testing.T) {
	e := Default()
	buf := make([]byte, 4096)
	copy(buf[60:], "BOOKMOBI")
	ft, ok := e.IdentifyBytes(buf)
	if !ok || ft != filetype.MOBI {
		t.Errorf("IdentifyBytes(mobi header) = %+v, %v, want MOBI, true", ft, ok)
	}
}

func TestDefaultIdentifiesPNG(t *testing.T) {
	e := Default()
	buf := padTo([]byte("\x89PNG\x0d\x0a\x1a\x0a"), 4096)
	ft, ok := e.IdentifyBytes(buf)
	if !ok || ft != filetype.PNG {
		t.Errorf("IdentifyBytes(png header) = %+v, %v, want PNG, true", ft, ok)
	}
}

func TestDefaultIdentifiesEPUB(t *testing.T) {
	e := Default()
	buf := make([]byte, 4096)
	copy(buf[0:], "PK\x03\x04")
	copy(buf[26:], "\x08\x00\x00\x00mimetypeapplication/")
	copy(buf[50:], "epub+zip")
	ft, ok := e.IdentifyBytes(buf)
	if !ok || ft != filetype.EPUB2 {
		t.Errorf("IdentifyBytes(epub header) = %+v, %v, want EPUB2, true", ft, ok)
	}
}

func TestDefaultIdentifiesXHTMLBeforeHTML(t *testing.T) {
	e := Default()
	buf := padTextTo([]byte(`<?xml version="1.0"?>`+"\n"+`<!doctype html>`), 4096)
	ft, ok := e.IdentifyBytes(buf)
	if !ok || ft != filetype.XHTML {
		t.Errorf("IdentifyBytes(xhtml doc) = %+v, %v, want XHTML, true", ft, ok)
	}
}

func TestDefaultUnrecognized(t *testing.T) {
	e := Default()
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i % 251)
	}
	if _, ok := e.IdentifyBytes(buf); ok {
		t.Errorf("expected no match for arbitrary binary noise")
	}
}
