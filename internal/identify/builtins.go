package identify

import "github.com/arbordale/biblio/internal/filetype"

// registerBuiltins populates e with the builtin magic-identifier table.
// Registration order is significant: within a buffer-classification tier
// (text vs. binary) the first matching program wins, so more specific
// programs must be added before more general ones that could also match
// (e.g. the XHTML programs before the catch-all HTML search programs).
func registerBuiltins(e *Engine) {
	add := func(ft filetype.FileType, textOK, binaryOK bool, b *Builder) {
		e.AddIdentifier(ft, b.MustMake(), textOK, binaryOK, true)
	}

	// Audio.
	add(filetype.FLAC, false, true, NewBuilder().String(At(0), []byte("fLaC\x00")))
	add(filetype.M4A, false, true, NewBuilder().String(At(4), []byte("ftypM4A ")))
	add(filetype.MP3_1, false, true, NewBuilder().StructU16(At(0), 0xfffb))
	add(filetype.ID3V22, false, true, NewBuilder().String(At(0), []byte("ID3")).StructBytes(At(3), []byte{2, 0}))
	add(filetype.ID3V23, false, true, NewBuilder().String(At(0), []byte("ID3")).StructBytes(At(3), []byte{3, 0}))
	add(filetype.ID3V24, false, true, NewBuilder().String(At(0), []byte("ID3")).StructBytes(At(3), []byte{4, 0}))

	// Images.
	add(filetype.GIF87A, false, true, NewBuilder().String(At(0), []byte("GIF87a")))
	add(filetype.GIF89A, false, true, NewBuilder().String(At(0), []byte("GIF89a")))
	add(filetype.JPEGJFIF, false, true, NewBuilder().StructU16(At(0), 0xffd8).String(At(6), []byte("JFIF")))
	add(filetype.JPEGEXIF, false, true, NewBuilder().StructU16(At(0), 0xffd8).String(At(6), []byte("Exif")))
	add(filetype.PNG, false, true, NewBuilder().String(At(0), []byte("\x89PNG\x0d\x0a\x1a\x0a")))

	// Palm database family: all keyed on the 8-byte type+creator tag at
	// offset 60 of the 78-byte PDB header.
	add(filetype.MOBI, false, true, NewBuilder().String(At(60), []byte("BOOKMOBI")))
	add(filetype.PDBEReader, false, true, NewBuilder().String(At(60), []byte("PNRdPPrs")))
	add(filetype.PDBGutenpalm, false, true, NewBuilder().String(At(60), []byte("zTXT")))
	add(filetype.PDBPalmDOC, false, true, NewBuilder().String(At(60), []byte("TEXtREAd")))
	add(filetype.PDBPlucker, false, true, NewBuilder().String(At(60), []byte("DataPlkr")))

	add(filetype.PDF, false, true, NewBuilder().String(At(0), []byte("%PDF-")))
	add(filetype.LIT, false, true, NewBuilder().String(At(0), []byte("ITOLITLS")))

	// Zipped documents: EPUB2 and OpenOffice.org 1.x all share the
	// "PK\003\004" + stored-mimetype-entry shape, distinguished only by
	// the mimetype string at offset 50.
	zipMimetypePrefix := []byte("\x08\x00\x00\x00mimetypeapplication/")
	zipDoc := func(mimetypeSuffix string) *Builder {
		return NewBuilder().
			String(At(0), []byte("PK\x03\x04")).
			String(At(26), zipMimetypePrefix).
			String(At(50), []byte(mimetypeSuffix))
	}
	add(filetype.EPUB2, false, true, zipDoc("epub+zip"))
	add(filetype.OpenOffice1Writer, false, true, zipDoc("vnd.sun.xml.writer"))
	add(filetype.OpenOffice1Calc, false, true, zipDoc("vnd.sun.xml.calc"))
	add(filetype.OpenOffice1Draw, false, true, zipDoc("vnd.sun.xml.draw"))
	add(filetype.OpenOffice1Impress, false, true, zipDoc("vnd.sun.xml.impress"))
	add(filetype.OpenOffice1Math, false, true, zipDoc("vnd.sun.xml.math"))
	add(filetype.OpenOffice1Database, false, true, zipDoc("vnd.sun.xml.base"))

	// Video.
	add(filetype.M4V1, false, true, NewBuilder().String(At(4), []byte("ftypisom")))
	add(filetype.M4V1, false, true, NewBuilder().String(At(4), []byte("ftypmp41")))
	add(filetype.M4V2, false, true, NewBuilder().String(At(4), []byte("ftypmp42")))
	add(filetype.M4V, false, true, NewBuilder().String(At(4), []byte("ftypM4V ")))
	add(filetype.MKV, false, true, NewBuilder().
		StructU32(At(0), 0x1a45dfa3).
		Search(At(5), 4096, []byte{0x42, 0x82}).
		String(Fwd(1), []byte("matroska")))
	add(filetype.WEBM, false, true, NewBuilder().
		StructU32(At(0), 0x1a45dfa3).
		Search(At(5), 4096, []byte{0x42, 0x82}).
		String(Fwd(1), []byte("webm")))
	add(filetype.AVI, false, true, NewBuilder().String(At(0), []byte("RIFF")).String(At(8), []byte("AVI\x20")))

	// Generic ZIP files, distinguished only by the "version made by" byte.
	add(filetype.ZIP09, false, true, NewBuilder().String(At(0), []byte("PK\x03\x04")).StructU8(At(4), 0x09))
	add(filetype.ZIP10, false, true, NewBuilder().String(At(0), []byte("PK\x03\x04")).StructU8(At(4), 0x0a))
	add(filetype.ZIP11, false, true, NewBuilder().String(At(0), []byte("PK\x03\x04")).StructU8(At(4), 0x0b))
	add(filetype.ZIP20, false, true, NewBuilder().String(At(0), []byte("PK\x03\x04")).StructU8(At(4), 0x14))
	add(filetype.ZIP30, false, true, NewBuilder().String(At(0), []byte("PK\x03\x04")).StructU8(At(4), 0x2d))

	// SGML/XML/HTML, text-only. Order matters: the OPF/SVG/XHTML programs
	// must be tried before the bare HTML search programs, since a real
	// XHTML document would also satisfy a loose "<head" search.
	add(filetype.OPF2, true, false, NewBuilder().
		String(At(0), []byte("<?xml")).
		Regex(At(20), 400, `<package[^>]+xmlns=['"]http://www\.idpf\.org/2007/opf['"]`))
	add(filetype.SVG, true, false, NewBuilder().
		String(At(0), []byte("<?xml")).
		Regex(At(20), 400, `<svg[^>]+xmlns=['"]http://www\.w3\.org/2000/svg['"]`))
	add(filetype.XHTML, true, false, NewBuilder().
		String(At(0), []byte(`<?xml version="`)).
		Search(At(19), 4096, []byte("<!doctype html")))
	add(filetype.XHTML, true, false, NewBuilder().
		String(At(0), []byte(`<?xml version='`)).
		Search(At(19), 4096, []byte("<!doctype html")))
	add(filetype.HTML, true, false, NewBuilder().Search(At(0), 4096, []byte("<!doctype html")))
	add(filetype.HTML, true, false, NewBuilder().Search(At(0), 4096, []byte("<html")))
	add(filetype.HTML, true, false, NewBuilder().Search(At(0), 4096, []byte("<head")))
	add(filetype.HTML, true, false, NewBuilder().Search(At(0), 4096, []byte("<title")))
	add(filetype.XML, true, false, NewBuilder().String(At(0), []byte("<?xml")))
}
