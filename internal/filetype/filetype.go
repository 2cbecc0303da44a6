// Package filetype defines the static table of recognizable file types
// and the category predicates used to filter them.
package filetype

import "strings"

// FileType identifies a recognized file format by its dotted category
// path, MIME type, and human-readable description.
type FileType struct {
	Type        string
	MimeType    string
	Description string
}

// IsAudio reports whether ft belongs to the audio category.
func (ft FileType) IsAudio() bool { return strings.HasPrefix(ft.Type, "audio.") }

// IsImage reports whether ft belongs to the image category.
func (ft FileType) IsImage() bool { return strings.HasPrefix(ft.Type, "image.") }

// IsDocument reports whether ft belongs to the document category.
func (ft FileType) IsDocument() bool { return strings.HasPrefix(ft.Type, "document.") }

// IsEbook reports whether ft belongs to the ebook category.
func (ft FileType) IsEbook() bool { return strings.HasPrefix(ft.Type, "ebook.") }

// IsVideo reports whether ft belongs to the video category.
func (ft FileType) IsVideo() bool { return strings.HasPrefix(ft.Type, "video.") }

// Zero reports whether ft is the zero value (no type resolved).
func (ft FileType) Zero() bool { return ft == FileType{} }

// Audio types.
var (
	FLAC   = FileType{"audio.flac", "audio/x-flac", "FLAC audio"}
	ID3V22 = FileType{"audio.id3v220", "audio/mpeg", "Audio file with ID3 version 2.2 tags"}
	ID3V23 = FileType{"audio.id3v230", "audio/mpeg", "Audio file with ID3 version 2.3 tags"}
	ID3V24 = FileType{"audio.id3v240", "audio/mpeg", "Audio file with ID3 version 2.4 tags"}
	M4A    = FileType{"audio.mp4.itunes-aac-lc", "audio/mp4", "MPEG v4 audio, iTunes AAC-LC"}
	MP3_1  = FileType{"audio.mp3.1", "audio/mpeg", "MPEG v1 audio, layer 3"}
)

// Image types.
var (
	GIF87A    = FileType{"image.gif.87a", "image/gif", "GIF image, version 87a"}
	GIF89A    = FileType{"image.gif.89a", "image/gif", "GIF image, version 89a"}
	JPEGJFIF  = FileType{"image.jpeg.jfif", "image/jpeg", "JPEG image, JFIF standard"}
	JPEGEXIF  = FileType{"image.jpeg.exif", "image/jpeg", "JPEG image, EXIF standard"}
	PNG       = FileType{"image.png", "image/png", "PNG image"}
	SVG       = FileType{"image.sbg", "image/svg+xml", "SVG image"}
)

// Document types.
var (
	OpenOffice1Writer   = FileType{"document.openoffice1.writer", "application/vnd.sun.xml.writer", "OpenOffice.org 1.x Writer document"}
	OpenOffice1Calc     = FileType{"document.openoffice1.calc", "application/vnd.sun.xml.calc", "OpenOffice.org 1.x Calc document"}
	OpenOffice1Draw     = FileType{"document.openoffice1.draw", "application/vnd.sun.xml.draw", "OpenOffice.org 1.x Draw document"}
	OpenOffice1Impress  = FileType{"document.openoffice1.impress", "application/vnd.sun.xml.impress", "OpenOffice.org 1.x Impress document"}
	OpenOffice1Math     = FileType{"document.openoffice1.math", "application/vnd.sun.xml.math", "OpenOffice.org 1.x Math document"}
	OpenOffice1Database = FileType{"document.openoffice1.database", "application/vnd.sun.xml.database", "OpenOffice.org 1.x Database document"}
	PDF                 = FileType{"document.pdf", "application/pdf", "PDF document"}
)

// Ebook types.
var (
	EPUB2        = FileType{"ebook.epub.2", "application/epub+zip", "Epub ebook, version 2"}
	EPUB3        = FileType{"ebook.epub.3", "application/epub+zip", "Epub ebook, version 3"}
	LIT          = FileType{"ebook.lit", "application/x-ms-reader", "Microsoft Reader ebook"}
	MOBI         = FileType{"ebook.palm.mobi", "application/x-mobipocket-ebook", "Mobipocket ebook"}
	PDBEReader   = FileType{"ebook.palm.ereader", "application/vnd.palm", "eReader ebook"}
	PDBGutenpalm = FileType{"ebook.palm.gutenpalm", "applicatino/vnd.palm", "Gutenpalm ebook"}
	PDBPalmDOC   = FileType{"ebook.palm.palmdoc", "application/vnd.palm", "PalmDOC ebook"}
	PDBPlucker   = FileType{"ebook.palm.plucker", "application/vnd.palm", "Plucker ebook"}
)

// Video types.
var (
	AVI  = FileType{"video.msvideo", "video/x-msvideo", "AVI video"}
	M4V1 = FileType{"video.mp4.v1", "video/mp4", "MPEG v4 video, version 1"}
	M4V2 = FileType{"video.mp4.v2", "video/mp4", "MPEG v4 video, version 2"}
	M4V  = FileType{"video.mp4.itunes-avc-lc", "video/mp4", "MPEG v4 video, iTunes AVC-LC"}
	MKV  = FileType{"video.matroska", "video/x-matroska", "Matroska video"}
	WEBM = FileType{"video.webm", "video-webm", "WebM video"}
)

// ZIP and XML container types.
var (
	ZIP09 = FileType{"zip.09", "application/zip", "ZIP file, version 0.9"}
	ZIP10 = FileType{"zip.10", "application/zip", "ZIP file, version 1.0"}
	ZIP11 = FileType{"zip.11", "application/zip", "ZIP file, version 1.1"}
	ZIP20 = FileType{"zip.20", "application/zip", "ZIP file, version 2.0"}
	ZIP30 = FileType{"zip.30", "application/zip", "ZIP file, version 3.0"}

	OPF2  = FileType{"xml.opf.2", "application/oebps-package+xml", "Open packaging format xml, version 2"}
	XHTML = FileType{"xml.xhtml", "application/xhtml+xml", "XHTML document"}
	HTML  = FileType{"html", "text/html", "HTML document"}
	XML   = FileType{"xml", "text/xml", "XML document"}
)
