package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// EPUBReader provides access to the files inside an EPUB's OCF (Open
// Container Format) zip container.
type EPUBReader struct {
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
	opfPath   string
}

// container.xml structure
type container struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

var (
	// ErrNotAnOcfContainer means the zip has no uncompressed "mimetype"
	// entry declaring application/epub+zip.
	ErrNotAnOcfContainer = errors.New("epub: not an OCF container (missing or invalid mimetype entry)")
	// ErrMissingContainer means META-INF/container.xml is absent.
	ErrMissingContainer = errors.New("epub: META-INF/container.xml not found")
	// ErrMalformedRootfile means container.xml could not be parsed,
	// named no rootfile, or has a rootfile missing its full-path or
	// media-type attribute.
	ErrMalformedRootfile = errors.New("epub: container.xml is malformed or names no rootfile")
	// ErrMissingOpf means the rootfile path named by container.xml
	// does not exist inside the zip.
	ErrMissingOpf = errors.New("epub: OPF rootfile path not found in container")
)

// Open opens an EPUB file and validates its OCF structure.
func Open(path string) (*EPUBReader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("epub: opening zip: %w", err)
	}

	reader := &EPUBReader{
		zipReader: zr,
		files:     make(map[string]*zip.File),
	}

	for _, f := range zr.File {
		name := normalizePath(f.Name)
		reader.files[name] = f
	}

	if err := reader.validateMimetype(); err != nil {
		zr.Close()
		return nil, err
	}

	if err := reader.parseContainer(); err != nil {
		zr.Close()
		return nil, err
	}

	if _, ok := reader.files[reader.opfPath]; !ok {
		zr.Close()
		return nil, fmt.Errorf("%w: %s", ErrMissingOpf, reader.opfPath)
	}

	return reader, nil
}

// Close closes the EPUB reader
func (r *EPUBReader) Close() error {
	return r.zipReader.Close()
}

// OPFPath returns the path to the OPF file
func (r *EPUBReader) OPFPath() string {
	return r.opfPath
}

// Files returns a map of all files in the EPUB
func (r *EPUBReader) Files() map[string]*zip.File {
	return r.files
}

// ReadFile reads the contents of a file from the EPUB
func (r *EPUBReader) ReadFile(path string) ([]byte, error) {
	path = normalizePath(path)
	f, ok := r.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// validateMimetype checks that the mimetype file exists, is stored
// uncompressed, and declares application/epub+zip.
func (r *EPUBReader) validateMimetype() error {
	f, ok := r.files["mimetype"]
	if !ok {
		return ErrNotAnOcfContainer
	}
	if f.Method != zip.Store {
		return fmt.Errorf("%w: mimetype entry is compressed", ErrNotAnOcfContainer)
	}

	content, err := r.ReadFile("mimetype")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotAnOcfContainer, err)
	}
	if string(content) != "application/epub+zip" {
		return fmt.Errorf("%w: got mimetype %q", ErrNotAnOcfContainer, content)
	}
	return nil
}

// parseContainer parses container.xml to extract the OPF rootfile path.
func (r *EPUBReader) parseContainer() error {
	content, err := r.ReadFile("META-INF/container.xml")
	if err != nil {
		return ErrMissingContainer
	}

	var c container
	if err := xml.Unmarshal(content, &c); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRootfile, err)
	}

	for _, rf := range c.Rootfiles.Rootfile {
		if rf.FullPath == "" || rf.MediaType == "" {
			return fmt.Errorf("%w: rootfile missing full-path or media-type", ErrMalformedRootfile)
		}
	}

	for _, rf := range c.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" {
			r.opfPath = normalizePath(rf.FullPath)
			return nil
		}
	}

	if len(c.Rootfiles.Rootfile) > 0 {
		r.opfPath = normalizePath(c.Rootfiles.Rootfile[0].FullPath)
		return nil
	}

	return ErrMalformedRootfile
}

// normalizePath normalizes file paths (removes ./ prefix)
func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "./")
	return path
}
