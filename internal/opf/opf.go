// Package opf flattens an EPUB package document's <metadata> block into
// raw (qualified name, attributes, text) triples, deferring any
// semantic interpretation (which dc:creator is the primary author,
// which dc:identifier is the ISBN) to the process package. Unmarshaling
// into typed structs was rejected: EPUB producers are inconsistent
// about namespace prefixes and repeat elements (multiple dc:creator,
// multiple dc:identifier with different opf:scheme values) in ways a
// fixed struct shape loses.
package opf

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Entry is one flattened metadata element: its namespace-qualified
// name, its attributes, and its character content.
type Entry struct {
	Space string
	Local string
	Attrs []xml.Attr
	Text  string
}

// QName returns the "space local" form used for lookups, matching
// encoding/xml.Name's Space/Local split.
func (e Entry) QName() xml.Name {
	return xml.Name{Space: e.Space, Local: e.Local}
}

// Attr returns the value of the attribute with the given local name,
// ignoring its namespace, and whether it was present.
func (e Entry) Attr(local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Package is the flattened content of an OPF package document: the
// package element's version and unique-identifier attributes plus its
// metadata entries. Manifest, spine and guide children are not kept.
type Package struct {
	Version  string
	UniqueID string
	Metadata []Entry
}

// Find returns the first metadata entry with the given local element
// name, regardless of namespace.
func (p *Package) Find(local string) (Entry, bool) {
	for _, e := range p.Metadata {
		if e.Local == local {
			return e, true
		}
	}
	return Entry{}, false
}

// FindAll returns every metadata entry with the given local element
// name, in document order.
func (p *Package) FindAll(local string) []Entry {
	var out []Entry
	for _, e := range p.Metadata {
		if e.Local == local {
			out = append(out, e)
		}
	}
	return out
}

// Parse reads an OPF package document from r, walking tokens directly
// rather than unmarshaling into a fixed struct shape, and returns the
// flattened metadata entries found inside its <metadata> element. A
// decode error after the package element or a metadata entry has been
// read ends the walk and returns what was collected so far.
func Parse(r io.Reader) (*Package, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	pkg := &Package{}
	inMetadata := false
	var current *Entry
	var text []byte

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if pkg.Version != "" || len(pkg.Metadata) > 0 {
				break
			}
			return nil, fmt.Errorf("opf: parsing package document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "package" && pkg.Version == "":
				for _, a := range t.Attr {
					switch a.Name.Local {
					case "version":
						pkg.Version = a.Value
					case "unique-identifier":
						pkg.UniqueID = a.Value
					}
				}
			case t.Name.Local == "metadata":
				inMetadata = true
			case inMetadata:
				current = &Entry{Space: t.Name.Space, Local: t.Name.Local, Attrs: t.Attr}
				text = text[:0]
			}
		case xml.CharData:
			if inMetadata && current != nil {
				text = append(text, t...)
			}
		case xml.EndElement:
			switch {
			case t.Name.Local == "metadata":
				inMetadata = false
			case inMetadata && current != nil && t.Name.Local == current.Local:
				current.Text = string(text)
				pkg.Metadata = append(pkg.Metadata, *current)
				current = nil
			}
		}
	}

	if pkg.Version == "" && len(pkg.Metadata) == 0 {
		return nil, fmt.Errorf("opf: no <package> element found")
	}
	return pkg, nil
}
