// Package process turns a format's raw decoded headers into a
// normalized ebookmeta.Metadata, the step the original implementation
// called a parser's "processor".
package process

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arbordale/biblio/internal/dateparse"
	"github.com/arbordale/biblio/internal/ebookmeta"
	"github.com/arbordale/biblio/internal/filetype"
	"github.com/arbordale/biblio/internal/langtag"
	"github.com/arbordale/biblio/internal/mobi"
	"github.com/arbordale/biblio/internal/opf"
	"github.com/arbordale/biblio/internal/pdb"
	"github.com/arbordale/biblio/internal/textenc"
)

// authorSeparators splits a joined author string on semicolons and on
// the words "and"/"with"/"&", case-insensitively, the way a MOBI
// EXTH author record or an OPF dc:creator joins multiple authors.
var authorSeparators = regexp.MustCompile(`(?i),?\s+(and|with|&)\s+|;`)

// SplitAuthors splits a raw author string into individual names,
// trimming whitespace and discarding empty entries.
func SplitAuthors(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := authorSeparators.Split(raw, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractISBN strips hyphens from s and reports whether anything was
// left, the way the MOBI and OPF processors normalize an ISBN-104/
// dc:identifier value. It does not otherwise validate the result, so a
// check digit of "X" on an ISBN-10 survives.
func ExtractISBN(s string) (string, bool) {
	isbn := strings.ReplaceAll(strings.TrimSpace(s), "-", "")
	return isbn, isbn != ""
}

// appendUnique appends value to out unless it already appears,
// preserving the order values were first seen. It implements the
// insertion-order dedup tags and authors both need.
func appendUnique(out []string, value string) []string {
	for _, v := range out {
		if v == value {
			return out
		}
	}
	return append(out, value)
}

// MOBIMetadata builds ebookmeta.Metadata from a decoded MOBI header.
// Title falls back to the sanitized PDB record name when the EXTH
// updated-title record and the MOBI full name are both absent.
func MOBIMetadata(hdr *pdb.Header, mobiHdr *mobi.Header) ebookmeta.Metadata {
	m := ebookmeta.NewMetadata(filetype.MOBI)

	title := decodeField([]byte(mobiHdr.FullName), mobiHdr.TextEncoding)
	if t, ok := mobiHdr.EXTH.Find(mobi.EXTHUpdatedTitle); ok {
		title = decodeField(t, mobiHdr.TextEncoding)
	}
	if title == "" {
		title = pdb.SanitizeName(hdr.Name)
	}
	m.Title = title

	if tag, ok := langtag.MobiToIANA(mobiHdr.Locale); ok {
		m.Languages = append(m.Languages, tag)
	} else {
		m.Languages = append(m.Languages, "und")
	}

	for _, v := range mobiHdr.EXTH.FindAll(mobi.EXTHAuthor) {
		for _, name := range SplitAuthors(decodeField(v, mobiHdr.TextEncoding)) {
			m.Authors = appendUnique(m.Authors, name)
		}
	}
	if v, ok := mobiHdr.EXTH.Find(mobi.EXTHPublisher); ok {
		m.Publisher = decodeField(v, mobiHdr.TextEncoding)
	}
	if v, ok := mobiHdr.EXTH.Find(mobi.EXTHDescription); ok {
		m.Description = decodeField(v, mobiHdr.TextEncoding)
	}
	for _, v := range mobiHdr.EXTH.FindAll(mobi.EXTHSubject) {
		m.Subjects = appendUnique(m.Subjects, decodeField(v, mobiHdr.TextEncoding))
	}
	if v, ok := mobiHdr.EXTH.Find(mobi.EXTHRights); ok {
		m.Rights = decodeField(v, mobiHdr.TextEncoding)
	}
	if v, ok := mobiHdr.EXTH.Find(mobi.EXTHISBN); ok {
		if isbn, ok := ExtractISBN(decodeField(v, mobiHdr.TextEncoding)); ok {
			m.Identifiers["isbn"] = isbn
		}
	}
	if v, ok := mobiHdr.EXTH.Find(mobi.EXTHPublishDate); ok {
		m.PublishDate = dateparse.Parse(decodeField(v, mobiHdr.TextEncoding))
	}

	return m
}

func decodeField(raw []byte, encoding uint32) string {
	s, err := textenc.Decode(raw, encoding)
	if err != nil {
		return string(raw)
	}
	return textenc.UnescapeEntities(s)
}

// OPFMetadata builds ebookmeta.Metadata from a flattened OPF package
// document, for whichever ebook FileType the caller identified (EPUB2,
// EPUB3, or a bare OPF file).
func OPFMetadata(ft filetype.FileType, pkg *opf.Package) ebookmeta.Metadata {
	m := ebookmeta.NewMetadata(ft)

	if title, ok := pkg.Find("title"); ok {
		m.Title = textenc.UnescapeEntities(title.Text)
	}
	for _, creator := range pkg.FindAll("creator") {
		if role, ok := creator.Attr("role"); ok && !strings.EqualFold(role, "aut") {
			continue
		}
		name := textenc.UnescapeEntities(strings.TrimSpace(creator.Text))
		if name != "" {
			m.Authors = appendUnique(m.Authors, name)
		}
	}
	for _, contributor := range pkg.FindAll("contributor") {
		name := textenc.UnescapeEntities(strings.TrimSpace(contributor.Text))
		if name != "" {
			m.Contributors = appendUnique(m.Contributors, name)
		}
	}
	for _, lang := range pkg.FindAll("language") {
		tag := strings.TrimSpace(lang.Text)
		if tag != "" {
			m.Languages = append(m.Languages, tag)
		}
	}
	if pub, ok := pkg.Find("publisher"); ok {
		m.Publisher = textenc.UnescapeEntities(pub.Text)
	}
	if desc, ok := pkg.Find("description"); ok {
		m.Description = textenc.UnescapeEntities(desc.Text)
	}
	if rights, ok := pkg.Find("rights"); ok {
		m.Rights = textenc.UnescapeEntities(rights.Text)
	}
	for _, subj := range pkg.FindAll("subject") {
		for _, tag := range strings.Split(subj.Text, ",") {
			tag = strings.TrimSpace(textenc.UnescapeEntities(tag))
			if tag != "" {
				m.Subjects = appendUnique(m.Subjects, tag)
			}
		}
	}
	if date, ok := pkg.Find("date"); ok {
		m.PublishDate = dateparse.Parse(strings.TrimSpace(date.Text))
	}

	for _, id := range pkg.FindAll("identifier") {
		scheme, ok := id.Attr("scheme")
		if !ok || strings.TrimSpace(scheme) == "" {
			continue
		}
		value := strings.TrimSpace(id.Text)
		if value == "" {
			continue
		}
		if strings.EqualFold(scheme, "ISBN") {
			if isbn, ok := ExtractISBN(value); ok {
				value = isbn
			}
		}
		m.Identifiers[strings.ToLower(scheme)] = value
	}

	for _, meta := range pkg.FindAll("meta") {
		name, ok := meta.Attr("name")
		if !ok {
			continue
		}
		content, _ := meta.Attr("content")
		content = strings.TrimSpace(content)
		switch name {
		case "calibre:series":
			m.Series = textenc.UnescapeEntities(content)
		case "calibre:series_index":
			if idx, err := strconv.ParseFloat(content, 64); err == nil {
				m.SeriesIndex = idx
				m.HasSeriesIndex = true
			}
		case "calibre:title_sort":
			m.TitleSort = textenc.UnescapeEntities(content)
		}
	}

	return m
}
