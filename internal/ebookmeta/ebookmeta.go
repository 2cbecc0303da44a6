// Package ebookmeta defines the normalized, fixed-field metadata shape
// every format-specific processor produces, replacing the dict-style
// "Storage" object the original implementation built records up in.
package ebookmeta

import (
	"time"

	"github.com/arbordale/biblio/internal/dateparse"
	"github.com/arbordale/biblio/internal/filetype"
)

// Metadata is the normalized result of reading and processing an
// ebook file's bibliographic fields. Zero values (empty string/slice/map,
// dateparse.Undefined) mean the source format didn't carry that field,
// not that it failed to parse.
type Metadata struct {
	FileType filetype.FileType

	Title     string
	TitleSort string

	Authors      []string
	Contributors []string

	Series         string
	SeriesIndex    float64
	HasSeriesIndex bool // SeriesIndex is meaningless when false

	Publisher    string
	PublishDate  time.Time
	DateOriginal time.Time

	// Identifiers maps a lower-cased scheme name (e.g. "isbn", "uuid",
	// "mobi-asin") to that scheme's value.
	Identifiers map[string]string

	Description string
	Rights      string

	// Languages is an ordered list of IANA language tags; a format may
	// carry more than one.
	Languages []string

	// Subjects holds the source's tag/subject terms, deduplicated in
	// the order first seen.
	Subjects []string
}

// NewMetadata returns a Metadata with PublishDate/DateOriginal set to
// the "undefined" sentinel and FileType set to ft.
func NewMetadata(ft filetype.FileType) Metadata {
	return Metadata{
		FileType:     ft,
		PublishDate:  dateparse.Undefined,
		DateOriginal: dateparse.Undefined,
		Identifiers:  map[string]string{},
	}
}

// HasPublishDate reports whether PublishDate was actually parsed from
// the source, as opposed to left at its zero/undefined value.
func (m Metadata) HasPublishDate() bool {
	return dateparse.IsDefined(m.PublishDate)
}

// HasDateOriginal reports whether DateOriginal was actually parsed from
// the source, as opposed to left at its zero/undefined value.
func (m Metadata) HasDateOriginal() bool {
	return dateparse.IsDefined(m.DateOriginal)
}
