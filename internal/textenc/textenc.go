// Package textenc decodes MOBI/PalmDOC text fields into Go strings
// given the numeric text-encoding value stored in the MOBI header, and
// unescapes HTML entities found inside title/author/description fields.
package textenc

import (
	"fmt"
	"html"

	"golang.org/x/text/encoding/charmap"
)

// Known MOBI text_encoding values.
const (
	CP1252 = 1252
	UTF8   = 65001
)

// Decode converts raw bytes tagged with the given MOBI text-encoding
// value into a UTF-8 Go string. UTF8 is returned as-is; CP1252 is
// transcoded via golang.org/x/text/encoding/charmap. Any other value
// is treated as CP1252, the Mobipocket-era default.
func Decode(raw []byte, encoding uint32) (string, error) {
	switch encoding {
	case UTF8:
		return string(raw), nil
	case CP1252, 0:
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("textenc: decoding CP1252: %w", err)
		}
		return string(out), nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("textenc: decoding unrecognized encoding %d as CP1252: %w", encoding, err)
		}
		return string(out), nil
	}
}

// UnescapeEntities replaces HTML/XML character and entity references
// (&amp;, &#233;, etc.) with their literal characters, as found in OPF
// and EXTH text fields carried over from an HTML-authoring pipeline.
func UnescapeEntities(s string) string {
	return html.UnescapeString(s)
}
