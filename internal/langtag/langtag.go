// Package langtag converts between BCP 47 language tags and the packed
// 16-bit locale codes used by the Mobipocket/MOBI format's locale field
// (low byte = main language, high byte = dialect/region).
package langtag

import "strings"

// packedCode pairs a primary-language byte with an optional dialect byte.
type packedCode struct {
	lang    uint32
	dialect uint32
}

func (c packedCode) value() uint32 {
	return c.lang | (c.dialect << 8)
}

// localeEntry binds one full BCP 47 tag (primary subtag, optionally with
// a region) to its packed Mobipocket code. Entries with no region are
// the bare-primary fallback for that language; entries with a region
// round-trip through their full tag.
type localeEntry struct {
	tag  string // lower-cased BCP 47, e.g. "en-us" or "ja"
	code packedCode
}

// localeTable is seeded from the set of codes a MOBI reader commonly
// encounters. Region dialects are only recorded where the Mobipocket
// format actually assigns a distinct dialect byte; languages without a
// recorded dialect round-trip to their bare primary subtag.
var localeTable = []localeEntry{
	{"en-us", packedCode{lang: 0x09, dialect: 0x04}},
	{"en", packedCode{lang: 0x09}},
	{"pt-br", packedCode{lang: 0x16, dialect: 0x01}},
	{"pt", packedCode{lang: 0x16}},
	{"zh-cn", packedCode{lang: 0x04, dialect: 0x02}},
	{"zh", packedCode{lang: 0x04}},
	{"de", packedCode{lang: 0x07}},
	{"fr", packedCode{lang: 0x0C}},
	{"es", packedCode{lang: 0x0A}},
	{"it", packedCode{lang: 0x10}},
	{"ja", packedCode{lang: 0x11}},
	{"ko", packedCode{lang: 0x12}},
	{"nl", packedCode{lang: 0x13}},
	{"ru", packedCode{lang: 0x19}},
	{"ar", packedCode{lang: 0x01}},
	{"sv", packedCode{lang: 0x1D}},
	{"no", packedCode{lang: 0x14}},
	{"da", packedCode{lang: 0x06}},
	{"fi", packedCode{lang: 0x0B}},
	{"el", packedCode{lang: 0x08}},
	{"he", packedCode{lang: 0x0D}},
	{"th", packedCode{lang: 0x1E}},
	{"tr", packedCode{lang: 0x1F}},
}

var (
	tagToCode     = map[string]packedCode{}
	codeToTag     = map[uint32]string{}
	primaryToCode = map[string]packedCode{}
	langToPrimary = map[uint32]string{}
)

func init() {
	for _, e := range localeTable {
		tagToCode[e.tag] = e.code
		codeToTag[e.code.value()] = e.tag
		if !strings.Contains(e.tag, "-") {
			primaryToCode[e.tag] = e.code
			langToPrimary[e.code.lang] = e.tag
		}
	}
}

// DefaultCode is used by IANAToMobi when the tag has no known mapping
// (English, US).
const DefaultCode = 0x0409

// IANAToMobi converts a BCP 47 language tag to a packed MOBI locale
// code. The full lower-cased tag is tried first (so "en-US" resolves to
// its region-specific code); failing that, the primary subtag alone is
// tried. Unknown or empty tags yield DefaultCode.
func IANAToMobi(tag string) uint32 {
	lower := strings.ToLower(tag)
	if code, ok := tagToCode[lower]; ok {
		return code.value()
	}
	primary := lower
	if i := strings.IndexByte(primary, '-'); i >= 0 {
		primary = primary[:i]
	}
	if code, ok := primaryToCode[primary]; ok {
		return code.value()
	}
	return DefaultCode
}

// MobiToIANA converts a packed MOBI locale code back to a BCP 47 tag.
// A code whose full (language, dialect) pair is in the table returns
// the region-qualified tag; a code whose dialect byte isn't recognized
// falls back to the bare primary subtag for that language. Returns
// ("", false) only when the low byte isn't in the known set at all.
func MobiToIANA(code uint32) (string, bool) {
	if tag, ok := codeToTag[code]; ok {
		return tag, true
	}
	lang := code & 0xff
	if tag, ok := langToPrimary[lang]; ok {
		return tag, true
	}
	return "", false
}
