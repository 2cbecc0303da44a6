package langtag

import "testing"

func TestIANAToMobiKnown(t *testing.T) {
	if got := IANAToMobi("en-US"); got != 0x0409 {
		t.Errorf("IANAToMobi(en-US) = %#x, want 0x0409", got)
	}
	if got := IANAToMobi("en"); got != 0x09 {
		t.Errorf("IANAToMobi(en) = %#x, want 0x09", got)
	}
	if got := IANAToMobi("fr-CA"); got != IANAToMobi("fr") {
		t.Errorf("unmapped regional subtag should fall back to primary: got %#x, want %#x", got, IANAToMobi("fr"))
	}
}

func TestIANAToMobiUnknown(t *testing.T) {
	if got := IANAToMobi("xx"); got != DefaultCode {
		t.Errorf("IANAToMobi(xx) = %#x, want DefaultCode", got)
	}
	if got := IANAToMobi(""); got != DefaultCode {
		t.Errorf("IANAToMobi(\"\") = %#x, want DefaultCode", got)
	}
}

func TestMobiToIANARegionRoundTrip(t *testing.T) {
	if got, ok := MobiToIANA(0x0409); !ok || got != "en-us" {
		t.Errorf("MobiToIANA(0x0409) = %s, %v, want en-us, true", got, ok)
	}
}

func TestMobiToIANAPrimaryRoundTrip(t *testing.T) {
	for _, tag := range []string{"en", "de", "fr", "ja", "ru"} {
		code := IANAToMobi(tag)
		got, ok := MobiToIANA(code)
		if !ok || got != tag {
			t.Errorf("round trip %s -> %#x -> %s, %v", tag, code, got, ok)
		}
	}
}

func TestMobiToIANAUnrecognizedDialectFallsBackToPrimary(t *testing.T) {
	// 0x0507 is German (0x07) with an unrecognized dialect byte; the
	// table has no de-* region entries, so this should still resolve to
	// the bare primary tag rather than report unknown.
	got, ok := MobiToIANA(0x0507)
	if !ok || got != "de" {
		t.Errorf("MobiToIANA(0x0507) = %s, %v, want de, true", got, ok)
	}
}

func TestMobiToIANAUnknown(t *testing.T) {
	if _, ok := MobiToIANA(0xff); ok {
		t.Errorf("expected unknown code to report ok=false")
	}
}
