package dateparse

import "testing"

func TestParseKnownLayouts(t *testing.T) {
	cases := []string{
		"2021-05-03T10:15:00Z",
		"2021-05-03T10:15:00",
		"2021-05-03 10:15:00",
		"2021-05-03",
		"2021-05",
		"2021",
	}
	for _, s := range cases {
		got := Parse(s)
		if !IsDefined(got) {
			t.Errorf("Parse(%q) returned Undefined", s)
		}
		if got.Year() != 2021 {
			t.Errorf("Parse(%q).Year() = %d, want 2021", s, got.Year())
		}
	}
}

func TestParseUnrecognized(t *testing.T) {
	got := Parse("not a date")
	if IsDefined(got) {
		t.Errorf("Parse(garbage) = %v, want Undefined", got)
	}
	if got != Undefined {
		t.Errorf("Parse(garbage) = %v, want exactly Undefined", got)
	}
}
