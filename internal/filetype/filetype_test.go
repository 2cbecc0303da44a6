package filetype

import "testing"

func TestCategoryPredicates(t *testing.T) {
	cases := []struct {
		ft   FileType
		pred func(FileType) bool
	}{
		{FLAC, FileType.IsAudio},
		{PNG, FileType.IsImage},
		{PDF, FileType.IsDocument},
		{MOBI, FileType.IsEbook},
		{AVI, FileType.IsVideo},
	}
	for _, c := range cases {
		if !c.pred(c.ft) {
			t.Errorf("%+v failed its expected category predicate", c.ft)
		}
	}
}

func TestZero(t *testing.T) {
	if !(FileType{}).Zero() {
		t.Errorf("zero-value FileType should report Zero() true")
	}
	if MOBI.Zero() {
		t.Errorf("MOBI should not report Zero() true")
	}
}

func TestCrossCategoryPredicatesAreFalse(t *testing.T) {
	if MOBI.IsAudio() || MOBI.IsImage() || MOBI.IsDocument() || MOBI.IsVideo() {
		t.Errorf("MOBI should only match IsEbook")
	}
}
