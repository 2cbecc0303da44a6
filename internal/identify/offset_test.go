package identify

import "testing"

func TestOffsetResolve(t *testing.T) {
	cases := []struct {
		off    Offset
		cursor int
		want   int
		wantOK bool
	}{
		{At(10), 5, 10, true},
		{Fwd(4), 10, 14, true},
		{Back(4), 10, 6, true},
		{Back(20), 10, 0, false},
	}
	for _, c := range cases {
		got, err := c.off.resolve(c.cursor)
		if c.wantOK && err != nil {
			t.Errorf("resolve(%+v, %d) = err %v, want nil", c.off, c.cursor, err)
		}
		if !c.wantOK && err == nil {
			t.Errorf("resolve(%+v, %d) = %d, want error", c.off, c.cursor, got)
		}
		if c.wantOK && got != c.want {
			t.Errorf("resolve(%+v, %d) = %d, want %d", c.off, c.cursor, got, c.want)
		}
	}
}
