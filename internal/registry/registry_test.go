package registry

import (
	"errors"
	"testing"
)

func TestAddChainsByDefault(t *testing.T) {
	r := New[string, int]()
	r.Add("a", 1, true, false)
	r.Add("a", 2, true, false)

	pairs := r.Iterate()
	if len(pairs) != 2 || pairs[0].Value != 1 || pairs[1].Value != 2 {
		t.Fatalf("Iterate() = %+v, want chain [1 2]", pairs)
	}
}

func TestAddOverrideReplaces(t *testing.T) {
	r := New[string, int]()
	r.Add("a", 1, true, false)
	r.Add("a", 2, true, true)

	v, ok := r.Find("a")
	if !ok || v != 2 {
		t.Fatalf("Find(a) = %d, %v, want 2, true", v, ok)
	}
}

func TestExtraShadowsBuiltin(t *testing.T) {
	r := New[string, string]()
	r.Add("x", "builtin-value", true, true)
	r.Add("x", "extra-value", false, true)

	v, ok := r.Find("x")
	if !ok || v != "extra-value" {
		t.Fatalf("Find(x) = %q, %v, want extra-value, true", v, ok)
	}
}

func TestAddStrictRejectsDuplicate(t *testing.T) {
	r := New[string, int]()
	if err := r.AddStrict("a", 1, true); err != nil {
		t.Fatalf("first AddStrict: %v", err)
	}
	err := r.AddStrict("a", 2, true)
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Fatalf("second AddStrict = %v, want ErrDuplicateRegistration", err)
	}
}

func TestFindMissing(t *testing.T) {
	r := New[string, int]()
	if _, ok := r.Find("missing"); ok {
		t.Fatalf("Find(missing) = ok, want not found")
	}
}
