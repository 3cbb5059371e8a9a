package services

import "testing"

func TestUnitOptions(t *testing.T) {
	found := make(map[string]bool)
	for _, opt := range UnitOptions {
		if opt == "" {
			t.Error("UnitOptions contains empty string")
		}
		if opt != NormalizeUnit(opt) {
			t.Errorf("option %q is not in normalized form", opt)
		}
		found[opt] = true
	}
	if !found[LotUnit] {
		t.Errorf("lumpsum unit %q missing from options", LotUnit)
	}
	if !found["nos"] {
		t.Error("default unit nos missing from options")
	}
}

func TestScopeOptions(t *testing.T) {
	if ScopeOptions[0] != string(ScopeNormal) {
		t.Errorf("first scope option = %q, want normal (empty)", ScopeOptions[0])
	}
	for _, opt := range ScopeOptions[1:] {
		if NormalizeScope(opt) == ScopeNormal {
			t.Errorf("scope option %q does not normalize to itself", opt)
		}
	}
}

func TestSchemeOptions(t *testing.T) {
	for _, opt := range SchemeOptions {
		start, step := NumberingScheme(opt).StartStep()
		if start <= 0 || step <= 0 {
			t.Errorf("scheme %q has invalid start/step %d/%d", opt, start, step)
		}
	}
}
