package buffer

import "testing"

func TestResolveSaveOptionsFallsBackToGlobalsWhenUnset(t *testing.T) {
	b := NewBuffer(4)
	trim, finalNL := b.ResolveSaveOptions(true, false)
	if !trim || finalNL {
		t.Fatalf("expected globals to pass through unchanged, got trim=%v finalNL=%v", trim, finalNL)
	}
}

func TestResolveSaveOptionsHonorsPerFileOverride(t *testing.T) {
	b := NewBuffer(4)
	trimOverride := false
	b.TrimTrailingOverride = &trimOverride

	trim, finalNL := b.ResolveSaveOptions(true, true)
	if trim {
		t.Fatalf("expected override to win over global trim setting")
	}
	if !finalNL {
		t.Fatalf("expected unaffected global to pass through, got %v", finalNL)
	}
}
