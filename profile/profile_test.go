package profile

import (
	"slices"
	"testing"
)

func TestProfiler_DisabledModes(t *testing.T) {
	for _, p := range []Profiler{
		{},
		{Mode: "bogus", Path: t.TempDir()},
	} {
		// must not panic, and must be safe to stop
		p.Start().Stop()
	}

	if Enabled("bogus") || Enabled("") {
		t.Error("unsupported mode reported as enabled")
	}
}

func TestModes_Sorted(t *testing.T) {
	modes := Modes()
	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	for _, m := range modes {
		if !Enabled(m) {
			t.Errorf("mode %q not enabled", m)
		}
	}
}
