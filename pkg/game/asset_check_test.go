package game

import (
	"testing"
)

func TestCheckAssets(t *testing.T) {
	assets := testAssets(t)

	reports := CheckAssets(assets,
		[]string{"bg.png", "broken.png", "missing.png"},
		[]string{"broken.ogg", "theme.wav", "missing.mp3"},
	)
	if len(reports) != 6 {
		t.Fatalf("reports: got %d, want 6", len(reports))
	}

	if reports[0].Err != nil {
		t.Errorf("bg.png: unexpected error %v", reports[0].Err)
	}
	if reports[0].Detail != "png 27x51" {
		t.Errorf("bg.png detail: got %q, want %q", reports[0].Detail, "png 27x51")
	}
	for _, r := range reports[1:] {
		if r.Err == nil {
			t.Errorf("%s: expected error", r.Name)
		}
	}
}
