package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/five82/pullview/internal/config"
	"github.com/five82/pullview/internal/refresh"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"negative", -5 * time.Second, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12 * time.Second, "12s"},
		{"minutes", 61 * time.Second, "1m"},
		{"hours", 2*time.Hour + 10*time.Second, "2h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeDuration(tc.in); got != tc.want {
				t.Fatalf("humanizeDuration(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNextThemeCycles(t *testing.T) {
	name := ThemeNames()[0]
	seen := map[string]bool{}
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] || len(seen) != len(ThemeNames()) {
		t.Fatalf("theme cycle did not return to start: %v", seen)
	}
	if got := GetTheme("missing").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(missing) = %q, want Nightfox", got)
	}
}

func TestArrowFor(t *testing.T) {
	for percent, want := range map[int]string{1: "↓", 50: "↘", 99: "→"} {
		if got := arrowFor(percent); got != want {
			t.Fatalf("arrowFor(%d) = %q, want %q", percent, got, want)
		}
	}
}

func TestProgressRenderers(t *testing.T) {
	th := GetTheme("")
	st := th.Styles("")
	for _, kind := range []string{config.IndicatorSpinner, config.IndicatorBar, config.IndicatorArrow} {
		r := newProgressRenderer(kind, th, st)
		if r(refresh.Loading, 0) == "" {
			t.Fatalf("%s renderer: empty loading label", kind)
		}
		if r(refresh.Primed, 100) == "" {
			t.Fatalf("%s renderer: empty primed label", kind)
		}
	}
	if got := newProgressRenderer(config.IndicatorSpinner, th, st)(refresh.Waiting, 0); got != "" {
		t.Fatalf("idle spinner label = %q, want empty", got)
	}
}

func TestScrollbarThumb(t *testing.T) {
	st := GetTheme("").Styles("")
	vp := viewport.New(10, 5)
	vp.SetContent(strings.Repeat("line\n", 19) + "line")

	bar := scrollbar(&vp, 5, st)
	if len(bar) != 5 {
		t.Fatalf("scrollbar rows = %d, want 5", len(bar))
	}
	if !strings.Contains(bar[0], "█") || strings.Contains(bar[4], "█") {
		t.Fatalf("thumb should start at top: %q", bar)
	}

	vp.GotoBottom()
	bar = scrollbar(&vp, 5, st)
	if strings.Contains(bar[0], "█") || !strings.Contains(bar[4], "█") {
		t.Fatalf("thumb should end at bottom: %q", bar)
	}
}
