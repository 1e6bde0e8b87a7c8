package compose

import (
	"reflect"
	"strings"
	"testing"
)

// measureByRune gives every rune a fixed 10px advance, which makes wrap
// boundaries easy to reason about in tests.
func measureByRune(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "empty input",
			text:     "",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "whitespace only",
			text:     "   \t  ",
			maxWidth: 100,
			want:     nil,
		},
		{
			name:     "single short word",
			text:     "Tour",
			maxWidth: 100,
			want:     []string{"Tour"},
		},
		{
			name:     "fits on one line",
			text:     "Neue Tour",
			maxWidth: 100,
			want:     []string{"Neue Tour"},
		},
		{
			name:     "breaks at overflow",
			text:     "Neue Tour angekuendigt",
			maxWidth: 100,
			want:     []string{"Neue Tour", "angekuendigt"},
		},
		{
			name:     "overlong word stays unbroken",
			text:     "ok Donaudampfschifffahrt ok",
			maxWidth: 100,
			want:     []string{"ok", "Donaudampfschifffahrt", "ok"},
		},
		{
			name:     "collapses inner whitespace",
			text:     "a   b\tc",
			maxWidth: 100,
			want:     []string{"a b c"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(measureByRune, tt.text, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapDeterministic(t *testing.T) {
	text := "Die Band spielt heute Abend ein ausverkauftes Konzert in Hamburg"
	first := Wrap(measureByRune, text, 150)
	for i := 0; i < 10; i++ {
		if got := Wrap(measureByRune, text, 150); !reflect.DeepEqual(got, first) {
			t.Fatalf("wrap diverged on run %d: %v vs %v", i, got, first)
		}
	}
}

func TestWrapLinesFit(t *testing.T) {
	text := "jede zeile muss unter der maximalen breite bleiben ausser einzelworte"
	for _, line := range Wrap(measureByRune, text, 120) {
		if strings.Contains(line, " ") && measureByRune(line) > 120 {
			t.Errorf("multi-word line %q measures %.0f > 120", line, measureByRune(line))
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxWidth float64
		want     string
	}{
		{"fits untouched", "kurz", 100, "kurz"},
		{"trimmed to width", "viel zu langer untertitel", 100, "viel zu la"},
		{"never empty", "ab", 5, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateToWidth(measureByRune, tt.in, tt.maxWidth); got != tt.want {
				t.Errorf("TruncateToWidth() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		max   int
		want  []string
	}{
		{
			name:  "under cap untouched",
			lines: []string{"eins", "zwei"},
			max:   3,
			want:  []string{"eins", "zwei"},
		},
		{
			name:  "exactly at cap untouched",
			lines: []string{"eins", "zwei", "drei"},
			max:   3,
			want:  []string{"eins", "zwei", "drei"},
		},
		{
			name:  "over cap replaces last three chars",
			lines: []string{"eins", "zwei", "dritte zeile", "vier"},
			max:   3,
			want:  []string{"eins", "zwei", "dritte ze..."},
		},
		{
			name:  "short last line becomes ellipsis",
			lines: []string{"eins", "zwei", "ab", "vier"},
			max:   3,
			want:  []string{"eins", "zwei", "..."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ellipsize(tt.lines, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ellipsize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEllipsizeExactSuffix(t *testing.T) {
	lines := []string{"a", "b", "die dritte angezeigte zeile", "d"}
	got := ellipsize(lines, 3)
	orig := lines[2]
	want := orig[:len(orig)-3] + "..."
	if got[2] != want {
		t.Errorf("third line = %q, want %q", got[2], want)
	}
}
