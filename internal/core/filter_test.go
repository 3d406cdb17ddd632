package core

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello", "hello"},
		{"n.o-o!b", "noob"},
		{"nöob", "noob"},
		{"ДурЁк", "дурек"},
		{"ещё раз", "еще раз"},
		{"keep 123 digits", "keep 123 digits"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Hello, WORLD!", "nöob ещё", "чистый текст 42"} {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent on %q: %q != %q", s, twice, once)
		}
	}
}

func TestPhraseFilterContains(t *testing.T) {
	f := NewPhraseFilter([]string{"noob", "ещё бы"})

	cases := []struct {
		in   string
		want bool
	}{
		{"you noob", true},
		{"you NOOB", true},
		{"you n!o.o,b", true},
		{"you nöob", true},
		{"total noobish behavior", true}, // containment, not word boundary
		{"еще бы", true},                 // denylist itself is normalized too
		{"polite message", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := f.Contains(tc.in); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPhraseFilterDropsEmptyEntries(t *testing.T) {
	f := NewPhraseFilter([]string{"!!!", ""})
	if f.Contains("anything at all") {
		t.Fatal("empty normalized phrase must not match everything")
	}
}

func TestCapsRatio(t *testing.T) {
	cases := []struct {
		in   string
		min  int
		want float64
	}{
		{"HELLO WORLD", 6, 1.0},
		{"hello world", 6, 0.0},
		{"HELLOworld", 6, 0.5},
		{"HELLO 12345 !!!", 6, 0.0}, // 5 letters, below minimum
		{"HI", 6, 0.0},
		{"ПРИВЕТ МИР", 6, 1.0},
		{"", 6, 0.0},
	}
	for _, tc := range cases {
		if got := CapsRatio(tc.in, tc.min); got != tc.want {
			t.Errorf("CapsRatio(%q, %d) = %v, want %v", tc.in, tc.min, got, tc.want)
		}
	}
}

func TestCapsRatioIgnoresNonLetters(t *testing.T) {
	// Digits and punctuation must count toward neither side of the ratio.
	withNoise := CapsRatio("ABCdef... 12345 !!!", 6)
	plain := CapsRatio("ABCdef", 6)
	if withNoise != plain {
		t.Fatalf("noise changed ratio: %v != %v", withNoise, plain)
	}
}
