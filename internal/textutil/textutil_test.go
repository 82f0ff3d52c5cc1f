package textutil

import (
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "Punctuation collapsed",
			input:    "The A.I. boom — what's next?",
			expected: "the-a-i-boom-what-s-next",
		},
		{
			name:     "Leading and trailing junk",
			input:    "  ...Trade wars!  ",
			expected: "trade-wars",
		},
		{
			name:     "Digits preserved",
			input:    "Top 10 charts of 2024",
			expected: "top-10-charts-of-2024",
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Case and punctuation folded",
			input:    "The World This Week!",
			expected: "the world this week",
		},
		{
			name:     "Internal whitespace collapsed",
			input:    "Politics\n\t this  week",
			expected: "politics this week",
		},
		{
			name:     "Unicode letters kept",
			input:    "Café, société",
			expected: "café société",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.expected {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("The quick, BROWN fox -- 42 times.")

	want := []string{"the", "quick", "brown", "fox", "42", "times"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize returned %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "Identical text",
			a:        "trade wars hurt growth",
			b:        "trade wars hurt growth",
			expected: 1.0,
		},
		{
			name:     "Disjoint text",
			a:        "apples oranges",
			b:        "steel tariffs",
			expected: 0.0,
		},
		{
			name:     "Half overlap",
			a:        "alpha beta gamma",
			b:        "alpha beta delta",
			expected: 0.5,
		},
		{
			name:     "Both empty",
			a:        "",
			b:        "",
			expected: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapRatio(TokenSet(tt.a), TokenSet(tt.b))
			if got != tt.expected {
				t.Errorf("OverlapRatio = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("some  article\nbody text")
	b := Fingerprint("some article body text")

	if a != b {
		t.Errorf("fingerprints differ for whitespace-equivalent bodies: %s vs %s", a, b)
	}

	if c := Fingerprint("entirely different"); c == a {
		t.Error("distinct bodies produced identical fingerprints")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short) = %q", got)
	}

	got := Truncate("a much longer piece of text", 6)
	if got != "a much…" {
		t.Errorf("Truncate = %q", got)
	}
}
