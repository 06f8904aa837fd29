package extract

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywordExtractor_FrequencyRanking(t *testing.T) {
	extractor := NewKeywordExtractor()

	text := "flooding flooding flooding bridge bridge closure"
	got := extractor.Extract(text)
	want := []string{"flooding", "bridge", "closure"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestKeywordExtractor_TiesKeepFirstOccurrence(t *testing.T) {
	extractor := NewKeywordExtractor()

	// All tokens appear once: output must preserve input order
	got := extractor.Extract("riverside council approves budget")
	want := []string{"riverside", "council", "approves", "budget"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestKeywordExtractor_FiltersShortAndStopWords(t *testing.T) {
	extractor := NewKeywordExtractor()

	got := extractor.Extract("the new park is near that which they built during storms")

	for _, kw := range got {
		if len(kw) <= 3 {
			t.Errorf("Expected no tokens of length <= 3, got %q", kw)
		}
		switch kw {
		case "that", "which", "they", "during":
			t.Errorf("Expected stop-word %q to be filtered", kw)
		}
	}
}

func TestKeywordExtractor_CapsAtTen(t *testing.T) {
	extractor := NewKeywordExtractor()

	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliett", "kilo", "lima",
	}
	got := extractor.Extract(strings.Join(words, " "))

	if len(got) != 10 {
		t.Errorf("Expected 10 keywords, got %d", len(got))
	}
}

func TestKeywordExtractor_ScanWindowStopsAtTwenty(t *testing.T) {
	extractor := NewKeywordExtractor()

	// 20 distinct filler tokens followed by a heavily repeated one: the
	// repeated token sits past the scan window and must not appear.
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("filler")
		b.WriteByte('a' + byte(i))
		b.WriteString(" ")
	}
	b.WriteString(strings.Repeat("flooding ", 5))

	got := extractor.Extract(b.String())
	for _, kw := range got {
		if kw == "flooding" {
			t.Error("Expected token past the 20-token scan window to be ignored")
		}
	}
}

func TestKeywordExtractor_EmptyInput(t *testing.T) {
	extractor := NewKeywordExtractor()

	if got := extractor.Extract(""); len(got) != 0 {
		t.Errorf("Expected empty output for empty input, got %v", got)
	}
}

func TestKeywordExtractor_Deterministic(t *testing.T) {
	extractor := NewKeywordExtractor()

	text := "Riverside flooding closes bridge after council vote on flooding defenses"
	first := extractor.Extract(text)
	second := extractor.Extract(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output across calls, got %v then %v", first, second)
	}
}
