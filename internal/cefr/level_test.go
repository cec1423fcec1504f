package cefr

import (
	"math/rand/v2"
	"testing"
)

func TestParse(t *testing.T) {
	for _, l := range Ladder {
		got, err := Parse(string(l))
		if err != nil {
			t.Fatalf("Parse(%q): %v", l, err)
		}
		if got != l {
			t.Errorf("Parse(%q) = %q", l, got)
		}
	}

	if _, err := Parse("D1"); err == nil {
		t.Error("expected error for D1")
	}
	if _, err := Parse("a1"); err == nil {
		t.Error("expected error for lowercase a1")
	}
}

func TestNext(t *testing.T) {
	if A1.Next() != A2 {
		t.Errorf("A1.Next() = %q", A1.Next())
	}
	if B2.Next() != C1 {
		t.Errorf("B2.Next() = %q", B2.Next())
	}
	if C2.Next() != C2 {
		t.Errorf("C2.Next() = %q, want C2 (saturating)", C2.Next())
	}
	if !C2.IsMax() {
		t.Error("C2.IsMax() = false")
	}
	if B1.IsMax() {
		t.Error("B1.IsMax() = true")
	}
}

func TestGuidanceCoversAllLevels(t *testing.T) {
	for _, l := range Ladder {
		if GrammarGuidance(l) == "" {
			t.Errorf("no grammar guidance for %s", l)
		}
		if VocabularyGuidance(l) == "" {
			t.Errorf("no vocabulary guidance for %s", l)
		}
		if len(Topics(l)) == 0 {
			t.Errorf("no topics for %s", l)
		}
	}
}

func TestRandomTopicFromPool(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		topic := RandomTopic(B1, rng)
		found := false
		for _, candidate := range Topics(B1) {
			if candidate == topic {
				found = true
			}
		}
		if !found {
			t.Fatalf("topic %q not in B1 pool", topic)
		}
	}
}

func TestLanguageName(t *testing.T) {
	if LanguageName("es") != "Spanish" {
		t.Errorf("LanguageName(es) = %q", LanguageName("es"))
	}
	if LanguageName("xx") != "xx" {
		t.Errorf("unknown code should pass through, got %q", LanguageName("xx"))
	}
}
