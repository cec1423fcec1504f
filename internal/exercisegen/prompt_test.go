package exercisegen

import (
	"strings"
	"testing"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
)

func TestBuildPrompt_ContainsContext(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Topic:            "travel",
		PassageLanguage:  "es",
		QuestionLanguage: "en",
		Level:            cefr.B1,
	})

	for _, want := range []string{
		"Topic: travel",
		"B1",
		"Spanish",
		"English",
		ExemplarFor(cefr.B1).Good,
		ExemplarFor(cefr.B1).Bad,
		cefr.GrammarGuidance(cefr.B1),
		"correctAnswer",
		"relevantText",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	input := PromptInput{
		Topic:            "food",
		PassageLanguage:  "fr",
		QuestionLanguage: "en",
		Level:            cefr.A2,
	}
	if BuildPrompt(input) != BuildPrompt(input) {
		t.Error("BuildPrompt is not deterministic")
	}
}

func TestExemplarsCoverAllLevels(t *testing.T) {
	for _, l := range cefr.Ladder {
		ex := ExemplarFor(l)
		if ex.Good == "" || ex.Bad == "" || ex.GoodWhy == "" || ex.BadWhy == "" {
			t.Errorf("incomplete exemplar for %s", l)
		}
	}
}
