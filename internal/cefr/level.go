package cefr

import "fmt"

// Level is a CEFR proficiency level on the six-point ladder.
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

// Ladder lists all levels from lowest to highest.
var Ladder = []Level{A1, A2, B1, B2, C1, C2}

// StreakToLevelUp is the run of consecutive correct answers that promotes a
// learner to the next level.
const StreakToLevelUp = 5

// Parse validates a level string.
func Parse(s string) (Level, error) {
	for _, l := range Ladder {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid CEFR level %q", s)
}

// Valid reports whether l is one of the six ladder levels.
func (l Level) Valid() bool {
	_, err := Parse(string(l))
	return err == nil
}

// IsMax reports whether l is the top of the ladder.
func (l Level) IsMax() bool {
	return l == C2
}

// Next returns the level one step up the ladder. C2 saturates.
func (l Level) Next() Level {
	for i, cur := range Ladder {
		if cur == l && i < len(Ladder)-1 {
			return Ladder[i+1]
		}
	}
	return C2
}

// guidance holds the level-specific steering text embedded in prompts.
type guidance struct {
	Grammar    string
	Vocabulary string
}

var levelGuidance = map[Level]guidance{
	A1: {
		Grammar:    "Use only present simple tense, basic subject-verb-object sentences, and common connectors (and, but). Sentences under 10 words.",
		Vocabulary: "Restrict vocabulary to the ~500 most frequent words: family, colors, food, numbers, daily routine.",
	},
	A2: {
		Grammar:    "Present and past simple, going-to future, simple comparatives. Short compound sentences are fine.",
		Vocabulary: "Everyday vocabulary (~1000 words): shopping, travel, work, weather, hobbies.",
	},
	B1: {
		Grammar:    "All basic tenses plus present perfect, first conditional, relative clauses with who/which/that.",
		Vocabulary: "Broader vocabulary (~2000 words) including opinions, experiences, plans, and simple abstract nouns.",
	},
	B2: {
		Grammar:    "Full tense range, passive voice, second and third conditionals, reported speech.",
		Vocabulary: "Wide vocabulary including idiomatic expressions, phrasal verbs, and topic-specific terms.",
	},
	C1: {
		Grammar:    "Complex subordination, inversion for emphasis, nuanced modality and hedging.",
		Vocabulary: "Near-native range including low-frequency words, collocations, and register shifts.",
	},
	C2: {
		Grammar:    "No grammatical restrictions; use naturally sophisticated structures.",
		Vocabulary: "Unrestricted, including literary, technical, and culturally loaded vocabulary.",
	},
}

// GrammarGuidance returns the grammar steering text for a level.
func GrammarGuidance(l Level) string {
	return levelGuidance[l].Grammar
}

// VocabularyGuidance returns the vocabulary steering text for a level.
func VocabularyGuidance(l Level) string {
	return levelGuidance[l].Vocabulary
}
