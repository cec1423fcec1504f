package exercisegen

import (
	"fmt"
	"strings"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
)

const systemPrompt = `You are a language teacher creating reading-comprehension exercises for learners on the CEFR scale.

Rules:
- Write a short passage (3-6 sentences) in the passage language, about the given topic, strictly calibrated to the given CEFR level.
- Write ONE comprehension question about the passage, in the question language.
- The question must be answerable ONLY by reading the passage. Never ask general-knowledge or opinion questions.
- Provide exactly four options keyed A, B, C, D, with exactly one correct option.
- Distractors must be plausible misreadings of the passage, not random statements.
- Provide an explanation for every option: why the correct one is right and each distractor wrong.
- relevantText must be copied VERBATIM from the passage (identical characters) and must support the correct answer.`

// PromptInput holds everything the prompt builder needs. The topic is
// supplied by the caller, typically drawn from the level's pool.
type PromptInput struct {
	Topic            string
	PassageLanguage  string
	QuestionLanguage string
	Level            cefr.Level
}

// BuildPrompt constructs the user message for one generation call. Pure and
// deterministic given its input.
func BuildPrompt(input PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Passage language: %s (%s)\n", cefr.LanguageName(input.PassageLanguage), input.PassageLanguage)
	fmt.Fprintf(&b, "Question language: %s (%s)\n", cefr.LanguageName(input.QuestionLanguage), input.QuestionLanguage)
	fmt.Fprintf(&b, "CEFR level: %s\n", input.Level)
	fmt.Fprintf(&b, "Grammar guidance: %s\n", cefr.GrammarGuidance(input.Level))
	fmt.Fprintf(&b, "Vocabulary guidance: %s\n", cefr.VocabularyGuidance(input.Level))

	ex := ExemplarFor(input.Level)
	b.WriteString("\nWorked example for this level:\n")
	fmt.Fprintf(&b, "GOOD question: %s\n  Why good: %s\n", ex.Good, ex.GoodWhy)
	fmt.Fprintf(&b, "BAD question: %s\n  Why bad: %s\n", ex.Bad, ex.BadWhy)

	b.WriteString(`
Respond with a single JSON object with exactly these fields:
  paragraph (string), topic (string), question (string),
  options (object with keys A, B, C, D), explanations (object with keys A, B, C, D),
  correctAnswer ("A" | "B" | "C" | "D"), relevantText (string).

Before responding, check your own output:
1. Is the question unanswerable without the passage?
2. Is exactly one option correct?
3. Is relevantText an exact substring of paragraph?
4. Are all four explanations non-empty?
Fix any failure, then respond with the JSON only.`)

	return b.String()
}
