package exercise

import (
	"fmt"
	"time"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
)

// Key identifies one of the four answer options.
type Key string

const (
	KeyA Key = "A"
	KeyB Key = "B"
	KeyC Key = "C"
	KeyD Key = "D"
)

// Keys lists the option keys in display order.
var Keys = []Key{KeyA, KeyB, KeyC, KeyD}

// ParseKey validates an option key string.
func ParseKey(s string) (Key, error) {
	switch Key(s) {
	case KeyA, KeyB, KeyC, KeyD:
		return Key(s), nil
	}
	return "", fmt.Errorf("invalid option key %q", s)
}

// Options holds one string per option key.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the value for a key.
func (o Options) Get(k Key) string {
	switch k {
	case KeyA:
		return o.A
	case KeyB:
		return o.B
	case KeyC:
		return o.C
	case KeyD:
		return o.D
	}
	return ""
}

// Exercise is a single reading-comprehension exercise: a short passage, one
// question about it, four options, and per-option explanations. Immutable
// once persisted; only feedback records accumulate against it.
type Exercise struct {
	// Passage is the reading text in the passage language.
	Passage string `json:"paragraph"`

	// Topic is the subject the passage was generated about.
	Topic string `json:"topic"`

	// Question asks about the passage, in the question language.
	Question string `json:"question"`

	// Options are the four answer choices.
	Options Options `json:"options"`

	// CorrectAnswer is the key of the single correct option.
	CorrectAnswer Key `json:"correctAnswer"`

	// Explanations justify, per option, why it is right or wrong.
	Explanations Options `json:"explanations"`

	// RelevantText is a verbatim quote from Passage supporting the correct
	// answer. May be absent from the passage in degenerate model output;
	// highlighting then degrades to plain text.
	RelevantText string `json:"relevantText"`

	// PassageLanguage and QuestionLanguage are ISO 639-1 codes.
	PassageLanguage  string `json:"language"`
	QuestionLanguage string `json:"questionLanguage"`

	// Level is the CEFR difficulty the exercise was generated for.
	Level cefr.Level `json:"level"`

	// CreatedAt is set when the exercise is persisted.
	CreatedAt time.Time `json:"createdAt,omitzero"`

	// OwnerID is the learner the exercise was generated for, empty when
	// anonymous/shared.
	OwnerID string `json:"ownerId,omitempty"`
}

// Feedback is what the learner sees after answering: assembled in one
// server round-trip so the UI can render it atomically.
type Feedback struct {
	IsCorrect          bool   `json:"isCorrect"`
	CorrectAnswer      Key    `json:"correctAnswer"`
	ChosenAnswer       Key    `json:"chosenAnswer"`
	CorrectExplanation string `json:"correctExplanation"`
	ChosenExplanation  string `json:"chosenExplanation,omitempty"`
	RelevantText       string `json:"relevantText"`
}

// FeedbackRecord is one learner's verdict on one exercise. At most one per
// (exercise, learner) pair.
type FeedbackRecord struct {
	ExerciseID  int64     `db:"exercise_id"`
	LearnerID   string    `db:"learner_id"`
	IsGood      bool      `db:"is_good"`
	ChosenKey   string    `db:"chosen_key"`
	WasCorrect  bool      `db:"was_correct"`
	SubmittedAt time.Time `db:"submitted_at"`
}

// Progress is a learner's proficiency state for one language.
type Progress struct {
	LearnerID     string     `db:"learner_id"`
	Language      string     `db:"language"`
	Level         cefr.Level `db:"level"`
	Streak        int        `db:"streak"`
	LastPracticed time.Time  `db:"last_practiced"`
}
