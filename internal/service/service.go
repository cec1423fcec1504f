// Package service is the exposed surface of the exercise engine: it composes
// the cache, the generator and learner progression into the operations the
// TUI and the CLI commands call.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/exercisegen"
	"github.com/rgilks/comprehendo-sub000/internal/store"
)

// ErrExerciseNotFound is returned when an answer or verdict references an
// exercise id that is not in the store.
var ErrExerciseNotFound = errors.New("exercise not found")

// DefaultGoodPickProbability is the chance a fetch serves a community-vetted
// exercise instead of the newest unattempted one.
const DefaultGoodPickProbability = 0.2

// Config tunes the exercise selection policy.
type Config struct {
	// GoodPickProbability is the chance of trying the vetted pool first.
	// Zero means the default; negative disables the vetted tier.
	GoodPickProbability float64
}

// Service owns the repositories and the generator and implements the
// engine's operations.
type Service struct {
	exercises *store.ExerciseRepo
	feedback  *store.FeedbackRepo
	progress  *store.ProgressRepo
	gen       exercisegen.Generator
	log       *zap.Logger
	cfg       Config

	// randFloat is swappable for deterministic selection-policy tests.
	randFloat func() float64
	rng       *rand.Rand
}

// New builds a Service on top of an open store.
func New(st *store.Store, gen exercisegen.Generator, log *zap.Logger, cfg Config) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.GoodPickProbability == 0 {
		cfg.GoodPickProbability = DefaultGoodPickProbability
	}
	return &Service{
		exercises: st.Exercises(),
		feedback:  st.Feedback(),
		progress:  st.Progress(),
		gen:       gen,
		log:       log,
		cfg:       cfg,
		randFloat: rand.Float64,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// FetchRequest asks for one exercise to practice.
type FetchRequest struct {
	LearnerID        string
	PassageLanguage  string
	QuestionLanguage string
	Level            cefr.Level

	// Topic is optional; empty picks one from the level's pool.
	Topic string

	// ExcludeID skips the exercise currently on screen.
	ExcludeID int64
}

// FetchResult is one served exercise. ExerciseID is zero when a freshly
// generated exercise could not be persisted.
type FetchResult struct {
	Exercise   *exercise.Exercise
	ExerciseID int64
	Cached     bool
}

// FetchExercise serves an exercise using the tiered policy: occasionally a
// random community-vetted one, otherwise the newest cached exercise the
// learner has not attempted, otherwise a fresh generation.
func (s *Service) FetchExercise(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	q := store.Query{
		PassageLanguage:  req.PassageLanguage,
		QuestionLanguage: req.QuestionLanguage,
		Level:            req.Level,
		LearnerID:        req.LearnerID,
		ExcludeID:        req.ExcludeID,
	}

	if s.randFloat() < s.cfg.GoodPickProbability {
		hit, err := s.exercises.PickRandomGood(ctx, q)
		if err != nil {
			return nil, err
		}
		if hit != nil {
			return &FetchResult{Exercise: &hit.Exercise, ExerciseID: hit.ID, Cached: true}, nil
		}
	}

	hit, err := s.exercises.FindUnattempted(ctx, q)
	if err != nil {
		return nil, err
	}
	if hit != nil {
		return &FetchResult{Exercise: &hit.Exercise, ExerciseID: hit.ID, Cached: true}, nil
	}

	return s.generate(ctx, req)
}

func (s *Service) generate(ctx context.Context, req FetchRequest) (*FetchResult, error) {
	topic := req.Topic
	if topic == "" {
		topic = cefr.RandomTopic(req.Level, s.rng)
	}

	ex, err := s.gen.Generate(ctx, exercisegen.GenerateInput{
		Topic:            topic,
		PassageLanguage:  req.PassageLanguage,
		QuestionLanguage: req.QuestionLanguage,
		Level:            req.Level,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch exercise: %w", err)
	}

	id, err := s.exercises.Save(ctx, ex, req.LearnerID)
	if err != nil {
		// The learner still gets the exercise; only the cache misses out.
		s.log.Warn("failed to cache generated exercise",
			zap.String("language", req.PassageLanguage),
			zap.String("level", string(req.Level)),
			zap.Error(err))
		id = 0
	}

	return &FetchResult{Exercise: ex, ExerciseID: id, Cached: false}, nil
}

// SubmitRequest grades one answered exercise. Exercise may be supplied
// directly (the caller already holds it); otherwise it is loaded by id.
type SubmitRequest struct {
	LearnerID  string
	ExerciseID int64
	Exercise   *exercise.Exercise
	Chosen     exercise.Key
}

// SubmitResult is everything the UI needs to render the answer outcome in
// one piece.
type SubmitResult struct {
	Feedback  exercise.Feedback
	Progress  exercise.Progress
	LeveledUp bool
}

// SubmitAnswer grades the chosen key, assembles the feedback payload and
// applies the answer to the learner's streak and level.
func (s *Service) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	ex := req.Exercise
	if ex == nil {
		stored, err := s.exercises.Get(ctx, req.ExerciseID)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			return nil, fmt.Errorf("submit answer for exercise %d: %w", req.ExerciseID, ErrExerciseNotFound)
		}
		ex = &stored.Exercise
	}

	if _, err := exercise.ParseKey(string(req.Chosen)); err != nil {
		return nil, fmt.Errorf("submit answer: %w", err)
	}

	correct := req.Chosen == ex.CorrectAnswer
	fb := exercise.Feedback{
		IsCorrect:          correct,
		CorrectAnswer:      ex.CorrectAnswer,
		ChosenAnswer:       req.Chosen,
		CorrectExplanation: ex.Explanations.Get(ex.CorrectAnswer),
		RelevantText:       ex.RelevantText,
	}
	if !correct {
		fb.ChosenExplanation = ex.Explanations.Get(req.Chosen)
	}

	out, err := s.progress.RecordAnswer(ctx, req.LearnerID, ex.PassageLanguage, correct)
	if err != nil {
		return nil, fmt.Errorf("submit answer: %w", err)
	}

	return &SubmitResult{Feedback: fb, Progress: out.Progress, LeveledUp: out.LeveledUp}, nil
}

// FeedbackRequest records a learner's verdict on an exercise and asks for
// the next one in the same stream.
type FeedbackRequest struct {
	LearnerID  string
	ExerciseID int64
	IsGood     bool
	ChosenKey  exercise.Key
	WasCorrect bool

	Next FetchRequest
}

// FeedbackResult reports whether the verdict was recorded and carries the
// eagerly fetched next exercise.
type FeedbackResult struct {
	Recorded bool
	Next     *FetchResult
}

// SubmitFeedback stores the verdict (first write per exercise+learner wins)
// and immediately fetches the next exercise so the UI never waits twice.
// An unsaved exercise (id zero) records nothing but still advances.
func (s *Service) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*FeedbackResult, error) {
	var recorded bool
	if req.ExerciseID != 0 {
		var err error
		recorded, err = s.feedback.Save(ctx, exercise.FeedbackRecord{
			ExerciseID: req.ExerciseID,
			LearnerID:  req.LearnerID,
			IsGood:     req.IsGood,
			ChosenKey:  string(req.ChosenKey),
			WasCorrect: req.WasCorrect,
		})
		if err != nil {
			return nil, fmt.Errorf("submit feedback: %w", err)
		}
	}

	next := req.Next
	next.ExcludeID = req.ExerciseID
	res, err := s.FetchExercise(ctx, next)
	if err != nil {
		return nil, err
	}

	return &FeedbackResult{Recorded: recorded, Next: res}, nil
}

// FetchProgress returns the learner's progress for a language, creating a
// fresh A1 record on first sight.
func (s *Service) FetchProgress(ctx context.Context, learnerID, language string) (exercise.Progress, error) {
	return s.progress.Get(ctx, learnerID, language)
}

// CachedCount reports the cache size for a language/level combination.
func (s *Service) CachedCount(ctx context.Context, passageLanguage, questionLanguage string, level cefr.Level) (int, error) {
	return s.exercises.CountCached(ctx, passageLanguage, questionLanguage, level)
}
