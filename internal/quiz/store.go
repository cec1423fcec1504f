// Package quiz holds the client-side progression state machine: the live
// exercise, its answer/feedback cycle, the learner's streak and level mirror,
// the hover-credit budget and the prefetched next exercise.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/service"
)

// Local precondition failures: no server call is made for these.
var (
	ErrNoExercise      = errors.New("no exercise loaded")
	ErrMissingLanguage = errors.New("question language not set")
)

// Fetcher is the slice of the service surface the state machine consumes.
// *service.Service satisfies it.
type Fetcher interface {
	FetchExercise(ctx context.Context, req service.FetchRequest) (*service.FetchResult, error)
	SubmitAnswer(ctx context.Context, req service.SubmitRequest) (*service.SubmitResult, error)
	SubmitFeedback(ctx context.Context, req service.FeedbackRequest) (*service.FeedbackResult, error)
}

// Settings identifies the learner and the language pair of the session.
type Settings struct {
	LearnerID        string
	PassageLanguage  string
	QuestionLanguage string
}

// Store is the progression state machine. One mutex guards all slices; the
// live slot is only ever replaced by LoadNext, and Prefetch writes only the
// next slot, so a slow prefetch can never corrupt an in-progress answer.
type Store struct {
	mu      sync.Mutex
	fetcher Fetcher
	log     *zap.Logger

	settings Settings
	progress exercise.Progress

	// Live slot and its per-exercise transient state.
	current   *service.FetchResult
	answered  bool
	chosen    exercise.Key
	feedback  *exercise.Feedback
	highlight *exercise.Range
	leveledUp bool

	// Prefetch slot. Only LoadNext moves it into the live slot.
	next *service.FetchResult

	budget  Budget
	lastErr string
}

// NewStore builds the state machine around a fetcher. The logger may be nil.
func NewStore(fetcher Fetcher, settings Settings, progress exercise.Progress, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		fetcher:  fetcher,
		log:      log,
		settings: settings,
		progress: progress,
		budget:   NewBudget(),
	}
}

// Snapshot is a consistent copy of the renderable state.
type Snapshot struct {
	Exercise  *exercise.Exercise
	Answered  bool
	Chosen    exercise.Key
	Feedback  *exercise.Feedback
	Highlight *exercise.Range
	Level     cefr.Level
	Streak    int
	LeveledUp bool
	Budget    Budget
	HasNext   bool
	Err       string
}

// Snapshot returns the current renderable state under the lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Answered:  s.answered,
		Chosen:    s.chosen,
		Feedback:  s.feedback,
		Highlight: s.highlight,
		Level:     s.progress.Level,
		Streak:    s.progress.Streak,
		LeveledUp: s.leveledUp,
		Budget:    s.budget,
		HasNext:   s.next != nil,
		Err:       s.lastErr,
	}
	if s.current != nil {
		snap.Exercise = s.current.Exercise
	}
	return snap
}

func (s *Store) fetchRequest(excludeID int64) service.FetchRequest {
	return service.FetchRequest{
		LearnerID:        s.settings.LearnerID,
		PassageLanguage:  s.settings.PassageLanguage,
		QuestionLanguage: s.settings.QuestionLanguage,
		Level:            s.progress.Level,
		ExcludeID:        excludeID,
	}
}

// Load fetches the first exercise of the session into the live slot.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	req := s.fetchRequest(0)
	s.mu.Unlock()

	res, err := s.fetcher.FetchExercise(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.adoptLocked(res)
	s.mu.Unlock()
	return nil
}

// adoptLocked installs an exercise into the live slot and clears all
// per-exercise transient state. Callers hold the mutex.
func (s *Store) adoptLocked(res *service.FetchResult) {
	s.current = res
	s.answered = false
	s.chosen = ""
	s.feedback = nil
	s.highlight = nil
	s.leveledUp = false
	s.lastErr = ""
	s.budget.ResetForExercise()
}

// SelectAnswer records the learner's choice and grades it. Calling it again
// after an answer is a no-op. Precondition failures (no exercise, missing
// question language) are local and reach no server. A server error keeps the
// Answered state so the learner is not asked to re-answer.
func (s *Store) SelectAnswer(ctx context.Context, key exercise.Key) error {
	s.mu.Lock()
	if s.answered {
		s.mu.Unlock()
		return nil
	}
	if s.current == nil || s.current.Exercise == nil {
		s.mu.Unlock()
		return ErrNoExercise
	}
	if s.settings.QuestionLanguage == "" {
		s.mu.Unlock()
		return ErrMissingLanguage
	}
	if _, err := exercise.ParseKey(string(key)); err != nil {
		s.mu.Unlock()
		return err
	}

	s.answered = true
	s.chosen = key
	req := service.SubmitRequest{
		LearnerID:  s.settings.LearnerID,
		ExerciseID: s.current.ExerciseID,
		Exercise:   s.current.Exercise,
		Chosen:     key,
	}
	s.mu.Unlock()

	res, err := s.fetcher.SubmitAnswer(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err.Error()
		return fmt.Errorf("select answer: %w", err)
	}

	fb := res.Feedback
	s.feedback = &fb
	if r, ok := exercise.FindQuoteRange(s.current.Exercise.Passage, fb.RelevantText); ok {
		s.highlight = r
	} else {
		s.highlight = nil
	}
	s.progress = res.Progress
	s.leveledUp = res.LeveledUp
	s.lastErr = ""
	s.budget.RecordResult(fb.IsCorrect)
	return nil
}

// UseHoverCredit gates one inline translation lookup against the budget.
func (s *Store) UseHoverCredit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget.Use()
}

// SubmitVerdict records the learner's good/bad verdict on the answered
// exercise and stashes the eagerly returned next exercise in the prefetch
// slot.
func (s *Store) SubmitVerdict(ctx context.Context, isGood bool) error {
	s.mu.Lock()
	if s.current == nil || !s.answered {
		s.mu.Unlock()
		return ErrNoExercise
	}
	var wasCorrect bool
	if s.feedback != nil {
		wasCorrect = s.feedback.IsCorrect
	}
	req := service.FeedbackRequest{
		LearnerID:  s.settings.LearnerID,
		ExerciseID: s.current.ExerciseID,
		IsGood:     isGood,
		ChosenKey:  s.chosen,
		WasCorrect: wasCorrect,
		Next:       s.fetchRequest(s.current.ExerciseID),
	}
	s.mu.Unlock()

	res, err := s.fetcher.SubmitFeedback(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err.Error()
		return fmt.Errorf("submit verdict: %w", err)
	}
	s.next = res.Next
	return nil
}

// Prefetch fetches the next exercise in the background. It writes only the
// prefetch slot; failures are logged and swallowed since LoadNext falls back
// to a synchronous fetch.
func (s *Store) Prefetch(ctx context.Context) {
	s.mu.Lock()
	if s.next != nil {
		s.mu.Unlock()
		return
	}
	var exclude int64
	if s.current != nil {
		exclude = s.current.ExerciseID
	}
	req := s.fetchRequest(exclude)
	s.mu.Unlock()

	res, err := s.fetcher.FetchExercise(ctx, req)
	if err != nil {
		s.log.Warn("prefetch failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.next = res
	s.mu.Unlock()
}

// LoadNext advances to the next exercise: the prefetch slot is adopted
// atomically when populated, otherwise a synchronous fetch runs. Either way
// the transient state clears and the hover budget refills.
func (s *Store) LoadNext(ctx context.Context) error {
	s.mu.Lock()
	if s.next != nil {
		s.adoptLocked(s.next)
		s.next = nil
		s.mu.Unlock()
		return nil
	}
	var exclude int64
	if s.current != nil {
		exclude = s.current.ExerciseID
	}
	req := s.fetchRequest(exclude)
	s.mu.Unlock()

	res, err := s.fetcher.FetchExercise(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return fmt.Errorf("load next: %w", err)
	}

	s.mu.Lock()
	s.adoptLocked(res)
	s.mu.Unlock()
	return nil
}
