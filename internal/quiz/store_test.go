package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/service"
)

// fakeFetcher counts calls and serves sequentially numbered exercises.
type fakeFetcher struct {
	fetchCalls  int
	submitCalls int
	verdicts    int

	submitErr error
	fetchErr  error

	lastSubmit service.SubmitRequest
}

func (f *fakeFetcher) exercise(n int64) *service.FetchResult {
	return &service.FetchResult{
		ExerciseID: n,
		Cached:     true,
		Exercise: &exercise.Exercise{
			Passage:       fmt.Sprintf("Paris is the capital of France. Exercise %d.", n),
			Question:      "Which city is the capital of France?",
			Options:       exercise.Options{A: "Paris", B: "Lyon", C: "Nice", D: "Lille"},
			CorrectAnswer: exercise.KeyA,
			Explanations: exercise.Options{
				A: "Stated directly.", B: "Not the capital.", C: "Not the capital.", D: "Not the capital.",
			},
			RelevantText:     "capital of France",
			PassageLanguage:  "fr",
			QuestionLanguage: "en",
			Level:            cefr.A1,
		},
	}
}

func (f *fakeFetcher) FetchExercise(ctx context.Context, req service.FetchRequest) (*service.FetchResult, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.exercise(int64(f.fetchCalls)), nil
}

func (f *fakeFetcher) SubmitAnswer(ctx context.Context, req service.SubmitRequest) (*service.SubmitResult, error) {
	f.submitCalls++
	f.lastSubmit = req
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	correct := req.Chosen == req.Exercise.CorrectAnswer
	streak := 0
	if correct {
		streak = 1
	}
	return &service.SubmitResult{
		Feedback: exercise.Feedback{
			IsCorrect:          correct,
			CorrectAnswer:      req.Exercise.CorrectAnswer,
			ChosenAnswer:       req.Chosen,
			CorrectExplanation: req.Exercise.Explanations.Get(req.Exercise.CorrectAnswer),
			RelevantText:       req.Exercise.RelevantText,
		},
		Progress: exercise.Progress{
			LearnerID: req.LearnerID,
			Language:  req.Exercise.PassageLanguage,
			Level:     cefr.A1,
			Streak:    streak,
		},
	}, nil
}

func (f *fakeFetcher) SubmitFeedback(ctx context.Context, req service.FeedbackRequest) (*service.FeedbackResult, error) {
	f.verdicts++
	f.fetchCalls++
	return &service.FeedbackResult{Recorded: true, Next: f.exercise(int64(f.fetchCalls))}, nil
}

func testSettings() Settings {
	return Settings{LearnerID: "alice", PassageLanguage: "fr", QuestionLanguage: "en"}
}

func loadedStore(t *testing.T, f *fakeFetcher) *Store {
	t.Helper()
	s := NewStore(f, testSettings(), exercise.Progress{Level: cefr.A1}, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestSelectAnswerPopulatesFeedbackAtomically(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)

	if err := s.SelectAnswer(context.Background(), exercise.KeyA); err != nil {
		t.Fatalf("select: %v", err)
	}

	snap := s.Snapshot()
	if !snap.Answered || snap.Feedback == nil {
		t.Fatal("expected answered state with feedback")
	}
	if !snap.Feedback.IsCorrect {
		t.Error("expected correct grading")
	}
	if snap.Highlight == nil {
		t.Fatal("expected a highlight range for the relevant text")
	}
	if snap.Highlight.Start != 13 || snap.Highlight.End != 30 {
		t.Errorf("highlight = %+v, want {13 30}", snap.Highlight)
	}
	if snap.Streak != 1 {
		t.Errorf("streak = %d, want 1", snap.Streak)
	}
}

func TestSelectAnswerIdempotent(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)
	ctx := context.Background()

	if err := s.SelectAnswer(ctx, exercise.KeyA); err != nil {
		t.Fatalf("select: %v", err)
	}
	before := s.Snapshot()

	// Repeat submissions change nothing and reach no server.
	if err := s.SelectAnswer(ctx, exercise.KeyB); err != nil {
		t.Fatalf("repeat select: %v", err)
	}
	after := s.Snapshot()

	if f.submitCalls != 1 {
		t.Errorf("submit calls = %d, want 1", f.submitCalls)
	}
	if after.Chosen != before.Chosen {
		t.Errorf("chosen changed from %s to %s", before.Chosen, after.Chosen)
	}
	if after.Feedback.IsCorrect != before.Feedback.IsCorrect {
		t.Error("feedback changed on repeat submission")
	}
}

func TestSelectAnswerLocalPreconditions(t *testing.T) {
	f := &fakeFetcher{}
	ctx := context.Background()

	// No exercise loaded.
	s := NewStore(f, testSettings(), exercise.Progress{Level: cefr.A1}, nil)
	if err := s.SelectAnswer(ctx, exercise.KeyA); !errors.Is(err, ErrNoExercise) {
		t.Errorf("err = %v, want ErrNoExercise", err)
	}

	// Missing question language.
	settings := testSettings()
	settings.QuestionLanguage = ""
	s = NewStore(f, settings, exercise.Progress{Level: cefr.A1}, nil)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.SelectAnswer(ctx, exercise.KeyA); !errors.Is(err, ErrMissingLanguage) {
		t.Errorf("err = %v, want ErrMissingLanguage", err)
	}

	if f.submitCalls != 0 {
		t.Errorf("submit calls = %d, want 0 for local failures", f.submitCalls)
	}
}

func TestSelectAnswerServerErrorKeepsAnswered(t *testing.T) {
	f := &fakeFetcher{submitErr: errors.New("network down")}
	s := loadedStore(t, f)

	err := s.SelectAnswer(context.Background(), exercise.KeyA)
	if err == nil {
		t.Fatal("expected error")
	}

	snap := s.Snapshot()
	if !snap.Answered {
		t.Error("answered state must survive a server error")
	}
	if snap.Err == "" {
		t.Error("expected a user-visible error message")
	}
	if snap.Feedback != nil {
		t.Error("no feedback should appear on error")
	}
}

func TestLoadNextAdoptsPrefetchWithoutFetching(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)
	ctx := context.Background()

	if err := s.SelectAnswer(ctx, exercise.KeyA); err != nil {
		t.Fatalf("select: %v", err)
	}
	s.Prefetch(ctx)

	// Drain the budget into a known non-reset state.
	s.mu.Lock()
	s.budget.Phase = PhaseCredits
	s.budget.CreditsAvailable = 2
	s.mu.Unlock()

	fetchesBefore := f.fetchCalls
	if err := s.LoadNext(ctx); err != nil {
		t.Fatalf("load next: %v", err)
	}
	if f.fetchCalls != fetchesBefore {
		t.Errorf("fetch calls = %d, want %d (prefetch slot adoption is free)", f.fetchCalls, fetchesBefore)
	}

	snap := s.Snapshot()
	if snap.Answered || snap.Feedback != nil || snap.Highlight != nil {
		t.Error("transient state must clear on adoption")
	}
	if snap.Budget.CreditsAvailable != CreditAllotment {
		t.Errorf("credits = %d, want allotment %d", snap.Budget.CreditsAvailable, CreditAllotment)
	}
	if !snap.Answered && snap.Exercise == nil {
		t.Error("expected the prefetched exercise to be live")
	}
	if snap.HasNext {
		t.Error("prefetch slot must be empty after adoption")
	}
}

func TestLoadNextFallsBackToSynchronousFetch(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)
	ctx := context.Background()

	fetchesBefore := f.fetchCalls
	if err := s.LoadNext(ctx); err != nil {
		t.Fatalf("load next: %v", err)
	}
	if f.fetchCalls != fetchesBefore+1 {
		t.Errorf("fetch calls = %d, want %d", f.fetchCalls, fetchesBefore+1)
	}
}

func TestPrefetchNeverTouchesLiveSlot(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)
	ctx := context.Background()

	liveBefore := s.Snapshot().Exercise
	s.Prefetch(ctx)

	snap := s.Snapshot()
	if snap.Exercise != liveBefore {
		t.Error("prefetch must not replace the live exercise")
	}
	if !snap.HasNext {
		t.Error("expected the prefetch slot to be populated")
	}

	// A second prefetch with a populated slot is a no-op.
	calls := f.fetchCalls
	s.Prefetch(ctx)
	if f.fetchCalls != calls {
		t.Errorf("fetch calls = %d, want %d", f.fetchCalls, calls)
	}
}

func TestPrefetchErrorIsSwallowed(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)
	f.fetchErr = errors.New("provider down")

	s.Prefetch(context.Background())

	snap := s.Snapshot()
	if snap.HasNext {
		t.Error("failed prefetch must leave the slot empty")
	}
	if snap.Err != "" {
		t.Error("prefetch errors are not user-visible")
	}
}

func TestSubmitVerdictStashesNext(t *testing.T) {
	f := &fakeFetcher{}
	s := loadedStore(t, f)
	ctx := context.Background()

	if err := s.SubmitVerdict(ctx, true); !errors.Is(err, ErrNoExercise) {
		t.Errorf("verdict before answering: err = %v, want ErrNoExercise", err)
	}

	if err := s.SelectAnswer(ctx, exercise.KeyA); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.SubmitVerdict(ctx, true); err != nil {
		t.Fatalf("verdict: %v", err)
	}
	if f.verdicts != 1 {
		t.Errorf("verdicts = %d, want 1", f.verdicts)
	}
	if !s.Snapshot().HasNext {
		t.Error("expected the eagerly fetched next exercise in the prefetch slot")
	}
}
