package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
	"github.com/rgilks/comprehendo-sub000/internal/exercisegen"
	"github.com/rgilks/comprehendo-sub000/internal/store"
)

// stubGenerator returns sequentially numbered exercises and counts calls.
type stubGenerator struct {
	calls int
	fail  error
}

func (g *stubGenerator) Generate(ctx context.Context, input exercisegen.GenerateInput) (*exercise.Exercise, error) {
	g.calls++
	if g.fail != nil {
		return nil, g.fail
	}
	return &exercise.Exercise{
		Passage:       fmt.Sprintf("Generated passage %d about %s.", g.calls, input.Topic),
		Topic:         input.Topic,
		Question:      "What is this passage about?",
		Options:       exercise.Options{A: input.Topic, B: "other", C: "another", D: "none"},
		CorrectAnswer: exercise.KeyA,
		Explanations: exercise.Options{
			A: "It is the stated topic.", B: "Not mentioned.", C: "Not mentioned.", D: "Not mentioned.",
		},
		RelevantText:     fmt.Sprintf("Generated passage %d", g.calls),
		PassageLanguage:  input.PassageLanguage,
		QuestionLanguage: input.QuestionLanguage,
		Level:            input.Level,
	}, nil
}

func newTestService(t *testing.T, gen exercisegen.Generator) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := New(st, gen, zap.NewNop(), Config{GoodPickProbability: -1})
	return svc, st
}

func fetchReq(learner string) FetchRequest {
	return FetchRequest{
		LearnerID:        learner,
		PassageLanguage:  "es",
		QuestionLanguage: "en",
		Level:            cefr.A2,
		Topic:            "travel",
	}
}

func TestFetchExerciseGeneratesOnEmptyCache(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen)

	res, err := svc.FetchExercise(context.Background(), fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if res.Cached {
		t.Error("expected a generated exercise on empty cache")
	}
	if res.ExerciseID == 0 {
		t.Error("expected the generated exercise to be cached with an id")
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestFetchExercisePrefersCache(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	first, err := svc.FetchExercise(ctx, fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// A different learner gets the cached row without a generator call.
	second, err := svc.FetchExercise(ctx, fetchReq("bob"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !second.Cached {
		t.Error("expected a cache hit")
	}
	if second.ExerciseID != first.ExerciseID {
		t.Errorf("got id %d, want cached id %d", second.ExerciseID, first.ExerciseID)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
}

func TestFetchExerciseExcludesCurrent(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	first, err := svc.FetchExercise(ctx, fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	req := fetchReq("bob")
	req.ExcludeID = first.ExerciseID
	second, err := svc.FetchExercise(ctx, req)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if second.Cached {
		t.Error("expected generation when the only cached row is excluded")
	}
	if gen.calls != 2 {
		t.Errorf("generator calls = %d, want 2", gen.calls)
	}
}

func TestFetchExerciseVettedTier(t *testing.T) {
	gen := &stubGenerator{}
	svc, st := newTestService(t, gen)
	ctx := context.Background()

	// Seed two cached rows, mark the older one good.
	vetted, err := svc.FetchExercise(ctx, fetchReq("seeder"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	other := fetchReq("seeder2")
	other.ExcludeID = vetted.ExerciseID
	if _, err := svc.FetchExercise(ctx, other); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := st.Feedback().Save(ctx, exercise.FeedbackRecord{
		ExerciseID: vetted.ExerciseID, LearnerID: "seeder", IsGood: true,
	}); err != nil {
		t.Fatalf("save feedback: %v", err)
	}

	svc.cfg.GoodPickProbability = 1
	svc.randFloat = func() float64 { return 0 }

	res, err := svc.FetchExercise(ctx, fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !res.Cached || res.ExerciseID != vetted.ExerciseID {
		t.Errorf("got id %d cached=%v, want vetted id %d", res.ExerciseID, res.Cached, vetted.ExerciseID)
	}
}

func TestFetchExerciseGeneratorFailure(t *testing.T) {
	genErr := errors.New("provider down")
	svc, _ := newTestService(t, &stubGenerator{fail: genErr})

	_, err := svc.FetchExercise(context.Background(), fetchReq("alice"))
	if !errors.Is(err, genErr) {
		t.Fatalf("err = %v, want wrap of %v", err, genErr)
	}
}

func TestSubmitAnswerGradesAndAdvances(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	fetched, err := svc.FetchExercise(ctx, fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, SubmitRequest{
		LearnerID:  "alice",
		ExerciseID: fetched.ExerciseID,
		Exercise:   fetched.Exercise,
		Chosen:     exercise.KeyA,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Feedback.IsCorrect {
		t.Error("expected correct grading for the correct key")
	}
	if res.Feedback.ChosenExplanation != "" {
		t.Error("correct answers carry no chosen-option explanation")
	}
	if res.Progress.Streak != 1 {
		t.Errorf("streak = %d, want 1", res.Progress.Streak)
	}

	wrong, err := svc.SubmitAnswer(ctx, SubmitRequest{
		LearnerID: "alice",
		Exercise:  fetched.Exercise,
		Chosen:    exercise.KeyB,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if wrong.Feedback.IsCorrect {
		t.Error("expected wrong grading")
	}
	if wrong.Feedback.ChosenExplanation == "" {
		t.Error("wrong answers explain the chosen option")
	}
	if wrong.Progress.Streak != 0 {
		t.Errorf("streak = %d, want 0 after wrong answer", wrong.Progress.Streak)
	}
}

func TestSubmitAnswerLoadsStoredExercise(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen)
	ctx := context.Background()

	fetched, err := svc.FetchExercise(ctx, fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	res, err := svc.SubmitAnswer(ctx, SubmitRequest{
		LearnerID:  "alice",
		ExerciseID: fetched.ExerciseID,
		Chosen:     exercise.KeyA,
	})
	if err != nil {
		t.Fatalf("submit by id: %v", err)
	}
	if !res.Feedback.IsCorrect {
		t.Error("expected correct grading from the stored exercise")
	}

	_, err = svc.SubmitAnswer(ctx, SubmitRequest{LearnerID: "alice", ExerciseID: 9999, Chosen: exercise.KeyA})
	if !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("err = %v, want ErrExerciseNotFound", err)
	}
}

func TestSubmitFeedbackRecordsAndFetchesNext(t *testing.T) {
	gen := &stubGenerator{}
	svc, st := newTestService(t, gen)
	ctx := context.Background()

	fetched, err := svc.FetchExercise(ctx, fetchReq("alice"))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	res, err := svc.SubmitFeedback(ctx, FeedbackRequest{
		LearnerID:  "alice",
		ExerciseID: fetched.ExerciseID,
		IsGood:     true,
		ChosenKey:  exercise.KeyA,
		WasCorrect: true,
		Next:       fetchReq("alice"),
	})
	if err != nil {
		t.Fatalf("submit feedback: %v", err)
	}
	if !res.Recorded {
		t.Error("expected the verdict to be recorded")
	}
	if res.Next == nil || res.Next.ExerciseID == fetched.ExerciseID {
		t.Errorf("next = %+v, want a different exercise", res.Next)
	}

	n, err := st.Feedback().GoodCount(ctx, fetched.ExerciseID)
	if err != nil {
		t.Fatalf("good count: %v", err)
	}
	if n != 1 {
		t.Errorf("good count = %d, want 1", n)
	}

	// A second verdict on the same exercise is ignored but still advances.
	res, err = svc.SubmitFeedback(ctx, FeedbackRequest{
		LearnerID:  "alice",
		ExerciseID: fetched.ExerciseID,
		IsGood:     false,
		Next:       fetchReq("alice"),
	})
	if err != nil {
		t.Fatalf("submit feedback: %v", err)
	}
	if res.Recorded {
		t.Error("expected duplicate verdict to be ignored")
	}
}

func TestSubmitFeedbackUnsavedExercise(t *testing.T) {
	gen := &stubGenerator{}
	svc, _ := newTestService(t, gen)

	res, err := svc.SubmitFeedback(context.Background(), FeedbackRequest{
		LearnerID: "alice",
		IsGood:    true,
		Next:      fetchReq("alice"),
	})
	if err != nil {
		t.Fatalf("submit feedback: %v", err)
	}
	if res.Recorded {
		t.Error("unsaved exercises record no verdict")
	}
	if res.Next == nil {
		t.Fatal("expected a next exercise regardless")
	}
}
