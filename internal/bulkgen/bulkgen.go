// Package bulkgen warms the exercise cache ahead of demand: it generates
// batches of exercises per language/level combination with bounded
// concurrency and rate-limit-friendly pacing.
package bulkgen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercisegen"
	"github.com/rgilks/comprehendo-sub000/internal/store"
)

// Options controls one seeding run.
type Options struct {
	// PassageLanguages and Levels define the combinations to seed.
	PassageLanguages []string
	QuestionLanguage string
	Levels           []cefr.Level

	// Count is the number of exercises per combination.
	Count int

	// BatchSize bounds how many generation calls run concurrently.
	BatchSize int

	// CallDelay spaces out launches within a batch; BatchDelay separates
	// batches. Both exist to stay under provider rate limits.
	CallDelay  time.Duration
	BatchDelay time.Duration
}

func (o *Options) normalize() {
	if o.QuestionLanguage == "" {
		o.QuestionLanguage = "en"
	}
	if o.Count <= 0 {
		o.Count = 5
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 3
	}
}

// Report summarizes a seeding run. Failures never abort sibling calls in the
// same batch; they are only counted.
type Report struct {
	Generated int
	Failed    int

	// ByCombination maps "language/level" to the count stored for it.
	ByCombination map[string]int
}

// Seeder runs bulk generation against the cache.
type Seeder struct {
	gen   exercisegen.Generator
	repo  *store.ExerciseRepo
	log   *zap.Logger
	rng   *rand.Rand
	sleep func(context.Context, time.Duration)
}

// New builds a Seeder. The logger may be nil.
func New(gen exercisegen.Generator, repo *store.ExerciseRepo, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		gen:   gen,
		repo:  repo,
		log:   log,
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		sleep: sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Run seeds every language/level combination in opts. It stops early only
// on context cancellation; generation failures are tallied into the report.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Report, error) {
	opts.normalize()

	report := &Report{ByCombination: make(map[string]int)}
	var mu sync.Mutex

	for _, lang := range opts.PassageLanguages {
		for _, level := range opts.Levels {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			combo := fmt.Sprintf("%s/%s", lang, level)
			stored, failed := s.seedCombination(ctx, lang, level, opts)

			mu.Lock()
			report.Generated += stored
			report.Failed += failed
			report.ByCombination[combo] = stored
			mu.Unlock()

			s.log.Info("seeded combination",
				zap.String("combination", combo),
				zap.Int("stored", stored),
				zap.Int("failed", failed))
		}
	}
	return report, nil
}

func (s *Seeder) seedCombination(ctx context.Context, lang string, level cefr.Level, opts Options) (stored, failed int) {
	var mu sync.Mutex

	remaining := opts.Count
	for remaining > 0 {
		if ctx.Err() != nil {
			return stored, failed
		}

		batch := min(remaining, opts.BatchSize)
		g, gctx := errgroup.WithContext(ctx)

		for i := 0; i < batch; i++ {
			mu.Lock()
			topic := cefr.RandomTopic(level, s.rng)
			mu.Unlock()

			g.Go(func() error {
				err := s.generateOne(gctx, lang, opts.QuestionLanguage, level, topic)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed++
					s.log.Warn("generation failed",
						zap.String("language", lang),
						zap.String("level", string(level)),
						zap.String("topic", topic),
						zap.Error(err))
					return nil
				}
				stored++
				return nil
			})

			s.sleep(ctx, opts.CallDelay)
		}

		// Sibling failures are tolerated; the group only surfaces
		// cancellation, which the next loop check picks up.
		_ = g.Wait()

		remaining -= batch
		if remaining > 0 {
			s.sleep(ctx, opts.BatchDelay)
		}
	}
	return stored, failed
}

func (s *Seeder) generateOne(ctx context.Context, lang, questionLang string, level cefr.Level, topic string) error {
	ex, err := s.gen.Generate(ctx, exercisegen.GenerateInput{
		Topic:            topic,
		PassageLanguage:  lang,
		QuestionLanguage: questionLang,
		Level:            level,
	})
	if err != nil {
		return err
	}
	if _, err := s.repo.Save(ctx, ex, ""); err != nil {
		return fmt.Errorf("cache seeded exercise: %w", err)
	}
	return nil
}
