package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rgilks/comprehendo-sub000/internal/exercise"
)

// FeedbackRepo persists learner verdicts on exercises. A learner gets one
// verdict per exercise; later submissions are ignored.
type FeedbackRepo struct {
	db *sqlx.DB
}

// Save records a feedback verdict. Returns false when the learner already
// rated this exercise (first write wins, nothing is mutated).
func (r *FeedbackRepo) Save(ctx context.Context, rec exercise.FeedbackRecord) (bool, error) {
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback (exercise_id, learner_id, is_good, chosen_key, was_correct, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (exercise_id, learner_id) DO NOTHING`,
		rec.ExerciseID, rec.LearnerID, rec.IsGood, rec.ChosenKey, rec.WasCorrect, rec.SubmittedAt)
	if err != nil {
		return false, fmt.Errorf("save feedback: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// HasAttempted reports whether the learner has a feedback record for the
// exercise.
func (r *FeedbackRepo) HasAttempted(ctx context.Context, exerciseID int64, learnerID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM feedback WHERE exercise_id = ? AND learner_id = ?`,
		exerciseID, learnerID)
	if err != nil {
		return false, fmt.Errorf("check feedback: %w", err)
	}
	return n > 0, nil
}

// GoodCount returns the number of positive verdicts for the exercise.
func (r *FeedbackRepo) GoodCount(ctx context.Context, exerciseID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM feedback WHERE exercise_id = ? AND is_good = 1`,
		exerciseID)
	if err != nil {
		return 0, fmt.Errorf("count good feedback: %w", err)
	}
	return n, nil
}
