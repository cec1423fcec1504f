package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
)

// ProgressRepo tracks per-learner, per-language proficiency state.
type ProgressRepo struct {
	db *sqlx.DB
}

// AnswerOutcome describes how a recorded answer changed the learner's state.
type AnswerOutcome struct {
	Progress  exercise.Progress
	LeveledUp bool
}

// Get returns the learner's progress for a language, creating a fresh A1
// record on first sight.
func (r *ProgressRepo) Get(ctx context.Context, learnerID, language string) (exercise.Progress, error) {
	var p exercise.Progress
	err := r.db.GetContext(ctx, &p,
		`SELECT learner_id, language, level, streak, last_practiced
		 FROM learner_progress WHERE learner_id = ? AND language = ?`,
		learnerID, language)
	if errors.Is(err, sql.ErrNoRows) {
		p = exercise.Progress{
			LearnerID: learnerID,
			Language:  language,
			Level:     cefr.A1,
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO learner_progress (learner_id, language, level, streak, last_practiced)
			 VALUES (?, ?, ?, 0, ?)
			 ON CONFLICT (learner_id, language) DO NOTHING`,
			learnerID, language, p.Level, time.Time{})
		if err != nil {
			return exercise.Progress{}, fmt.Errorf("init progress: %w", err)
		}
		return p, nil
	}
	if err != nil {
		return exercise.Progress{}, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

// RecordAnswer applies one answered exercise to the learner's streak. A wrong
// answer resets the streak. The fifth consecutive correct answer below C2
// promotes the learner and resets the streak; at C2 the streak keeps growing.
func (r *ProgressRepo) RecordAnswer(ctx context.Context, learnerID, language string, correct bool) (AnswerOutcome, error) {
	cur, err := r.Get(ctx, learnerID, language)
	if err != nil {
		return AnswerOutcome{}, err
	}

	next := cur
	next.LastPracticed = time.Now().UTC()
	var leveled bool

	switch {
	case !correct:
		next.Streak = 0
	default:
		next.Streak = cur.Streak + 1
		if next.Streak >= cefr.StreakToLevelUp && !cur.Level.IsMax() {
			next.Level = cur.Level.Next()
			next.Streak = 0
			leveled = true
		}
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE learner_progress SET level = ?, streak = ?, last_practiced = ?
		 WHERE learner_id = ? AND language = ?`,
		next.Level, next.Streak, next.LastPracticed, learnerID, language)
	if err != nil {
		return AnswerOutcome{}, fmt.Errorf("update progress: %w", err)
	}

	return AnswerOutcome{Progress: next, LeveledUp: leveled}, nil
}

// SetLevel overrides the learner's level for a language and clears the
// streak. Used by the reset command and manual level selection.
func (r *ProgressRepo) SetLevel(ctx context.Context, learnerID, language string, level cefr.Level) error {
	if !level.Valid() {
		return fmt.Errorf("invalid CEFR level %q", level)
	}
	if _, err := r.Get(ctx, learnerID, language); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE learner_progress SET level = ?, streak = 0 WHERE learner_id = ? AND language = ?`,
		level, learnerID, language)
	if err != nil {
		return fmt.Errorf("set level: %w", err)
	}
	return nil
}

// All returns every progress row for a learner, ordered by language.
func (r *ProgressRepo) All(ctx context.Context, learnerID string) ([]exercise.Progress, error) {
	var rows []exercise.Progress
	err := r.db.SelectContext(ctx, &rows,
		`SELECT learner_id, language, level, streak, last_practiced
		 FROM learner_progress WHERE learner_id = ? ORDER BY language`,
		learnerID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return rows, nil
}

// Reset deletes all progress and feedback for a learner.
func (r *ProgressRepo) Reset(ctx context.Context, learnerID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM learner_progress WHERE learner_id = ?`, learnerID); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM feedback WHERE learner_id = ?`, learnerID); err != nil {
		return fmt.Errorf("reset feedback: %w", err)
	}
	return tx.Commit()
}
