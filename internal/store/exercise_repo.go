package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rgilks/comprehendo-sub000/internal/cefr"
	"github.com/rgilks/comprehendo-sub000/internal/exercise"
)

// Stored is a cached exercise together with its row identity.
type Stored struct {
	ID       int64
	Exercise exercise.Exercise
}

// Query narrows exercise lookups. LearnerID empty means anonymous: no
// attempted-exercise exclusion applies. ExcludeID skips one specific row,
// used to avoid immediately re-serving the exercise just shown.
type Query struct {
	PassageLanguage  string
	QuestionLanguage string
	Level            cefr.Level
	LearnerID        string
	ExcludeID        int64
}

// ExerciseRepo persists and selects cached exercises. Rows are append-only
// and immutable; only feedback accumulates against them.
type ExerciseRepo struct {
	db *sqlx.DB
}

type exerciseRow struct {
	ID               int64          `db:"id"`
	PassageLanguage  string         `db:"passage_language"`
	QuestionLanguage string         `db:"question_language"`
	Level            string         `db:"level"`
	Content          string         `db:"content"`
	OwnerID          sql.NullString `db:"owner_id"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (r exerciseRow) toStored() (*Stored, error) {
	var ex exercise.Exercise
	if err := json.Unmarshal([]byte(r.Content), &ex); err != nil {
		return nil, fmt.Errorf("decode exercise %d: %w", r.ID, err)
	}
	ex.PassageLanguage = r.PassageLanguage
	ex.QuestionLanguage = r.QuestionLanguage
	ex.Level = cefr.Level(r.Level)
	ex.CreatedAt = r.CreatedAt
	ex.OwnerID = r.OwnerID.String
	return &Stored{ID: r.ID, Exercise: ex}, nil
}

// FindUnattempted returns the newest cached exercise matching the query that
// the learner has no feedback record for. Anonymous learners get the newest
// matching row unconditionally. Returns (nil, nil) on cache miss.
func (r *ExerciseRepo) FindUnattempted(ctx context.Context, q Query) (*Stored, error) {
	var b strings.Builder
	b.WriteString(`SELECT * FROM exercises
		WHERE passage_language = ? AND question_language = ? AND level = ?`)
	args := []any{q.PassageLanguage, q.QuestionLanguage, string(q.Level)}

	if q.ExcludeID != 0 {
		b.WriteString(` AND id <> ?`)
		args = append(args, q.ExcludeID)
	}
	if q.LearnerID != "" {
		b.WriteString(` AND NOT EXISTS (
			SELECT 1 FROM feedback f
			WHERE f.exercise_id = exercises.id AND f.learner_id = ?)`)
		args = append(args, q.LearnerID)
	}
	b.WriteString(` ORDER BY created_at DESC, id DESC LIMIT 1`)

	var row exerciseRow
	err := r.db.GetContext(ctx, &row, b.String(), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find unattempted exercise: %w", err)
	}
	return row.toStored()
}

// PickRandomGood returns a uniformly random exercise among those with at
// least one positive feedback record from any learner, excluding the
// requesting learner's already-attempted rows. Returns (nil, nil) when the
// vetted pool is empty.
func (r *ExerciseRepo) PickRandomGood(ctx context.Context, q Query) (*Stored, error) {
	var b strings.Builder
	b.WriteString(`SELECT * FROM exercises
		WHERE passage_language = ? AND question_language = ? AND level = ?
		AND EXISTS (
			SELECT 1 FROM feedback f
			WHERE f.exercise_id = exercises.id AND f.is_good = 1)`)
	args := []any{q.PassageLanguage, q.QuestionLanguage, string(q.Level)}

	if q.ExcludeID != 0 {
		b.WriteString(` AND id <> ?`)
		args = append(args, q.ExcludeID)
	}
	if q.LearnerID != "" {
		b.WriteString(` AND NOT EXISTS (
			SELECT 1 FROM feedback f
			WHERE f.exercise_id = exercises.id AND f.learner_id = ?)`)
		args = append(args, q.LearnerID)
	}
	b.WriteString(` ORDER BY RANDOM() LIMIT 1`)

	var row exerciseRow
	err := r.db.GetContext(ctx, &row, b.String(), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pick random good exercise: %w", err)
	}
	return row.toStored()
}

// CountCached returns the number of cached exercises for a language/level
// combination.
func (r *ExerciseRepo) CountCached(ctx context.Context, passageLanguage, questionLanguage string, level cefr.Level) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM exercises
		 WHERE passage_language = ? AND question_language = ? AND level = ?`,
		passageLanguage, questionLanguage, string(level))
	if err != nil {
		return 0, fmt.Errorf("count cached exercises: %w", err)
	}
	return n, nil
}

// Save inserts a newly generated exercise and returns its id. Append-only.
func (r *ExerciseRepo) Save(ctx context.Context, ex *exercise.Exercise, ownerID string) (int64, error) {
	content, err := json.Marshal(ex)
	if err != nil {
		return 0, fmt.Errorf("encode exercise: %w", err)
	}

	owner := sql.NullString{String: ownerID, Valid: ownerID != ""}

	var id int64
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO exercises (passage_language, question_language, level, content, owner_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		ex.PassageLanguage, ex.QuestionLanguage, string(ex.Level), string(content), owner, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save exercise: %w", err)
	}
	return id, nil
}

// Get returns one exercise by id, or (nil, nil) when absent.
func (r *ExerciseRepo) Get(ctx context.Context, id int64) (*Stored, error) {
	var row exerciseRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM exercises WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exercise %d: %w", id, err)
	}
	return row.toStored()
}
