package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// LLMEventData carries one LLM call's worth of telemetry into the event log.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a persisted event row.
type LLMEvent struct {
	ID           int64     `db:"id"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
	Timestamp    time.Time `db:"created_at"`
}

// LLMUsageRow aggregates event rows by purpose.
type LLMUsageRow struct {
	Purpose      string  `db:"purpose"`
	Calls        int     `db:"calls"`
	InputTokens  int     `db:"input_tokens"`
	OutputTokens int     `db:"output_tokens"`
	AvgLatencyMs float64 `db:"avg_latency_ms"`
}

// QueryOpts bounds an event listing.
type QueryOpts struct {
	Limit int
}

// EventRepo is the LLM event log.
type EventRepo interface {
	AppendLLMEvent(ctx context.Context, data LLMEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageRow, error)
}

type eventRepo struct {
	db *sqlx.DB
}

func (r *eventRepo) AppendLLMEvent(ctx context.Context, data LLMEventData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(provider, model, purpose, input_tokens, output_tokens, latency_ms,
			 success, error_message, request_body, response_body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody,
		data.ResponseBody, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	var events []LLMEvent
	err := r.db.SelectContext(ctx, &events,
		`SELECT id, provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body, created_at
		 FROM llm_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	var ev LLMEvent
	err := r.db.GetContext(ctx, &ev,
		`SELECT id, provider, model, purpose, input_tokens, output_tokens,
			latency_ms, success, error_message, request_body, response_body, created_at
		 FROM llm_events WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("llm event %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	return &ev, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageRow, error) {
	var rows []LLMUsageRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT purpose,
			COUNT(*) AS calls,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens,
			COALESCE(AVG(latency_ms), 0) AS avg_latency_ms
		 FROM llm_events GROUP BY purpose ORDER BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("aggregate llm usage: %w", err)
	}
	return rows, nil
}
