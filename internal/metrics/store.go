package metrics

import (
	"context"
	"database/sql"
	"time"

	"meal-planner-api/internal/shared"
)

// CallMetric records metadata for one model pipeline step.
type CallMetric struct {
	Step             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	Attempts         int
	LatencyMS        int64
	Timestamp        time.Time
}

// Store handles persistence of call metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection. The
// call_metrics table must already be migrated.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m CallMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO call_metrics (step, model, prompt_tokens, completion_tokens, attempts, latency_ms, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Step, m.Model, m.PromptTokens, m.CompletionTokens, m.Attempts, m.LatencyMS, ts,
	)
	return err
}

// RecordMeta records metrics directly from shared.StepMeta.
func (s *Store) RecordMeta(ctx context.Context, meta shared.StepMeta) error {
	return s.Record(ctx, CallMetric{
		Step:             meta.Step,
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		Attempts:         meta.Attempts,
		LatencyMS:        meta.Latency.Milliseconds(),
	})
}

// Cleanup removes metric records older than the given number of days and
// returns how many rows were deleted.
func (s *Store) Cleanup(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.db.ExecContext(ctx, `DELETE FROM call_metrics WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
