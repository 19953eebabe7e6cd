// Package numerator provides document auto-numbering.
// Numbers are allocated from the sys_sequences table with an
// UPSERT ... RETURNING statement, so every allocation is atomic and a
// number is never handed out twice. Run inside the caller's transaction
// the allocation commits or rolls back together with the document.
package numerator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Generator produces unique document numbers. scope confines the
// counter row (e.g. one per owner) so unrelated callers never contend
// on the same sequence.
type Generator interface {
	Next(ctx context.Context, cfg Config, scope string, period time.Time) (string, error)
}

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// QuerierFunc adapts a function to the Querier interface, letting callers
// resolve the querier per call (e.g. the active transaction from context).
type QuerierFunc func(ctx context.Context) Querier

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers (e.g. "INV")
	Prefix string

	// IncludeYear adds the period year to the number
	IncludeYear bool

	// PadWidth is the minimum counter width (default 5)
	PadWidth int

	// ResetPeriod: "year", "month", "never"
	ResetPeriod string
}

// DefaultConfig returns sensible defaults.
// Pattern: PREFIX-YEAR-XXXXX (e.g. INV-2026-00001), counter reset yearly.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:      prefix,
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Service implements Generator against PostgreSQL.
type Service struct {
	querier QuerierFunc
}

// New creates a numerator service with a static querier.
func New(querier Querier) *Service {
	return &Service{querier: func(context.Context) Querier { return querier }}
}

// NewWithResolver creates a numerator service that resolves the querier
// per call, so allocations participate in the active transaction.
func NewWithResolver(resolve QuerierFunc) *Service {
	return &Service{querier: resolve}
}

// Next allocates and formats the next document number for the scope
// and period. Concurrent allocations in the same scope serialize on the
// sequence row; different scopes proceed independently.
func (s *Service) Next(ctx context.Context, cfg Config, scope string, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	key := buildKey(cfg, scope, period)

	var num int64
	err := s.querier(ctx).QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return "", fmt.Errorf("next number for %s: %w", key, err)
	}

	return formatNumber(cfg, period, num), nil
}

func buildKey(cfg Config, scope string, period time.Time) string {
	key := cfg.Prefix
	if scope != "" {
		key = fmt.Sprintf("%s_%s", key, scope)
	}
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", key, period.Format("2006_01"))
	case "year":
		return fmt.Sprintf("%s_%s", key, period.Format("2006"))
	default:
		return key
	}
}

func formatNumber(cfg Config, period time.Time, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}

	if cfg.IncludeYear {
		return fmt.Sprintf("%s-%s-%0*d", cfg.Prefix, period.Format("2006"), padWidth, num)
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseNumber extracts the numeric part from a formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	var num int64
	patterns := []string{
		"%*[^-]-%*d-%d",
		"%*[^-]-%d",
	}

	for _, pattern := range patterns {
		if _, err := fmt.Sscanf(formatted, pattern, &num); err == nil {
			return num
		}
	}

	return -1
}
