package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lucre-fin/lucre/internal/common"
	"github.com/lucre-fin/lucre/internal/model"
)

// UpsertLearnedPattern records a user correction. A first correction inserts
// the pattern at the base confidence; repeat corrections of the same
// normalized description bump the usage count and boost confidence
// monotonically up to the cap. Returns the stored pattern.
func (s *SQLiteStore) UpsertLearnedPattern(ctx context.Context, raw, normalized, category, subcategory string) (*model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(normalized, "normalized"); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_learned_patterns
			(description, normalized_description, category, subcategory, confidence, usage_count, last_used_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(normalized_description) DO UPDATE SET
			description = excluded.description,
			category = excluded.category,
			subcategory = excluded.subcategory,
			usage_count = usage_count + 1,
			confidence = MIN(?, ? + ? * (usage_count + 1)),
			last_used_at = excluded.last_used_at
	`, raw, normalized, category, subcategory, model.BoostedConfidence(1), now,
		model.LearnedConfidenceCap, model.LearnedBaseConfidence, model.LearnedConfidenceStep)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert learned pattern: %w", err)
	}

	return s.GetLearnedPattern(ctx, normalized)
}

// GetLearnedPattern fetches a learned pattern by its normalized description.
// Returns common.ErrNotFound when no pattern exists.
func (s *SQLiteStore) GetLearnedPattern(ctx context.Context, normalized string) (*model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(normalized, "normalized"); err != nil {
		return nil, err
	}

	var pattern model.LearnedPattern
	var subcategory *string

	err := s.db.QueryRowContext(ctx, `
		SELECT description, normalized_description, category, subcategory, confidence, usage_count, last_used_at
		FROM user_learned_patterns
		WHERE normalized_description = ?
	`, normalized).Scan(
		&pattern.RawDescription,
		&pattern.Normalized,
		&pattern.Category,
		&subcategory,
		&pattern.Confidence,
		&pattern.UsageCount,
		&pattern.LastUsedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learned pattern: %w", err)
	}

	if subcategory != nil {
		pattern.Subcategory = *subcategory
	}

	return &pattern, nil
}

// TopLearnedPatterns returns the user's highest-usage patterns with
// confidence at or above the candidate floor, for preload and exact-match
// priming.
func (s *SQLiteStore) TopLearnedPatterns(ctx context.Context, limit int) ([]model.LearnedPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT description, normalized_description, category, subcategory, confidence, usage_count, last_used_at
		FROM user_learned_patterns
		WHERE confidence >= ?
		ORDER BY usage_count DESC
		LIMIT ?
	`, model.LearnedCandidateFloor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query learned patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.LearnedPattern
	for rows.Next() {
		var pattern model.LearnedPattern
		var subcategory *string
		if scanErr := rows.Scan(
			&pattern.RawDescription,
			&pattern.Normalized,
			&pattern.Category,
			&subcategory,
			&pattern.Confidence,
			&pattern.UsageCount,
			&pattern.LastUsedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan learned pattern: %w", scanErr)
		}
		if subcategory != nil {
			pattern.Subcategory = *subcategory
		}
		patterns = append(patterns, pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate learned patterns: %w", err)
	}

	return patterns, nil
}

// LearnedPatternCount returns the total number of learned patterns.
func (s *SQLiteStore) LearnedPatternCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_learned_patterns`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count learned patterns: %w", err)
	}
	return count, nil
}
