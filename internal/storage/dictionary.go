package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucre-fin/lucre/internal/model"
)

// SearchMerchant resolves dictionary merchants whose key or alias occurs in
// the description, best match first. The dictionary is small, so rows are
// scanned in priority order and substring-matched in Go, which also covers
// alias lists without SQL gymnastics.
func (s *SQLiteStore) SearchMerchant(ctx context.Context, description string, limit int) ([]model.DictionaryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(description, "description"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant_key, entity_name, category, subcategory, aliases, region_tags, confidence_modifier, priority
		FROM merchants
		ORDER BY priority DESC, length(merchant_key) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	needle := strings.ToLower(description)
	var matches []model.DictionaryEntry

	for rows.Next() {
		entry, aliases, scanErr := scanMerchantRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		if !matchesDescription(needle, entry.Key, aliases) {
			continue
		}

		entry.Aliases = aliases
		matches = append(matches, entry)
		if len(matches) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate merchants: %w", err)
	}

	return matches, nil
}

// SearchBankingPattern resolves banking boilerplate patterns occurring in
// the description, optionally filtered by context tag.
func (s *SQLiteStore) SearchBankingPattern(ctx context.Context, description, contextTag string) ([]model.DictionaryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(description, "description"); err != nil {
		return nil, err
	}

	query := `
		SELECT pattern_key, category, subcategory, confidence_modifier, priority
		FROM banking_patterns
	`
	args := []any{}
	if contextTag != "" {
		query += ` WHERE context = ?`
		args = append(args, contextTag)
	}
	query += ` ORDER BY priority DESC, length(pattern_key) DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query banking patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	needle := strings.ToLower(description)
	var matches []model.DictionaryEntry

	for rows.Next() {
		var entry model.DictionaryEntry
		var subcategory *string
		if scanErr := rows.Scan(&entry.Key, &entry.Category, &subcategory, &entry.ConfidenceModifier, &entry.Priority); scanErr != nil {
			return nil, fmt.Errorf("failed to scan banking pattern: %w", scanErr)
		}
		if subcategory != nil {
			entry.Subcategory = *subcategory
		}
		entry.Kind = model.EntryBankingPattern
		entry.DisplayName = entry.Key

		if strings.Contains(needle, entry.Key) {
			matches = append(matches, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate banking patterns: %w", err)
	}

	return matches, nil
}

// SearchByKeywords resolves keyword entries occurring in the description,
// filtered by transaction kind (rows with empty kind match both).
func (s *SQLiteStore) SearchByKeywords(ctx context.Context, description string, kind model.TransactionKind) ([]model.DictionaryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(description, "description"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT keyword, category, subcategory, confidence_modifier, priority
		FROM keywords
		WHERE kind = '' OR kind = ?
		ORDER BY priority DESC, length(keyword) DESC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer func() { _ = rows.Close() }()

	needle := strings.ToLower(description)
	var matches []model.DictionaryEntry

	for rows.Next() {
		var entry model.DictionaryEntry
		var subcategory *string
		if scanErr := rows.Scan(&entry.Key, &entry.Category, &subcategory, &entry.ConfidenceModifier, &entry.Priority); scanErr != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", scanErr)
		}
		if subcategory != nil {
			entry.Subcategory = *subcategory
		}
		entry.Kind = model.EntryKeyword
		entry.DisplayName = entry.Key

		if strings.Contains(needle, entry.Key) {
			matches = append(matches, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keywords: %w", err)
	}

	return matches, nil
}

// TopMerchants returns the most-frequently-used merchant entries for cache
// preloading.
func (s *SQLiteStore) TopMerchants(ctx context.Context, limit int) ([]model.DictionaryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT merchant_key, entity_name, category, subcategory, aliases, region_tags, confidence_modifier, priority
		FROM merchants
		ORDER BY use_count DESC, priority DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.DictionaryEntry
	for rows.Next() {
		entry, aliases, scanErr := scanMerchantRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entry.Aliases = aliases
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top merchants: %w", err)
	}

	return entries, nil
}

// IncrementMerchantUseCount bumps a merchant's usage counter. Best-effort;
// callers log and move on when it fails.
func (s *SQLiteStore) IncrementMerchantUseCount(ctx context.Context, merchantKey string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(merchantKey, "merchantKey"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE merchants SET use_count = use_count + 1 WHERE merchant_key = ?
	`, merchantKey)
	if err != nil {
		return fmt.Errorf("failed to increment merchant use count: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMerchantRow(rows rowScanner) (model.DictionaryEntry, []string, error) {
	var entry model.DictionaryEntry
	var subcategory, aliases, regionTags *string

	if err := rows.Scan(
		&entry.Key,
		&entry.DisplayName,
		&entry.Category,
		&subcategory,
		&aliases,
		&regionTags,
		&entry.ConfidenceModifier,
		&entry.Priority,
	); err != nil {
		return model.DictionaryEntry{}, nil, fmt.Errorf("failed to scan merchant: %w", err)
	}

	entry.Kind = model.EntryMerchant
	if subcategory != nil {
		entry.Subcategory = *subcategory
	}
	if regionTags != nil && *regionTags != "" {
		entry.RegionTags = strings.Split(*regionTags, ",")
	}

	var aliasList []string
	if aliases != nil && *aliases != "" {
		aliasList = strings.Split(*aliases, ",")
	}

	return entry, aliasList, nil
}

func matchesDescription(needle, key string, aliases []string) bool {
	if key != "" && strings.Contains(needle, key) {
		return true
	}
	for _, alias := range aliases {
		alias = strings.TrimSpace(alias)
		if alias != "" && strings.Contains(needle, alias) {
			return true
		}
	}
	return false
}
