package storage

import (
	"context"
	"fmt"

	"github.com/lucre-fin/lucre/internal/model"
)

// GetCategories returns every active taxonomy category.
func (s *SQLiteStore) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, is_active, created_at
		FROM categories
		WHERE is_active = 1
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var kind string
		if scanErr := rows.Scan(&cat.ID, &cat.Name, &kind, &cat.IsActive, &cat.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan category: %w", scanErr)
		}
		cat.Kind = model.TransactionKind(kind)
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}
