package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

func (s *store) ListSettings(ctx context.Context) ([]*domain.Setting, error) {
	query := builder().Select("key", "coalesce(value, '') as value").
		From(tableSettings).
		OrderBy("key")

	selected := make([]*domain.Setting, 0)
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

// SaveSettings upserts every key; keys not mentioned are left alone.
func (s *store) SaveSettings(ctx context.Context, settings []*domain.Setting) error {
	if len(settings) == 0 {
		return nil
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		for _, setting := range settings {
			query := builder().Insert(tableSettings).
				Columns("key", "value").
				Values(setting.Key, setting.Value).
				Suffix(`on conflict (key) do update set value = excluded.value, updated_at = CURRENT_TIMESTAMP`)

			if _, err := xpgx.Execx(ctx, tx, query); err != nil {
				return fmt.Errorf("save setting %q: %w", setting.Key, err)
			}
		}
		return nil
	})

	return wrapErr(err)
}
