package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

func (s *store) ListCustomDates(ctx context.Context, groupID int64) ([]*domain.CustomDate, error) {
	query := builder().Select(customDateColumns...).
		From(tableCustomDates).
		Where(sq.Eq{"group_id": groupID}).
		OrderBy("date DESC", "id")

	selected := make([]*domain.CustomDate, 0)
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

// ReplaceCustomDates swaps the group's whole custom date list in one transaction.
// An empty list clears it.
func (s *store) ReplaceCustomDates(ctx context.Context, groupID int64, dates []*domain.CustomDate) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		del := builder().Delete(tableCustomDates).Where(sq.Eq{"group_id": groupID})
		if _, err := xpgx.Execx(ctx, tx, del); err != nil {
			return fmt.Errorf("delete custom dates: %w", err)
		}

		if len(dates) == 0 {
			return nil
		}

		ins := builder().Insert(tableCustomDates).
			Columns("group_id", "date", "frequency", "custom_from", "custom_through")
		for _, d := range dates {
			ins = ins.Values(groupID, d.Date, d.Frequency, d.CustomFrom, d.CustomThrough)
		}
		if _, err := xpgx.Execx(ctx, tx, ins); err != nil {
			return fmt.Errorf("insert custom dates: %w", err)
		}

		return nil
	})
	if err != nil {
		logger.Errorf(ctx, "replace custom dates for group %d: %s", groupID, err.Error())
		return wrapErr(err)
	}

	return nil
}
