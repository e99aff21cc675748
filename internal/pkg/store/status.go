package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

var (
	statusGroupColumns = []string{"id", "name", "coalesce(is_default, false) as is_default"}
	statusColumns      = []string{
		"id",
		"coalesce(status_group_id, 0) as status_group_id",
		"name",
		"color",
		"coalesce(sort_order, 0) as sort_order",
	}
)

func (s *store) ListStatusGroups(ctx context.Context) ([]*domain.StatusGroup, error) {
	query := builder().Select(statusGroupColumns...).
		From(tableStatusGroups).
		OrderBy("is_default DESC NULLS LAST", "name")

	groups := make([]*domain.StatusGroup, 0)
	if err := xpgx.Selectx(ctx, s.pool, &groups, query); err != nil {
		return nil, wrapErr(err)
	}
	if len(groups) == 0 {
		return groups, nil
	}

	ids := make([]int64, 0, len(groups))
	byID := make(map[int64]*domain.StatusGroup, len(groups))
	for _, g := range groups {
		g.Statuses = make([]*domain.BillingStatus, 0)
		ids = append(ids, g.ID)
		byID[g.ID] = g
	}

	var statuses []*domain.BillingStatus
	statusQuery := builder().Select(statusColumns...).
		From(tableBillingStatuses).
		Where(sq.Eq{"status_group_id": ids}).
		OrderBy("sort_order", "id")
	if err := xpgx.Selectx(ctx, s.pool, &statuses, statusQuery); err != nil {
		return nil, wrapErr(err)
	}

	for _, st := range statuses {
		if g, ok := byID[st.StatusGroupID]; ok {
			g.Statuses = append(g.Statuses, st)
		}
	}

	return groups, nil
}

func (s *store) CreateStatusGroup(ctx context.Context, group *domain.StatusGroup) (int64, error) {
	query := builder().Insert(tableStatusGroups).
		Columns("name", "is_default").
		Values(group.Name, group.IsDefault).
		Suffix("RETURNING id")

	var id int64
	if err := xpgx.Getx(ctx, s.pool, &id, query); err != nil {
		return 0, wrapErr(err)
	}

	return id, nil
}

// UpdateStatusGroup leaves is_default alone unless the update carries it.
// The default group cannot be demoted.
func (s *store) UpdateStatusGroup(ctx context.Context, group *domain.StatusGroupUpdate) error {
	if group.ID == defaultStatusGroupID && group.IsDefault != nil && !*group.IsDefault {
		return fmt.Errorf("%w: the default status group cannot be demoted", constants.ErrValidation)
	}

	query := builder().Update(tableStatusGroups).
		Set("name", group.Name).
		Where(sq.Eq{"id": group.ID})
	if group.IsDefault != nil {
		query = query.Set("is_default", *group.IsDefault)
	}

	tag, err := xpgx.Execx(ctx, s.pool, query)
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "status group", group.ID)
}

// DeleteStatusGroup drops the group and its statuses. Facility groups that used
// it fall back to the default group. The default group itself is permanent.
func (s *store) DeleteStatusGroup(ctx context.Context, id int64) error {
	if id == defaultStatusGroupID {
		return fmt.Errorf("%w: the default status group cannot be deleted", constants.ErrValidation)
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		reassign := builder().Update(tableFacilityGroups).
			Set("status_group_id", defaultStatusGroupID).
			Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
			Where(sq.Eq{"status_group_id": id})
		if _, err := xpgx.Execx(ctx, tx, reassign); err != nil {
			return fmt.Errorf("reassign facility groups: %w", err)
		}

		tag, err := xpgx.Execx(ctx, tx, builder().Delete(tableStatusGroups).Where(sq.Eq{"id": id}))
		if err != nil {
			return fmt.Errorf("delete status group: %w", err)
		}
		return mustAffect(tag, "status group", id)
	})

	return wrapErr(err)
}

// ListStatuses returns every status with its group name, default group first.
func (s *store) ListStatuses(ctx context.Context) ([]*domain.BillingStatus, error) {
	query := builder().Select(
		"bs.id",
		"bs.status_group_id",
		"bs.name",
		"bs.color",
		"coalesce(bs.sort_order, 0) as sort_order",
		"sg.name as group_name",
	).
		From(tableBillingStatuses+" bs").
		Join(tableStatusGroups+" sg on bs.status_group_id = sg.id").
		OrderBy("sg.is_default DESC NULLS LAST", "sg.id", "bs.sort_order", "bs.id")

	selected := make([]*domain.BillingStatus, 0)
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListStatusesByGroup(ctx context.Context, groupID int64) ([]*domain.BillingStatus, error) {
	query := builder().Select(statusColumns...).
		From(tableBillingStatuses).
		Where(sq.Eq{"status_group_id": groupID}).
		OrderBy("sort_order", "id")

	selected := make([]*domain.BillingStatus, 0)
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) CreateStatus(ctx context.Context, status *domain.BillingStatus) (int64, error) {
	query := builder().Insert(tableBillingStatuses).
		Columns("status_group_id", "name", "color", "sort_order").
		Values(status.StatusGroupID, status.Name, status.Color, status.SortOrder).
		Suffix("RETURNING id")

	var id int64
	if err := xpgx.Getx(ctx, s.pool, &id, query); err != nil {
		return 0, wrapErr(err)
	}

	return id, nil
}

func (s *store) UpdateStatus(ctx context.Context, status *domain.BillingStatus) error {
	query := builder().Update(tableBillingStatuses).
		Set("name", status.Name).
		Set("color", status.Color).
		Set("sort_order", status.SortOrder).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": status.ID})

	tag, err := xpgx.Execx(ctx, s.pool, query)
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "status", status.ID)
}

func (s *store) DeleteStatus(ctx context.Context, id int64) error {
	tag, err := xpgx.Execx(ctx, s.pool, builder().Delete(tableBillingStatuses).Where(sq.Eq{"id": id}))
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "status", id)
}
