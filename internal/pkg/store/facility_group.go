package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
	"golang.org/x/sync/errgroup"
)

const defaultStatusGroupID int64 = 1

var (
	facilityGroupColumns = []string{
		"id",
		"name",
		"billing_type",
		"billing_day",
		"coalesce(status_group_id, 1) as status_group_id",
		"coalesce(created_at, now()) as created_at",
		"coalesce(updated_at, created_at, now()) as updated_at",
	}
	facilityColumns   = []string{"id", "name", "coalesce(group_id, 0) as group_id"}
	customDateColumns = []string{
		"id",
		"coalesce(group_id, 0) as group_id",
		"date",
		"coalesce(frequency, '') as frequency",
		"custom_from",
		"custom_through",
	}
)

func (s *store) ListFacilityGroups(ctx context.Context) ([]*domain.FacilityGroup, error) {
	query := builder().Select(facilityGroupColumns...).
		From(tableFacilityGroups).
		OrderBy("id")

	groups := make([]*domain.FacilityGroup, 0)
	if err := xpgx.Selectx(ctx, s.pool, &groups, query); err != nil {
		logger.Errorf(ctx, "select facility groups: %s", err.Error())
		return nil, wrapErr(err)
	}
	if len(groups) == 0 {
		return groups, nil
	}

	groupIDs := make([]int64, 0, len(groups))
	statusGroupIDs := make([]int64, 0, len(groups))
	seen := make(map[int64]bool)
	for _, g := range groups {
		g.Facilities = make([]*domain.Facility, 0)
		g.Statuses = make([]*domain.BillingStatus, 0)
		g.CustomDates = make([]*domain.CustomDate, 0)
		groupIDs = append(groupIDs, g.ID)
		if !seen[g.StatusGroupID] {
			seen[g.StatusGroupID] = true
			statusGroupIDs = append(statusGroupIDs, g.StatusGroupID)
		}
	}

	var (
		facilities []*domain.Facility
		dates      []*domain.CustomDate
		statuses   []*domain.BillingStatus
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		q := builder().Select(facilityColumns...).
			From(tableFacilities).
			Where(sq.Eq{"group_id": groupIDs}).
			OrderBy("id")
		if err := xpgx.Selectx(egCtx, s.pool, &facilities, q); err != nil {
			return fmt.Errorf("select facilities: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		q := builder().Select(customDateColumns...).
			From(tableCustomDates).
			Where(sq.Eq{"group_id": groupIDs}).
			OrderBy("date DESC", "id")
		if err := xpgx.Selectx(egCtx, s.pool, &dates, q); err != nil {
			return fmt.Errorf("select custom dates: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		q := builder().Select(statusColumns...).
			From(tableBillingStatuses).
			Where(sq.Eq{"status_group_id": statusGroupIDs}).
			OrderBy("sort_order", "id")
		if err := xpgx.Selectx(egCtx, s.pool, &statuses, q); err != nil {
			return fmt.Errorf("select statuses: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		logger.Errorf(ctx, "list facility groups: %s", err.Error())
		return nil, wrapErr(err)
	}

	byID := make(map[int64]*domain.FacilityGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	for _, f := range facilities {
		if g, ok := byID[f.GroupID]; ok {
			g.Facilities = append(g.Facilities, f)
		}
	}
	for _, d := range dates {
		if g, ok := byID[d.GroupID]; ok {
			g.CustomDates = append(g.CustomDates, d)
		}
	}
	statusesByGroup := make(map[int64][]*domain.BillingStatus)
	for _, st := range statuses {
		statusesByGroup[st.StatusGroupID] = append(statusesByGroup[st.StatusGroupID], st)
	}
	for _, g := range groups {
		if list, ok := statusesByGroup[g.StatusGroupID]; ok {
			g.Statuses = list
		}
	}

	return groups, nil
}

func (s *store) CreateFacilityGroup(ctx context.Context, group *domain.FacilityGroup) (int64, error) {
	statusGroupID := group.StatusGroupID
	if statusGroupID == 0 {
		statusGroupID = defaultStatusGroupID
	}

	query := builder().Insert(tableFacilityGroups).
		Columns("name", "billing_type", "billing_day", "status_group_id").
		Values(group.Name, group.BillingType, group.BillingDay, statusGroupID).
		Suffix("RETURNING id")

	var id int64
	if err := xpgx.Getx(ctx, s.pool, &id, query); err != nil {
		return 0, wrapErr(err)
	}

	return id, nil
}

func (s *store) UpdateFacilityGroup(ctx context.Context, group *domain.FacilityGroup) error {
	set := map[string]any{
		"name":         group.Name,
		"billing_type": group.BillingType,
		"billing_day":  group.BillingDay,
		"updated_at":   sq.Expr("CURRENT_TIMESTAMP"),
	}
	if group.StatusGroupID != 0 {
		set["status_group_id"] = group.StatusGroupID
	}

	query := builder().Update(tableFacilityGroups).
		SetMap(set).
		Where(sq.Eq{"id": group.ID})

	tag, err := xpgx.Execx(ctx, s.pool, query)
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "facility group", group.ID)
}

// DeleteFacilityGroup removes the group; facilities, their billing records and
// the group's custom dates go with it through ON DELETE CASCADE.
func (s *store) DeleteFacilityGroup(ctx context.Context, id int64) error {
	query := builder().Delete(tableFacilityGroups).Where(sq.Eq{"id": id})

	tag, err := xpgx.Execx(ctx, s.pool, query)
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "facility group", id)
}
