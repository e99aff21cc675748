package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

func (s *store) ListFacilities(ctx context.Context) ([]*domain.Facility, error) {
	query := builder().Select(facilityColumns...).
		From(tableFacilities).
		OrderBy("id")

	selected := make([]*domain.Facility, 0)
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) CreateFacility(ctx context.Context, facility *domain.Facility) (int64, error) {
	query := builder().Insert(tableFacilities).
		Columns("name", "group_id").
		Values(facility.Name, facility.GroupID).
		Suffix("RETURNING id")

	var id int64
	if err := xpgx.Getx(ctx, s.pool, &id, query); err != nil {
		return 0, wrapErr(err)
	}

	return id, nil
}

func (s *store) UpdateFacility(ctx context.Context, facility *domain.Facility) error {
	query := builder().Update(tableFacilities).
		Set("name", facility.Name).
		Set("group_id", facility.GroupID).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": facility.ID})

	tag, err := xpgx.Execx(ctx, s.pool, query)
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "facility", facility.ID)
}

// DeleteFacility cascades to the facility's billing records.
func (s *store) DeleteFacility(ctx context.Context, id int64) error {
	query := builder().Delete(tableFacilities).Where(sq.Eq{"id": id})

	tag, err := xpgx.Execx(ctx, s.pool, query)
	if err != nil {
		return wrapErr(err)
	}

	return mustAffect(tag, "facility", id)
}
