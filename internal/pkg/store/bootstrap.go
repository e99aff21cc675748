package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

var (
	defaultStatusGroup = domain.StatusGroup{ID: defaultStatusGroupID, Name: "Default", IsDefault: true}

	defaultStatuses = []domain.BillingStatus{
		{Name: "Not Billed", Color: "#93C5FD", SortOrder: 1},
		{Name: "Billed", Color: "#FDE047", SortOrder: 2},
		{Name: "Pending", Color: "#C4B5FD", SortOrder: 3},
		{Name: "Approved", Color: "#86EFAC", SortOrder: 4},
		{Name: "Paid", Color: "#22C55E", SortOrder: 5},
	}

	defaultFacilityGroups = []domain.FacilityGroup{
		{ID: 1, Name: "Alabama Facilities", BillingType: "monthly", BillingDay: intPtr(1)},
		{ID: 2, Name: "Weekly Facilities", BillingType: "weekly", BillingDay: intPtr(5)},
	}

	defaultFacilities = []domain.Facility{
		{ID: 1, Name: "Birmingham Care Center", GroupID: 1},
		{ID: 2, Name: "Montgomery Health", GroupID: 1},
		{ID: 3, Name: "Phoenix Center", GroupID: 2},
		{ID: 4, Name: "Sunrise Health", GroupID: 2},
	}
)

// Tables seeded with explicit ids; their sequences must be moved past the seed.
var seededSequences = []string{tableStatusGroups, tableFacilityGroups, tableFacilities}

const ensureStatusSQL = `
INSERT INTO billing_statuses (status_group_id, name, color, sort_order)
SELECT $1::int, $2::varchar, $3::varchar, $4::int
WHERE NOT EXISTS (
	SELECT 1 FROM billing_statuses WHERE status_group_id = $1::int AND name = $2::varchar
)`

func intPtr(v int) *int {
	return &v
}

// DefaultData is the starter data set written to an empty database.
type DefaultData struct {
	StatusGroup    domain.StatusGroup
	Statuses       []domain.BillingStatus
	FacilityGroups []domain.FacilityGroup
	Facilities     []domain.Facility
}

func Defaults() DefaultData {
	return DefaultData{
		StatusGroup:    defaultStatusGroup,
		Statuses:       append([]domain.BillingStatus(nil), defaultStatuses...),
		FacilityGroups: append([]domain.FacilityGroup(nil), defaultFacilityGroups...),
		Facilities:     append([]domain.Facility(nil), defaultFacilities...),
	}
}

// Bootstrap brings the schema up to date and makes sure the default rows exist.
// Migration failures are logged and startup goes on with whatever schema exists;
// seeding failures are returned.
func Bootstrap(ctx context.Context, pool Pool) error {
	applied, migErr := Migrate(ctx, pool)
	if migErr != nil {
		logger.Errorf(ctx, "Migration error: %s", migErr.Error())
	} else if len(applied) > 0 {
		logger.Infof(ctx, "Migration completed successfully, applied versions %v", applied)
	}

	if err := seedDefaults(ctx, pool); err != nil {
		if migErr != nil {
			logger.Errorf(ctx, "seeding failed after migration error, schema is likely incomplete: %s", err.Error())
			return fmt.Errorf("seedDefaults after %s: %w", migErr.Error(), err)
		}
		return fmt.Errorf("seedDefaults: %w", err)
	}

	if err := ensureDefaults(ctx, pool); err != nil {
		return fmt.Errorf("ensureDefaults: %w", err)
	}

	return nil
}

// seedDefaults fills an empty database with the starter data set.
func seedDefaults(ctx context.Context, pool Pool) error {
	var count int64
	countQuery := builder().Select("count(*)").From(tableFacilityGroups)
	if err := xpgx.Getx(ctx, pool, &count, countQuery); err != nil {
		return fmt.Errorf("count facility groups: %w", err)
	}
	if count > 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if err := ensureDefaultStatusGroup(ctx, tx); err != nil {
			return err
		}
		if err := ensureDefaultStatuses(ctx, tx); err != nil {
			return err
		}

		groups := builder().Insert(tableFacilityGroups).
			Columns("id", "name", "billing_type", "billing_day", "status_group_id")
		for _, g := range defaultFacilityGroups {
			groups = groups.Values(g.ID, g.Name, g.BillingType, g.BillingDay, defaultStatusGroupID)
		}
		if _, err := xpgx.Execx(ctx, tx, groups); err != nil {
			return fmt.Errorf("insert default facility groups: %w", err)
		}

		facilities := builder().Insert(tableFacilities).Columns("id", "name", "group_id")
		for _, f := range defaultFacilities {
			facilities = facilities.Values(f.ID, f.Name, f.GroupID)
		}
		if _, err := xpgx.Execx(ctx, tx, facilities); err != nil {
			return fmt.Errorf("insert default facilities: %w", err)
		}

		for _, table := range seededSequences {
			if err := advanceSequence(ctx, tx, table); err != nil {
				return err
			}
		}

		logger.Infof(ctx, "seeded default data: %d facility groups, %d facilities",
			len(defaultFacilityGroups), len(defaultFacilities))
		return nil
	})
}

// ensureDefaults is safe to run on every start.
func ensureDefaults(ctx context.Context, pool Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if err := ensureDefaultStatusGroup(ctx, tx); err != nil {
			return err
		}
		if err := advanceSequence(ctx, tx, tableStatusGroups); err != nil {
			return err
		}
		return ensureDefaultStatuses(ctx, tx)
	})
}

// advanceSequence moves the table's id sequence to its current max id.
func advanceSequence(ctx context.Context, q xpgx.Querier, table string) error {
	stmt := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), (SELECT coalesce(max(id), 1) FROM %[1]s))`,
		table,
	)
	if _, err := q.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("advance %s sequence: %w", table, err)
	}
	return nil
}

func ensureDefaultStatusGroup(ctx context.Context, q xpgx.Querier) error {
	query := builder().Insert(tableStatusGroups).
		Columns("id", "name", "is_default").
		Values(defaultStatusGroup.ID, defaultStatusGroup.Name, defaultStatusGroup.IsDefault).
		Suffix("ON CONFLICT (id) DO NOTHING")

	if _, err := xpgx.Execx(ctx, q, query); err != nil {
		return fmt.Errorf("insert default status group: %w", err)
	}
	return nil
}

func ensureDefaultStatuses(ctx context.Context, q xpgx.Querier) error {
	for _, st := range defaultStatuses {
		if _, err := q.Exec(ctx, ensureStatusSQL, defaultStatusGroupID, st.Name, st.Color, st.SortOrder); err != nil {
			return fmt.Errorf("insert default status %q: %w", st.Name, err)
		}
	}
	return nil
}
