package store

import (
	"context"
	"fmt"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

var billingRecordColumns = []string{
	"id",
	"facility_id",
	"cycle",
	"coalesce(billing_date, '') as billing_date",
	"coalesce(from_date, '') as from_date",
	"coalesce(through_date, '') as through_date",
	"coalesce(billed_amount, '') as billed_amount",
	"coalesce(paid_amount, '') as paid_amount",
	"coalesce(paid_date, '') as paid_date",
	"status_id",
}

func (s *store) ListBillingRecords(ctx context.Context) ([]*domain.BillingRecord, error) {
	query := builder().Select(billingRecordColumns...).
		From(tableBillingRecords).
		Where("facility_id IS NOT NULL").
		OrderBy("facility_id", "cycle")

	selected := make([]*domain.BillingRecord, 0)
	if err := xpgx.Selectx(ctx, s.pool, &selected, query); err != nil {
		logger.Errorf(ctx, "select billing records: %s", err.Error())
		return nil, wrapErr(err)
	}

	return selected, nil
}

// UpsertBillingRecord writes the record for (facility_id, cycle) in a single
// statement, so concurrent writers resolve to the last one.
func (s *store) UpsertBillingRecord(ctx context.Context, record *domain.BillingRecord) error {
	query := builder().Insert(tableBillingRecords).
		Columns(
			"facility_id", "cycle", "billing_date", "from_date", "through_date",
			"billed_amount", "paid_amount", "paid_date", "status_id",
		).
		Values(
			record.FacilityID, record.Cycle, record.BillingDate, record.FromDate, record.ThroughDate,
			record.BilledAmount, record.PaidAmount, record.PaidDate, record.StatusID,
		).
		Suffix(`
on conflict (facility_id, cycle)
do update
set
	billing_date = excluded.billing_date,
	from_date = excluded.from_date,
	through_date = excluded.through_date,
	billed_amount = excluded.billed_amount,
	paid_amount = excluded.paid_amount,
	paid_date = excluded.paid_date,
	status_id = excluded.status_id,
	updated_at = CURRENT_TIMESTAMP`)

	if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
		logger.Errorf(ctx, "upsert billing record %d-%d: %s", record.FacilityID, record.Cycle, err.Error())
		return fmt.Errorf("upsert billing record: %w", wrapErr(err))
	}

	return nil
}
