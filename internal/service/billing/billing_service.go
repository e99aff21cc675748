package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
	"github.com/shopspring/decimal"
)

type Service struct {
	store store.Store
}

func NewBillingService(store store.Store) *Service {
	return &Service{store: store}
}

// RecordKey is the "{facilityId}-{cycle}" key records are returned under.
func RecordKey(facilityID int64, cycle int) string {
	return fmt.Sprintf("%d-%d", facilityID, cycle)
}

func (s *Service) ListRecords(ctx context.Context) (map[string]*domain.BillingRecord, error) {
	records, err := s.store.ListBillingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListBillingRecords: %w", err)
	}

	byKey := make(map[string]*domain.BillingRecord, len(records))
	for _, r := range records {
		byKey[RecordKey(r.FacilityID, r.Cycle)] = r
	}
	return byKey, nil
}

// SaveRecord creates or replaces the record of (facilityId, cycle).
// Absent text fields are saved as empty strings.
func (s *Service) SaveRecord(ctx context.Context, req *dto.BillingRecordRequest) error {
	record := &domain.BillingRecord{
		FacilityID:   *req.FacilityID,
		Cycle:        *req.Cycle,
		BillingDate:  deref(req.BillingDate),
		FromDate:     deref(req.FromDate),
		ThroughDate:  deref(req.ThroughDate),
		BilledAmount: deref(req.BilledAmount),
		PaidAmount:   deref(req.PaidAmount),
		PaidDate:     deref(req.PaidDate),
		StatusID:     req.StatusID,
	}

	if err := s.store.UpsertBillingRecord(ctx, record); err != nil {
		return fmt.Errorf("store.UpsertBillingRecord: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type facilityTotals struct {
	summary      *domain.BillingSummary
	billed, paid decimal.Decimal
}

// Summary totals billed and paid amounts per facility, ordered by facility id.
// Amounts that do not parse as numbers are counted in Skipped and left out.
func (s *Service) Summary(ctx context.Context) ([]*domain.BillingSummary, error) {
	records, err := s.store.ListBillingRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListBillingRecords: %w", err)
	}

	order := make([]int64, 0)
	totals := make(map[int64]*facilityTotals)
	for _, r := range records {
		t, ok := totals[r.FacilityID]
		if !ok {
			t = &facilityTotals{summary: &domain.BillingSummary{FacilityID: r.FacilityID}}
			totals[r.FacilityID] = t
			order = append(order, r.FacilityID)
		}
		t.summary.Records++

		billed, billedOK := ParseAmount(r.BilledAmount)
		paid, paidOK := ParseAmount(r.PaidAmount)
		if !billedOK || !paidOK {
			t.summary.Skipped++
			logger.Debugf(ctx, "summary: skipping record %s with amounts %q/%q",
				RecordKey(r.FacilityID, r.Cycle), r.BilledAmount, r.PaidAmount)
		}
		if billedOK {
			t.billed = t.billed.Add(billed)
		}
		if paidOK {
			t.paid = t.paid.Add(paid)
		}
	}

	out := make([]*domain.BillingSummary, 0, len(order))
	for _, id := range order {
		t := totals[id]
		t.summary.Billed = t.billed.StringFixed(2)
		t.summary.Paid = t.paid.StringFixed(2)
		t.summary.Outstanding = t.billed.Sub(t.paid).StringFixed(2)
		out = append(out, t.summary)
	}
	return out, nil
}

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "\t", "")

// ParseAmount reads a free-text money amount such as "$1,250.50".
// Empty amounts count as zero.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := amountReplacer.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
