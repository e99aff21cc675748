package store

import (
	"context"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	FacilityGroupStore
	FacilityStore
	BillingRecordStore
	CustomDateStore
	SettingStore
	StatusStore

	Ping(ctx context.Context) error
}

type FacilityGroupStore interface {
	ListFacilityGroups(ctx context.Context) ([]*domain.FacilityGroup, error)
	CreateFacilityGroup(ctx context.Context, group *domain.FacilityGroup) (int64, error)
	UpdateFacilityGroup(ctx context.Context, group *domain.FacilityGroup) error
	DeleteFacilityGroup(ctx context.Context, id int64) error
}

type FacilityStore interface {
	ListFacilities(ctx context.Context) ([]*domain.Facility, error)
	CreateFacility(ctx context.Context, facility *domain.Facility) (int64, error)
	UpdateFacility(ctx context.Context, facility *domain.Facility) error
	DeleteFacility(ctx context.Context, id int64) error
}

type BillingRecordStore interface {
	ListBillingRecords(ctx context.Context) ([]*domain.BillingRecord, error)
	UpsertBillingRecord(ctx context.Context, record *domain.BillingRecord) error
}

type CustomDateStore interface {
	ListCustomDates(ctx context.Context, groupID int64) ([]*domain.CustomDate, error)
	ReplaceCustomDates(ctx context.Context, groupID int64, dates []*domain.CustomDate) error
}

type SettingStore interface {
	ListSettings(ctx context.Context) ([]*domain.Setting, error)
	SaveSettings(ctx context.Context, settings []*domain.Setting) error
}

type StatusStore interface {
	ListStatusGroups(ctx context.Context) ([]*domain.StatusGroup, error)
	CreateStatusGroup(ctx context.Context, group *domain.StatusGroup) (int64, error)
	UpdateStatusGroup(ctx context.Context, group *domain.StatusGroupUpdate) error
	DeleteStatusGroup(ctx context.Context, id int64) error

	ListStatuses(ctx context.Context) ([]*domain.BillingStatus, error)
	ListStatusesByGroup(ctx context.Context, groupID int64) ([]*domain.BillingStatus, error)
	CreateStatus(ctx context.Context, status *domain.BillingStatus) (int64, error)
	UpdateStatus(ctx context.Context, status *domain.BillingStatus) error
	DeleteStatus(ctx context.Context, id int64) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

func (s *store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
