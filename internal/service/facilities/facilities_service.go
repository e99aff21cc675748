package facilities

import (
	"context"
	"fmt"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
)

const defaultFrequency = "monthly"

type Service struct {
	store store.Store
}

func NewFacilitiesService(store store.Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListGroups(ctx context.Context) ([]*domain.FacilityGroup, error) {
	groups, err := s.store.ListFacilityGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListFacilityGroups: %w", err)
	}
	return groups, nil
}

func (s *Service) CreateGroup(ctx context.Context, req *dto.FacilityGroupRequest) (int64, error) {
	id, err := s.store.CreateFacilityGroup(ctx, groupFromRequest(req))
	if err != nil {
		return 0, fmt.Errorf("store.CreateFacilityGroup: %w", err)
	}

	logger.Infof(ctx, "created facility group %d %q", id, req.Name)
	return id, nil
}

func (s *Service) UpdateGroup(ctx context.Context, req *dto.FacilityGroupRequest) error {
	if err := s.store.UpdateFacilityGroup(ctx, groupFromRequest(req)); err != nil {
		return fmt.Errorf("store.UpdateFacilityGroup: %w", err)
	}
	return nil
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	if err := s.store.DeleteFacilityGroup(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteFacilityGroup: %w", err)
	}

	logger.Infof(ctx, "deleted facility group %d", id)
	return nil
}

func groupFromRequest(req *dto.FacilityGroupRequest) *domain.FacilityGroup {
	group := &domain.FacilityGroup{
		ID:          req.ID,
		Name:        req.Name,
		BillingType: req.BillingType,
		BillingDay:  req.BillingDay,
	}
	if req.StatusGroupID != nil {
		group.StatusGroupID = *req.StatusGroupID
	}
	return group
}

func (s *Service) ListFacilities(ctx context.Context) ([]*domain.Facility, error) {
	facilities, err := s.store.ListFacilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListFacilities: %w", err)
	}
	return facilities, nil
}

func (s *Service) CreateFacility(ctx context.Context, req *dto.FacilityRequest) (int64, error) {
	id, err := s.store.CreateFacility(ctx, &domain.Facility{Name: req.Name, GroupID: req.GroupID})
	if err != nil {
		return 0, fmt.Errorf("store.CreateFacility: %w", err)
	}
	return id, nil
}

func (s *Service) UpdateFacility(ctx context.Context, req *dto.FacilityRequest) error {
	err := s.store.UpdateFacility(ctx, &domain.Facility{ID: req.ID, Name: req.Name, GroupID: req.GroupID})
	if err != nil {
		return fmt.Errorf("store.UpdateFacility: %w", err)
	}
	return nil
}

func (s *Service) DeleteFacility(ctx context.Context, id int64) error {
	if err := s.store.DeleteFacility(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteFacility: %w", err)
	}
	return nil
}

func (s *Service) ListCustomDates(ctx context.Context, groupID int64) ([]*domain.CustomDate, error) {
	dates, err := s.store.ListCustomDates(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("store.ListCustomDates: %w", err)
	}
	return dates, nil
}

// ReplaceCustomDates overwrites the group's custom dates with the request list.
// Missing frequencies become monthly; empty range bounds are dropped.
func (s *Service) ReplaceCustomDates(ctx context.Context, req *dto.CustomDatesRequest) error {
	dates := make([]*domain.CustomDate, 0, len(req.CustomDates))
	for _, item := range req.CustomDates {
		d := &domain.CustomDate{
			GroupID:       req.GroupID,
			Date:          item.Date,
			Frequency:     item.Frequency,
			CustomFrom:    nonEmpty(item.CustomFrom),
			CustomThrough: nonEmpty(item.CustomThrough),
		}
		if d.Frequency == "" {
			d.Frequency = defaultFrequency
		}
		dates = append(dates, d)
	}

	if err := s.store.ReplaceCustomDates(ctx, req.GroupID, dates); err != nil {
		return fmt.Errorf("store.ReplaceCustomDates: %w", err)
	}

	logger.Infof(ctx, "replaced custom dates for group %d: %d dates", req.GroupID, len(dates))
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
