package statuses

import (
	"context"
	"fmt"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
	"github.com/ougirez/billing-tracker/internal/pkg/logger"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewStatusesService(store store.Store) *Service {
	return &Service{store: store}
}

func (s *Service) ListGroups(ctx context.Context) ([]*domain.StatusGroup, error) {
	groups, err := s.store.ListStatusGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListStatusGroups: %w", err)
	}
	return groups, nil
}

func (s *Service) CreateGroup(ctx context.Context, req *dto.StatusGroupRequest) (int64, error) {
	id, err := s.store.CreateStatusGroup(ctx, &domain.StatusGroup{
		Name:      req.Name,
		IsDefault: req.IsDefault != nil && *req.IsDefault,
	})
	if err != nil {
		return 0, fmt.Errorf("store.CreateStatusGroup: %w", err)
	}

	logger.Infof(ctx, "created status group %d %q", id, req.Name)
	return id, nil
}

func (s *Service) UpdateGroup(ctx context.Context, req *dto.StatusGroupRequest) error {
	err := s.store.UpdateStatusGroup(ctx, &domain.StatusGroupUpdate{
		ID:        req.ID,
		Name:      req.Name,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		return fmt.Errorf("store.UpdateStatusGroup: %w", err)
	}
	return nil
}

func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	if err := s.store.DeleteStatusGroup(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteStatusGroup: %w", err)
	}

	logger.Infof(ctx, "deleted status group %d", id)
	return nil
}

func (s *Service) ListStatuses(ctx context.Context) ([]*domain.BillingStatus, error) {
	list, err := s.store.ListStatuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListStatuses: %w", err)
	}
	return list, nil
}

func (s *Service) ListByGroup(ctx context.Context, groupID int64) ([]*domain.BillingStatus, error) {
	list, err := s.store.ListStatusesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("store.ListStatusesByGroup: %w", err)
	}
	return list, nil
}

func (s *Service) CreateStatus(ctx context.Context, req *dto.StatusRequest) (int64, error) {
	id, err := s.store.CreateStatus(ctx, &domain.BillingStatus{
		StatusGroupID: req.GroupID(),
		Name:          req.Name,
		Color:         req.Color,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		return 0, fmt.Errorf("store.CreateStatus: %w", err)
	}
	return id, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req *dto.StatusRequest) error {
	err := s.store.UpdateStatus(ctx, &domain.BillingStatus{
		ID:        req.ID,
		Name:      req.Name,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return fmt.Errorf("store.UpdateStatus: %w", err)
	}
	return nil
}

func (s *Service) DeleteStatus(ctx context.Context, id int64) error {
	if err := s.store.DeleteStatus(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteStatus: %w", err)
	}
	return nil
}
