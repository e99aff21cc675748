package statuses

import (
	"context"
	"testing"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/domain/dto"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/ougirez/billing-tracker/internal/pkg/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_CreateStatus_GroupResolution(t *testing.T) {
	ctx := context.Background()
	svc := NewStatusesService(storetest.NewSeeded())

	groupID, err := svc.CreateGroup(ctx, &dto.StatusGroupRequest{Name: "Insurance"})
	require.NoError(t, err)

	_, err = svc.CreateStatus(ctx, &dto.StatusRequest{StatusGroupID: &groupID, Name: "Submitted", Color: "#111111", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.CreateStatus(ctx, &dto.StatusRequest{LegacyGroupID: &groupID, Name: "Drafted", Color: "#222222", SortOrder: 1})
	require.NoError(t, err)
	_, err = svc.CreateStatus(ctx, &dto.StatusRequest{Name: "On Hold", Color: "#333333", SortOrder: 6})
	require.NoError(t, err)

	list, err := svc.ListByGroup(ctx, groupID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Drafted", list[0].Name)
	assert.Equal(t, "Submitted", list[1].Name)

	defaults, err := svc.ListByGroup(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, defaults, 6)
}

func TestService_ListStatuses_DefaultGroupFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewStatusesService(storetest.NewSeeded())

	groupID, err := svc.CreateGroup(ctx, &dto.StatusGroupRequest{Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.CreateStatus(ctx, &dto.StatusRequest{StatusGroupID: &groupID, Name: "First", Color: "#000000"})
	require.NoError(t, err)

	list, err := svc.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 6)
	assert.Equal(t, "Default", list[0].GroupName)
	assert.Equal(t, "Not Billed", list[0].Name)
	assert.Equal(t, "Alpha", list[5].GroupName)

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.True(t, groups[0].IsDefault)
	assert.Len(t, groups[1].Statuses, 1)
}

func TestService_DeleteGroup(t *testing.T) {
	ctx := context.Background()
	st := storetest.NewSeeded()
	svc := NewStatusesService(st)

	assert.ErrorIs(t, svc.DeleteGroup(ctx, 1), constants.ErrValidation)

	groupID, err := svc.CreateGroup(ctx, &dto.StatusGroupRequest{Name: "Temporary"})
	require.NoError(t, err)
	statusID, err := svc.CreateStatus(ctx, &dto.StatusRequest{StatusGroupID: &groupID, Name: "Gone", Color: "#000000"})
	require.NoError(t, err)
	require.NoError(t, st.UpdateFacilityGroup(ctx, &domain.FacilityGroup{
		ID: 2, Name: "Weekly Facilities", BillingType: "weekly", StatusGroupID: groupID,
	}))
	require.NoError(t, st.UpsertBillingRecord(ctx, &domain.BillingRecord{FacilityID: 3, Cycle: 1, StatusID: &statusID}))

	require.NoError(t, svc.DeleteGroup(ctx, groupID))

	groups, err := st.ListFacilityGroups(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), groups[1].StatusGroupID)

	records, err := st.ListBillingRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].StatusID)

	assert.ErrorIs(t, svc.DeleteStatus(ctx, statusID), constants.ErrDBNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewStatusesService(storetest.NewSeeded())

	require.NoError(t, svc.UpdateStatus(ctx, &dto.StatusRequest{ID: 2, Name: "Invoiced", Color: "#ABCDEF", SortOrder: 2}))

	list, err := svc.ListByGroup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Invoiced", list[1].Name)

	err = svc.UpdateStatus(ctx, &dto.StatusRequest{ID: 404, Name: "x", Color: "#000000"})
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestService_UpdateGroup(t *testing.T) {
	ctx := context.Background()
	svc := NewStatusesService(storetest.NewSeeded())

	require.NoError(t, svc.UpdateGroup(ctx, &dto.StatusGroupRequest{ID: 1, Name: "House"}))

	groups, err := svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "House", groups[0].Name)
	assert.True(t, groups[0].IsDefault)

	demote := false
	err = svc.UpdateGroup(ctx, &dto.StatusGroupRequest{ID: 1, Name: "House", IsDefault: &demote})
	assert.ErrorIs(t, err, constants.ErrValidation)

	promote := true
	groupID, err := svc.CreateGroup(ctx, &dto.StatusGroupRequest{Name: "Payers", IsDefault: &promote})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateGroup(ctx, &dto.StatusGroupRequest{ID: groupID, Name: "Payers", IsDefault: &demote}))

	groups, err = svc.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].ID)
	assert.False(t, groups[1].IsDefault)

	err = svc.UpdateGroup(ctx, &dto.StatusGroupRequest{ID: 404, Name: "x"})
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}
