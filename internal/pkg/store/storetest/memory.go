// Package storetest provides an in-memory store.Store for service and HTTP tests.
// It follows the same uniqueness, foreign key and cascade rules as the
// Postgres schema.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
)

const defaultStatusGroupID int64 = 1

type recordKey struct {
	facilityID int64
	cycle      int
}

type Memory struct {
	mu sync.Mutex

	// PingErr is returned by Ping when set.
	PingErr error

	statusGroups   map[int64]domain.StatusGroup
	statuses       map[int64]domain.BillingStatus
	facilityGroups map[int64]domain.FacilityGroup
	facilities     map[int64]domain.Facility
	records        map[recordKey]domain.BillingRecord
	customDates    map[int64][]domain.CustomDate
	settings       map[string]string

	nextID int64
}

var _ store.Store = (*Memory)(nil)

// New returns an empty store holding only the default status group.
func New() *Memory {
	m := &Memory{
		statusGroups:   make(map[int64]domain.StatusGroup),
		statuses:       make(map[int64]domain.BillingStatus),
		facilityGroups: make(map[int64]domain.FacilityGroup),
		facilities:     make(map[int64]domain.Facility),
		records:        make(map[recordKey]domain.BillingRecord),
		customDates:    make(map[int64][]domain.CustomDate),
		settings:       make(map[string]string),
		nextID:         100,
	}
	defaults := store.Defaults()
	m.statusGroups[defaults.StatusGroup.ID] = defaults.StatusGroup
	return m
}

// NewSeeded returns a store holding the same rows Bootstrap writes to an empty database.
func NewSeeded() *Memory {
	m := New()
	defaults := store.Defaults()
	for i, st := range defaults.Statuses {
		st.ID = int64(i + 1)
		st.StatusGroupID = defaultStatusGroupID
		m.statuses[st.ID] = st
	}
	now := time.Now().UTC()
	for _, g := range defaults.FacilityGroups {
		g.StatusGroupID = defaultStatusGroupID
		g.CreatedAt, g.UpdatedAt = now, now
		m.facilityGroups[g.ID] = g
	}
	for _, f := range defaults.Facilities {
		m.facilities[f.ID] = f
	}
	return m
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func constraintf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", constants.ErrConstraint, fmt.Sprintf(format, args...))
}

func notFound(entity string, id int64) error {
	return fmt.Errorf("%w: %s %d", constants.ErrDBNotFound, entity, id)
}

func (m *Memory) Ping(context.Context) error {
	return m.PingErr
}

func (m *Memory) ListFacilityGroups(context.Context) ([]*domain.FacilityGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	groups := make([]*domain.FacilityGroup, 0, len(m.facilityGroups))
	for _, g := range m.facilityGroups {
		g := g
		g.Facilities = m.facilitiesOf(g.ID)
		g.Statuses = m.statusesOf(g.StatusGroupID)
		g.CustomDates = m.customDatesOf(g.ID)
		groups = append(groups, &g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups, nil
}

func (m *Memory) CreateFacilityGroup(_ context.Context, group *domain.FacilityGroup) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := *group
	if g.StatusGroupID == 0 {
		g.StatusGroupID = defaultStatusGroupID
	}
	if _, ok := m.statusGroups[g.StatusGroupID]; !ok {
		return 0, constraintf("status group %d does not exist", g.StatusGroupID)
	}
	g.ID = m.id()
	g.CreatedAt = time.Now().UTC()
	g.UpdatedAt = g.CreatedAt
	g.Facilities, g.Statuses, g.CustomDates = nil, nil, nil
	m.facilityGroups[g.ID] = g
	return g.ID, nil
}

func (m *Memory) UpdateFacilityGroup(_ context.Context, group *domain.FacilityGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.facilityGroups[group.ID]
	if !ok {
		return notFound("facility group", group.ID)
	}
	if group.StatusGroupID != 0 {
		if _, ok := m.statusGroups[group.StatusGroupID]; !ok {
			return constraintf("status group %d does not exist", group.StatusGroupID)
		}
		g.StatusGroupID = group.StatusGroupID
	}
	g.Name = group.Name
	g.BillingType = group.BillingType
	g.BillingDay = group.BillingDay
	g.UpdatedAt = time.Now().UTC()
	m.facilityGroups[g.ID] = g
	return nil
}

func (m *Memory) DeleteFacilityGroup(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilityGroups[id]; !ok {
		return notFound("facility group", id)
	}
	for fid, f := range m.facilities {
		if f.GroupID == id {
			m.deleteFacility(fid)
		}
	}
	delete(m.customDates, id)
	delete(m.facilityGroups, id)
	return nil
}

func (m *Memory) ListFacilities(context.Context) ([]*domain.Facility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Facility, 0, len(m.facilities))
	for _, f := range m.facilities {
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateFacility(_ context.Context, facility *domain.Facility) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilityGroups[facility.GroupID]; !ok {
		return 0, constraintf("facility group %d does not exist", facility.GroupID)
	}
	f := *facility
	f.ID = m.id()
	m.facilities[f.ID] = f
	return f.ID, nil
}

func (m *Memory) UpdateFacility(_ context.Context, facility *domain.Facility) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilities[facility.ID]; !ok {
		return notFound("facility", facility.ID)
	}
	if _, ok := m.facilityGroups[facility.GroupID]; !ok {
		return constraintf("facility group %d does not exist", facility.GroupID)
	}
	m.facilities[facility.ID] = *facility
	return nil
}

func (m *Memory) DeleteFacility(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilities[id]; !ok {
		return notFound("facility", id)
	}
	m.deleteFacility(id)
	return nil
}

func (m *Memory) deleteFacility(id int64) {
	for k := range m.records {
		if k.facilityID == id {
			delete(m.records, k)
		}
	}
	delete(m.facilities, id)
}

func (m *Memory) ListBillingRecords(context.Context) ([]*domain.BillingRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.BillingRecord, 0, len(m.records))
	for _, r := range m.records {
		r := r
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FacilityID != out[j].FacilityID {
			return out[i].FacilityID < out[j].FacilityID
		}
		return out[i].Cycle < out[j].Cycle
	})
	return out, nil
}

func (m *Memory) UpsertBillingRecord(_ context.Context, record *domain.BillingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilities[record.FacilityID]; !ok {
		return constraintf("facility %d does not exist", record.FacilityID)
	}
	if record.StatusID != nil {
		if _, ok := m.statuses[*record.StatusID]; !ok {
			return constraintf("status %d does not exist", *record.StatusID)
		}
	}

	key := recordKey{facilityID: record.FacilityID, cycle: record.Cycle}
	r := *record
	if existing, ok := m.records[key]; ok {
		r.ID = existing.ID
	} else {
		r.ID = m.id()
	}
	m.records[key] = r
	return nil
}

func (m *Memory) ListCustomDates(_ context.Context, groupID int64) ([]*domain.CustomDate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.customDatesOf(groupID), nil
}

func (m *Memory) ReplaceCustomDates(_ context.Context, groupID int64, dates []*domain.CustomDate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(dates) == 0 {
		delete(m.customDates, groupID)
		return nil
	}
	if _, ok := m.facilityGroups[groupID]; !ok {
		return constraintf("facility group %d does not exist", groupID)
	}

	list := make([]domain.CustomDate, 0, len(dates))
	for _, d := range dates {
		cd := *d
		cd.ID = m.id()
		cd.GroupID = groupID
		list = append(list, cd)
	}
	m.customDates[groupID] = list
	return nil
}

func (m *Memory) ListSettings(context.Context) ([]*domain.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Setting, 0, len(m.settings))
	for k, v := range m.settings {
		out = append(out, &domain.Setting{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) SaveSettings(_ context.Context, settings []*domain.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range settings {
		m.settings[s.Key] = s.Value
	}
	return nil
}

func (m *Memory) ListStatusGroups(context.Context) ([]*domain.StatusGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.StatusGroup, 0, len(m.statusGroups))
	for _, g := range m.statusGroups {
		g := g
		g.Statuses = m.statusesOf(g.ID)
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *Memory) CreateStatusGroup(_ context.Context, group *domain.StatusGroup) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := *group
	g.ID = m.id()
	g.Statuses = nil
	m.statusGroups[g.ID] = g
	return g.ID, nil
}

func (m *Memory) UpdateStatusGroup(_ context.Context, group *domain.StatusGroupUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if group.ID == defaultStatusGroupID && group.IsDefault != nil && !*group.IsDefault {
		return fmt.Errorf("%w: the default status group cannot be demoted", constants.ErrValidation)
	}
	g, ok := m.statusGroups[group.ID]
	if !ok {
		return notFound("status group", group.ID)
	}
	g.Name = group.Name
	if group.IsDefault != nil {
		g.IsDefault = *group.IsDefault
	}
	m.statusGroups[g.ID] = g
	return nil
}

func (m *Memory) DeleteStatusGroup(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == defaultStatusGroupID {
		return fmt.Errorf("%w: the default status group cannot be deleted", constants.ErrValidation)
	}
	if _, ok := m.statusGroups[id]; !ok {
		return notFound("status group", id)
	}
	for gid, g := range m.facilityGroups {
		if g.StatusGroupID == id {
			g.StatusGroupID = defaultStatusGroupID
			m.facilityGroups[gid] = g
		}
	}
	for sid, st := range m.statuses {
		if st.StatusGroupID == id {
			m.deleteStatus(sid)
		}
	}
	delete(m.statusGroups, id)
	return nil
}

func (m *Memory) ListStatuses(context.Context) ([]*domain.BillingStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.BillingStatus, 0, len(m.statuses))
	for _, st := range m.statuses {
		st := st
		g := m.statusGroups[st.StatusGroupID]
		st.GroupName = g.Name
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := m.statusGroups[out[i].StatusGroupID], m.statusGroups[out[j].StatusGroupID]
		switch {
		case gi.IsDefault != gj.IsDefault:
			return gi.IsDefault
		case gi.ID != gj.ID:
			return gi.ID < gj.ID
		case out[i].SortOrder != out[j].SortOrder:
			return out[i].SortOrder < out[j].SortOrder
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out, nil
}

func (m *Memory) ListStatusesByGroup(_ context.Context, groupID int64) ([]*domain.BillingStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.statusesOf(groupID), nil
}

func (m *Memory) CreateStatus(_ context.Context, status *domain.BillingStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.statusGroups[status.StatusGroupID]; !ok {
		return 0, constraintf("status group %d does not exist", status.StatusGroupID)
	}
	st := *status
	st.ID = m.id()
	st.GroupName = ""
	m.statuses[st.ID] = st
	return st.ID, nil
}

func (m *Memory) UpdateStatus(_ context.Context, status *domain.BillingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.statuses[status.ID]
	if !ok {
		return notFound("status", status.ID)
	}
	st.Name = status.Name
	st.Color = status.Color
	st.SortOrder = status.SortOrder
	m.statuses[st.ID] = st
	return nil
}

func (m *Memory) DeleteStatus(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.statuses[id]; !ok {
		return notFound("status", id)
	}
	m.deleteStatus(id)
	return nil
}

// deleteStatus clears references from billing records, like ON DELETE SET NULL.
func (m *Memory) deleteStatus(id int64) {
	for k, r := range m.records {
		if r.StatusID != nil && *r.StatusID == id {
			r.StatusID = nil
			m.records[k] = r
		}
	}
	delete(m.statuses, id)
}

func (m *Memory) facilitiesOf(groupID int64) []*domain.Facility {
	out := make([]*domain.Facility, 0)
	for _, f := range m.facilities {
		if f.GroupID == groupID {
			f := f
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) statusesOf(statusGroupID int64) []*domain.BillingStatus {
	out := make([]*domain.BillingStatus, 0)
	for _, st := range m.statuses {
		if st.StatusGroupID == statusGroupID {
			st := st
			st.GroupName = ""
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *Memory) customDatesOf(groupID int64) []*domain.CustomDate {
	list := m.customDates[groupID]
	out := make([]*domain.CustomDate, 0, len(list))
	for _, d := range list {
		d := d
		out = append(out, &d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}
