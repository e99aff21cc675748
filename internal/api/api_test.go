package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/ougirez/billing-tracker/internal/domain"
	"github.com/ougirez/billing-tracker/internal/pkg/config"
	"github.com/ougirez/billing-tracker/internal/pkg/constants"
	"github.com/ougirez/billing-tracker/internal/pkg/store"
	"github.com/ougirez/billing-tracker/internal/pkg/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T, st store.Store, debug bool) *APIService {
	t.Helper()
	svc, err := NewAPIService(&config.Config{
		AllowOrigins: []string{"*"},
		LogLevel:     "error",
		DebugErrors:  debug,
	}, st)
	require.NoError(t, err)
	return svc
}

func do(t *testing.T, svc *APIService, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPI_CreateFacilityGroup_ListsEmptyCollections(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPost, "/api/facility-groups", `{"name":"Texas","billingType":"monthly","billingDay":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[domain.SuccessResponse](t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.ID)

	rec = do(t, svc, http.MethodGet, "/api/facility-groups", "")
	require.Equal(t, http.StatusOK, rec.Code)

	groups := decode[[]map[string]any](t, rec)
	require.Len(t, groups, 3)
	created := groups[2]
	assert.Equal(t, "Texas", created["name"])
	assert.Equal(t, "monthly", created["billingType"])
	assert.Equal(t, float64(10), created["billingDay"])
	assert.Equal(t, []any{}, created["facilities"])
	assert.Equal(t, []any{}, created["customDates"])
	assert.Len(t, created["statuses"], 5)
}

func TestAPI_DeleteFacilityGroup_Cascades(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPost, "/api/billing-records", `{"facilityId":1,"cycle":1,"billedAmount":"100"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, svc, http.MethodDelete, "/api/facility-groups/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	facilities := decode[[]domain.Facility](t, do(t, svc, http.MethodGet, "/api/facilities", ""))
	require.Len(t, facilities, 2)
	for _, f := range facilities {
		assert.Equal(t, int64(2), f.GroupID)
	}

	records := decode[map[string]any](t, do(t, svc, http.MethodGet, "/api/billing-records", ""))
	assert.Empty(t, records)

	rec = do(t, svc, http.MethodDelete, "/api/facility-groups/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_BillingRecords_UpsertIsIdempotentPerCycle(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	for _, body := range []string{
		`{"facilityId":3,"cycle":2,"billingDate":"20250101","billedAmount":"$500"}`,
		`{"facilityId":3,"cycle":2,"billingDate":"20250102","billedAmount":"$500","paidAmount":"$200","statusId":5}`,
	} {
		rec := do(t, svc, http.MethodPost, "/api/billing-records", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	records := decode[map[string]map[string]any](t, do(t, svc, http.MethodGet, "/api/billing-records", ""))
	require.Len(t, records, 1)
	r, ok := records["3-2"]
	require.True(t, ok)
	assert.Equal(t, "20250102", r["billingDate"])
	assert.Equal(t, "$200", r["paidAmount"])
	assert.Equal(t, "", r["paidDate"])
	assert.Equal(t, float64(5), r["statusId"])
	assert.NotContains(t, r, "id")

	summary := decode[[]domain.BillingSummary](t, do(t, svc, http.MethodGet, "/api/billing-records/summary", ""))
	require.Len(t, summary, 1)
	assert.Equal(t, "300.00", summary[0].Outstanding)
}

func TestAPI_BillingRecords_Validation(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPost, "/api/billing-records", `{"cycle":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Error, "facilityId")

	rec = do(t, svc, http.MethodPost, "/api/billing-records", `{"facilityId":999,"cycle":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, svc, http.MethodPost, "/api/billing-records", `{"facilityId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_CustomDates(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPost, "/api/custom-dates",
		`{"groupId":2,"customDates":[{"date":"20250110"},{"date":"20250301","frequency":"custom","customFrom":"03/01/2025"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, svc, http.MethodGet, "/api/custom-dates/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"date":"20250301","frequency":"custom","customFrom":"03/01/2025"},
		{"date":"20250110","frequency":"monthly"}
	]`, rec.Body.String())

	rec = do(t, svc, http.MethodPost, "/api/custom-dates", `{"groupId":2,"customDates":[{"frequency":"weekly"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Error, "customDates[0].date")

	rec = do(t, svc, http.MethodGet, "/api/custom-dates/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestAPI_NonNumericIDIsNotFound(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPut, "/api/facilities/abc", `{"name":"x","groupId":1}`},
		{http.MethodDelete, "/api/facility-groups/abc", ""},
		{http.MethodDelete, "/api/statuses/1x", ""},
		{http.MethodGet, "/api/billing-statuses/group/abc", ""},
	} {
		rec := do(t, svc, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
		assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String(), tc.path)
	}
}

func TestAPI_Settings_Overwrite(t *testing.T) {
	svc := newTestAPI(t, storetest.New(), false)

	rec := do(t, svc, http.MethodPost, "/api/settings", `{"theme":"dark","cyclesShown":12}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, svc, http.MethodPost, "/api/settings", `{"theme":"light"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, svc, http.MethodGet, "/api/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"light","cyclesShown":"12"}`, rec.Body.String())
}

func TestAPI_Statuses(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPost, "/api/status-groups", `{"name":"Insurance"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	groupID := *decode[domain.SuccessResponse](t, rec).ID

	rec = do(t, svc, http.MethodPost, "/api/statuses", `{"group_id":`+itoa(groupID)+`,"name":"Submitted","color":"#123456","sortOrder":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	statusID := *decode[domain.SuccessResponse](t, rec).ID

	list := decode[[]domain.BillingStatus](t, do(t, svc, http.MethodGet, "/api/billing-statuses/group/"+itoa(groupID), ""))
	require.Len(t, list, 1)
	assert.Equal(t, "Submitted", list[0].Name)

	rec = do(t, svc, http.MethodPut, "/api/statuses/"+itoa(statusID), `{"name":"Sent","color":"#654321","sortOrder":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	all := decode[[]domain.BillingStatus](t, do(t, svc, http.MethodGet, "/api/statuses", ""))
	require.Len(t, all, 6)
	assert.Equal(t, "Default", all[0].GroupName)
	assert.Equal(t, "Sent", all[5].Name)

	rec = do(t, svc, http.MethodDelete, "/api/statuses/"+itoa(statusID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, svc, http.MethodDelete, "/api/statuses/"+itoa(statusID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, svc, http.MethodDelete, "/api/status-groups/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, svc, http.MethodPut, "/api/status-groups/"+itoa(groupID), `{"name":"Payers"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, svc, http.MethodDelete, "/api/status-groups/"+itoa(groupID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	groups := decode[[]domain.StatusGroup](t, do(t, svc, http.MethodGet, "/api/status-groups", ""))
	require.Len(t, groups, 1)
	assert.True(t, groups[0].IsDefault)
}

func TestAPI_RenameDefaultStatusGroup_KeepsItFirst(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPost, "/api/status-groups", `{"name":"Alpha"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, svc, http.MethodPut, "/api/status-groups/1", `{"name":"Zeta Default"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	groups := decode[[]domain.StatusGroup](t, do(t, svc, http.MethodGet, "/api/status-groups", ""))
	require.Len(t, groups, 2)
	assert.Equal(t, int64(1), groups[0].ID)
	assert.Equal(t, "Zeta Default", groups[0].Name)
	assert.True(t, groups[0].IsDefault)
	assert.False(t, groups[1].IsDefault)

	rec = do(t, svc, http.MethodPut, "/api/status-groups/1", `{"name":"Default","isDefault":false}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	groups = decode[[]domain.StatusGroup](t, do(t, svc, http.MethodGet, "/api/status-groups", ""))
	assert.Equal(t, int64(1), groups[0].ID)
	assert.True(t, groups[0].IsDefault)
}

func TestAPI_UpdateMissingFacility(t *testing.T) {
	svc := newTestAPI(t, storetest.NewSeeded(), false)

	rec := do(t, svc, http.MethodPut, "/api/facilities/404", `{"name":"Ghost","groupId":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, svc, http.MethodPost, "/api/facilities", `{"groupId":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Error, "name")
}

func TestAPI_Health(t *testing.T) {
	st := storetest.New()
	svc := newTestAPI(t, st, false)

	rec := do(t, svc, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, rec.Body.String())

	st.PingErr = errors.New("connection refused")
	rec = do(t, svc, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"disconnected"}`, rec.Body.String())
}

func TestAPI_UnknownRoute(t *testing.T) {
	svc := newTestAPI(t, storetest.New(), false)

	rec := do(t, svc, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}

func TestAPI_ServesFrontend(t *testing.T) {
	svc := newTestAPI(t, storetest.New(), false)

	rec := do(t, svc, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Billing Tracker")
	assert.NotEmpty(t, rec.Header().Get(constants.HeaderRequestID))
}

type brokenStore struct {
	*storetest.Memory
}

func (brokenStore) ListFacilities(context.Context) ([]*domain.Facility, error) {
	return nil, errors.New("pq: relation \"facilities\" does not exist")
}

func TestAPI_InternalErrors(t *testing.T) {
	rec := do(t, newTestAPI(t, brokenStore{storetest.New()}, false), http.MethodGet, "/api/facilities", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	rec = do(t, newTestAPI(t, brokenStore{storetest.New()}, true), http.MethodGet, "/api/facilities", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[domain.ErrorResponse](t, rec).Error, "does not exist")
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
