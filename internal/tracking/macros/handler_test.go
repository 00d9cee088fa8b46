package macros_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/tracking/macros"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 42

func fptr(v float64) *float64 {
	return &v
}

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req, err = http.NewRequest(method, target, nil)
	}
	require.NoError(t, err)
	return req.WithContext(auth.ContextWithUserID(req.Context(), testUserID))
}

func TestHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	testEntry := macros.Entry{
		Name:         "oatmeal",
		ProteinGrams: fptr(12),
		CarbsGrams:   fptr(55),
		Date:         "2026-02-19",
		TimeOfDay:    "morning",
	}
	testEntryJson, err := json.Marshal(testEntry)
	require.NoError(t, err)
	// marshaling the full Entry emits "errorMarginPct":0; drop the key so the
	// margin is actually omitted from the request, as the mock below assumes
	var testEntryBody map[string]any
	require.NoError(t, json.Unmarshal(testEntryJson, &testEntryBody))
	delete(testEntryBody, "errorMarginPct")
	testEntryJson, err = json.Marshal(testEntryBody)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "", testEntryJson)
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, entry macros.Entry) (*macros.Entry, error) {
			assert.Equal(t, testUserID, entry.UserID)
			assert.Equal(t, testEntry.Name, entry.Name)
			assert.Equal(t, testEntry.Date, entry.Date)
			// margin omitted in the request, default applies
			assert.Equal(t, float64(macros.DefaultErrorMarginPct), entry.ErrorMarginPct)
			assert.False(t, entry.CreatedAt.IsZero())
			added := entry
			added.ID = 7
			return &added, nil
		}).Times(1)

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var addedEntry macros.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &addedEntry))
	assert.Equal(t, 7, addedEntry.ID)
	assert.Equal(t, testEntry.Name, addedEntry.Name)
}

func TestHandler_HandleAdd_ExplicitZeroMargin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "", []byte(`{"name":"exact meal","calories":400,"errorMarginPct":0,"date":"2026-02-19"}`))
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, entry macros.Entry) (*macros.Entry, error) {
			assert.Zero(t, entry.ErrorMarginPct)
			added := entry
			added.ID = 8
			return &added, nil
		}).Times(1)

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_HandleAdd_NotLoggable(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "", []byte(`{"timeOfDay":"morning"}`))
	req.Header.Set("Content-Type", "application/json")

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_HandleDayStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	day := "2026-02-19"
	dayEntries := []macros.Entry{
		{ID: 1, UserID: testUserID, ProteinGrams: fptr(30), ErrorMarginPct: 5, Date: day},
		{ID: 2, UserID: testUserID, ProteinGrams: fptr(20), CarbsGrams: fptr(50), ErrorMarginPct: 5, Date: day},
	}

	repoMock.EXPECT().
		ListForDay(gomock.Any(), testUserID, day).
		Return(dayEntries, nil)
	goalsMock.EXPECT().
		MacroGoals(gomock.Any(), testUserID).
		Return(macros.Goals{ProteinGrams: 100}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/macros/day/"+day, nil)
	req = mux.SetURLVars(req, map[string]string{"day": day})

	h.HandleDayStats(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats macros.DayStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, day, stats.DayKey)
	assert.Equal(t, 2, stats.EntryCount)
	require.NotNil(t, stats.Protein)
	assert.InDelta(t, 50, stats.Protein.Total, 1e-9)
	assert.InDelta(t, 50, stats.Protein.Percentage, 1e-9)
}

func TestHandler_HandleDayStats_EmptyDayIsNull(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	day := "2026-02-19"
	repoMock.EXPECT().
		ListForDay(gomock.Any(), testUserID, day).
		Return([]macros.Entry{}, nil)
	goalsMock.EXPECT().
		MacroGoals(gomock.Any(), testUserID).
		Return(macros.Goals{}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/macros/day/"+day, nil)
	req = mux.SetURLVars(req, map[string]string{"day": day})

	h.HandleDayStats(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", rec.Body.String())
}

func TestHandler_HandleList(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	entries := []macros.Entry{
		{ID: 2, UserID: testUserID, Name: "dinner", CreatedAt: time.Now()},
		{ID: 1, UserID: testUserID, Name: "lunch", CreatedAt: time.Now().Add(-time.Hour)},
	}
	repoMock.EXPECT().
		List(gomock.Any(), macros.ListParams{
			EntryParams: macros.EntryParams{UserID: testUserID},
			Page:        1,
			Size:        10,
		}).
		Return(entries, 2, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/macros/page/1/size/10", nil)
	req = mux.SetURLVars(req, map[string]string{"page": "1", "size": "10"})

	h.HandleList(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var listResponse macros.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResponse))
	assert.Equal(t, 2, listResponse.Total)
	require.Len(t, listResponse.Entries, 2)
	assert.Equal(t, "dinner", listResponse.Entries[0].Name)
}

func TestHandler_HandleDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	repoMock.EXPECT().
		Delete(gomock.Any(), testUserID, 3).
		Return(nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "DELETE", "/macros/3", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var deleteResponse macros.DeleteEntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleteResponse))
	assert.Equal(t, 3, deleteResponse.DeletedID)
}

func TestHandler_HandleDelete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockentriesRepo(ctrl)
	goalsMock := NewMockgoalsProvider(ctrl)
	h := macros.NewHandler(repoMock, goalsMock, metrics.NewTestManager())

	repoMock.EXPECT().
		Delete(gomock.Any(), testUserID, 999).
		Return(macros.ErrEntryNotFound)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "DELETE", "/macros/999", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "999"})

	h.HandleDelete(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
