package photos_test

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
	"github.com/fittrackhq/fittrack/internal/tracking/photos"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 42

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	return req.WithContext(auth.ContextWithUserID(req.Context(), testUserID))
}

func TestHandler_HandleResolveURI(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockphotosRepo(ctrl)
	resolverMock := NewMockuriResolver(ctrl)
	h := photos.NewHandler(repoMock, resolverMock, metrics.NewTestManager())

	photo := photos.Photo{ID: 3, UserID: testUserID, ObjectKey: "2026/02/abc.jpg", CreatedAt: time.Now()}
	repoMock.EXPECT().
		Get(gomock.Any(), testUserID, 3).
		Return(&photo, nil)
	resolverMock.EXPECT().
		Resolve(gomock.Any(), photo).
		Return("https://photos.fittrack.io/2026/02/abc.jpg", nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/photos/3/uri", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})

	h.HandleResolveURI(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resolveResponse photos.ResolveURIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resolveResponse))
	assert.Equal(t, 3, resolveResponse.ID)
	assert.Equal(t, "https://photos.fittrack.io/2026/02/abc.jpg", resolveResponse.URI)
}

func TestHandler_HandleResolveURI_InFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockphotosRepo(ctrl)
	resolverMock := NewMockuriResolver(ctrl)
	h := photos.NewHandler(repoMock, resolverMock, metrics.NewTestManager())

	photo := photos.Photo{ID: 3, UserID: testUserID, ObjectKey: "2026/02/abc.jpg"}
	repoMock.EXPECT().
		Get(gomock.Any(), testUserID, 3).
		Return(&photo, nil)
	resolverMock.EXPECT().
		Resolve(gomock.Any(), photo).
		Return("", photos.ErrResolveInFlight)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/photos/3/uri", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "3"})

	h.HandleResolveURI(rec, req)
	require.Equal(t, http.StatusTooEarly, rec.Code)
}

func TestHandler_HandleResolveURI_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockphotosRepo(ctrl)
	resolverMock := NewMockuriResolver(ctrl)
	h := photos.NewHandler(repoMock, resolverMock, metrics.NewTestManager())

	repoMock.EXPECT().
		Get(gomock.Any(), testUserID, 99).
		Return(nil, photos.ErrPhotoNotFound)

	rec := httptest.NewRecorder()
	req := authedRequest(t, "GET", "/photos/99/uri", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "99"})

	h.HandleResolveURI(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockphotosRepo(ctrl)
	resolverMock := NewMockuriResolver(ctrl)
	h := photos.NewHandler(repoMock, resolverMock, metrics.NewTestManager())

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "", []byte(`{"objectKey":"2026/02/abc.jpg","caption":"12 weeks in"}`))
	req.Header.Set("Content-Type", "application/json")

	repoMock.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, photo photos.Photo) (*photos.Photo, error) {
			assert.Equal(t, testUserID, photo.UserID)
			assert.Equal(t, "2026/02/abc.jpg", photo.ObjectKey)
			added := photo
			added.ID = 1
			return &added, nil
		}).Times(1)

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_HandleAdd_MissingObjectKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	repoMock := NewMockphotosRepo(ctrl)
	resolverMock := NewMockuriResolver(ctrl)
	h := photos.NewHandler(repoMock, resolverMock, metrics.NewTestManager())

	rec := httptest.NewRecorder()
	req := authedRequest(t, "POST", "", []byte(`{"caption":"no key"}`))
	req.Header.Set("Content-Type", "application/json")

	h.HandleAdd(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
