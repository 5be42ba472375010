package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aquascape/internal/models"
	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serve sends an authenticated request through r.
func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header = authHeader(testToken)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), "body=%s", w.Body.String())
}

func TestAquariumHandlers_CRUD(t *testing.T) {
	aqs := &mockAquariums{
		aquarium: models.Aquarium{ID: 5, UserID: 1, Name: "reef"},
		list:     []models.Aquarium{{ID: 5, UserID: 1, Name: "reef"}},
	}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{parseID: 1}, Aquariums: aqs})

	w := serve(r, http.MethodPost, "/api/v1/aquariums", `{"name":"reef","feeding_volume_grams":2.5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(1), aqs.lastUserID)
	assert.Equal(t, "2.5", aqs.lastInput.FeedingVolumeGrams.Decimal.String())

	w = serve(r, http.MethodGet, "/api/v1/aquariums", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Count     int              `json:"count"`
		Aquariums []models.Aquarium `json:"aquariums"`
	}
	decode(t, w, &list)
	assert.Equal(t, 1, list.Count)

	w = serve(r, http.MethodGet, "/api/v1/aquariums/5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), aqs.lastID)

	w = serve(r, http.MethodPut, "/api/v1/aquariums/5", `{"name":"renamed"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "renamed", aqs.lastInput.Name)

	w = serve(r, http.MethodDelete, "/api/v1/aquariums/5", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, aqs.deleted)
}

func TestAquariumHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("aquarium 5: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("aquarium 5: %w", service.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: name is required", service.ErrInvalidInput), http.StatusBadRequest},
		{errors.New("database is locked"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.want), func(t *testing.T) {
			r := newTestRouter(&service.Service{Aquariums: &mockAquariums{err: tc.err}})
			w := serve(r, http.MethodGet, "/api/v1/aquariums/5", "")
			assert.Equal(t, tc.want, w.Code)

			var body map[string]string
			decode(t, w, &body)
			if tc.want == http.StatusInternalServerError {
				assert.Equal(t, "internal error", body["error"], "internal errors are not leaked")
			}
		})
	}
}

func TestAquariumHandlers_BadID(t *testing.T) {
	r := newTestRouter(&service.Service{Aquariums: &mockAquariums{}})
	for _, path := range []string{"/api/v1/aquariums/abc", "/api/v1/aquariums/0", "/api/v1/aquariums/-3"} {
		w := serve(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestAquariumHandlers_Unauthenticated(t *testing.T) {
	r := newTestRouter(&service.Service{Aquariums: &mockAquariums{}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/aquariums", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAquariumHandlers_FeedNowAndSettings(t *testing.T) {
	alerts := &mockAlerts{alert: models.Alert{ID: 9, AquariumID: 5, Type: models.AlertTypeFeedCommand}}
	r := newTestRouter(&service.Service{Alerts: alerts})

	w := serve(r, http.MethodPost, "/api/v1/aquariums/5/feed_now", `{"volume":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(5), alerts.lastID)
	assert.Equal(t, "2", alerts.lastVolume.Decimal.String())

	w = serve(r, http.MethodPost, "/api/v1/aquariums/5/feed_now", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.False(t, alerts.lastVolume.Valid, "empty body means no volume")

	w = serve(r, http.MethodPost, "/api/v1/aquariums/5/settings", `{"feeding_period_hours":12,"name":"tank"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, alerts.lastUpdate.FeedingPeriodHours)
	assert.Equal(t, 12, *alerts.lastUpdate.FeedingPeriodHours)
	assert.Equal(t, "tank", *alerts.lastUpdate.Name)
}
