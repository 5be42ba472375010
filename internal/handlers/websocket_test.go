package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"aquascape/internal/models"
	"aquascape/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_at_max", "/ws?interval=20s", 20 * time.Second},
		{"interval_too_large", "/ws?interval=40s", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=40000", 2 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 2 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 2 * time.Second},
		{"both_present_interval_wins", "/ws?interval=3s&interval_ms=150", 3 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func wsURL(srv *httptest.Server, query string) string {
	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/api/v1/ws/alerts"
	u.RawQuery = query
	return u.String()
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	return env.Type, env.Data
}

func TestWebSocket_AlertStream_InitialAndPeriodic(t *testing.T) {
	alerts := &mockAlerts{list: []models.Alert{
		{ID: 1, AquariumID: 1, Type: models.AlertTypeDangerSensor, Message: "Dangerous reading: temp=29, ph=7.2", TS: fixedTS},
	}}
	srv := httptest.NewServer(newTestRouter(&service.Service{Alerts: alerts}))
	defer srv.Close()

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "aquarium_id=1&access_token="+testToken+"&interval_ms=20"), nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	for i := 0; i < 2; i++ {
		typ, data := readEnvelope(t, conn)
		require.Equal(t, "alerts", typ)

		var got []models.Alert
		require.NoError(t, json.Unmarshal(data, &got))
		require.Len(t, got, 1)
		assert.Equal(t, models.AlertTypeDangerSensor, got[0].Type)
	}
}

func TestWebSocket_AlertStream_OnlyOpenAlerts(t *testing.T) {
	alerts := &mockAlerts{}
	srv := httptest.NewServer(newTestRouter(&service.Service{Alerts: alerts}))
	defer srv.Close()

	header := authHeader(testToken)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "aquarium_id=1"), header)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	typ, data := readEnvelope(t, conn)
	assert.Equal(t, "alerts", typ)
	assert.JSONEq(t, `[]`, string(data), "empty list is sent as an array")

	_ = conn.Close()
	require.NotNil(t, alerts.lastFilter.Resolved)
	assert.False(t, *alerts.lastFilter.Resolved)
}

func TestWebSocket_AlertStream_ErrorEnvelope(t *testing.T) {
	alerts := &mockAlerts{listErr: fmt.Errorf("database is locked"), listErrAt: 1}
	srv := httptest.NewServer(newTestRouter(&service.Service{Alerts: alerts}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "aquarium_id=1&access_token="+testToken), nil)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	typ, _ := readEnvelope(t, conn)
	assert.Equal(t, "error", typ)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "stream closes after an error")
}

func TestWebSocket_RejectedBeforeUpgrade(t *testing.T) {
	cases := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{"forbidden", "aquarium_id=1&access_token=" + testToken, service.ErrForbidden, http.StatusForbidden},
		{"not_found", "aquarium_id=1&access_token=" + testToken, service.ErrNotFound, http.StatusNotFound},
		{"missing_aquarium", "access_token=" + testToken, nil, http.StatusBadRequest},
		{"missing_token", "aquarium_id=1", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := &mockAlerts{listErr: tc.err}
			srv := httptest.NewServer(newTestRouter(&service.Service{Alerts: alerts}))
			defer srv.Close()

			_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tc.query), nil)
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, resp)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
