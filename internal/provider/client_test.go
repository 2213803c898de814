package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/planepal/config"
	"github.com/stretchr/testify/assert"
)

func TestClient_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/airlines", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "pagination": {"limit": 100, "offset": 0, "count": 0, "total": 0}}`))
	}))
	defer server.Close()

	client := NewClient(config.ProviderConfig{
		BaseURL:        server.URL + "/",
		AccessKey:      "secret-key",
		TimeoutSeconds: 5,
	})

	body, err := client.Load(context.Background(), ResourceAirlines, map[string]string{"limit": "100"})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"data": [], "pagination": {"limit": 100, "offset": 0, "count": 0, "total": 0}}`, string(body))
}

func TestClient_Load_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(config.ProviderConfig{BaseURL: server.URL + "/", AccessKey: "secret-key"})

	body, err := client.Load(context.Background(), ResourceFlights, nil)

	assert.Nil(t, body)
	assert.ErrorContains(t, err, "status 429")
}

func TestClient_Load_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := NewClient(config.ProviderConfig{BaseURL: server.URL + "/", AccessKey: "secret-key"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Load(ctx, ResourceAirports, nil)
	assert.Error(t, err)
}

func TestFlightPayload_DecodesProviderShapes(t *testing.T) {
	raw := `{
		"flight_date": "2026-09-14",
		"flight_status": "scheduled",
		"departure": {"airport": "Belgrade Nikola Tesla Airport", "timezone": "Europe/Belgrade", "iata": "BEG", "terminal": "2", "gate": "A4", "scheduled": "2026-09-14T08:30:00+00:00"},
		"arrival": {"airport": "Zurich Airport", "timezone": "Europe/Zurich", "iata": "ZRH", "terminal": "1", "gate": "B2", "scheduled": "2026-09-14T10:35:00+00:00"},
		"airline": {"name": "Serbian Airways", "iata": "SA"},
		"flight": {"number": "431", "iata": "SA431", "icao": "ASL431"}
	}`

	var payload FlightPayload
	assert.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC), payload.FlightDate.Time)
	assert.Equal(t, "scheduled", payload.FlightStatus)
	assert.Equal(t, "BEG", payload.Departure.Iata)
	assert.Equal(t, "ASL431", payload.Flight.Icao)
}

func TestDate_AcceptsTimestampForm(t *testing.T) {
	var d Date
	assert.NoError(t, json.Unmarshal([]byte(`"2026-09-14T08:30:00+00:00"`), &d))
	assert.True(t, d.Time.Equal(time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC)))
}
