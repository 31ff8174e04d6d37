package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripcraft/internal/api/controllers"
	"tripcraft/internal/catalog"
	"tripcraft/internal/config"
	"tripcraft/internal/extraction"
	"tripcraft/internal/services"
	mem "tripcraft/pkg/memcache"
	"tripcraft/pkg/middleware"
)

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Seed()
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC) }
	logger := zap.NewNop()
	tripService := services.NewTripService(
		cat,
		extraction.New(cat, extraction.Options{Now: now}),
		mem.NewDrafts(),
		logger,
		services.TripServiceConfig{DraftTTL: time.Hour, Now: now, NewSeed: func() uint64 { return 99 }},
	)

	return NewRouter(
		config.Config{},
		logger,
		cat,
		controllers.NewTripController(tripService, logger),
		controllers.NewCatalogController(services.NewCatalogService(cat), logger),
	)
}

func do(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, rec.Header().Get(middleware.TraceIDHeader), env.TraceID)
	_, err := uuid.Parse(env.TraceID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","catalog_version":"2025.06.1"}`, string(env.Data))
}

func TestTraceIDIsPropagated(t *testing.T) {
	r := newTestRouter(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.TraceIDHeader, id)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, id, rec.Header().Get(middleware.TraceIDHeader))
}

func TestDraftLifecycle(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodPost, "/trips/extract", map[string]string{
		"text": "Bangkok from New York, Jun 1-4, 2025, budget, art and food",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var extracted struct {
		DraftID     string         `json:"draft_id"`
		Preferences map[string]any `json:"preferences"`
		Questions   []string       `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &extracted))
	assert.Equal(t, "Bangkok", extracted.Preferences["destination"])
	assert.Equal(t, "2025-06-01", extracted.Preferences["start_date"])
	assert.EqualValues(t, 4, extracted.Preferences["duration_days"])
	assert.NotEmpty(t, extracted.Questions)

	draftPath := "/trips/drafts/" + extracted.DraftID

	rec, _ = do(t, r, http.MethodGet, draftPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, r, http.MethodPost, draftPath+"/itinerary", map[string]any{"seed": 7})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var itinerary struct {
		Seed uint64 `json:"seed"`
		Days []struct {
			DayIndex  int    `json:"day_index"`
			DateLabel string `json:"date_label"`
			Slots     []struct {
				Slot string `json:"slot"`
			} `json:"slots"`
		} `json:"days"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &itinerary))
	assert.Equal(t, uint64(7), itinerary.Seed)
	require.Len(t, itinerary.Days, 4)
	assert.Equal(t, "Sun, Jun 1, 2025", itinerary.Days[0].DateLabel)
	assert.Len(t, itinerary.Days[0].Slots, 3)
	assert.Len(t, itinerary.Days[1].Slots, 4)

	rec, env = do(t, r, http.MethodPost, draftPath+"/itinerary", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &itinerary))
	assert.Equal(t, uint64(99), itinerary.Seed)

	rec, env = do(t, r, http.MethodPut, draftPath, map[string]any{
		"destination":   "roma",
		"duration_days": 3,
		"budget_tier":   "budget",
		"interests":     []string{"history"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"destination":"Rome"`)

	rec, env = do(t, r, http.MethodPut, draftPath, map[string]any{
		"destination": "Rome",
		"start_date":  "2025-06-04",
		"end_date":    "2025-06-01",
		"budget_tier": "budget",
		"interests":   []string{"history"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)

	rec, _ = do(t, r, http.MethodDelete, draftPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, r, http.MethodGet, draftPath, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Draft not found or expired", env.Message)
}

func TestPlanItinerary(t *testing.T) {
	r := newTestRouter(t)

	rec, _ := do(t, r, http.MethodPost, "/itineraries", map[string]any{"seed": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/itineraries", `{"preferences": {`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := do(t, r, http.MethodPost, "/itineraries", map[string]any{
		"preferences": map[string]any{
			"destination":   "Atlantis",
			"duration_days": 2,
			"budget_tier":   "moderate",
			"interests":     []string{"art"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "unknown destination")

	rec, env = do(t, r, http.MethodPost, "/itineraries", map[string]any{
		"seed": 3,
		"preferences": map[string]any{
			"destination":   "Tokyo",
			"duration_days": 2,
			"budget_tier":   "luxury",
			"interests":     []string{"food", "art"},
			"dietary":       "vegetarian",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, string(env.Data), `"destination":"Tokyo"`)
	assert.Contains(t, string(env.Data), "(vegetarian options)")
}

func TestPlanItineraryWithApprovedActivities(t *testing.T) {
	r := newTestRouter(t)
	prefs := map[string]any{
		"destination":   "Rome",
		"duration_days": 3,
		"budget_tier":   "moderate",
		"interests":     []string{"history"},
		"accommodation": "boutique",
		"pace":          "relaxed",
	}

	rec, env := do(t, r, http.MethodPost, "/itineraries", map[string]any{
		"preferences": prefs,
		"activities":  []string{"Colosseum", "Eiffel Tower"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Message, "Eiffel Tower")

	rec, env = do(t, r, http.MethodPost, "/itineraries", map[string]any{
		"seed":        5,
		"preferences": prefs,
		"activities":  []string{"Colosseum", "Roman Forum"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := string(env.Data)
	assert.Contains(t, body, "Colosseum")
	assert.NotContains(t, body, "Pantheon")
	assert.Contains(t, body, "hotel check-in (boutique)")
	assert.Contains(t, body, "Evening at leisure to rest")
}

func TestCatalogRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/catalog/destinations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"key":"Bangkok"`)

	rec, env = do(t, r, http.MethodGet, "/catalog/destinations/bangkok/activities?interests=food", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var acts struct {
		Activities []struct {
			Category string `json:"category"`
		} `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &acts))
	assert.Len(t, acts.Activities, 5)

	rec, _ = do(t, r, http.MethodGet, "/catalog/destinations/bangkok/activities?interests=skiing", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, r, http.MethodGet, "/catalog/destinations/atlantis/activities", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Destination not found", env.Message)
}
