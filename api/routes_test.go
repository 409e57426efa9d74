package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/evportal-ch/newshub/datastore"
	"github.com/evportal-ch/newshub/feeds"
	"github.com/evportal-ch/newshub/models"
	"github.com/evportal-ch/newshub/news"
	rh "github.com/evportal-ch/newshub/route-handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopAggregator struct{}

func (noopAggregator) Aggregate(_ context.Context) []models.Article { return nil }

func testRouter() http.Handler {
	cache := news.NewCache(noopAggregator{}, time.Hour, nil)
	newsHandler := rh.NewNewsHandler(feeds.DefaultRegistry(), cache)
	statusHandler := rh.NewStatusHandler(datastore.NewStatusCheckRepository())
	return SetupRoutes(newsHandler, statusHandler, []string{"*"})
}

func TestRoutes(t *testing.T) {
	router := testRouter()

	t.Run("liveness probe", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "OK", recorder.Body.String())
	})

	t.Run("service banner", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		var banner map[string]string
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &banner))
		assert.Equal(t, serviceName, banner["message"])
		assert.Equal(t, serviceVersion, banner["version"])
	})

	t.Run("health endpoint", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, recorder.Code)

		var health struct {
			Status    string    `json:"status"`
			Timestamp time.Time `json:"timestamp"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &health))
		assert.Equal(t, "healthy", health.Status)
		assert.False(t, health.Timestamp.IsZero())
	})

	t.Run("news routes are mounted", func(t *testing.T) {
		for _, target := range []string{"/api/news/sources", "/api/news/categories"} {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusOK, recorder.Code, target)
		}
	})

	t.Run("unknown route is a 404", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/vehicles", nil))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
