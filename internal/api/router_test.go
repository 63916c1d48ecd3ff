package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-glassdoor-scraper/internal/scraper"
	"go-glassdoor-scraper/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *storage.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := storage.New(t.TempDir())
	require.NoError(t, store.EnsureGroup("Acme"))
	return NewRouter(store), store
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t)
	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestGroups(t *testing.T) {
	r, store := setupRouter(t)
	require.NoError(t, store.EnsureGroup("Beta"))

	w := get(r, "/groups")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Groups []string `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"Acme", "Beta"}, body.Groups)
}

func TestGroupJobs(t *testing.T) {
	r, store := setupRouter(t)
	jobs := []scraper.JobRecord{{Group: "Acme", Link: "https://www.glassdoor.fr/job/1", Title: "Dev"}}
	require.NoError(t, storage.Append(store, "Acme", storage.JobsFile, nil, jobs))

	w := get(r, "/groups/Acme/jobs")
	require.Equal(t, http.StatusOK, w.Code)

	var got []scraper.JobRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, jobs, got)
}

func TestGroupSalaries_EmptyBeforeFirstRun(t *testing.T) {
	r, _ := setupRouter(t)
	w := get(r, "/groups/Acme/salaries")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGroupErrors(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"dotted name", "/groups/a..b/jobs", http.StatusBadRequest},
		{"unknown group", "/groups/Nope/jobs", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, get(r, tt.path).Code)
		})
	}
}
