package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPatternRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewPatternHandler(testConfig(), nil, testMetrics(t), 1)
	router.POST("/api/v1/patterns/generate", handler.Generate)
	router.GET("/api/v1/hooks/next", handler.NextHook)
	router.POST("/api/v1/hooks/reset", handler.ResetHooks)
	router.POST("/api/v1/patterns", handler.Save)
	router.GET("/api/v1/patterns", handler.List)

	return router
}

func TestGenerateMelodyEndpoint(t *testing.T) {
	router := setupPatternRouter(t)

	seed := int64(42)
	w := postJSON(router, "/api/v1/patterns/generate", GeneratePatternRequest{
		Kind: "melody",
		Seed: &seed,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp GeneratePatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "melody", resp.Kind)
	assert.Len(t, resp.Tokens, 8)
	assert.Equal(t, seed, resp.Seed)

	// Same seed, same melody
	again := postJSON(router, "/api/v1/patterns/generate", GeneratePatternRequest{
		Kind: "melody",
		Seed: &seed,
	})
	var resp2 GeneratePatternResponse
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &resp2))
	assert.Equal(t, resp.Tokens, resp2.Tokens)
}

func TestGenerateDrumsEndpoint(t *testing.T) {
	router := setupPatternRouter(t)

	w := postJSON(router, "/api/v1/patterns/generate", GeneratePatternRequest{
		Kind:   "drums",
		Length: 16,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp GeneratePatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Tokens, 16)

	valid := map[string]bool{"Kick": true, "Snare": true, "Hi-hat": true}
	for _, tok := range resp.Tokens {
		assert.True(t, valid[tok], "unexpected token %q", tok)
	}
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	router := setupPatternRouter(t)

	w := postJSON(router, "/api/v1/patterns/generate", GeneratePatternRequest{Kind: "jazz"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHookPoolEndpoints(t *testing.T) {
	router := setupPatternRouter(t)

	seen := make(map[string]bool)
	for i := 0; i < 6; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/hooks/next", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Hook      string `json:"hook"`
			Remaining int    `json:"remaining"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Hook)
		assert.False(t, seen[resp.Hook], "hook %q repeated", resp.Hook)
		seen[resp.Hook] = true
		assert.Equal(t, 5-i, resp.Remaining)
	}

	// Exhausted pool
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/hooks/next", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reset the pool")

	// Reset refills
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/hooks/reset", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "6")
}

func TestSavedPatternsUnavailableWithoutDatabase(t *testing.T) {
	router := setupPatternRouter(t)

	w := postJSON(router, "/api/v1/patterns", SavePatternRequest{
		Name:   "my beat",
		Kind:   "drums",
		Tokens: []string{"Kick", "Snare"},
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	list := httptest.NewRecorder()
	router.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/v1/patterns", nil))
	assert.Equal(t, http.StatusServiceUnavailable, list.Code)
}
