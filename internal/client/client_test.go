package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8000/", 0, zerolog.Nop())
	assert.Equal(t, "http://localhost:8000", c.baseURL)
	assert.Equal(t, 60*time.Second, c.httpClient.Timeout)
}

func TestHealthcheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, New(server.URL, time.Second, zerolog.Nop()).Healthcheck(context.Background()))
}

func TestHealthcheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := New(server.URL, time.Second, zerolog.Nop()).Healthcheck(context.Background())
	assert.True(t, errors.Is(err, ErrStatus))
}

func TestOptimize_Success(t *testing.T) {
	var got OptimizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/optimize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"container_type": "Refrigerado - Perecible -> Callao",
			"products": [{"id": "P1", "name": "Fish", "type": "PESQUERO", "volume": 1.2,
			              "dim_l": 1.2, "dim_w": 1, "dim_h": 1}],
			"total_volume_m3": 1.2, "utilization_pct": 2.1}]`))
	}))
	defer server.Close()

	c := New(server.URL, time.Second, zerolog.Nop())
	manifest, err := c.Optimize(context.Background(), []string{"P1"}, map[string]any{"priority": "weight"})

	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, got.ProductIDs)
	assert.Equal(t, "weight", got.Preferences["priority"])
	require.Len(t, manifest, 1)
	assert.Equal(t, "PESQUERO", manifest[0].Products[0].Type)
	assert.Equal(t, 1.2, manifest[0].Products[0].Length)
}

func TestOptimize_NilIDsSendsEmptyList(t *testing.T) {
	var raw map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	manifest, err := New(server.URL, time.Second, zerolog.Nop()).Optimize(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, manifest)
	assert.JSONEq(t, `[]`, string(raw["product_ids"]))
}

func TestOptimize_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database offline", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second, zerolog.Nop()).Optimize(context.Background(), []string{"P1"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "database offline")
}

func TestOptimize_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, time.Second, zerolog.Nop()).Optimize(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestOptimize_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release) // must run before server.Close

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL, 5*time.Second, zerolog.Nop()).Optimize(ctx, nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
