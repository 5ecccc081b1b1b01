package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/relnotes/internal/foundation/errors"
)

func TestAPI_PostDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/shares.info", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": body["id"]})
	}))
	t.Cleanup(srv.Close)

	api := NewAPI(New(time.Second), srv.URL+"/api/", "")
	var out struct{ Echo string }
	require.NoError(t, api.Post(context.Background(), "shares.info", map[string]string{"id": "abc"}, &out))
	assert.Equal(t, "abc", out.Echo)
}

func TestAPI_StatusErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	err := NewAPI(New(time.Second), srv.URL, "ua").Post(context.Background(), "x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryUpstream, ferrors.GetCategory(err))
}

func TestAPI_TransportErrorIsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewAPI(New(time.Second), url, "ua").Post(context.Background(), "x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryNetwork, ferrors.GetCategory(err))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/big" {
			_, _ = w.Write(make([]byte, 100))
			return
		}
		_, _ = w.Write([]byte(`{"openapi":"3.0.0"}`))
	}))
	t.Cleanup(srv.Close)

	data, err := Fetch(context.Background(), New(time.Second), srv.URL+"/spec.json", "ua", 1024)
	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi":"3.0.0"}`, string(data))

	_, err = Fetch(context.Background(), New(time.Second), srv.URL+"/big", "ua", 10)
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryUpstream, ferrors.GetCategory(err))
}
