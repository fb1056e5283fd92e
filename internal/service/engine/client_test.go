package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/krobus00/pairsync-service/internal/config"
	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, data string) *entity.EngineConfigDocument {
	t.Helper()

	doc, err := entity.ParseEngineConfigDocument([]byte(data))
	require.NoError(t, err)

	return doc
}

func TestNotifyReload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/reload_config", r.URL.Path)

		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bot", username)
		assert.Equal(t, "secret", password)
	}))
	defer server.Close()

	client := NewClient(config.EngineConfig{
		APIURL:   server.URL + "/api/v1",
		Reload:   true,
		Username: "bot",
		Password: "secret",
		Timeout:  time.Second,
	})

	err := client.NotifyReload(context.Background(), parseDoc(t, `{}`))
	assert.NoError(t, err)
}

func TestNotifyReloadCredentialsFromConfigDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "docuser", username)
		assert.Equal(t, "docpass", password)
	}))
	defer server.Close()

	client := NewClient(config.EngineConfig{APIURL: server.URL, Reload: true, Timeout: time.Second})

	doc := parseDoc(t, `{"api_server":{"username":"docuser","password":"docpass"}}`)
	err := client.NotifyReload(context.Background(), doc)
	assert.NoError(t, err)
}

func TestNotifyReloadMissingCredentials(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(config.EngineConfig{APIURL: server.URL, Reload: true, Timeout: time.Second})

	err := client.NotifyReload(context.Background(), parseDoc(t, `{"api_server":{"username":"bot"}}`))

	require.ErrorIs(t, err, entity.ErrCredentialsMissing)
	assert.Zero(t, hits.Load())
}

func TestNotifyReloadDisabled(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewClient(config.EngineConfig{
		APIURL:   server.URL,
		Reload:   false,
		Username: "bot",
		Password: "secret",
	})

	err := client.NotifyReload(context.Background(), parseDoc(t, `{}`))

	assert.NoError(t, err)
	assert.Zero(t, hits.Load())
}

func TestNotifyReloadNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(config.EngineConfig{
		APIURL:   server.URL,
		Reload:   true,
		Username: "bot",
		Password: "wrong",
		Timeout:  time.Second,
	})

	err := client.NotifyReload(context.Background(), parseDoc(t, `{}`))

	var networkErr *entity.NetworkError
	require.ErrorAs(t, err, &networkErr)
}
