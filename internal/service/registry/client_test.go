package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProfiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"profiles":[
			{"name":"alpha","targets":["btc","eth"],"targets_api_quote":"USDT"},
			{"name":"beta","targets":[],"targets_api_override":true,"targets_api_url":"http://targets/api"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	profiles, err := client.ListProfiles(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alpha", profiles[0].Name)
	assert.Equal(t, []string{"btc", "eth"}, profiles[0].Targets)
	assert.True(t, profiles[1].TargetsAPIOverride)
	assert.Equal(t, "http://targets/api", profiles[1].TargetsAPIURL)
}

func TestListProfilesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"profiles":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	profiles, err := client.ListProfiles(context.Background())

	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestListProfilesNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListProfiles(context.Background())

	var networkErr *entity.NetworkError
	require.ErrorAs(t, err, &networkErr)
}

func TestListProfilesConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListProfiles(context.Background())

	var networkErr *entity.NetworkError
	require.ErrorAs(t, err, &networkErr)
}

func TestListProfilesNotAnObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["alpha"]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListProfiles(context.Background())

	var formatErr *entity.DataFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestListProfilesMissingKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListProfiles(context.Background())

	var formatErr *entity.DataFormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestListProfilesNotAList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"profiles":"alpha"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.ListProfiles(context.Background())

	var formatErr *entity.DataFormatError
	require.ErrorAs(t, err, &formatErr)
}
