package whitelist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestResolveDynamicItemsShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"items":[{"symbol":"eth:perp"},{"symbol":"btc"},"junk"]}`))
	}))
	defer server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{
		Name:               "alpha",
		TargetsAPIOverride: true,
		TargetsAPIURL:      server.URL,
		Targets:            []string{"sol"},
	}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT"}, out)
}

func TestResolveDynamicSymbolsShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbols":["btc","eth/usdt"]}`))
	}))
	defer server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{TargetsAPIOverride: true, TargetsAPIURL: server.URL}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT"}, out)
}

func TestResolveDynamicBareListShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["btc", "eth"]`))
	}))
	defer server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{TargetsAPIOverride: true, TargetsAPIURL: server.URL}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT"}, out)
}

func TestResolveFallsBackOnConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{
		TargetsAPIOverride: true,
		TargetsAPIURL:      server.URL,
		Targets:            []string{"sol", "btc"},
	}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"BTC/USDT", "SOL/USDT"}, out)
}

func TestResolveFallsBackOnEmptyDynamicResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"symbols":[]}`))
	}))
	defer server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{
		TargetsAPIOverride: true,
		TargetsAPIURL:      server.URL,
		Targets:            []string{"sol"},
	}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"SOL/USDT"}, out)
}

func TestResolveFallsBackOnUnsupportedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	}))
	defer server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{
		TargetsAPIOverride: true,
		TargetsAPIURL:      server.URL,
		Targets:            []string{"sol"},
	}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"SOL/USDT"}, out)
}

func TestResolveStaticWhenOverrideDisabled(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	resolver := NewTargetResolver(time.Second)
	profile := entity.Profile{
		TargetsAPIOverride: false,
		TargetsAPIURL:      server.URL,
		Targets:            []string{"eth", "btc"},
	}

	out := resolver.Resolve(context.Background(), profile)

	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT"}, out)
	assert.Zero(t, hits.Load())
}
