package cinedex

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/cinedex/internal/domain"
)

func TestNew_NoDSN(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no dsn provided")
	}
}

func TestEmbedderAdapter(t *testing.T) {
	called := false
	mock := &mockEmbedder{
		fn: func(_ context.Context, text string) (EmbeddingResult, error) {
			called = true
			if text != "heist thriller" {
				t.Errorf("text = %q", text)
			}
			return EmbeddingResult{
				Embedding:    []float32{1, 2, 3},
				PromptTokens: 5,
				TotalTokens:  10,
			}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	result, err := adapter.Embed(context.Background(), "heist thriller")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("inner embedder was not called")
	}
	if len(result.Embedding) != 3 {
		t.Errorf("embedding len = %d, want 3", len(result.Embedding))
	}
	if result.TotalTokens != 10 {
		t.Errorf("total tokens = %d, want 10", result.TotalTokens)
	}
}

func TestEmbedderAdapter_Error(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, errors.New("provider down")
		},
	}

	adapter := &embedderAdapter{inner: mock}
	_, err := adapter.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithPostgres("postgres://localhost:5432/movies").apply(cfg)
	if cfg.dsn != "postgres://localhost:5432/movies" {
		t.Errorf("dsn = %q", cfg.dsn)
	}

	WithTable("films").apply(cfg)
	if cfg.table != "films" {
		t.Errorf("table = %q, want films", cfg.table)
	}

	WithMaxConns(4).apply(cfg)
	if cfg.maxConns != 4 {
		t.Errorf("maxConns = %d, want 4", cfg.maxConns)
	}

	WithRedis("localhost:6380", "pass").apply(cfg)
	if len(cfg.redisAddrs) != 1 || cfg.redisAddrs[0] != "localhost:6380" {
		t.Errorf("redisAddrs = %v", cfg.redisAddrs)
	}
	if cfg.redisPassword != "pass" {
		t.Errorf("password = %q, want pass", cfg.redisPassword)
	}

	WithEmbeddingModel("nomic-embed-text").apply(cfg)
	if cfg.embeddingModel != "nomic-embed-text" {
		t.Errorf("embeddingModel = %q", cfg.embeddingModel)
	}

	WithQueryInstruction("query: ").apply(cfg)
	if cfg.instruction != "query: " {
		t.Errorf("instruction = %q", cfg.instruction)
	}

	WithExactTotal().apply(cfg)
	if !cfg.exactTotal {
		t.Error("expected exactTotal")
	}

	rnd := rand.New(rand.NewPCG(1, 2))
	WithRandom(rnd).apply(cfg)
	if cfg.random == nil {
		t.Error("expected random to be set")
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestWithEmbedder(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, nil
		},
	}
	cfg := &clientConfig{}
	WithEmbedder(mock).apply(cfg)
	if cfg.embedder == nil {
		t.Error("expected non-nil embedder")
	}
}

func TestClient_Close(t *testing.T) {
	store, cache := &mockResource{}, &mockResource{}
	c := &Client{store: store, cache: cache}
	c.Close()
	if !store.closed || !cache.closed {
		t.Errorf("closed: store=%v cache=%v", store.closed, cache.closed)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	c.Close()
}

func TestClient_Ping(t *testing.T) {
	c := &Client{store: &mockResource{}}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c = &Client{store: &mockResource{pingErr: errors.New("refused")}}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "cinedex_sdk_operations_total" {
			found = true
		}
	}
	if !found {
		t.Error("cinedex_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	second, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("second newObserver: %v", err)
	}

	second.observe("trending", time.Now(), nil)
	if got := testutil.ToFloat64(first.metrics.operations.WithLabelValues("trending", "ok")); got != 1 {
		t.Errorf("shared counter = %v, want 1", got)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("test.op", time.Now(), nil)
	obs.observe("test.op", time.Now(), errors.New("test error"))
}
