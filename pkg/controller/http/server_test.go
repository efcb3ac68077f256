package http_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	server "github.com/amora-bot/amora/pkg/controller/http"
	"github.com/amora-bot/amora/pkg/domain/types"
	"github.com/amora-bot/amora/pkg/service/cache"
)

type brokenStore struct{}

func (brokenStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return goerr.New("store is down", goerr.T(types.TagUnavailable))
}
func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, goerr.New("store is down", goerr.T(types.TagUnavailable))
}
func (brokenStore) GetDel(ctx context.Context, key string) ([]byte, error) {
	return nil, goerr.New("store is down", goerr.T(types.TagUnavailable))
}
func (brokenStore) Ping(ctx context.Context) error {
	return goerr.New("store is down", goerr.T(types.TagUnavailable))
}
func (brokenStore) Close() error { return nil }

func TestHealthEndpoints(t *testing.T) {
	srv := server.New(cache.NewMemory())

	t.Run("live", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/health/live", nil))
		gt.Number(t, rec.Code).Equal(200)
	})

	t.Run("ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))
		gt.Number(t, rec.Code).Equal(200)
	})
}

func TestReadyWithBrokenStore(t *testing.T) {
	srv := server.New(brokenStore{})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/health/ready", nil))
	gt.Number(t, rec.Code).Equal(503)
}
