package http

import (
	"context"
	"net/http/httptest"

	"github.com/floralab/catalog-backend/internal/indexer"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeSyncUC struct {
	authErr  error
	res      *usecase.ApplyChangeRes
	applyErr error
	applied  []*usecase.ApplyChangeReq
	secrets  []string
}

func (f *fakeSyncUC) Authorize(ctx context.Context, tenantID int64, secret string) error {
	f.secrets = append(f.secrets, secret)
	return f.authErr
}

func (f *fakeSyncUC) ApplyChange(ctx context.Context, req *usecase.ApplyChangeReq) (*usecase.ApplyChangeRes, error) {
	f.applied = append(f.applied, req)
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	return f.res, nil
}

type fakeSearchUC struct {
	res  *usecase.SearchRes
	err  error
	last *usecase.SearchReq
}

func (f *fakeSearchUC) SearchByImage(ctx context.Context, req *usecase.SearchReq) (*usecase.SearchRes, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

type fakeMetricsProvider struct {
	metrics indexer.Metrics
}

func (f *fakeMetricsProvider) Metrics() indexer.Metrics { return f.metrics }

type fakeHealthChecker struct {
	err error
}

func (f *fakeHealthChecker) Ping() error { return f.err }

type testEnv struct {
	server  *httptest.Server
	syncUC  *fakeSyncUC
	search  *fakeSearchUC
	metrics *fakeMetricsProvider
	health  *fakeHealthChecker
}

func newTestEnv() *testEnv {
	env := &testEnv{
		syncUC:  &fakeSyncUC{},
		search:  &fakeSearchUC{res: usecase.NewSearchRes([]usecase.SearchResult{})},
		metrics: &fakeMetricsProvider{},
		health:  &fakeHealthChecker{},
	}

	mux := chi.NewRouter()
	NewRouter(mux, nopLogger{}).Init(env.syncUC, env.search, env.metrics, env.health)
	env.server = httptest.NewServer(mux)
	return env
}

func (env *testEnv) close() {
	env.server.Close()
}
