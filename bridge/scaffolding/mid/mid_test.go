package mid_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bembemg/lista-de-tarefas/bridge/scaffolding/errs"
	"github.com/bembemg/lista-de-tarefas/bridge/scaffolding/mid"
	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

func newMidServer(t *testing.T, handler web.HandlerFunc) *httptest.Server {
	t.Helper()

	log := logger.NewDefault(logger.WithOutput(io.Discard))
	wh := web.NewWebHandler(
		web.WithLogging(log),
		web.WithGlobalMiddleware(
			mid.PublicCORS(),
			mid.Errors(log),
			mid.Panics(),
		),
	)
	wh.GET("/test", handler)

	srv := httptest.NewServer(wh)
	t.Cleanup(srv.Close)
	return srv
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body: %s", err)
	}
	return body.Error
}

func TestErrorsPassesCodeThrough(t *testing.T) {
	srv := newMidServer(t, func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "nothing here")
	})

	resp, err := srv.Client().Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
	if msg := errorBody(t, resp); msg != "nothing here" {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestErrorsMasksInternalOnlyLog(t *testing.T) {
	srv := newMidServer(t, func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.InternalOnlyLog, "secret database dsn leaked")
	})

	resp, err := srv.Client().Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	if msg := errorBody(t, resp); msg != "Internal Server Error" {
		t.Errorf("internal details must not reach the client, got %q", msg)
	}
}

func TestPanicsBecomeMaskedInternalErrors(t *testing.T) {
	srv := newMidServer(t, func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	})

	resp, err := srv.Client().Get(srv.URL + "/test")
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	if msg := errorBody(t, resp); msg != "Internal Server Error" {
		t.Errorf("panic details must not reach the client, got %q", msg)
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newMidServer(t, func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("ok")
	})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/test", nil)
	if err != nil {
		t.Fatalf("building request: %s", err)
	}
	req.Header.Set("Origin", "http://localhost:5173")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected a permissive allow-origin header, got %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected the allow-methods header to be set")
	}
}
