package web_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bembemg/lista-de-tarefas/infrastructure/web"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

type echoInput struct {
	Value string `json:"value"`
}

func (in echoInput) Validate() error {
	if in.Value == "" {
		return fmt.Errorf("value is required")
	}
	return nil
}

func TestDecode(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value":"hello"}`))

	var in echoInput
	if err := web.Decode(r, &in); err != nil {
		t.Fatalf("decoding: %s", err)
	}
	if in.Value != "hello" {
		t.Errorf("expected hello, got %q", in.Value)
	}
}

func TestDecodeEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

	var in echoInput
	if err := web.Decode(r, &in); err == nil {
		t.Fatal("expected an error for an empty body")
	}
}

func TestDecodeRunsValidation(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value":""}`))

	var in echoInput
	err := web.Decode(r, &in)
	if err == nil || !strings.Contains(err.Error(), "validation") {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestRespondStatusAndBody(t *testing.T) {
	w := httptest.NewRecorder()

	resp := web.NewJSONResponseWithStatus(map[string]string{"status": "ok"}, http.StatusCreated)
	if err := web.Respond(context.Background(), w, resp); err != nil {
		t.Fatalf("responding: %s", err)
	}

	if w.Code != http.StatusCreated {
		t.Errorf("expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected a json content type, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %s", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestRespondNoResponse(t *testing.T) {
	w := httptest.NewRecorder()

	if err := web.Respond(context.Background(), w, web.NewNoResponse()); err != nil {
		t.Fatalf("responding: %s", err)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected an empty body, got %q", w.Body.String())
	}
}

func TestRouteGroupPrefixAndParams(t *testing.T) {
	log := logger.NewDefault(logger.WithOutput(io.Discard))
	wh := web.NewWebHandler(web.WithLogging(log))

	group := wh.Group("/v1")
	group.GET("/items/{item_id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse(map[string]string{"id": web.Param(r, "item_id")})
	})

	srv := httptest.NewServer(wh)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/v1/items/abc")
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %s", err)
	}
	if body["id"] != "abc" {
		t.Errorf("expected path value abc, got %q", body["id"])
	}
}

func TestGlobalMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	wh := web.NewWebHandler(web.WithGlobalMiddleware(tag("global")))
	wh.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		order = append(order, "handler")
		return web.NewJSONResponse("pong")
	}, tag("route"))

	srv := httptest.NewServer(wh)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/ping")
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	resp.Body.Close()

	want := []string{"global", "route", "handler"}
	if len(order) != len(want) {
		t.Fatalf("expected call order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected call order %v, got %v", want, order)
		}
	}
}

func TestDefaultHeaders(t *testing.T) {
	wh := web.NewWebHandler(web.WithDefaultHeaders(map[string]string{"X-App": "tarefas"}))
	wh.GET("/ping", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewJSONResponse("pong")
	})

	srv := httptest.NewServer(wh)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/ping")
	if err != nil {
		t.Fatalf("requesting: %s", err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-App"); got != "tarefas" {
		t.Errorf("expected default header to be set, got %q", got)
	}
}
