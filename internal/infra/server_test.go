package infra

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"invention_go/internal/engine"
	"invention_go/internal/stream"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &Config{}
	cfg.App.Name = "InventionStream"
	cfg.App.Version = "test"
	cfg.Server.Addr = ":0"
	eng := engine.New(engine.Options{Seed: 1})
	return NewServer(cfg, eng, stream.NewHub(), nil)
}

func postConfig(t *testing.T, srv *Server, body string) engine.ConfigSnapshot {
	t.Helper()
	req := httptest.NewRequest("POST", "/config", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.handleConfig(rec, req)

	if rec.Code != 200 {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var snap engine.ConfigSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	return snap
}

func TestHandleConfig(t *testing.T) {
	t.Run("Partial Update Leaves Other Fields", func(t *testing.T) {
		srv := newTestServer(t)
		before := srv.engine.Config()

		snap := postConfig(t, srv, `{"sensitivity": 2.5}`)
		if snap.Sensitivity != 2.5 {
			t.Errorf("expected sensitivity 2.5, got %f", snap.Sensitivity)
		}
		if snap.PriceNoise != before.PriceNoise || snap.SopranoRhythm != before.SopranoRhythm {
			t.Error("unspecified fields must keep their values")
		}
	})

	t.Run("Out Of Range Values Are Clamped", func(t *testing.T) {
		srv := newTestServer(t)

		snap := postConfig(t, srv, `{"sensitivity": 20, "price_noise": -1}`)
		if snap.Sensitivity != 10.0 {
			t.Errorf("expected sensitivity clamped to 10.0, got %f", snap.Sensitivity)
		}
		if snap.PriceNoise != 0.1 {
			t.Errorf("expected noise clamped to 0.1, got %f", snap.PriceNoise)
		}
	})

	t.Run("Invalid Rhythm Ignored", func(t *testing.T) {
		srv := newTestServer(t)
		before := srv.engine.Config()

		snap := postConfig(t, srv, `{"soprano_rhythm": 5}`)
		if snap.SopranoRhythm != before.SopranoRhythm {
			t.Errorf("invalid rhythm must keep prior value, got %d", snap.SopranoRhythm)
		}
	})

	t.Run("Malformed Body Rejected", func(t *testing.T) {
		srv := newTestServer(t)
		req := httptest.NewRequest("POST", "/config", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		srv.handleConfig(rec, req)
		if rec.Code != 400 {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandleBuild(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest("GET", "/build", nil)
	rec := httptest.NewRecorder()
	srv.handleBuild(rec, req)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body["build_id"] != "test" || body["app"] != "InventionStream" {
		t.Errorf("unexpected build info: %v", body)
	}
	if body["server_time"] == "" {
		t.Error("server_time missing")
	}
}

func TestHandleHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.handleHealthz(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}
