package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"invention_go/internal/domain"
	"invention_go/internal/engine"
	"invention_go/internal/metrics"
	"invention_go/internal/stream"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout     = 10 * time.Second
	handshakeTimeout = 10 * time.Second
)

// Server exposes the bundle stream over websocket plus the configuration,
// build-info, health, and metrics endpoints, and optionally serves the
// static browser client.
type Server struct {
	cfg      *Config
	engine   *engine.Engine
	hub      *stream.Hub
	store    domain.SettingsStore // nil when persistence is disabled
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// NewServer wires the HTTP boundary. store may be nil.
func NewServer(cfg *Config, eng *engine.Engine, hub *stream.Hub, store domain.SettingsStore) *Server {
	return &Server{
		cfg:    cfg,
		engine: eng,
		hub:    hub,
		store:  store,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: handshakeTimeout,
			// Single-origin deployment; the stream carries no secrets.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start begins serving in a background goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("POST /config", s.handleConfig)
	mux.HandleFunc("GET /build", s.handleBuild)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())

	if dir := s.cfg.Server.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			mux.Handle("/", http.FileServer(http.Dir(dir)))
		} else {
			slog.Warn("Static dir missing, UI disabled", slog.String("dir", dir))
		}
	}

	s.httpSrv = &http.Server{Addr: s.cfg.Server.Addr, Handler: mux}

	go func() {
		slog.Info("HTTP server listening", slog.String("addr", s.cfg.Server.Addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", slog.Any("error", err))
		}
	}()
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// handleWS upgrades the connection and streams bundles until the client
// disconnects. A disconnect tears down only this subscriber; the engine and
// other subscribers are untouched.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", slog.Any("error", err))
		return
	}

	sub := s.hub.Subscribe()
	slog.Info("Subscriber connected", slog.String("remote", conn.RemoteAddr().String()), slog.Int("total", s.hub.Count()))

	// Read pump: clients send nothing, but reading is how we notice a close.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.Unsubscribe(sub)
				conn.Close()
				return
			}
		}
	}()

	for bundle := range sub.Bundles() {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(bundle); err != nil {
			break
		}
	}

	s.hub.Unsubscribe(sub)
	conn.Close()
	slog.Info("Subscriber disconnected", slog.Int("total", s.hub.Count()))
}

// configUpdate is a partial update: absent fields keep their current values.
type configUpdate struct {
	Sensitivity   *float64 `json:"sensitivity"`
	PriceNoise    *float64 `json:"price_noise"`
	SopranoRhythm *int     `json:"soprano_rhythm"`
}

// handleConfig applies a partial configuration update and echoes the
// resolved (post-clamp) values. Out-of-range numbers are clamped, not
// rejected; invalid rhythm values are ignored.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	var update configUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	if update.Sensitivity != nil {
		resolved := s.engine.SetSensitivity(*update.Sensitivity)
		s.persist(domain.SettingSensitivity, strconv.FormatFloat(resolved, 'f', -1, 64))
	}
	if update.PriceNoise != nil {
		resolved := s.engine.SetPriceNoise(*update.PriceNoise)
		s.persist(domain.SettingPriceNoise, strconv.FormatFloat(resolved, 'f', -1, 64))
	}
	if update.SopranoRhythm != nil {
		resolved := s.engine.SetSopranoRhythm(*update.SopranoRhythm)
		s.persist(domain.SettingSopranoRhythm, strconv.Itoa(resolved))
	}

	metrics.ConfigUpdates.Inc()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.engine.Config())
}

func (s *Server) persist(key, value string) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveSetting(key, value); err != nil {
		slog.Warn("Failed to persist setting", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *Server) handleBuild(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"app":         s.cfg.App.Name,
		"build_id":    s.cfg.App.Version,
		"server_time": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintln(w, "ok")
}
