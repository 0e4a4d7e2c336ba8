package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"gravity-sim/sim"
)

// The metrics collector registers on the default prometheus registry, so
// tests share one server instance.
var (
	testOnce   sync.Once
	testServer *Server
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testOnce.Do(func() {
		cfg := sim.DefaultConfig()
		cfg.StateRateLimit = 5
		cfg.StateRateBurst = 10
		simulation, err := sim.New(cfg, sim.DefaultScene(cfg))
		if err != nil {
			t.Fatalf("building simulation: %v", err)
		}
		testServer = New(cfg, simulation)
	})
	return testServer
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestStateBeforeFirstTick(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	s.handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Errorf("body is not valid JSON: %v", err)
	}
}

func TestStateServesLatestSnapshot(t *testing.T) {
	s := newTestServer(t)

	s.sim.Step()
	payload, err := json.Marshal(buildSnapshot(s.sim))
	if err != nil {
		t.Fatal(err)
	}
	s.mu.Lock()
	s.latest = payload
	s.mu.Unlock()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	s.handler().ServeHTTP(rec, req)

	var snap Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if len(snap.Bodies) != 5 {
		t.Errorf("snapshot has %d bodies, want 5", len(snap.Bodies))
	}
	if snap.Tick == 0 {
		t.Error("snapshot tick = 0 after stepping")
	}
}

func TestStateRateLimiting(t *testing.T) {
	s := newTestServer(t)

	throttled := false
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/state", nil)
		req.RemoteAddr = "10.9.9.9:4321" // dedicated IP, its own bucket
		s.handler().ServeHTTP(rec, req)

		if i == 0 && rec.Code != http.StatusOK {
			t.Fatalf("first request status = %d, want 200", rec.Code)
		}
		if rec.Code == http.StatusTooManyRequests {
			throttled = true
			break
		}
	}
	if !throttled {
		t.Error("burst of 50 requests was never throttled")
	}
}

func TestBuildSnapshot(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.PredictionSteps = 5
	simulation, err := sim.New(cfg, sim.DefaultScene(cfg))
	if err != nil {
		t.Fatal(err)
	}
	simulation.Step()

	snap := buildSnapshot(simulation)
	if snap.Tick != 1 {
		t.Errorf("tick = %d, want 1", snap.Tick)
	}
	if len(snap.Bodies) != 5 {
		t.Fatalf("bodies = %d, want 5", len(snap.Bodies))
	}
	for _, b := range snap.Bodies {
		if b.Name == "" {
			t.Error("body missing name")
		}
		if len(b.Color) != 7 || b.Color[0] != '#' {
			t.Errorf("%s color = %q, want #rrggbb", b.Name, b.Color)
		}
		if len(b.Trail) == 0 {
			t.Errorf("%s has empty trail after a step", b.Name)
		}
		if len(b.PredictedPath) != cfg.PredictionSteps {
			t.Errorf("%s forecast length = %d, want %d", b.Name, len(b.PredictedPath), cfg.PredictionSteps)
		}
	}
	if snap.TotalKineticEnergy <= 0 {
		t.Errorf("total kinetic energy = %v, want > 0", snap.TotalKineticEnergy)
	}
}

func TestHubBroadcastDropsSlowClients(t *testing.T) {
	h := NewHub()
	c := &wsClient{send: make(chan []byte, 1)}
	h.register(c)
	defer h.unregister(c)

	// Two broadcasts into a one-slot buffer: the second frame is dropped
	// rather than blocking the simulation loop.
	h.Broadcast([]byte("frame1"))
	h.Broadcast([]byte("frame2"))

	select {
	case got := <-c.send:
		if string(got) != "frame1" {
			t.Errorf("got %q, want frame1", got)
		}
	default:
		t.Fatal("no frame queued")
	}
	select {
	case got := <-c.send:
		t.Errorf("unexpected second frame %q", got)
	default:
	}

	if h.ClientCount() != 1 {
		t.Errorf("ClientCount = %d, want 1", h.ClientCount())
	}
}
