package server

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gravity-sim/sim"
)

// Server runs the simulation loop and serves its state to display
// consumers. The loop goroutine is the only writer of simulation state;
// HTTP handlers only ever read the latest published snapshot, so the core
// stays single-threaded as designed.
type Server struct {
	cfg     sim.Config
	sim     *sim.Simulation
	hub     *Hub
	metrics *MetricsCollector
	limiter *IPRateLimiter

	httpServer  *http.Server
	httpsServer *http.Server

	mu     sync.RWMutex
	latest []byte // last published snapshot, JSON-encoded

	quit chan struct{}
	wg   sync.WaitGroup
}

func New(cfg sim.Config, simulation *sim.Simulation) *Server {
	return &Server{
		cfg:     cfg,
		sim:     simulation,
		hub:     NewHub(),
		metrics: NewMetricsCollector(),
		limiter: NewIPRateLimiter(rate.Limit(cfg.StateRateLimit), cfg.StateRateBurst),
		quit:    make(chan struct{}),
	}
}

// runLoop owns the simulation: it steps at the configured tick rate,
// publishes a snapshot after every step, and broadcasts at the (usually
// lower) broadcast rate.
func (s *Server) runLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickHz))
	defer ticker.Stop()

	broadcastEvery := s.cfg.TickHz / s.cfg.BroadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}

	s.metrics.SetBodies(len(s.sim.Bodies()))

	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			start := time.Now()
			s.sim.Step()
			s.metrics.ObserveTick(time.Since(start))
			s.metrics.SetDiagnostics(s.sim.TotalKineticEnergy(), s.sim.TotalMomentum().Magnitude())

			payload, err := json.Marshal(buildSnapshot(s.sim))
			if err != nil {
				log.Printf("snapshot encode error: %v", err)
				continue
			}

			s.mu.Lock()
			s.latest = payload
			s.mu.Unlock()

			if s.sim.Tick()%uint64(broadcastEvery) == 0 {
				s.hub.Broadcast(payload)
				s.metrics.RecordSnapshot(len(payload))
			}
		}
	}
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if !s.limiter.Allow(ip) {
		s.metrics.RecordStateRequest("throttled")
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
		return
	}

	s.mu.RLock()
	payload := s.latest
	s.mu.RUnlock()

	if payload == nil {
		// First tick has not completed yet.
		payload = []byte(`{}`)
	}

	s.metrics.RecordStateRequest("ok")
	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, s.metrics)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Start launches the simulation loop, the state servers, and the metrics
// endpoint. It does not block.
func (s *Server) Start() error {
	go s.metrics.ServeMetrics(s.cfg.MetricsAddr)

	s.wg.Add(1)
	go s.runLoop()

	s.httpServer = &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Printf("Starting state server on %s", s.cfg.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	if s.cfg.TLSDomain != "" {
		s.httpsServer = &http.Server{
			Addr:      ":443",
			Handler:   s.handler(),
			TLSConfig: setupTLS(s.cfg.TLSDomain),
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			log.Printf("Starting HTTPS state server on :443 for %s", s.cfg.TLSDomain)
			if err := s.httpsServer.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
				log.Printf("HTTPS server error: %v", err)
			}
		}()
	}

	return nil
}

// Shutdown stops the simulation loop and drains the HTTP servers.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.quit)

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}
	if s.httpsServer != nil {
		if err := s.httpsServer.Shutdown(ctx); err != nil {
			log.Printf("HTTPS server shutdown error: %v", err)
		}
	}

	s.wg.Wait()
	return nil
}
