package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gravity-sim/server"
	"gravity-sim/sim"
)

func main() {
	cfg, err := sim.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	simulation, err := sim.New(cfg, sim.DefaultScene(cfg))
	if err != nil {
		log.Fatalf("Failed to build simulation: %v", err)
	}

	srv := server.New(cfg, simulation)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Printf("Simulation running with %d bodies at %d Hz", len(simulation.Bodies()), cfg.TickHz)

	<-signals
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Shutdown complete")
}
