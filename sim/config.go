package sim

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries every constant shared by the live integrator and the
// trajectory predictor, so the two paths are provably consistent, plus the
// serving knobs for the observation server. It is threaded explicitly
// through both call paths rather than read from globals.
type Config struct {
	// Physics
	G               float64 // gravitational constant, scales force magnitude
	DT              float64 // fixed time step
	Softening       float64 // added to squared distance, regularizes close encounters
	TrailLength     int     // trail memory bound
	PredictionSteps int     // forecast horizon

	// Mass-to-radius mapping
	BaseMass  float64
	MassPower float64
	MinRadius float64
	MaxRadius float64

	// Display-facing
	MaxRenderSpeed float64 // speed that saturates the speed-to-color ramp
	WorldWidth     float64
	WorldHeight    float64

	// Serving
	TickHz         int
	BroadcastHz    int
	ListenAddr     string
	MetricsAddr    string
	TLSDomain      string  // enables HTTPS via autocert when non-empty
	StateRateLimit float64 // /state requests per second per IP
	StateRateBurst int
}

// DefaultConfig returns the tuning the simulation ships with.
func DefaultConfig() Config {
	return Config{
		G:               6.674e-2,
		DT:              0.005,
		Softening:       50,
		TrailLength:     100,
		PredictionSteps: 50,
		BaseMass:        1e6,
		MassPower:       0.33,
		MinRadius:       3,
		MaxRadius:       15,
		MaxRenderSpeed:  50,
		WorldWidth:      1920,
		WorldHeight:     1080,
		TickHz:          60,
		BroadcastHz:     30,
		ListenAddr:      ":8080",
		MetricsAddr:     ":9090",
		StateRateLimit:  10,
		StateRateBurst:  20,
	}
}

// LoadConfig builds a Config from defaults overridden by environment
// variables. A .env file is honored when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := DefaultConfig()
	var err error
	if err = envFloat("GRAVITY_G", &cfg.G); err != nil {
		return cfg, err
	}
	if err = envFloat("GRAVITY_DT", &cfg.DT); err != nil {
		return cfg, err
	}
	if err = envFloat("GRAVITY_SOFTENING", &cfg.Softening); err != nil {
		return cfg, err
	}
	if err = envInt("GRAVITY_TRAIL_LENGTH", &cfg.TrailLength); err != nil {
		return cfg, err
	}
	if err = envInt("GRAVITY_PREDICTION_STEPS", &cfg.PredictionSteps); err != nil {
		return cfg, err
	}
	if err = envFloat("GRAVITY_BASE_MASS", &cfg.BaseMass); err != nil {
		return cfg, err
	}
	if err = envFloat("GRAVITY_MASS_POWER", &cfg.MassPower); err != nil {
		return cfg, err
	}
	if err = envFloat("GRAVITY_MIN_RADIUS", &cfg.MinRadius); err != nil {
		return cfg, err
	}
	if err = envFloat("GRAVITY_MAX_RADIUS", &cfg.MaxRadius); err != nil {
		return cfg, err
	}
	if err = envInt("GRAVITY_TICK_HZ", &cfg.TickHz); err != nil {
		return cfg, err
	}
	if err = envInt("GRAVITY_BROADCAST_HZ", &cfg.BroadcastHz); err != nil {
		return cfg, err
	}
	envString("GRAVITY_LISTEN_ADDR", &cfg.ListenAddr)
	envString("GRAVITY_METRICS_ADDR", &cfg.MetricsAddr)
	envString("GRAVITY_TLS_DOMAIN", &cfg.TLSDomain)
	if err = envFloat("GRAVITY_STATE_RATE_LIMIT", &cfg.StateRateLimit); err != nil {
		return cfg, err
	}
	if err = envInt("GRAVITY_STATE_RATE_BURST", &cfg.StateRateBurst); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations that would produce silent numerical
// garbage or an unservable setup.
func (c Config) Validate() error {
	switch {
	case c.G <= 0:
		return fmt.Errorf("gravitational constant must be positive, got %g", c.G)
	case c.DT <= 0:
		return fmt.Errorf("time step must be positive, got %g", c.DT)
	case c.Softening < 0:
		return fmt.Errorf("softening must not be negative, got %g", c.Softening)
	case c.TrailLength <= 0:
		return fmt.Errorf("trail length must be positive, got %d", c.TrailLength)
	case c.PredictionSteps < 0:
		return fmt.Errorf("prediction steps must not be negative, got %d", c.PredictionSteps)
	case c.BaseMass <= 0:
		return fmt.Errorf("base mass must be positive, got %g", c.BaseMass)
	case c.MinRadius <= 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("radius clamps invalid: min %g, max %g", c.MinRadius, c.MaxRadius)
	case c.WorldWidth <= 0 || c.WorldHeight <= 0:
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	case c.TickHz <= 0:
		return fmt.Errorf("tick rate must be positive, got %d", c.TickHz)
	case c.BroadcastHz <= 0:
		return fmt.Errorf("broadcast rate must be positive, got %d", c.BroadcastHz)
	}
	return nil
}

func envFloat(key string, dst *float64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	*dst = v
	return nil
}

func envInt(key string, dst *int) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, raw, err)
	}
	*dst = v
	return nil
}

func envString(key string, dst *string) {
	if raw := os.Getenv(key); raw != "" {
		*dst = raw
	}
}
