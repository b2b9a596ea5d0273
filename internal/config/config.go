package config

import (
	"os"
	"strconv"

	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	Env       string

	// Tile engine defaults. Requests may override TopK, Depth and Zoom.
	TileZoom       int
	TileTopK       int
	TileDepth      int
	TileGapMeters  float64
	TileStepMeters float64

	RateLimitRPS    float64
	RateLimitBurst  int
	AnalysisWorkers int
}

// Load 加载配置
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/tiles/tiles.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Env:       getEnv("APP_ENV", "development"),
	}

	var err error
	if cfg.TileZoom, err = getInt("TILE_ZOOM", tiles.DefaultZoom); err != nil {
		return nil, err
	}
	if cfg.TileTopK, err = getInt("TILE_TOP_K", tiles.DefaultTopK); err != nil {
		return nil, err
	}
	if cfg.TileDepth, err = getInt("TILE_DEPTH", tiles.DefaultDepth); err != nil {
		return nil, err
	}
	if cfg.TileGapMeters, err = getFloat("TILE_GAP_METERS", tiles.DefaultGapThresholdMeters); err != nil {
		return nil, err
	}
	if cfg.TileStepMeters, err = getFloat("TILE_STEP_METERS", tiles.DefaultStepMeters); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}
	if cfg.AnalysisWorkers, err = getInt("ANALYSIS_WORKERS", 4); err != nil {
		return nil, err
	}

	if err := cfg.TileOptions().Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tile configuration")
	}
	if cfg.AnalysisWorkers < 1 {
		return nil, errors.Errorf("ANALYSIS_WORKERS must be positive, got %d", cfg.AnalysisWorkers)
	}
	return cfg, nil
}

// TileOptions returns the engine options configured for this deployment.
func (c *Config) TileOptions() tiles.Options {
	return tiles.Options{
		Zoom:               c.TileZoom,
		TopK:               c.TileTopK,
		Depth:              c.TileDepth,
		GapThresholdMeters: c.TileGapMeters,
		StepMeters:         c.TileStepMeters,
	}
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}
