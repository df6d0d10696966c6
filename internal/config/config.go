package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by BOUNCER_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("BOUNCER_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

// PlatformDomain is the root domain used to tell subdomain tenants apart
// from custom-domain tenants. Defaults to "rentbounce.com".
func PlatformDomain() string {
	d := os.Getenv("PLATFORM_DOMAIN")
	if d == "" {
		return "rentbounce.com"
	}
	return d
}

func GoogleMapsAPIKey() string {
	return os.Getenv("GOOGLE_MAPS_API_KEY")
}

// ZipLookupEnabled controls the free zip-code lookup provider.
// Enabled unless explicitly set to "false".
func ZipLookupEnabled() bool {
	return os.Getenv("ZIP_LOOKUP_ENABLED") != "false"
}

// GeocodeDelay is the pause between sequential batch geocoding calls.
// Defaults to 1s to stay under provider rate limits.
func GeocodeDelay() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("GEOCODE_DELAY_MS"))
	if err != nil || ms < 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

// GeocodeCacheTTL returns how long geocode results stay cached.
// Defaults to 60 minutes.
func GeocodeCacheTTL() time.Duration {
	min, err := strconv.Atoi(os.Getenv("GEOCODE_CACHE_TTL_MIN"))
	if err != nil || min <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(min) * time.Minute
}

func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// EnricherInterval returns how often the background coordinate enricher
// runs. Defaults to 60 minutes.
func EnricherInterval() time.Duration {
	min, err := strconv.Atoi(os.Getenv("ENRICHER_INTERVAL_MIN"))
	if err != nil || min <= 0 {
		return 60 * time.Minute
	}
	return time.Duration(min) * time.Minute
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

func MigrationsPath() string {
	p := os.Getenv("MIGRATIONS_PATH")
	if p == "" {
		return "migrations"
	}
	return p
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
