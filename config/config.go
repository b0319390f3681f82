package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Cache backends
const (
	CacheNone      = "none"
	CachePostgres  = "postgres"
	CacheFirestore = "firestore"
)

type Config struct {
	Port     string `default:"8080"`
	LogLevel string `default:"info"`

	SpotifyID     string
	SpotifySecret string

	// CacheBackend selects where raw analyses are cached: none, postgres or firestore.
	CacheBackend string        `default:"none"`
	CacheTTL     time.Duration `default:"168h"`

	DatabaseURL string
	CacheTable  string `default:"analysis_cache"`

	FirestoreProject    string
	FirestoreCollection string `default:"analyses"`

	// JWTSecret turns on bearer token checks for the API when set.
	JWTSecret      string
	AllowedOrigins []string `default:"*"`

	TrimUnmatchedSections bool
	Musicbrainz           bool `default:"true"`
}

// Load reads an optional .env file and then the BLOOM_ environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("bloom", &cfg); err != nil {
		return Config{}, err
	}

	switch cfg.CacheBackend {
	case CacheNone, CachePostgres, CacheFirestore:
	default:
		return Config{}, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
	return cfg, nil
}

// ProvideConfig provides the config to the fx graph
func ProvideConfig() (Config, error) {
	return Load()
}

var Options = ProvideConfig
