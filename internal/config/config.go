package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-password/password"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/vaultpass/toolbox/internal/client"
)

const (
	DefaultConfigFile = "toolbox.yml"
	devSecretLength   = 48
)

var ErrSecretRequired = errors.New("JWT_SECRET must be set")

type Config struct {
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	LogLevel        string        `yaml:"log_level"`
	JWTSecret       string        `yaml:"-"`
	JWTExpiry       time.Duration `yaml:"jwt_expiry"`
	RequireAuth     bool          `yaml:"require_auth"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	ProfileFallback bool          `yaml:"profile_fallback"`
	Endpoints       EndpointsFile `yaml:"endpoints"`

	// EphemeralSecret is set when JWTSecret was generated at startup.
	EphemeralSecret bool `yaml:"-"`
	// ConfigFile is the YAML file that was read, empty when none was found.
	ConfigFile string `yaml:"-"`
}

// EndpointsFile overrides the upstream API base URLs.
type EndpointsFile struct {
	ViaCEP     string `yaml:"viacep"`
	AwesomeAPI string `yaml:"awesomeapi"`
	RandomUser string `yaml:"randomuser"`
}

// ClientEndpoints converts the file section to client endpoints.
func (c Config) ClientEndpoints() client.Endpoints {
	return client.Endpoints{
		ViaCEP:     c.Endpoints.ViaCEP,
		AwesomeAPI: c.Endpoints.AwesomeAPI,
		RandomUser: c.Endpoints.RandomUser,
	}
}

func defaults() Config {
	return Config{
		Port:           "8080",
		Env:            "development",
		LogLevel:       "info",
		JWTExpiry:      24 * time.Hour,
		HTTPTimeout:    10 * time.Second,
		RateLimitRPS:   5,
		RateLimitBurst: 10,
		Endpoints: EndpointsFile{
			ViaCEP:     client.DefaultViaCEPURL,
			AwesomeAPI: client.DefaultAwesomeAPIURL,
			RandomUser: client.DefaultRandomUserURL,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file
// (TOOLBOX_CONFIG or toolbox.yml) read from fs, then the environment.
// A missing JWT_SECRET is replaced by an ephemeral one and flagged with
// EphemeralSecret; callers that sign or verify tokens check RequireSecret.
func Load(fs afero.Fs) (Config, error) {
	cfg := defaults()

	path := getEnv("TOOLBOX_CONFIG", DefaultConfigFile)
	found, err := loadFile(fs, path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if found {
		cfg.ConfigFile = path
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.JWTSecret == "" {
		secret, err := password.Generate(devSecretLength, 10, 0, false, true)
		if err != nil {
			return Config{}, fmt.Errorf("generating development secret: %w", err)
		}
		cfg.JWTSecret = secret
		cfg.EphemeralSecret = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequireSecret fails in production when JWT_SECRET was not configured.
func (c Config) RequireSecret() error {
	if c.EphemeralSecret && c.Env == "production" {
		return fmt.Errorf("%w in production environment", ErrSecretRequired)
	}
	return nil
}

func loadFile(fs afero.Fs, path string, cfg *Config) (bool, error) {
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return false, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return true, nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.Endpoints.ViaCEP = getEnv("VIACEP_URL", cfg.Endpoints.ViaCEP)
	cfg.Endpoints.AwesomeAPI = getEnv("AWESOMEAPI_URL", cfg.Endpoints.AwesomeAPI)
	cfg.Endpoints.RandomUser = getEnv("RANDOMUSER_URL", cfg.Endpoints.RandomUser)

	var err error
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", cfg.JWTExpiry); err != nil {
		return err
	}
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", cfg.HTTPTimeout); err != nil {
		return err
	}
	if cfg.RequireAuth, err = getBool("REQUIRE_AUTH", cfg.RequireAuth); err != nil {
		return err
	}
	if cfg.ProfileFallback, err = getBool("PROFILE_FALLBACK", cfg.ProfileFallback); err != nil {
		return err
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if cfg.RateLimitBurst, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", c.Port)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.JWTExpiry <= 0 {
		return fmt.Errorf("jwt expiry must be positive, got %s", c.JWTExpiry)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("invalid rate limit %v/s burst %d", c.RateLimitRPS, c.RateLimitBurst)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
