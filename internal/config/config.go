package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds process settings read from the environment. The access token
// itself is not part of it; see TokenProvider.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	PatreonBaseURL      string        `env:"PATREON_API_BASE" envDefault:"https://www.patreon.com/api/oauth2/v2"`
	PatreonTimeout      time.Duration `env:"PATREON_TIMEOUT" envDefault:"10s"`
	PatreonRetryMax     int           `env:"PATREON_RETRY_MAX" envDefault:"2"`
	PatreonRetryWaitMin time.Duration `env:"PATREON_RETRY_WAIT_MIN" envDefault:"200ms"`
	PatreonRetryWaitMax time.Duration `env:"PATREON_RETRY_WAIT_MAX" envDefault:"2s"`

	TokenFile string        `env:"PATREON_ACCESS_TOKEN_FILE"`
	TokenTTL  time.Duration `env:"PATREON_TOKEN_TTL" envDefault:"1m"`

	MCPEnabled bool `env:"MCP_ENABLED" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses Config from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	if cfg.PatreonRetryMax < 0 {
		return nil, errors.Errorf("PATREON_RETRY_MAX must not be negative, got %d", cfg.PatreonRetryMax)
	}
	return &cfg, nil
}

// ConfigureLogging applies level and format to the standard logrus logger.
func (c *Config) ConfigureLogging() error {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	switch c.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Tokens builds the token lookup chain: the environment variable
// first, then the secret file when one is configured.
func (c *Config) Tokens() TokenProvider {
	providers := []TokenProvider{EnvTokenProvider{}}
	if c.TokenFile != "" {
		providers = append(providers, NewFileTokenProvider(c.TokenFile, c.TokenTTL))
	}
	return ChainTokenProvider(providers)
}
