package config

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/webtor-io/lazymap"
)

const TokenEnv = "PATREON_ACCESS_TOKEN"

// TokenProvider yields the Patreon bearer token. ok is false when no token
// is configured, which is a valid state.
type TokenProvider interface {
	Token(ctx context.Context) (token string, ok bool)
}

// EnvTokenProvider reads the token from the environment on every call.
type EnvTokenProvider struct{}

func (EnvTokenProvider) Token(_ context.Context) (string, bool) {
	v := strings.TrimSpace(os.Getenv(TokenEnv))
	return v, v != ""
}

// StaticTokenProvider always returns the same token. An empty value means
// the token is absent.
type StaticTokenProvider string

func (s StaticTokenProvider) Token(_ context.Context) (string, bool) {
	return string(s), s != ""
}

// ChainTokenProvider returns the first token found.
type ChainTokenProvider []TokenProvider

func (c ChainTokenProvider) Token(ctx context.Context) (string, bool) {
	for _, p := range c {
		if t, ok := p.Token(ctx); ok {
			return t, true
		}
	}
	return "", false
}

// FileTokenProvider reads the token from a mounted secret file. The value is
// cached for ttl so a rotated secret is picked up without a restart.
type FileTokenProvider struct {
	path  string
	cache lazymap.LazyMap[string]
}

func NewFileTokenProvider(path string, ttl time.Duration) *FileTokenProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &FileTokenProvider{
		path: path,
		cache: lazymap.New[string](&lazymap.Config{
			Expire:      ttl,
			ErrorExpire: 10 * time.Second,
		}),
	}
}

func (p *FileTokenProvider) Token(_ context.Context) (string, bool) {
	t, err := p.cache.Get(p.path, p.read)
	if err != nil {
		log.WithError(err).WithField("path", p.path).Warn("failed to read access token file")
		return "", false
	}
	return t, t != ""
}

func (p *FileTokenProvider) read() (string, error) {
	b, err := os.ReadFile(p.path)
	if err != nil {
		return "", errors.Wrap(err, "read token file")
	}
	return strings.TrimSpace(string(b)), nil
}
