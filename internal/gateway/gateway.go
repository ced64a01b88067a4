package gateway

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"patreon-gateway/internal/config"
	"patreon-gateway/internal/patreon"
	"patreon-gateway/internal/types"
)

// Source is the upstream the gateway reads from.
type Source interface {
	Identity(ctx context.Context, token string) (string, error)
	CampaignPosts(ctx context.Context, token string, campaignID string) ([]*patreon.PostData, error)
}

// Gateway lists a creator's recent Patreon posts. It keeps no state between
// calls.
type Gateway struct {
	tokens config.TokenProvider
	src    Source
	log    *log.Entry
}

func New(tokens config.TokenProvider, src Source) *Gateway {
	return &Gateway{
		tokens: tokens,
		src:    src,
		log:    log.WithField("component", "gateway"),
	}
}

// RecentPosts runs token lookup, identity lookup and posts fetch in order.
// It always returns a well-formed envelope; failures are reported in its
// Error field.
func (g *Gateway) RecentPosts(ctx context.Context) types.Envelope {
	return g.guard(ctx, g.recentPosts)
}

func (g *Gateway) recentPosts(ctx context.Context) ([]types.PostSummary, error) {
	token, ok := g.tokens.Token(ctx)
	if !ok {
		return nil, patreon.ErrTokenMissing()
	}

	campaignID, err := g.src.Identity(ctx, token)
	if err != nil {
		return nil, err
	}

	posts, err := g.src.CampaignPosts(ctx, token, campaignID)
	if err != nil {
		return nil, err
	}

	g.log.WithFields(log.Fields{
		"campaign": campaignID,
		"posts":    len(posts),
	}).Debug("fetched campaign posts")

	return patreon.SummarizeAll(posts), nil
}

// guard runs step and turns any error or panic into an error envelope.
func (g *Gateway) guard(ctx context.Context, step func(ctx context.Context) ([]types.PostSummary, error)) (env types.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = errors.Errorf("%v", r)
			}
			env = g.fail(patreon.Unexpected(err))
		}
	}()

	posts, err := step(ctx)
	if err != nil {
		return g.fail(patreon.Unexpected(err))
	}
	return types.OK(posts)
}

func (g *Gateway) fail(f *patreon.Fault) types.Envelope {
	entry := g.log.WithField("kind", f.Kind)
	if f.Status != 0 {
		entry = entry.WithField("status", f.Status)
	}
	switch f.Kind {
	case patreon.ConfigurationMissing, patreon.NoCampaignFound:
		entry.Warn(f.Error())
	default:
		entry.Error(f.Error())
	}
	return types.Failed(f.Message, f.Details)
}
