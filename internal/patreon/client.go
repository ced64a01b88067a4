package patreon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL = "https://www.patreon.com/api/oauth2/v2"
	PostURLPrefix  = "https://www.patreon.com/posts/"

	// PageCount is how many recent posts are requested. No cursor follow-up.
	PageCount = 10

	postFields    = "title,published_at,url,image,thumbnail_url"
	maxDetailSize = 1 << 20
)

// Options configures the outbound client.
type Options struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Logger       *log.Entry
}

// Client talks to the Patreon API v2 on behalf of one creator token.
type Client struct {
	base     string
	cl       *retryablehttp.Client
	deadline time.Duration
}

// NewClient builds a Client. Upstream responses that are still failing after
// the last retry are handed back as-is so their status and body can be
// reported. With a Timeout set, one call including all retries and waits is
// bounded by Timeout*(RetryMax+1) + RetryWaitMax*RetryMax.
func NewClient(o Options) *Client {
	base := o.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	if o.Logger != nil {
		client.Logger = leveledLogger{o.Logger}
	}
	client.RetryMax = o.RetryMax
	if o.RetryWaitMin > 0 {
		client.RetryWaitMin = o.RetryWaitMin
	}
	if o.RetryWaitMax > 0 {
		client.RetryWaitMax = o.RetryWaitMax
	}
	if o.Timeout > 0 {
		client.HTTPClient.Timeout = o.Timeout
	}
	client.Backoff = cappedBackoff
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	var deadline time.Duration
	if o.Timeout > 0 {
		retries := time.Duration(client.RetryMax)
		deadline = o.Timeout*(retries+1) + client.RetryWaitMax*retries
	}

	return &Client{base: base, cl: client, deadline: deadline}
}

// cappedBackoff is retryablehttp's default backoff, except that a
// Retry-After header can not push the wait past hi.
func cappedBackoff(lo, hi time.Duration, attempt int, resp *http.Response) time.Duration {
	wait := retryablehttp.DefaultBackoff(lo, hi, attempt, resp)
	if wait > hi {
		return hi
	}
	return wait
}

// Identity resolves the campaign of the creator owning token.
func (c *Client) Identity(ctx context.Context, token string) (string, error) {
	u := fmt.Sprintf("%s/identity?include=campaign&fields[campaign]=vanity", c.base)

	var res IdentityResponse
	if err := c.get(ctx, token, u, "Identity", &res); err != nil {
		return "", err
	}
	if len(res.Included) == 0 || res.Included[0] == nil || res.Included[0].ID == "" {
		return "", errNoCampaign()
	}
	return res.Included[0].ID, nil
}

// CampaignPosts fetches the most recent posts of a campaign. A missing data
// array yields an empty slice.
func (c *Client) CampaignPosts(ctx context.Context, token string, campaignID string) ([]*PostData, error) {
	u := fmt.Sprintf("%s/campaigns/%s/posts?fields[post]=%s&page[count]=%d",
		c.base, url.PathEscape(campaignID), postFields, PageCount)

	var res PostsResponse
	if err := c.get(ctx, token, u, "Posts", &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return []*PostData{}, nil
	}
	return res.Data, nil
}

func (c *Client) get(ctx context.Context, token string, u string, api string, out any) error {
	if c.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.deadline)
		defer cancel()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Unexpected(errors.Wrap(err, "create request"))
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cl.Do(req)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		return Unexpected(errors.Wrapf(err, "%s request failed", api))
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxDetailSize))
		if err != nil {
			return Unexpected(errors.Wrapf(err, "read %s error body", api))
		}
		return errUpstream(api, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Unexpected(errors.Wrapf(err, "decode %s response", api))
	}
	return nil
}

// leveledLogger adapts logrus to retryablehttp.LeveledLogger.
type leveledLogger struct {
	e *log.Entry
}

func (l leveledLogger) fields(kv []interface{}) *log.Entry {
	f := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return l.e.WithFields(f)
}

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.fields(kv).Error(msg) }

// Info is demoted to Debug: retryablehttp logs every attempt at Info.
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.fields(kv).Debug(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.fields(kv).Debug(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.fields(kv).Warn(msg) }
