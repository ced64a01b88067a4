package patreon

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure of the posts pipeline.
type Kind string

const (
	ConfigurationMissing Kind = "configuration_missing"
	UpstreamHTTPFailure  Kind = "upstream_http_failure"
	NoCampaignFound      Kind = "no_campaign_found"
	UnexpectedFault      Kind = "unexpected_fault"
)

const (
	msgTokenMissing = "Patreon access token not configured"
	msgNoCampaign   = "No campaign found for this account"
)

// Fault is a pipeline failure that is reported to callers as data.
// Message is the caller-facing text; Details carries the raw upstream body
// for UpstreamHTTPFailure.
type Fault struct {
	Kind    Kind
	Message string
	Status  int
	Details *string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil && f.Err.Error() != f.Message {
		return fmt.Sprintf("%s: %v", f.Message, f.Err)
	}
	return f.Message
}

func (f *Fault) Unwrap() error { return f.Err }

// ErrTokenMissing returns the fault for an absent access token.
func ErrTokenMissing() *Fault {
	return &Fault{Kind: ConfigurationMissing, Message: msgTokenMissing}
}

func errNoCampaign() *Fault {
	return &Fault{Kind: NoCampaignFound, Message: msgNoCampaign}
}

func errUpstream(api string, status int, body string) *Fault {
	return &Fault{
		Kind:    UpstreamHTTPFailure,
		Message: fmt.Sprintf("%s API failed: %d", api, status),
		Status:  status,
		Details: &body,
	}
}

// Unexpected converts any error into an UnexpectedFault. Errors that already
// are a *Fault pass through unchanged.
func Unexpected(err error) *Fault {
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return &Fault{Kind: UnexpectedFault, Message: err.Error(), Err: err}
}
