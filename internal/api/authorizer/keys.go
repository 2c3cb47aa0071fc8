package authorizer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/jwk"
)

// KeySource returns the keys tokens are signed with
type KeySource interface {
	Keys(ctx context.Context, refresh bool) (jwk.Set, error)
}

// RemoteKeys fetches a JWKS document and keeps it for ttl
type RemoteKeys struct {
	url     string
	ttl     time.Duration
	mu      sync.Mutex
	set     jwk.Set
	fetched time.Time
}

// NewRemoteKeys creates a key source for the JWKS at url
func NewRemoteKeys(url string, ttl time.Duration) *RemoteKeys {
	return &RemoteKeys{url: url, ttl: ttl}
}

// Keys returns the cached key set, fetching it when missing, stale or when
// refresh is set.
func (r *RemoteKeys) Keys(ctx context.Context, refresh bool) (jwk.Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.set != nil && !refresh && time.Since(r.fetched) < r.ttl {
		return r.set, nil
	}
	set, err := jwk.Fetch(ctx, r.url)
	if err != nil {
		if r.set != nil {
			return r.set, nil
		}
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	r.set = set
	r.fetched = time.Now()
	return set, nil
}

// StaticKeys serves a fixed key set
type StaticKeys struct {
	Set jwk.Set
}

func (s StaticKeys) Keys(context.Context, bool) (jwk.Set, error) {
	return s.Set, nil
}
