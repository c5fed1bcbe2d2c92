package tmdb

import "sync"

// Provider lazily builds the process-wide Client on first use.
//
// The API key is read from keyFn only until a client has been built; a
// missing key fails that call with ErrAPIKeyNotSet and is not remembered,
// so a later call reads the key source again.
type Provider struct {
	mu     sync.Mutex
	client *Client
	keyFn  func() string
	opts   []Option
}

// NewProvider creates a provider that reads the API key from keyFn.
func NewProvider(keyFn func() string, opts ...Option) *Provider {
	return &Provider{keyFn: keyFn, opts: opts}
}

// Client returns the shared client, building it on first call.
func (p *Provider) Client() (*Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	key := p.keyFn()
	if key == "" {
		return nil, ErrAPIKeyNotSet
	}
	p.client = NewClient(key, p.opts...)
	return p.client, nil
}
