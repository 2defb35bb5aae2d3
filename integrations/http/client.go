// Package http adapts net/http calls to typed responses delivered either
// synchronously or to callbacks.
package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aponysus/outcome/classify"
	"github.com/aponysus/outcome/dispatch"
	"github.com/aponysus/outcome/internal"
	"github.com/aponysus/outcome/observe"
	"github.com/aponysus/outcome/response"
)

// RequestIDHeader carries the per-call request ID.
const RequestIDHeader = "X-Request-Id"

var (
	// ErrAlreadyExecuted is the Exception of a Call run more than once.
	ErrAlreadyExecuted = errors.New("outcome: call already executed")

	// ErrBodyNotReplayable is the Exception of a cloned Call whose request body
	// cannot be read again (GetBody is nil).
	ErrBodyNotReplayable = errors.New("outcome: request body is not replayable (GetBody is nil)")
)

// Client issues HTTP requests and classifies their results. It is safe for
// concurrent use.
type Client struct {
	httpClient   *http.Client
	classifier   classify.StatusClassifier
	observer     observe.Observer
	logger       *slog.Logger
	userAgent    string
	maxErrorBody int64
	dispatcher   dispatch.Dispatcher
	baseURL      *url.URL
	mergePolicy  response.MergePolicy
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	httpClient   *http.Client
	classifier   classify.StatusClassifier
	registry     *classify.Registry
	observer     observe.Observer
	logger       *slog.Logger
	userAgent    string
	maxErrorBody int64
	dispatcher   dispatch.Dispatcher
	config       *Config
}

// WithHTTPClient sets the underlying http.Client. Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithClassifier sets the status classifier. It takes precedence over a
// classifier named in Config.
func WithClassifier(sc classify.StatusClassifier) Option {
	return func(c *clientConfig) {
		c.classifier = sc
	}
}

// WithRegistry sets the registry used to resolve Config.Classifier.
// Defaults to classify.NewDefaultRegistry().
func WithRegistry(reg *classify.Registry) Option {
	return func(c *clientConfig) {
		c.registry = reg
	}
}

// WithObserver sets the observer notified of delivered and dropped outcomes.
func WithObserver(obs observe.Observer) Option {
	return func(c *clientConfig) {
		c.observer = obs
	}
}

// WithLogger sets the logger for operational messages. Defaults to a logger
// that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithUserAgent sets the User-Agent sent when the request has none.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithMaxErrorBody bounds the bytes kept from a failed response's body.
func WithMaxErrorBody(n int64) Option {
	return func(c *clientConfig) {
		c.maxErrorBody = n
	}
}

// WithDispatcher sets the dispatcher used by Call.Request. Defaults to
// dispatch.GoDispatcher.
func WithDispatcher(d dispatch.Dispatcher) Option {
	return func(c *clientConfig) {
		c.dispatcher = d
	}
}

// WithConfig applies cfg. Explicit options win over values from cfg.
func WithConfig(cfg Config) Option {
	return func(c *clientConfig) {
		c.config = &cfg
	}
}

// NewClient returns a Client configured by opts.
func NewClient(opts ...Option) *Client {
	cfg := clientConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	c := &Client{
		httpClient:   cfg.httpClient,
		observer:     cfg.observer,
		logger:       cfg.logger,
		dispatcher:   cfg.dispatcher,
		classifier:   cfg.classifier,
		userAgent:    cfg.userAgent,
		maxErrorBody: cfg.maxErrorBody,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.config != nil {
		c.applyConfig(*cfg.config, cfg.registry)
	}

	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if internal.IsTypedNil(c.classifier) {
		c.classifier = classify.HTTPClassifier{}
	}
	if internal.IsTypedNil(c.observer) {
		c.observer = observe.NoopObserver{}
	}
	if internal.IsTypedNil(c.dispatcher) {
		c.dispatcher = dispatch.GoDispatcher{}
	}
	if c.maxErrorBody <= 0 {
		c.maxErrorBody = classify.DefaultMaxErrorBody
	}
	return c
}

func (c *Client) applyConfig(cfg Config, reg *classify.Registry) {
	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			c.logger.Warn("ignoring invalid base_url", "base_url", cfg.BaseURL, "err", err)
		} else {
			c.baseURL = u
		}
	}
	if cfg.Timeout > 0 {
		base := c.httpClient
		if base == nil {
			base = http.DefaultClient
		}
		hc := *base
		hc.Timeout = cfg.Timeout
		c.httpClient = &hc
	}
	if c.userAgent == "" {
		c.userAgent = cfg.UserAgent
	}
	if c.maxErrorBody <= 0 {
		c.maxErrorBody = cfg.MaxErrorBody
	}
	if c.classifier == nil {
		sc, err := cfg.statusClassifier(reg)
		if err != nil {
			c.logger.Warn("falling back to the http classifier", "err", err)
		}
		c.classifier = sc
	}
	if p, err := response.ParseMergePolicy(cfg.MergePolicy); err != nil {
		c.logger.Warn("ignoring invalid merge_policy", "merge_policy", cfg.MergePolicy, "err", err)
	} else {
		c.mergePolicy = p
	}
}

// MergePolicy returns the policy used by GetJSONPages.
func (c *Client) MergePolicy() response.MergePolicy { return c.mergePolicy }

// NewRequest builds a request for path, resolved against the configured base
// URL when path is relative.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target := path
	if c.baseURL != nil {
		ref, err := url.Parse(path)
		if err != nil {
			return nil, err
		}
		if !ref.IsAbs() {
			base := *c.baseURL
			if !strings.HasSuffix(base.Path, "/") {
				base.Path += "/"
			}
			ref.Path = strings.TrimPrefix(ref.Path, "/")
			target = base.ResolveReference(ref).String()
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return http.NewRequestWithContext(ctx, method, target, body)
}
