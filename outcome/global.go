package outcome

import (
	"errors"
	"log/slog"
	"os"
	"sync/atomic"

	integration "github.com/aponysus/outcome/integrations/http"
)

// ConfigEnv names the environment variable holding the path of the YAML file
// the default client is built from.
const ConfigEnv = "OUTCOME_CONFIG"

// ErrAlreadyInitialized is returned by Init and Configure once the default
// client is in place.
var ErrAlreadyInitialized = errors.New("outcome: default client already initialized")

var defaultClient atomic.Pointer[integration.Client]

// DefaultClient returns the client behind Get, GetJSON and PostJSON.
//
// Unless Init or Configure ran first, the client is built on first use from the
// file named by $OUTCOME_CONFIG, or from integration defaults when it is unset.
// An unreadable or invalid file is logged and the defaults are used.
func DefaultClient() *integration.Client {
	if c := defaultClient.Load(); c != nil {
		return c
	}
	defaultClient.CompareAndSwap(nil, clientFromEnv())
	return defaultClient.Load()
}

func clientFromEnv() *integration.Client {
	path := os.Getenv(ConfigEnv)
	if path == "" {
		return integration.NewClient()
	}
	cfg, err := integration.LoadConfig(path)
	if err != nil {
		slog.Warn("outcome: default client config not loaded, using defaults", "path", path, "err", err)
		return integration.NewClient()
	}
	return integration.NewClient(integration.WithConfig(*cfg))
}

// Init installs c as the default client. It fails with ErrAlreadyInitialized
// when a default client already exists, including one built lazily by
// DefaultClient. A nil c is ignored.
func Init(c *integration.Client) error {
	if c == nil {
		return nil
	}
	if !defaultClient.CompareAndSwap(nil, c) {
		return ErrAlreadyInitialized
	}
	return nil
}

// Configure validates cfg and installs a client built from it as the default.
// opts are applied after cfg and win over its values.
func Configure(cfg integration.Config, opts ...integration.Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	all := append([]integration.Option{integration.WithConfig(cfg)}, opts...)
	return Init(integration.NewClient(all...))
}
