package http

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/aponysus/outcome/classify"
	"github.com/aponysus/outcome/response"
)

// Config is the file form of Client settings.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxErrorBody int64         `yaml:"max_error_body"`

	// Classifier names a classifier in the client's registry. Empty means "http".
	Classifier string `yaml:"classifier"`
	// SuccessCodes are statuses treated as success in addition to the classifier's.
	SuccessCodes []int `yaml:"success_codes"`
	// MergePolicy is "ignore_failure" (default) or "preferred_failure".
	MergePolicy string `yaml:"merge_policy"`
}

// LoadConfig reads a YAML config file. ${VAR} references are expanded from the
// environment before parsing.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses and validates YAML config data, expanding ${VAR} references.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.UnmarshalStrict([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Classifier == "" {
		cfg.Classifier = classify.ClassifierHTTP
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("outcome: invalid base_url: %w", err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("outcome: base_url %q is not absolute", c.BaseURL)
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("outcome: negative timeout %v", c.Timeout)
	}
	if c.MaxErrorBody < 0 {
		return fmt.Errorf("outcome: negative max_error_body %d", c.MaxErrorBody)
	}
	for _, code := range c.SuccessCodes {
		if code < 100 || code > 999 {
			return fmt.Errorf("outcome: invalid success code %d", code)
		}
	}
	if _, err := response.ParseMergePolicy(c.MergePolicy); err != nil {
		return err
	}
	return nil
}

// statusClassifier resolves the configured classifier. On failure it still
// returns a usable classifier alongside the error.
func (c Config) statusClassifier(reg *classify.Registry) (classify.StatusClassifier, error) {
	if reg == nil {
		reg = classify.NewDefaultRegistry()
	}
	name := c.Classifier
	if name == "" {
		name = classify.ClassifierHTTP
	}

	var err error
	sc, ok := reg.Get(name)
	if !ok {
		sc, err = classify.HTTPClassifier{}, fmt.Errorf("outcome: unknown classifier %q", name)
	}
	if len(c.SuccessCodes) == 0 {
		return sc, err
	}

	extra := make(map[int]struct{}, len(c.SuccessCodes))
	for _, code := range c.SuccessCodes {
		extra[code] = struct{}{}
	}
	return classify.StatusClassifierFunc(func(status int) bool {
		if _, ok := extra[status]; ok {
			return true
		}
		return sc.IsSuccess(status)
	}), err
}
