package outcome

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	integration "github.com/aponysus/outcome/integrations/http"
	"github.com/aponysus/outcome/response"
)

func resetDefaultClient() {
	defaultClient.Store(nil)
}

func TestDefaultClient_LazyInit(t *testing.T) {
	resetDefaultClient()
	t.Setenv(ConfigEnv, "")

	c1 := DefaultClient()
	if c1 == nil {
		t.Fatal("expected client")
	}
	if c2 := DefaultClient(); c1 != c2 {
		t.Fatal("expected DefaultClient to return the same instance")
	}
}

func TestDefaultClient_FromConfigFile(t *testing.T) {
	resetDefaultClient()
	t.Cleanup(resetDefaultClient)

	path := filepath.Join(t.TempDir(), "outcome.yaml")
	data := "base_url: http://example.invalid/api\nmerge_policy: preferred_failure\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, path)

	if got := DefaultClient().MergePolicy(); got != response.MergePreferredFailure {
		t.Fatalf("MergePolicy=%v, want preferred_failure", got)
	}
}

func TestDefaultClient_BadConfigFileFallsBack(t *testing.T) {
	resetDefaultClient()
	t.Cleanup(resetDefaultClient)
	t.Setenv(ConfigEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	c := DefaultClient()
	if c == nil {
		t.Fatal("expected a default client")
	}
	if got := c.MergePolicy(); got != response.MergeIgnoreFailure {
		t.Fatalf("MergePolicy=%v, want ignore_failure", got)
	}
}

func TestInit_BeforeDefaultClient(t *testing.T) {
	resetDefaultClient()
	t.Cleanup(resetDefaultClient)

	custom := integration.NewClient()
	if err := Init(custom); err != nil {
		t.Fatal(err)
	}
	if got := DefaultClient(); got != custom {
		t.Fatalf("got %p, want %p", got, custom)
	}
}

func TestInit_AfterDefaultClient(t *testing.T) {
	resetDefaultClient()
	t.Cleanup(resetDefaultClient)
	t.Setenv(ConfigEnv, "")

	orig := DefaultClient()
	if err := Init(integration.NewClient()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("err=%v, want ErrAlreadyInitialized", err)
	}
	if got := DefaultClient(); got != orig {
		t.Fatalf("got %p, want %p", got, orig)
	}
}

func TestInit_IgnoresNil(t *testing.T) {
	resetDefaultClient()
	t.Cleanup(resetDefaultClient)
	t.Setenv(ConfigEnv, "")

	if err := Init(nil); err != nil {
		t.Fatal(err)
	}
	if DefaultClient() == nil {
		t.Fatal("expected default client to initialize")
	}
}

func TestConfigure(t *testing.T) {
	resetDefaultClient()
	t.Cleanup(resetDefaultClient)

	if err := Configure(integration.Config{BaseURL: "relative/path"}); err == nil {
		t.Fatal("expected a validation error")
	}
	if defaultClient.Load() != nil {
		t.Fatal("invalid config installed a client")
	}

	if err := Configure(integration.Config{MergePolicy: "preferred_failure"}); err != nil {
		t.Fatal(err)
	}
	if got := DefaultClient().MergePolicy(); got != response.MergePreferredFailure {
		t.Fatalf("MergePolicy=%v, want preferred_failure", got)
	}
	if err := Configure(integration.Config{}); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("err=%v, want ErrAlreadyInitialized", err)
	}
}
