package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aponysus/outcome/classify"
	integration "github.com/aponysus/outcome/integrations/http"
	"github.com/aponysus/outcome/response"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("OUTCOME_TEST_HOST", "api.example.com")
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := `
base_url: https://${OUTCOME_TEST_HOST}/v1
timeout: 3s
user_agent: posters/1.0
max_error_body: 2048
classifier: lenient
success_codes: [404]
merge_policy: preferred_failure
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := integration.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := &integration.Config{
		BaseURL:      "https://api.example.com/v1",
		Timeout:      3 * time.Second,
		UserAgent:    "posters/1.0",
		MaxErrorBody: 2048,
		Classifier:   "lenient",
		SuccessCodes: []int{404},
		MergePolicy:  "preferred_failure",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := integration.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := integration.ParseConfig([]byte("user_agent: x\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Classifier != classify.ClassifierHTTP {
		t.Fatalf("Classifier=%q, want %q", cfg.Classifier, classify.ClassifierHTTP)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown field":   "retries: 3\n",
		"relative base":   "base_url: /v1\n",
		"negative body":   "max_error_body: -1\n",
		"bad code":        "success_codes: [42]\n",
		"bad merge":       "merge_policy: first_failure\n",
		"negative period": "timeout: -1s\n",
		"not yaml":        "base_url: [\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := integration.ParseConfig([]byte(data)); err == nil {
				t.Fatalf("expected an error for %q", data)
			}
		})
	}
}

func TestClientWithConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/moved":
			w.WriteHeader(http.StatusNotModified)
		case "/v1/teapot":
			w.WriteHeader(http.StatusTeapot)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := integration.NewClient(
		integration.WithHTTPClient(server.Client()),
		integration.WithConfig(integration.Config{
			BaseURL:      server.URL + "/v1",
			Classifier:   classify.ClassifierLenient,
			SuccessCodes: []int{http.StatusTeapot},
			MergePolicy:  "preferred_failure",
		}),
	)
	if client.MergePolicy() != response.MergePreferredFailure {
		t.Fatalf("MergePolicy=%v", client.MergePolicy())
	}

	for path, wantKind := range map[string]response.Kind{
		"moved":   response.KindSuccess,
		"/teapot": response.KindSuccess,
		"boom":    response.KindError,
	} {
		req, err := client.NewRequest(context.Background(), http.MethodGet, path, nil)
		if err != nil {
			t.Fatal(err)
		}
		r := integration.NewCall[struct{}](client, req, nil).Execute(context.Background())
		if r.Kind() != wantKind {
			t.Fatalf("%s: got %v, want %v", path, r, wantKind)
		}
	}
}

func TestClientWithConfig_ExplicitOptionsWin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer server.Close()

	client := integration.NewClient(
		integration.WithHTTPClient(server.Client()),
		integration.WithClassifier(classify.HTTPClassifier{}),
		integration.WithConfig(integration.Config{Classifier: classify.ClassifierLenient}),
	)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if r := integration.NewCall[struct{}](client, req, nil).Execute(context.Background()); r.Kind() != response.KindError {
		t.Fatalf("got %v, want Error from the explicit classifier", r)
	}
}

func TestClientWithConfig_RegistryLookup(t *testing.T) {
	reg := classify.NewRegistry()
	reg.Register("everything", classify.StatusClassifierFunc(func(int) bool { return true }))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := integration.NewClient(
		integration.WithHTTPClient(server.Client()),
		integration.WithRegistry(reg),
		integration.WithConfig(integration.Config{Classifier: "everything"}),
	)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	if r := integration.NewCall[struct{}](client, req, nil).Execute(context.Background()); !r.IsSuccess() {
		t.Fatalf("got %v, want Success", r)
	}
}

func TestNewRequest(t *testing.T) {
	client := integration.NewClient(integration.WithConfig(integration.Config{BaseURL: "https://api.example.com/v1"}))

	cases := map[string]string{
		"posters":                    "https://api.example.com/v1/posters",
		"/posters?page=2":            "https://api.example.com/v1/posters?page=2",
		"https://other.example/feed": "https://other.example/feed",
	}
	for in, want := range cases {
		req, err := client.NewRequest(context.Background(), http.MethodGet, in, nil)
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got := req.URL.String(); got != want {
			t.Fatalf("%s: got %s, want %s", in, got, want)
		}
	}

	bare := integration.NewClient()
	req, err := bare.NewRequest(context.Background(), http.MethodGet, "https://x.example/a", nil)
	if err != nil || req.URL.String() != "https://x.example/a" {
		t.Fatalf("got %v, %v", req, err)
	}
}
