// Package outcome is the convenience entry point: aliases for the response
// types plus a process-wide default HTTP client.
package outcome

import (
	"context"
	"net/http"

	"github.com/aponysus/outcome/classify"
	integration "github.com/aponysus/outcome/integrations/http"
	"github.com/aponysus/outcome/response"
)

type (
	Response[T any] = response.Response[T]
	Success[T any]  = response.Success[T]
	Error           = response.Error
	Exception       = response.Exception
	Failure         = response.Failure
	Kind            = response.Kind
	MergePolicy     = response.MergePolicy
)

const (
	KindSuccess   = response.KindSuccess
	KindError     = response.KindError
	KindException = response.KindException

	MergeIgnoreFailure    = response.MergeIgnoreFailure
	MergePreferredFailure = response.MergePreferredFailure
)

// Get fetches url with the default client and returns the raw success body.
func Get(ctx context.Context, url string) Response[[]byte] {
	c := DefaultClient()
	req, err := c.NewRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return classify.FromError[[]byte](err)
	}
	return integration.NewCall(c, req, classify.DecodeRaw).Execute(ctx)
}

// GetJSON fetches path with the default client and decodes a JSON success body.
func GetJSON[T any](ctx context.Context, path string) Response[T] {
	return integration.GetJSON[T](ctx, DefaultClient(), path)
}

// PostJSON posts in as JSON with the default client.
func PostJSON[In, Out any](ctx context.Context, path string, in In) Response[Out] {
	return integration.PostJSON[In, Out](ctx, DefaultClient(), path, in)
}

// Merge combines page responses; see response.Merge.
func Merge[T any](policy MergePolicy, primary Response[[]T], others ...Response[[]T]) Response[[]T] {
	return response.Merge(policy, primary, others...)
}
