package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/aponysus/outcome/classify"
	"github.com/aponysus/outcome/dispatch"
	"github.com/aponysus/outcome/response"
)

// GetJSON fetches path and decodes a JSON success body into T.
func GetJSON[T any](ctx context.Context, c *Client, path string) response.Response[T] {
	if c == nil {
		c = NewClient()
	}
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return classify.FromError[T](err)
	}
	req.Header.Set("Accept", "application/json")
	return NewCall(c, req, classify.DecodeJSON[T]).Execute(ctx)
}

// PostJSON sends in as a JSON body to path and decodes a JSON success body into Out.
func PostJSON[In, Out any](ctx context.Context, c *Client, path string, in In) response.Response[Out] {
	if c == nil {
		c = NewClient()
	}
	b, err := json.Marshal(in)
	if err != nil {
		return classify.FromError[Out](err)
	}
	req, err := c.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return classify.FromError[Out](err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return NewCall(c, req, classify.DecodeJSON[Out]).Execute(ctx)
}

// GetJSONPages fetches every path concurrently, each decoding to a JSON array,
// and merges the pages in path order under the client's merge policy. If ctx
// is done before the pages are merged the result is an Exception.
func GetJSONPages[T any](ctx context.Context, c *Client, paths ...string) response.Response[[]T] {
	if c == nil {
		c = NewClient()
	}
	if len(paths) == 0 {
		return response.NewSuccess([]T{}, http.StatusOK, nil)
	}

	scope := dispatch.NewScope(ctx)
	defer scope.Cancel()

	pages := make([]response.Response[[]T], len(paths))
	for i, path := range paths {
		launched := scope.Go(func(ctx context.Context) error {
			pages[i] = GetJSON[[]T](ctx, c, path)
			return nil
		})
		if !launched {
			pages[i] = classify.FromError[[]T](scope.Context().Err())
		}
	}
	_ = scope.Wait()
	if err := scope.Context().Err(); err != nil {
		return classify.FromError[[]T](err)
	}

	return response.Merge(c.mergePolicy, pages[0], pages[1:]...)
}
