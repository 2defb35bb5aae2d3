package response

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestMapSuccess(t *testing.T) {
	r := NewSuccess("foo", http.StatusCreated, http.Header{"Etag": {"v1"}})
	got := MapSuccess(r, strings.ToUpper)

	s, ok := got.AsSuccess()
	if !ok {
		t.Fatalf("got %v, want Success", got)
	}
	if s.Data != "FOO" {
		t.Fatalf("Data=%q, want FOO", s.Data)
	}
	if s.StatusCode != http.StatusCreated || s.Header.Get("Etag") != "v1" {
		t.Fatalf("status/header not carried over: %+v", s)
	}
}

func TestMapSuccessKeepsFailures(t *testing.T) {
	boom := errors.New("boom")

	x := MapSuccess(NewException[string](boom), func(s string) int { return len(s) })
	exc, ok := x.AsException()
	if !ok {
		t.Fatalf("got %v, want Exception", x)
	}
	if exc.Err != boom {
		t.Fatalf("Err=%v, want identical boom", exc.Err)
	}

	e := MapSuccess(NewError[string](502, []byte("bad gateway"), nil), func(s string) int { return len(s) })
	if got, ok := e.AsError(); !ok || got.StatusCode != 502 || string(got.Body) != "bad gateway" {
		t.Fatalf("got %v", e)
	}

	called := false
	MapSuccess(NewError[string](500, nil, nil), func(string) int {
		called = true
		return 0
	})
	if called {
		t.Fatal("transform ran for a failure")
	}
}

func TestMapSuccessContext(t *testing.T) {
	ctx := context.Background()

	got, err := MapSuccessContext(ctx, NewSuccess(2, 200, nil), func(_ context.Context, v int) (int, error) {
		return v * 10, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := got.Value(); v != 20 {
		t.Fatalf("got %d, want 20", v)
	}

	wantErr := errors.New("convert")
	got, err = MapSuccessContext(ctx, NewSuccess(2, 200, nil), func(context.Context, int) (int, error) {
		return 0, wantErr
	})
	if err != wantErr {
		t.Fatalf("err=%v, want %v", err, wantErr)
	}
	if x, ok := got.AsException(); !ok || x.Err != wantErr {
		t.Fatalf("got %v, want Exception(%v)", got, wantErr)
	}

	failed, err := MapSuccessContext(ctx, NewError[int](400, nil, nil), func(context.Context, int) (string, error) {
		t.Fatal("transform ran for a failure")
		return "", nil
	})
	if err != nil || failed.Kind() != KindError {
		t.Fatalf("got %v, %v", failed, err)
	}
}

type posterModel struct {
	Title string
	Code  int
}

type posterModelMapper struct{}

func (posterModelMapper) Map(s Success[poster]) posterModel {
	return posterModel{Title: s.Data.Name, Code: s.StatusCode}
}

func TestMapWithMapperAndFunc(t *testing.T) {
	s, _ := samples()["success"].AsSuccess()

	if got := Map[poster, posterModel](s, posterModelMapper{}); got != (posterModel{Title: "frozen", Code: 200}) {
		t.Fatalf("Map got %+v", got)
	}
	if got := MapFunc(s, func(s Success[poster]) int { return s.StatusCode }); got != 200 {
		t.Fatalf("MapFunc got %d", got)
	}

	got, err := MapContext(context.Background(), s, func(_ context.Context, s Success[poster]) (string, error) {
		return s.Data.Name, nil
	})
	if err != nil || got != "frozen" {
		t.Fatalf("MapContext got %q, %v", got, err)
	}
}

func TestMapErrorWithMapperAndFunc(t *testing.T) {
	e, _ := samples()["error"].AsError()

	if got := MapError(e, errorBodyMapper); got.Code != 404 || got.Message != "not found" {
		t.Fatalf("MapError got %+v", got)
	}
	if got := MapErrorFunc(e, func(e Error) string { return e.Message() }); got != "http status 404: not found" {
		t.Fatalf("MapErrorFunc got %q", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := MapErrorContext(ctx, e, func(context.Context, Error) (int, error) { return 1, nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}
