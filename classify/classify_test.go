package classify

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aponysus/outcome/response"
)

func TestHTTPClassifier(t *testing.T) {
	cases := []struct {
		status int
		extra  map[int]struct{}
		want   bool
	}{
		{status: 200, want: true},
		{status: 204, want: true},
		{status: 299, want: true},
		{status: 199, want: false},
		{status: 304, want: false},
		{status: 404, want: false},
		{status: 500, want: false},
		{status: 304, extra: map[int]struct{}{304: {}}, want: true},
	}
	for _, tc := range cases {
		c := HTTPClassifier{SuccessCodes: tc.extra}
		if got := c.IsSuccess(tc.status); got != tc.want {
			t.Fatalf("IsSuccess(%d)=%v, want %v (extra=%v)", tc.status, got, tc.want, tc.extra)
		}
	}
}

func TestLenientClassifier(t *testing.T) {
	c := LenientClassifier{}
	if !c.IsSuccess(302) || c.IsSuccess(400) || c.IsSuccess(0) {
		t.Fatal("unexpected lenient classification")
	}
}

func TestOf_Success(t *testing.T) {
	r := Of(nil, Exchange[string]{StatusCode: 200, Header: http.Header{"A": {"b"}}, Body: "payload"})
	s, ok := r.AsSuccess()
	if !ok {
		t.Fatalf("got %v, want Success", r)
	}
	if s.Data != "payload" || s.StatusCode != 200 || s.Header.Get("A") != "b" {
		t.Fatalf("got %+v", s)
	}
	if got := r.GetOrZero(); got != "payload" {
		t.Fatalf("GetOrZero=%q", got)
	}
}

func TestOf_FailureStatusKeepsRawBody(t *testing.T) {
	for _, status := range []int{400, 401, 404, 418, 500, 503} {
		r := Of(HTTPClassifier{}, Exchange[string]{StatusCode: status, Body: "ignored", ErrorBody: []byte(`{"error":"x"}`)})
		e, ok := r.AsError()
		if !ok {
			t.Fatalf("status %d: got %v, want Error", status, r)
		}
		if e.StatusCode != status {
			t.Fatalf("StatusCode=%d, want %d", e.StatusCode, status)
		}
		if string(e.Body) != `{"error":"x"}` {
			t.Fatalf("Body=%q", e.Body)
		}
		if _, ok := r.Value(); ok {
			t.Fatalf("status %d: Value reported a payload", status)
		}
	}
}

func TestOf_CustomClassifier(t *testing.T) {
	only201 := StatusClassifierFunc(func(code int) bool { return code == 201 })
	if r := Of(only201, Exchange[int]{StatusCode: 200}); r.Kind() != response.KindError {
		t.Fatalf("got %v, want Error", r)
	}
	if r := Of(only201, Exchange[int]{StatusCode: 201}); r.Kind() != response.KindSuccess {
		t.Fatalf("got %v, want Success", r)
	}
}

func TestFromError_PreservesIdentity(t *testing.T) {
	orig := errors.New("i/o timeout")
	r := FromError[int](orig)
	x, ok := r.AsException()
	if !ok {
		t.Fatalf("got %v, want Exception", r)
	}
	if x.Err != orig {
		t.Fatalf("Err=%v, want the identical error", x.Err)
	}
	if _, err := r.Get(); err != orig {
		t.Fatalf("Get err=%v, want the identical error", err)
	}
}

func TestFromError_Nil(t *testing.T) {
	_, err := FromError[int](nil).Get()
	if !errors.Is(err, ErrNilError) {
		t.Fatalf("err=%v, want ErrNilError", err)
	}
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("unexpected EOF")
	err := error(&DecodeError{StatusCode: 200, Err: inner})
	if !errors.Is(err, inner) {
		t.Fatal("DecodeError does not unwrap")
	}
	if err.Error() != "outcome: decode body of status 200: unexpected EOF" {
		t.Fatalf("Error()=%q", err.Error())
	}
}
