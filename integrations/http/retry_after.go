package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aponysus/outcome/response"
)

// RetryAfter reports the delay requested by a failed response's Retry-After
// header, given either in seconds or as an HTTP date.
func RetryAfter(e response.Error) (time.Duration, bool) {
	if e.Header == nil {
		return 0, false
	}
	s := e.Header.Get("Retry-After")
	if s == "" {
		return 0, false
	}

	if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}

	if t, err := http.ParseTime(s); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}

	return 0, false
}
