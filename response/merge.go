package response

import (
	"fmt"
	"net/http"
	"strings"
)

// MergePolicy decides how Merge treats failed responses.
type MergePolicy int

const (
	// MergeIgnoreFailure skips failures; the merged result is always a Success.
	MergeIgnoreFailure MergePolicy = iota
	// MergePreferredFailure returns the first failure met, dropping everything merged so far.
	MergePreferredFailure
)

func (p MergePolicy) String() string {
	switch p {
	case MergeIgnoreFailure:
		return "ignore_failure"
	case MergePreferredFailure:
		return "preferred_failure"
	default:
		return "unknown"
	}
}

// ParseMergePolicy parses "ignore_failure" or "preferred_failure".
// The empty string yields MergeIgnoreFailure.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore_failure":
		return MergeIgnoreFailure, nil
	case "preferred_failure":
		return MergePreferredFailure, nil
	default:
		return MergeIgnoreFailure, fmt.Errorf("outcome: unknown merge policy %q", s)
	}
}

func (p *MergePolicy) UnmarshalText(b []byte) error {
	v, err := ParseMergePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p MergePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Merge concatenates the data of list responses, primary first and then others in
// order. The result starts as an empty Success with status 200; each Success
// appends its data and replaces the header with its own. Failures are handled per
// mergePolicy.
func Merge[T any](mergePolicy MergePolicy, primary Response[[]T], others ...Response[[]T]) Response[[]T] {
	data := make([]T, 0)
	header := http.Header{}

	all := make([]Response[[]T], 0, len(others)+1)
	all = append(all, primary)
	all = append(all, others...)

	for _, r := range all {
		if s, ok := r.AsSuccess(); ok {
			data = append(data, s.Data...)
			header = s.Header
			continue
		}
		if mergePolicy == MergePreferredFailure {
			return r
		}
	}

	return NewSuccess(data, http.StatusOK, header)
}
