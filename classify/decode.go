package classify

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
)

// Decoder reads a successful response body into a T.
type Decoder[T any] func(r io.Reader) (T, error)

// DecodeJSON decodes a JSON body. An empty body yields the zero value.
func DecodeJSON[T any](r io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(r).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return v, err
	}
	return v, nil
}

// DecodeXML decodes an XML body. An empty body yields the zero value.
func DecodeXML[T any](r io.Reader) (T, error) {
	var v T
	if err := xml.NewDecoder(r).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return v, err
	}
	return v, nil
}

// DecodeRaw returns the body bytes as-is.
func DecodeRaw(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

// DecodeString returns the body as a string.
func DecodeString(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	return string(b), err
}

// Discard drops the body.
func Discard(r io.Reader) (struct{}, error) {
	_, err := io.Copy(io.Discard, r)
	return struct{}{}, err
}
