package codec

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// JSONMarshal encodes v into JSON.
func JSONMarshal(v any) ([]byte, error) {
	return gojson.Marshal(v)
}

// JSONUnmarshal decodes JSON data into v.
func JSONUnmarshal(data []byte, v any) error {
	return gojson.Unmarshal(data, v)
}

// JSONUnmarshalRead decodes a single JSON value from reader into v.
func JSONUnmarshalRead(r io.Reader, v any) error {
	return gojson.NewDecoder(r).Decode(v)
}
