package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalStream encodes a stream as canonical JSON. The encoding is
// deterministic, so its hash can key render caches.
func MarshalStream(s Stream) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalStream decodes JSON bytes into a stream without validating it.
func UnmarshalStream(data []byte) (Stream, error) {
	var s Stream
	if err := json.Unmarshal(data, &s); err != nil {
		return Stream{}, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}
