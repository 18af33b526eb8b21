package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/graph"
)

// Stdin is the path that makes [Import] read JSON from standard input.
const Stdin = "-"

// ReadJSON decodes a JSON node stream from r and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (graph.Stream, error) {
	var s graph.Stream
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return graph.Stream{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON stream")
	}
	return s, Validate(s)
}

// ReadTOML decodes a TOML node stream from r and validates it.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (graph.Stream, error) {
	var s graph.Stream
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return graph.Stream{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML stream")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return graph.Stream{}, errors.New(errors.ErrCodeInvalidInput, "unknown keys in TOML stream: %v", undecoded)
	}
	return s, Validate(s)
}

// ImportJSON reads a JSON stream from the file at path.
func ImportJSON(path string) (graph.Stream, error) {
	return importFile(path, ReadJSON)
}

// ImportTOML reads a TOML stream from the file at path.
func ImportTOML(path string) (graph.Stream, error) {
	return importFile(path, ReadTOML)
}

// Import reads a stream from path, choosing the decoder by extension.
// Files ending in .toml are decoded as TOML, everything else as JSON.
// The path "-" reads JSON from standard input.
func Import(path string) (graph.Stream, error) {
	if path == Stdin {
		return ReadJSON(os.Stdin)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ImportTOML(path)
	}
	return ImportJSON(path)
}

func importFile(path string, read func(io.Reader) (graph.Stream, error)) (graph.Stream, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return graph.Stream{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return graph.Stream{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(f)
}

// Validate checks the stream layout and every node label. Labels must be
// printable since they are written next to escape-coded graph lines.
func Validate(s graph.Stream) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for i, n := range s.Nodes {
		if err := errors.ValidateLabel(n.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLabel, err, "node %d (id %d)", i, n.ID)
		}
	}
	return nil
}
