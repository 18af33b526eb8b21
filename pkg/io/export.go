package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitlanes/pkg/graph"
)

// WriteJSON encodes a stream as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(s graph.Stream, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a stream as TOML and writes it to w.
// The output can be re-imported with [ReadTOML].
func WriteTOML(s graph.Stream, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a stream to a JSON file at path.
func ExportJSON(s graph.Stream, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteJSON(s, w) })
}

// ExportTOML writes a stream to a TOML file at path.
func ExportTOML(s graph.Stream, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteTOML(s, w) })
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
