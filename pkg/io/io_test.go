package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gitlanes/pkg/errors"
	"github.com/matzehuels/gitlanes/pkg/graph"
)

var sample = graph.Stream{
	Lanes: 2,
	Nodes: []graph.Node{
		{ID: 1, Column: 0, Parents: []int{2, 3}, Label: "Merge branch 'topic'"},
		{ID: 2, Column: 0, Parents: []int{4}},
		{ID: 3, Column: 1, Parents: []int{4}},
		{ID: 4, Column: 0, Label: "Initial commit"},
	},
}

func equalStreams(a, b graph.Stream) bool {
	if a.Lanes != b.Lanes || len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for i := range a.Nodes {
		x, y := a.Nodes[i], b.Nodes[i]
		if x.ID != y.ID || x.Column != y.Column || x.Label != y.Label || !slices.Equal(x.Parents, y.Parents) {
			return false
		}
	}
	return true
}

func TestReadJSON(t *testing.T) {
	in := `{"lanes": 2, "nodes": [{"id": 1, "column": 0, "parents": [2]}, {"id": 2, "column": 1}]}`
	s, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if s.Lanes != 2 || len(s.Nodes) != 2 || s.Nodes[1].Column != 1 {
		t.Errorf("ReadJSON decoded %+v", s)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"nodes": [{"id": 1, "colum": 0}]}`, errors.ErrCodeInvalidInput},
		{"bad column", `{"lanes": 1, "nodes": [{"id": 1, "column": 3}]}`, errors.ErrCodeInvalidColumn},
		{"escape in label", `{"nodes": [{"id": 1, "column": 0, "label": "\u001b[31m"}]}`, errors.ErrCodeInvalidLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadTOML(t *testing.T) {
	in := `
lanes = 2

[[nodes]]
id = 1
column = 0
parents = [2, 3]
label = "merge"

[[nodes]]
id = 3
column = 1
`
	s, err := ReadTOML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if len(s.Nodes) != 2 || !slices.Equal(s.Nodes[0].Parents, []int{2, 3}) || s.Nodes[0].Label != "merge" {
		t.Errorf("ReadTOML decoded %+v", s)
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	in := "[[nodes]]\nid = 1\ncolum = 2\n"
	_, err := ReadTOML(strings.NewReader(in))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadTOML error = %v, want INVALID_INPUT", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !equalStreams(sample, back) {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTOML(sample, &buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	back, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML: %v\n%s", err, buf.String())
	}
	if !equalStreams(sample, back) {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestImportByExtension(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "graph.json")
	tomlPath := filepath.Join(dir, "graph.toml")

	if err := ExportJSON(sample, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if err := ExportTOML(sample, tomlPath); err != nil {
		t.Fatalf("ExportTOML: %v", err)
	}

	for _, p := range []string{jsonPath, tomlPath} {
		s, err := Import(p)
		if err != nil {
			t.Fatalf("Import(%s): %v", p, err)
		}
		if !equalStreams(sample, s) {
			t.Errorf("Import(%s) = %+v", p, s)
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import error = %v, want FILE_NOT_FOUND", err)
	}
}
