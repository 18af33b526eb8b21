// Package pkg provides the core libraries for gitlanes commit-graph rendering.
//
// # Overview
//
// gitlanes draws a commit history as vertical lanes in a terminal, one node at
// a time. Each node becomes two lines: a transition line holding the node
// marker plus the branch and merge connectors, and a padding line showing
// which lanes continue downward. The pkg directory is organized into:
//
//  1. [graph] - Node and stream types
//  2. [lanes] - Lane occupancy carried from row to row
//  3. [render/rows] - Glyph resolution, row composition and orientation
//  4. [pipeline] - Orchestration (validate → render → compose → cache)
//  5. [cache], [config], [server] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	JSON/TOML stream ([io])
//	         ↓
//	    [graph] package (validate columns and ids)
//	         ↓
//	    [render/rows] package (one Row per node, state in [lanes])
//	         ↓
//	    [pipeline] package (text, json, dot, svg artifacts)
//	         ↓
//	    CLI stdout, pager, files or the HTTP API
//
// # Quick Start
//
// Render a stream incrementally:
//
//	r := rows.New(3, rows.Options{Glyphs: rows.Unicode, ColorMode: rows.ColorByLane})
//	for _, n := range stream.Nodes {
//	    row := r.Render(n)
//	    fmt.Println(row.Transition)
//	    fmt.Println(row.Padding)
//	}
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, stream, pipeline.Options{})
//
// # Main Packages
//
// [render/rows] - The renderer. Resolves a glyph for every lane and gap,
// assigns colors by lane or lineage, and applies horizontal and vertical
// flips.
//
// [render/nodelink] - Graphviz DOT and SVG diagrams of the same stream.
//
// [cache] - File, Redis, MongoDB and null backends for rendered artifacts.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/render/rows/...        # Specific package
//	go test -run Example                 # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/graph
// [lanes]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/lanes
// [render/rows]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/render/rows
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/server
// [io]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gitlanes/pkg/errors
package pkg
