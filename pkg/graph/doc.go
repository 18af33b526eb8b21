// Package graph defines the node stream consumed by the lane renderer.
//
// A commit graph reaches gitlanes already ordered and already laid out: an
// upstream walker (git, a VCS adapter, a test fixture) decides the traversal
// order and assigns every node a lane. This package holds that wire format
// and nothing else.
//
// # Core Types
//
//   - [Node]: one graph vertex with its identity, lane, and parent identities
//   - [Stream]: an ordered sequence of nodes plus the lane count for the session
//
// # Identities
//
// Identities are small integers. A node's ID names the lineage the node closes
// out; its Parents name the lineages it continues as. The renderer keys colors
// and lane occupancy on these integers, so upstream walkers usually map commit
// hashes to sequential IDs before emitting a stream.
//
// # Validation
//
// [Stream.Validate] checks the contract the renderer relies on: every column
// lies inside the lane range and no node lists the same parent twice. The
// renderer itself panics on contract violations, so anything that accepts
// streams from users (files, HTTP) validates first.
package graph
