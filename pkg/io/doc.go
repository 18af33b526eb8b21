// Package io reads and writes node streams as JSON or TOML.
//
// # Overview
//
// A node stream is what an upstream graph walker hands to gitlanes: the lane
// count for the session and the nodes in traversal order, each already
// assigned to a lane. This package moves streams between files and
// [graph.Stream] values.
//
// # JSON Format
//
//	{
//	  "lanes": 2,
//	  "nodes": [
//	    {"id": 1, "column": 0, "parents": [2, 3], "label": "Merge branch 'topic'"},
//	    {"id": 2, "column": 0, "parents": [4]},
//	    {"id": 3, "column": 1, "parents": [4]},
//	    {"id": 4, "column": 0, "label": "Initial commit"}
//	  ]
//	}
//
// "lanes" is optional; when omitted it is derived from the largest column.
//
// # TOML Format
//
// The same structure as an array of tables:
//
//	lanes = 2
//
//	[[nodes]]
//	id = 1
//	column = 0
//	parents = [2, 3]
//	label = "Merge branch 'topic'"
//
// Unknown keys are rejected so typos such as "colum" do not silently put
// every node in lane 0.
//
// # Validation
//
// Every reader validates the decoded stream with [graph.Stream.Validate] and
// checks labels for control characters. Errors are [*errors.Error] values with
// INVALID_* or FILE_NOT_FOUND codes, so callers can tell bad input from I/O
// failure.
//
// # Format Selection
//
// [Import] picks a decoder by file extension (.json, .toml); the path "-"
// reads JSON from standard input.
package io
