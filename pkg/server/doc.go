// Package server exposes the render pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz   liveness probe with build version
//	POST /render    render a node stream
//
// A render request carries the stream and the pipeline options:
//
//	{
//	  "stream":  {"nodes": [{"id": 1, "column": 0, "parents": [2]}]},
//	  "options": {"hflip": true, "formats": ["text", "json"]}
//	}
//
// The response holds every requested artifact as a string keyed by format,
// plus the stream hash and whether the cache served the request.
//
// # Middleware
//
// Every request gets an X-Request-ID (generated with google/uuid unless the
// client sent one), a structured access log line and a call to the
// registered [observability.HTTPHooks]. Clients that send X-Client-ID get
// their own cache key space.
//
// # Errors
//
// Errors are returned as {"code": "...", "message": "..."} using the codes
// from [github.com/matzehuels/gitlanes/pkg/errors]. Validation codes map to
// 400, everything else to 500.
package server
