// Package api provides the REST API for computing MD5 digests.
//
// Endpoints under /api/v1:
//
//	POST /digest       hash the raw request body (gzip/zstd Content-Encoding supported)
//	POST /digest/json  hash {"data": "...", "encoding": "utf8|latin1|hex|base64"}
//	GET  /vectors      run the configured known-answer vectors
//	GET  /status       version and configuration fingerprint
//	GET  /health       configuration validity and block-boundary self-check
//
// Prometheus metrics are served at /metrics. Successful responses are wrapped
// as {"data": ...}; errors as {"error": {"code", "message", "details"}}.
package api
