// Package http implements the HTTP handlers for the CreatorPulse API. The
// handlers only deal with HTTP concerns: they parse and validate the
// request, delegate to the services package and render the result.
//
// # Endpoints
//
//	POST /api/v1/analyze    analyze a JSON body, query k, top, format=json|xlsx
//	GET  /api/health        overall health including the analysis engine
//	GET  /api/health/live   liveness probe
//	GET  /api/version       build and engine information
//
// # Errors
//
// Every failure is rendered as RFC 7807 problem details through
// errors.ErrorHandler: validation failures are 400, corrupt input is 400,
// oversized bodies are 413, unsupported formats are 406 and an expired
// request deadline is 504.
package http
