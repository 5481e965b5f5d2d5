// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns such as
// request ids, request-scoped logging, New Relic tracing, metrics, CORS,
// rate limiting, panic recovery and the translation of errors into
// HTTP responses.
package middleware
