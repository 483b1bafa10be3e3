// Package middleware holds the Gin middleware shared by the desktop API:
// CORS and per-client or global rate limiting.
package middleware
