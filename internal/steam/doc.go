// Package steam is the HTTP client for the three store endpoints the
// pipeline consumes: the bulk app list (Web API), the account library
// (community XML), and per-app details (store JSON).
//
// Every request passes through the shared rate limiter before it starts, so
// the configured minimum interval holds across endpoints.
package steam
