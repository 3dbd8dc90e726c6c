// Package redis provides Redis connection management for the pub/sub
// notification transport: env-driven configuration, connect with retry and
// a readiness healthcheck.
package redis
