// Package timeouts defines the durations shared by the HTTP surface.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server drains in-flight requests.
const Shutdown = 5 * time.Second

// OTelShutdown bounds the final span flush on exit.
const OTelShutdown = 5 * time.Second
