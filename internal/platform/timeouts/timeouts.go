// Package timeouts defines shared timeout constants used by the HTTP server
// and its backing stores.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreDial caps the wait when connecting to an external draft store.
const StoreDial = 5 * time.Second

// MailSend caps a single lead notification delivery.
const MailSend = 15 * time.Second
