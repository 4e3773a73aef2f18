// Package timeouts defines shared timeout constants used across the bridge.
package timeouts

import "time"

// HelperStart caps the wait for the scripting helper to report readiness.
// The helper imports the vendor module and attaches to a running
// application, which can take several seconds on a cold start.
const HelperStart = 15 * time.Second

// ScriptCall is the default cap for a single forwarded scripting call.
const ScriptCall = 30 * time.Second

// HelperStop limits how long a closing helper may take before it is killed.
const HelperStop = 2 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
