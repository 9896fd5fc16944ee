// Package app wires the viewer together and manages its lifecycle.
//
// New builds every component from a Config: OpenTelemetry providers and
// metrics, the series and health services, the HTTP handlers and the chi
// router with its middleware chain. NewApplication does the same after
// loading configuration and logging from the environment.
//
// Run starts the server and blocks until SIGINT or SIGTERM, then shuts the
// server and telemetry down within Server.ShutdownTimeout. Initialization
// errors are returned; the package never calls os.Exit.
package app
