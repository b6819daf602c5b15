// Package common holds project-wide constants shared by the binaries,
// the HTTP server and the metrics endpoint.
package common

const (
	// PackageName identifies this service in logs and metrics.
	PackageName = "experiment-server"

	// Version is overridden at build time via -ldflags.
	Version = "dev"
)
