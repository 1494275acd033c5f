// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings and the checks that
// must pass before the portal is allowed to start.
//
// # Configuration
//
// The Config struct defines the HTTP port, the two secrets (session secret and
// the shared access token), the upload and download directories, the upload size
// limit, the session lifetime and the timezone used to decide which arrivals are
// still upcoming.
//
// Both secrets are mandatory: Validate returns an error when either is empty and
// the start command treats that as fatal.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the portal feature to locate its directories.
package server
