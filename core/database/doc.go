// Package database handles the optional database connection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to configure
// MySQL or SQLite connections based on the application's configuration. The
// portal works without a database; when one is available it persists sessions
// (so a restart does not log the user out) and the history of generation runs.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings, pings the server
// and retries the whole sequence a configurable number of times with backoff.
// Callers treat a failure as a warning and fall back to in-memory state.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("Optional database connection failed", zap.Error(err))
//	}
package database
