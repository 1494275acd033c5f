// Package config provides configuration management for the Reservation Portal.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file in the working directory.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, secrets, upload/download directories, limits
//   - Database: optional MySQL/SQLite connection for sessions and run history
//   - Storage: optional S3/MinIO bucket for generated reports
//   - Log: Logging level and format
//
// Nested keys map to upper-case variables (server.port -> SERVER_PORT). The two
// secrets also accept the bare APP_SECRET and AUTHORIZED_UUID names.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
