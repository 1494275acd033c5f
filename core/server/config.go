package server

import (
	"errors"
	"time"
)

var (
	// ErrMissingAppSecret is returned when no session secret is configured.
	ErrMissingAppSecret = errors.New("server.app_secret (APP_SECRET) is required")
	// ErrMissingAuthorizedUUID is returned when no access token is configured.
	ErrMissingAuthorizedUUID = errors.New("server.authorized_uuid (AUTHORIZED_UUID) is required")
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// AppSecret is the secret used to protect the session cookie.
	AppSecret string `mapstructure:"app_secret" default:""`
	// AuthorizedUUID is the single shared token that grants access to the portal.
	AuthorizedUUID string `mapstructure:"authorized_uuid" default:""`
	// UploadDir is where uploaded spreadsheets are written.
	UploadDir string `mapstructure:"upload_dir" default:"uploads"`
	// DownloadDir is the root of the generated artifacts when stored on disk.
	DownloadDir string `mapstructure:"download_dir" default:"downloads"`
	// MaxUploadMB caps the request body size.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"32"`
	// SessionHours is the idle lifetime of a session.
	SessionHours int `mapstructure:"session_hours" default:"168"`
	// Timezone decides which calendar day counts as "today" for arrivals.
	Timezone string `mapstructure:"timezone" default:"Local"`
}

// Validate checks that both secrets are present.
func (c Config) Validate() error {
	if c.AppSecret == "" {
		return ErrMissingAppSecret
	}
	if c.AuthorizedUUID == "" {
		return ErrMissingAuthorizedUUID
	}
	return nil
}

// Location resolves the configured timezone, falling back to time.Local.
func (c Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionTTL returns the session lifetime.
func (c Config) SessionTTL() time.Duration {
	if c.SessionHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionHours) * time.Hour
}

// BodyLimit returns the maximum request body size in bytes.
func (c Config) BodyLimit() int {
	if c.MaxUploadMB <= 0 {
		return 32 * 1024 * 1024
	}
	return c.MaxUploadMB * 1024 * 1024
}
