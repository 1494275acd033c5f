// Package utils provides small helpers shared by the portal packages.
//
// It currently holds the path canonicalization used before any user supplied
// name touches the filesystem or a bucket key: CleanRelative, SafeJoin and
// SanitizeFilename.
package utils
