package utils

import (
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned when a relative path would leave its root.
var ErrUnsafePath = errors.New("path escapes its root")

// CleanRelative canonicalizes a slash-separated relative path.
// Absolute paths, backslashes, NUL bytes and any ".." segment are rejected,
// as is a path that cleans down to the root itself.
func CleanRelative(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "\\\x00") {
		return "", ErrUnsafePath
	}
	if strings.HasPrefix(name, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", ErrUnsafePath
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", ErrUnsafePath
		}
	}

	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == "" {
		return "", ErrUnsafePath
	}
	return cleaned, nil
}

// SafeJoin joins root and a relative name and verifies that the result is
// still inside root after canonicalization.
func SafeJoin(root, name string) (string, error) {
	rel, err := CleanRelative(name)
	if err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	full := filepath.Join(absRoot, filepath.FromSlash(rel))

	within, err := filepath.Rel(absRoot, full)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", ErrUnsafePath
	}
	return full, nil
}

// SanitizeFilename reduces a client supplied filename to its base name.
// It returns "" when nothing usable remains.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(strings.TrimSpace(name))
	switch base {
	case ".", "..", "/":
		return ""
	}
	if strings.ContainsRune(base, 0) {
		return ""
	}
	return base
}
