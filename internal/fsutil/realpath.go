// Package fsutil holds the small set of filesystem primitives shared by the
// workspace resolver and the artifact scanner: real-path resolution,
// containment checks, and POSIX-relative-path conversion.
package fsutil

import (
	"path/filepath"
	"strings"
)

// RealPath resolves path to its absolute, symlink-followed form.
func RealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return real, nil
}

// Contains reports whether candidate's real path is strictly inside root's
// real path (root itself does not count as contained in itself).
func Contains(rootReal, candidateReal string) bool {
	if candidateReal == rootReal {
		return false
	}
	return strings.HasPrefix(candidateReal, rootReal+string(filepath.Separator))
}

// ToPosixRel converts an absolute path under root into a "/"-separated path
// relative to root.
func ToPosixRel(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
