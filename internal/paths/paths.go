// Package paths provides canonical repo-relative path helpers.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Canonicalize converts an absolute path to a project-relative canonical path.
// Symlinks are resolved, the path is made relative to the project root, and
// separators are normalized to forward slashes.
func Canonicalize(absolutePath string, projectRoot string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		// If the file doesn't exist yet, use the path as-is
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(projectRoot)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = projectRoot
		} else {
			return "", err
		}
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(relativePath), nil
}

// IsWithinProject checks if a path is within the project root.
func IsWithinProject(path string, projectRoot string) bool {
	canonical, err := Canonicalize(path, projectRoot)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(canonical, "..")
}

// FirstSegment returns the first path segment of a canonical (slash-separated)
// relative path, or "" for an empty path.
func FirstSegment(canonicalPath string) string {
	canonicalPath = strings.TrimPrefix(canonicalPath, "./")
	if canonicalPath == "" || canonicalPath == "." {
		return ""
	}
	if i := strings.IndexByte(canonicalPath, '/'); i >= 0 {
		return canonicalPath[:i]
	}
	return canonicalPath
}

// JoinProject joins a project root with a canonical path using OS separators.
func JoinProject(projectRoot string, canonicalPath string) string {
	parts := strings.Split(strings.ReplaceAll(canonicalPath, "\\", "/"), "/")
	return filepath.Join(append([]string{projectRoot}, parts...)...)
}
