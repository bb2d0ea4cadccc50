package models

import (
	"fmt"
	"strings"
)

// folder_path.go - Materialized path codec for folders.
//
// A folder path is "/" followed by the names of every ancestor and the folder
// itself, joined by "/". Folder names never contain the separator, so the last
// segment of a path is always the folder's own name.

// PathSeparator separates the segments of a folder path.
const PathSeparator = "/"

// ComputePath builds the path of a folder named name under a parent with the
// given path. A nil parentPath means the folder is at the root.
//
// Examples:
//   - ComputePath("Work", nil) → "/Work"
//   - ComputePath("Projects", &"/Work") → "/Work/Projects"
func ComputePath(name string, parentPath *string) string {
	if parentPath == nil {
		return PathSeparator + name
	}
	return strings.TrimSuffix(*parentPath, PathSeparator) + PathSeparator + name
}

// RebasePath replaces oldPrefix at the start of path with newPrefix. path must be
// oldPrefix itself or one of its descendants; the relative remainder is kept
// byte for byte.
//
// Example:
//   - RebasePath("/Work/Projects/Q1", "/Work", "/Job") → "/Job/Projects/Q1"
func RebasePath(path, oldPrefix, newPrefix string) (string, error) {
	if path == oldPrefix {
		return newPrefix, nil
	}
	if !IsDescendantPath(path, oldPrefix) {
		return "", fmt.Errorf("path %q is not under %q", path, oldPrefix)
	}
	return newPrefix + path[len(oldPrefix):], nil
}

// DescendantPrefix returns the prefix shared by the paths of every descendant.
func DescendantPrefix(path string) string {
	return path + PathSeparator
}

// DescendantRange returns bounds lo, hi such that a path p is a strict
// descendant of path exactly when lo < p < hi in byte order. "0" is the byte
// right after the separator, so the range can be served by an index on path.
func DescendantRange(path string) (lo, hi string) {
	return path + PathSeparator, path + "0"
}

// IsDescendantPath reports whether candidate lies strictly below ancestor.
func IsDescendantPath(candidate, ancestor string) bool {
	return strings.HasPrefix(candidate, DescendantPrefix(ancestor))
}

// NameFromPath returns the last segment of a path.
func NameFromPath(path string) string {
	if i := strings.LastIndex(path, PathSeparator); i >= 0 {
		return path[i+1:]
	}
	return path
}

// ParentPath returns the path without its last segment, or "" for a root path.
func ParentPath(path string) string {
	i := strings.LastIndex(path, PathSeparator)
	if i <= 0 {
		return ""
	}
	return path[:i]
}

// PathDepth returns the number of ancestors encoded in a path (root = 0).
func PathDepth(path string) int {
	return strings.Count(strings.TrimPrefix(path, PathSeparator), PathSeparator)
}
