package server

import (
	"fmt"
	"path"
	"strings"
)

// normalizeRequestPath cleans the raw request path into a rooted,
// slash-separated form. Traversal segments collapse at the root, the
// same way the standard mux cleans paths before routing.
func normalizeRequestPath(rawPath string) string {
	if rawPath == "" {
		rawPath = "/"
	}
	if !strings.HasPrefix(rawPath, "/") {
		rawPath = "/" + rawPath
	}
	return path.Clean(rawPath)
}

// validateRequestPath rejects paths that could climb out of the served
// directory. Normalized paths always pass; the check guards callers
// that bypass normalization.
func validateRequestPath(name string) error {
	if !strings.HasPrefix(name, "/") {
		return fmt.Errorf("path is not rooted")
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return fmt.Errorf("path traversal attempt detected")
		}
	}
	return nil
}
