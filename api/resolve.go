package api

import (
	"fmt"
	"regexp"
)

var (
	bareIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	viewURLPattern = regexp.MustCompile(`^https://www\.shadertoy\.com/view/([a-zA-Z0-9]+)$`)
)

// ResolveShaderID turns a bare shader ID or a full shadertoy.com view URL
// into a bare ID. It performs no network I/O.
func ResolveShaderID(idOrURL string) (string, error) {
	if m := viewURLPattern.FindStringSubmatch(idOrURL); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(idOrURL) {
		return idOrURL, nil
	}
	return "", fmt.Errorf("%w: %q is not a shader ID or view URL", ErrInvalidIdentifier, idOrURL)
}
