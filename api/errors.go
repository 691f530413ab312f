package api

import "errors"

// Fatal failure classes for one fetch run. Asset downloads never surface
// these to the caller as fatal; metadata retrieval always does.
var (
	// ErrInvalidIdentifier means the input was neither a bare alphanumeric
	// shader ID nor a shadertoy.com view URL.
	ErrInvalidIdentifier = errors.New("unrecognized format for the shader ID or URL")

	// ErrTransport covers connection failures and non-success HTTP statuses.
	ErrTransport = errors.New("transport failure")

	// ErrEmptyResponse means the metadata endpoint returned a zero-length
	// body, which the service does for unknown or private shaders.
	ErrEmptyResponse = errors.New("empty HTTP response received")

	// ErrMalformedResponse means the metadata body did not decode as the
	// expected array-of-one-shader shape.
	ErrMalformedResponse = errors.New("malformed shader response")
)
