package options

import "time"

// FetchOptions carries one run's settings from the command line to the
// fetch pipeline.
type FetchOptions struct {
	ShaderInput string        // bare shader ID or full view URL, as given
	OutputDir   string        // destination root; empty means the resolved shader ID
	Timeout     time.Duration // per-request HTTP timeout
	Quiet       bool          // only log warnings and errors
	APIBase     string        // metadata endpoint override, empty for the live service
	MediaBase   string        // asset endpoint override, empty for the live service
}
