package api

// --- Structs for the Shadertoy raw endpoint response ---

// ShaderRecord is the top-level value the raw endpoint returns: a JSON
// array of shader objects. For a single-ID query it holds exactly one
// entry; anything else is treated as a malformed response.
type ShaderRecord []Shader

type Shader struct {
	Version    string       `json:"ver"`
	Info       ShaderInfo   `json:"info"`
	RenderPass []RenderPass `json:"renderpass"`
}

// ShaderInfo mirrors the "info" block of the raw endpoint. It is carried
// through to the persisted description untouched.
type ShaderInfo struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Viewed      int      `json:"viewed"`
	Name        string   `json:"name"`
	Username    string   `json:"username"`
	Description string   `json:"description"`
	Likes       int      `json:"likes"`
	Published   int      `json:"published"`
	Flags       int      `json:"flags"`
	UsePreview  int      `json:"usePreview"`
	Tags        []string `json:"tags"`
	HasLiked    int      `json:"hasliked"`
}

// RenderPass is one shader compilation unit (main image, buffers A-D,
// common, sound). After materialization its Code field holds the name of
// the written .glsl file instead of inline source.
type RenderPass struct {
	Inputs      []Input  `json:"inputs"`
	Outputs     []Output `json:"outputs"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
}

// Input is a resource binding consumed by a render pass. Only inputs whose
// Filepath starts with the media root are filesystem-backed assets; the
// rest (buffer feeds, keyboard, mic, ...) reference nothing downloadable.
type Input struct {
	ID              any     `json:"id"`
	Src             string  `json:"src,omitempty"`
	Filepath        string  `json:"filepath"`
	PreviewFilepath string  `json:"previewfilepath,omitempty"`
	Type            string  `json:"type,omitempty"`
	CType           string  `json:"ctype,omitempty"`
	Channel         int     `json:"channel"`
	Sampler         Sampler `json:"sampler"`
	Published       int     `json:"published"`
}

type Output struct {
	ID      any `json:"id"`
	Channel int `json:"channel"`
}

type Sampler struct {
	Filter   string `json:"filter"`
	Wrap     string `json:"wrap"`
	VFlip    string `json:"vflip"`
	SRGB     string `json:"srgb"`
	Internal string `json:"internal"`
}
