package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richinsley/goshaderfetch/api"
)

const sampleRecord = `[
  {
    "ver": "0.1",
    "info": {
      "id": "XlSSzV",
      "name": "Plasma Globe",
      "username": "nimitz",
      "tags": ["plasma", "3d"]
    },
    "renderpass": [
      {
        "inputs": [
          {
            "id": "257",
            "filepath": "/media/a/noise.png",
            "type": "texture",
            "channel": 0,
            "sampler": {"filter": "mipmap", "wrap": "repeat", "vflip": "true", "srgb": "false", "internal": "byte"},
            "published": 1
          }
        ],
        "outputs": [],
        "code": "void mainImage(out vec4 c, in vec2 p) { c = vec4(0.0); }",
        "name": "Image",
        "type": "image"
      }
    ]
  }
]`

func newTestClient(srvURL string) *api.Client {
	return api.NewClient(api.WithBaseURLs(srvURL, srvURL))
}

func TestFetchRecord(t *testing.T) {
	t.Parallel()

	var gotReq struct {
		method, path, contentType, userAgent, referer, body string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotReq.method = r.Method
		gotReq.path = r.URL.Path
		gotReq.contentType = r.Header.Get("Content-Type")
		gotReq.userAgent = r.Header.Get("User-Agent")
		gotReq.referer = r.Header.Get("Referer")
		gotReq.body = r.PostForm.Get("s")
		_, _ = w.Write([]byte(sampleRecord))
	}))
	defer srv.Close()

	record, err := newTestClient(srv.URL).FetchRecord(context.Background(), "XlSSzV")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotReq.method)
	assert.Equal(t, "/shadertoy", gotReq.path)
	assert.Equal(t, "application/x-www-form-urlencoded", gotReq.contentType)
	assert.Contains(t, gotReq.userAgent, "Mozilla/5.0")
	assert.Equal(t, srv.URL+"/browse", gotReq.referer)
	assert.JSONEq(t, `{"shaders":["XlSSzV"]}`, gotReq.body)

	require.Len(t, record, 1)
	assert.Equal(t, "Plasma Globe", record[0].Info.Name)
	require.Len(t, record[0].RenderPass, 1)
	pass := record[0].RenderPass[0]
	assert.Equal(t, "Image", pass.Name)
	require.Len(t, pass.Inputs, 1)
	assert.Equal(t, "/media/a/noise.png", pass.Inputs[0].Filepath)
	assert.Equal(t, "mipmap", pass.Inputs[0].Sampler.Filter)
}

func TestFetchRecordFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			},
			wantErr: api.ErrEmptyResponse,
		},
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", http.StatusInternalServerError)
			},
			wantErr: api.ErrTransport,
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>blocked</html>"))
			},
			wantErr: api.ErrMalformedResponse,
		},
		{
			name: "object instead of array",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"renderpass":[]}`))
			},
			wantErr: api.ErrMalformedResponse,
		},
		{
			name: "zero entries",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
			wantErr: api.ErrMalformedResponse,
		},
		{
			name: "two entries",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"renderpass":[]},{"renderpass":[]}]`))
			},
			wantErr: api.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestClient(srv.URL).FetchRecord(context.Background(), "abc")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetchRecordConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // nothing listens here anymore

	_, err := newTestClient(srv.URL).FetchRecord(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrTransport)
}

func TestFetchAsset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/media/a/noise.png":
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	data, err := client.FetchAsset(context.Background(), "/media/a/noise.png")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)

	_, err = client.FetchAsset(context.Background(), "/media/a/missing.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrTransport)
}
