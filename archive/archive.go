// Package archive writes a fetched shader project to local storage: one
// .glsl file per render pass, the referenced media assets, and a
// description.json tying them together.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/richinsley/goshaderfetch/api"
)

const (
	// MediaRoot is the server path prefix identifying inputs that are
	// downloadable static assets. Everything else (buffer feeds, keyboard,
	// microphone, ...) has no file behind it.
	MediaRoot = "/media"

	// SourceExt is appended to each sanitized render pass name.
	SourceExt = ".glsl"

	// DescriptionFile is the name of the persisted record.
	DescriptionFile = "description.json"
)

// AssetFetcher is the one network operation the materializer needs.
// *api.Client satisfies it.
type AssetFetcher interface {
	FetchAsset(ctx context.Context, serverPath string) ([]byte, error)
}

// Materializer writes one shader record and its assets under an output
// directory, mutating the record so each pass's code field names the
// written file instead of embedding source.
type Materializer struct {
	fetcher AssetFetcher
	outDir  string
	log     *slog.Logger
}

// New returns a Materializer rooted at outDir. A nil logger falls back to
// slog.Default.
func New(fetcher AssetFetcher, outDir string, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Materializer{fetcher: fetcher, outDir: outDir, log: logger}
}

// Run materializes every render pass of the record, in record order.
// Asset download failures are logged and skipped; a pass source file that
// cannot be written is fatal. The output directory is created on entry
// and merged with whatever it already contains.
func (m *Materializer) Run(ctx context.Context, record api.ShaderRecord) error {
	if err := os.MkdirAll(m.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", m.outDir, err)
	}

	for si := range record {
		for pi := range record[si].RenderPass {
			pass := &record[si].RenderPass[pi]

			for _, input := range pass.Inputs {
				m.materializeInput(ctx, input)
			}

			filename := SanitizePassName(pass.Name)
			codePath := filepath.Join(m.outDir, filename)
			if err := os.WriteFile(codePath, asciiOnly(pass.Code+"\n"), 0o644); err != nil {
				return fmt.Errorf("failed to write pass source %s: %w", codePath, err)
			}
			m.log.Info("wrote pass source", "pass", pass.Name, "file", filename)

			// The persisted description references the file on disk.
			pass.Code = filename
		}
	}
	return nil
}

// materializeInput downloads one media input unless it is not a media
// reference or is already present on disk. Failures never abort the run.
func (m *Materializer) materializeInput(ctx context.Context, input api.Input) {
	m.log.Info("input", "filepath", input.Filepath)
	if !strings.HasPrefix(input.Filepath, MediaRoot) {
		m.log.Info("skipping non-media input", "filepath", input.Filepath)
		return
	}

	// Assets land one level above the output directory, mirroring the
	// server's path layout relative to the project root.
	localPath := filepath.Join(m.outDir, "..", input.Filepath)
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		m.log.Warn("failed to create media directory", "path", filepath.Dir(localPath), "error", err)
		return
	}

	if _, err := os.Stat(localPath); err == nil {
		m.log.Info("asset already present, skipping download", "path", localPath)
		return
	}

	data, err := m.fetcher.FetchAsset(ctx, input.Filepath)
	if err != nil {
		m.log.Warn("failed to download asset", "filepath", input.Filepath, "error", err)
		return
	}
	if err := os.WriteFile(localPath, data, 0o644); err != nil {
		m.log.Warn("failed to write asset", "path", localPath, "error", err)
		return
	}
	m.log.Info("downloaded asset", "filepath", input.Filepath, "bytes", len(data))
}

// WriteDescription serializes the record as indented JSON to
// <outDir>/description.json, overwriting any existing file.
func (m *Materializer) WriteDescription(record api.ShaderRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}
	descPath := filepath.Join(m.outDir, DescriptionFile)
	if err := os.WriteFile(descPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", descPath, err)
	}
	return nil
}

// SanitizePassName maps a render pass display name to its on-disk
// filename: spaces removed, source extension appended. Passes whose names
// collide after sanitization overwrite each other.
func SanitizePassName(name string) string {
	return strings.ReplaceAll(name, " ", "") + SourceExt
}

// asciiOnly drops every rune outside the 7-bit range, matching the lossy
// best-effort encoding of the persisted pass sources.
func asciiOnly(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
		}
	}
	return out
}
