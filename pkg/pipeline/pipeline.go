// Package pipeline runs the generate → render → write sequence shared by the
// CLI and the HTTP API.
//
// Centralising the sequence keeps caching, validation, and logging identical
// across entry points.
//
// # Stages
//
//  1. Generate: validate the parameters and assemble the [meander.Drawing]
//  2. Render: encode the drawing into each requested format (DXF, SVG, JSON, PDF, PNG)
//  3. Write: persist the artifacts next to the requested output path
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Params:  meander.DefaultParams(),
//	    Formats: []string{pipeline.FormatDXF, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	paths, err := pipeline.WriteArtifacts(result.Artifacts, "Untitled.dxf")
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
)

// Format constants for output formats.
const (
	FormatDXF  = "dxf"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// DefaultPNGScale is the rasterisation factor applied to the SVG preview.
const DefaultPNGScale = 1.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDXF:  true,
	FormatSVG:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
}

// contentTypes maps formats to HTTP content types.
var contentTypes = map[string]string{
	FormatDXF:  "application/dxf",
	FormatSVG:  "image/svg+xml",
	FormatJSON: "application/json",
	FormatPDF:  "application/pdf",
	FormatPNG:  "image/png",
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dxf, svg, json, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid and none repeats.
func ValidateFormats(formats []string) error {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
		if seen[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q requested twice", f)
		}
		seen[f] = true
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// lower-casing each entry.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Options configures one pipeline run.
type Options struct {
	// Params are the generator inputs.
	Params meander.Params `json:"params"`

	// Formats lists the artifacts to render; empty means DXF only.
	Formats []string `json:"formats,omitempty"`

	// PNGScale is the PNG rasterisation factor; zero means DefaultPNGScale.
	PNGScale float64 `json:"png_scale,omitempty"`

	// Refresh bypasses cache reads; fresh artifacts are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives progress messages; nil uses the runner's logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults applies defaults and validates the formats.
// Parameter validation happens during generation so that every violated
// rule is reported together.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatDXF}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return ValidateFormats(o.Formats)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Drawing is the assembled geometry.
	Drawing meander.Drawing

	// ParamsHash identifies the parameter set in cache keys and API responses.
	ParamsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo reports which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	EntityCount  int
	PointCount   int
	TraceLength  float64
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // Formats served from cache
	RenderHit bool     // Whether all artifacts came from cache
}

// ParamsHash returns the SHA-256 of the parameters that affect geometry.
// The output filename is excluded, so renaming an output reuses its cache.
func ParamsHash(p meander.Params) (string, error) {
	p.Filename = ""
	h, err := cache.HashJSON(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash parameters")
	}
	return h, nil
}
