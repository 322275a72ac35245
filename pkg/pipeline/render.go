package pipeline

import (
	"fmt"

	"github.com/matzehuels/meander/pkg/errors"
	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/render/sink"
)

// RenderFormat encodes d into a single format.
func RenderFormat(d meander.Drawing, format string, opts Options) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatDXF:
		data, err = sink.RenderDXF(d)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeIOFailure, err, "encode dxf")
		}
	case FormatSVG:
		data = sink.RenderSVG(d)
	case FormatJSON:
		data, err = sink.RenderJSON(d)
	case FormatPDF:
		data, err = sink.RenderPDF(d)
	case FormatPNG:
		scale := opts.PNGScale
		if scale == 0 {
			scale = DefaultPNGScale
		}
		data, err = sink.RenderPNG(d, sink.WithPNGScale(scale))
	default:
		return nil, ValidateFormat(format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// artifactVariant distinguishes renderings of one format that differ by
// options, so they get separate cache entries.
func artifactVariant(format string, opts Options) string {
	if format == FormatPNG {
		return fmt.Sprintf("%s@%g", format, opts.PNGScale)
	}
	return format
}
