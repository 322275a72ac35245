package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	params   paramFlags
	output   string  // output path; other formats replace its extension
	formats  string  // comma-separated output formats
	pngScale float64 // PNG rasterisation factor
	noCache  bool
	refresh  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the mask drawing",
		Long: `Generate computes the substrate, pad groups, meander, and leads, and writes them
as a three-layer DXF. Additional formats are written next to the DXF.`,
		Example: `  meander generate
  meander generate --loops 120 --pad-size 0.8 -o chip.dxf
  meander generate --config chip.toml -f dxf,svg,json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, &opts)
		},
	}

	opts.params.bind(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: filename from config, else Untitled.dxf)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatDXF, "output format(s): dxf, svg, json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", pipeline.DefaultPNGScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	p, err := opts.params.resolve(cmd)
	if err != nil {
		return err
	}
	if opts.output != "" {
		p.Filename = opts.output
	}
	if p.Filename == "" {
		p.Filename = meander.DefaultFilename
	}

	formats := pipeline.ParseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Params:   p,
		Formats:  formats,
		PNGScale: opts.pngScale,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	written, err := pipeline.WriteArtifacts(result.Artifacts, p.Filename)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(written)))

	printSuccess("Generated %s", strings.Join(formats, ", "))
	printStats(result.Stats, result.CacheInfo.RenderHit)
	for _, path := range written {
		printFile(path)
	}
	return nil
}
