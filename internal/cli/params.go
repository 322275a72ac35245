package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/meander/pkg/config"
	"github.com/matzehuels/meander/pkg/meander"
)

// paramFlags binds the generator inputs to command-line flags.
type paramFlags struct {
	config string
	values meander.Params
}

// bind registers the parameter flags on fs with defaults as their initial values.
func (f *paramFlags) bind(fs *pflag.FlagSet) {
	d := meander.DefaultParams()
	f.values = d

	fs.StringVar(&f.config, "config", "", "TOML parameter file (flags override its values)")
	fs.Float64Var(&f.values.SubstrateSize, "substrate-size", d.SubstrateSize, "substrate side length (mm)")
	fs.Float64Var(&f.values.Height, "height", d.Height, "meander block height and width (mm)")
	fs.Float64Var(&f.values.PadSize, "pad-size", d.PadSize, "bond pad side length (mm)")
	fs.Float64Var(&f.values.PadsNeckSize, "neck", d.PadsNeckSize, "pad neck size (mm)")
	fs.IntVar(&f.values.NumberOfLoops, "loops", d.NumberOfLoops, "number of meander loops")
	fs.Float64Var(&f.values.SnakeThickness, "thickness", d.SnakeThickness, "conductor width (mm)")
	fs.Float64Var(&f.values.SnakeLoopMargin, "loop-margin", d.SnakeLoopMargin, "gap between lead corner and tooth bottoms (mm)")
	fs.Float64Var(&f.values.SnakePadsOffset, "pads-offset", d.SnakePadsOffset, "gap between pad tops and lead corner (mm)")
}

// flagFields pairs each parameter flag with its field in Params.
var flagFields = []struct {
	name string
	set  func(dst *meander.Params, src meander.Params)
}{
	{"substrate-size", func(d *meander.Params, s meander.Params) { d.SubstrateSize = s.SubstrateSize }},
	{"height", func(d *meander.Params, s meander.Params) { d.Height = s.Height }},
	{"pad-size", func(d *meander.Params, s meander.Params) { d.PadSize = s.PadSize }},
	{"neck", func(d *meander.Params, s meander.Params) { d.PadsNeckSize = s.PadsNeckSize }},
	{"loops", func(d *meander.Params, s meander.Params) { d.NumberOfLoops = s.NumberOfLoops }},
	{"thickness", func(d *meander.Params, s meander.Params) { d.SnakeThickness = s.SnakeThickness }},
	{"loop-margin", func(d *meander.Params, s meander.Params) { d.SnakeLoopMargin = s.SnakeLoopMargin }},
	{"pads-offset", func(d *meander.Params, s meander.Params) { d.SnakePadsOffset = s.SnakePadsOffset }},
}

// resolve returns defaults overlaid by the config file, overlaid by every
// flag the user set explicitly.
func (f *paramFlags) resolve(cmd *cobra.Command) (meander.Params, error) {
	p := meander.DefaultParams()
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return meander.Params{}, err
		}
		p = loaded
	}
	for _, field := range flagFields {
		if cmd.Flags().Changed(field.name) {
			field.set(&p, f.values)
		}
	}
	return p, nil
}
