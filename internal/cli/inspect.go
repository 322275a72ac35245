package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/meander/pkg/meander"
)

// inspectReport is the machine-readable form of the inspect command.
type inspectReport struct {
	Params      meander.Params `json:"params"`
	LoopGap     float64        `json:"loop_gap"`
	ToothHeight float64        `json:"tooth_height"`
	PadsGap     float64        `json:"pads_gap"`
	PadsTotal   float64        `json:"pads_total"`
	MirrorAxis  float64        `json:"mirror_axis"`
	TraceLength float64        `json:"trace_length"`
	Points      int            `json:"points"`
	Bounds      [4]float64     `json:"bounds"`
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var params paramFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the derived geometry without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := params.resolve(cmd)
			if err != nil {
				return err
			}
			d, err := meander.Generate(p)
			if err != nil {
				return err
			}
			r := newInspectReport(d)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			printInspectReport(r)
			return nil
		},
	}

	params.bind(cmd.Flags())
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func newInspectReport(d meander.Drawing) inspectReport {
	g := d.Geometry
	return inspectReport{
		Params:      g.Params,
		LoopGap:     g.LoopGap,
		ToothHeight: g.ToothHeight(),
		PadsGap:     g.PadsGap,
		PadsTotal:   g.PadsTotal,
		MirrorAxis:  g.MirrorAxis,
		TraceLength: d.TraceLength(),
		Points:      d.PointCount(),
		Bounds:      [4]float64{d.Bounds.Min.X, d.Bounds.Min.Y, d.Bounds.Max.X, d.Bounds.Max.Y},
	}
}

func printInspectReport(r inspectReport) {
	printTitle("Meander")
	printKeyValue("loops", fmt.Sprintf("%d", r.Params.NumberOfLoops))
	printKeyValue("loop gap", mm(r.LoopGap))
	printKeyValue("tooth", mm(r.ToothHeight))
	printKeyValue("trace", mm(r.TraceLength))
	printNewline()
	printTitle("Pads")
	printKeyValue("gap", mm(r.PadsGap))
	printKeyValue("block", mm(r.PadsTotal))
	printKeyValue("mirror x", mm(r.MirrorAxis))
	printNewline()
	printTitle("Drawing")
	printKeyValue("points", fmt.Sprintf("%d", r.Points))
	printKeyValue("bounds", fmt.Sprintf("(%s, %s) to (%s, %s)",
		num(r.Bounds[0]), num(r.Bounds[1]), num(r.Bounds[2]), num(r.Bounds[3])))
}

func mm(v float64) string { return num(v) + " mm" }

func num(v float64) string { return fmt.Sprintf("%.6g", v) }
