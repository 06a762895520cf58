package commands

import (
	"github.com/spf13/cobra"
)

func newDevicesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List the configured STB devices and TV brands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			tp := newTable(cmd.OutOrStdout())
			tp.AddHeader([]string{"TYPE", "NAME"})
			for _, d := range e.cfg.Devices {
				tp.AddField("STB")
				tp.AddField(d)
				tp.EndRow()
			}
			for _, b := range e.cfg.TVBrands {
				tp.AddField("TV")
				tp.AddField(b)
				tp.EndRow()
			}
			return tp.Render()
		},
	}
}
