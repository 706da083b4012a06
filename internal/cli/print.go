package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/otobench/otobench/pkg/graphio"
)

// newPrintCmd creates the print command: dump the graphs of a
// binary edge-list file in the readable text format.
func newPrintCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "print <file>",
		Short: "Print a binary graph file as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			out := c.OutOrStdout()
			for i := 0; count == 0 || i < count; i++ {
				g, err := graphio.ReadBinary(f)
				if err != nil {
					if i > 0 && count == 0 {
						// end of a multi-graph stream
						return nil
					}
					return err
				}
				if err := graphio.WriteText(out, g); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "graphs to print (0 = all)")
	return cmd
}
