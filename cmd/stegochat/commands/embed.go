package commands

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"stegochat/internal/stego"
)

// embed <text>: offline utility writing a carrier PNG with hidden text.
func embedCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "embed <text>",
		Short: "Hide text in a carrier image (debugging utility)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := stego.Embed([]byte(args[0]))
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "carrier.png", "output file")
	return cmd
}
