package commands

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"stegochat/internal/stego"
)

// extract <file>: recover text hidden by embed.
func extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file.png>",
		Short: "Recover text hidden in a carrier image (debugging utility)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			img, err := png.Decode(f)
			if err != nil {
				return err
			}
			payload, err := stego.Extract(img)
			if err != nil {
				return err
			}
			fmt.Println(string(payload))
			return nil
		},
	}
}
