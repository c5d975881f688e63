package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	relayAddr string
	token     string
	verbose   bool
)

func Execute() error {
	root := &cobra.Command{
		Use:   "stegochat",
		Short: "Encrypted chat hidden inside images",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&relayAddr, "relay", "127.0.0.1:7465", "relay host:port")
	root.PersistentFlags().StringVarP(&token, "token", "t", "", "connection token")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(chatCmd(), embedCmd(), extractCmd())
	return root.Execute()
}
