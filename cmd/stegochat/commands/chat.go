package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stegochat/internal/app"
	"stegochat/internal/domain"
	"stegochat/internal/session"
)

// chat <peer>: interactive session; stdin lines go out, decrypted
// messages come back on stdout.
func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat <peer>",
		Short: "Start an encrypted conversation with a peer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("token required (-t)")
			}
			peer := domain.PrincipalID(args[0])

			a, err := app.New(app.Config{RelayAddr: relayAddr, Token: token},
				func(m session.Message) {
					fmt.Printf("[%s] %s\n", m.From, m.Text)
				})
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Printf("connected as %s; chatting with %s\n", a.Self(), peer)

			lines := make(chan string)
			go func() {
				sc := bufio.NewScanner(os.Stdin)
				for sc.Scan() {
					lines <- sc.Text()
				}
				close(lines)
			}()

			for {
				select {
				case line, ok := <-lines:
					if !ok {
						return nil
					}
					if line == "" {
						continue
					}
					status, err := a.Pipeline.Send(peer, line)
					if err != nil {
						fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
						continue
					}
					if status == session.StatusWaiting {
						fmt.Println("(waiting for handshake; message will be sent automatically)")
					}
				case <-a.Done():
					return fmt.Errorf("connection to relay lost")
				}
			}
		},
	}
}
